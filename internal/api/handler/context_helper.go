package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// MustGetUserID reads the user_id set by the JWT middleware. When it is
// missing it writes a 401 and returns false; the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// pathID reads a uuid path parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context, key string) (string, bool) {
	id := c.Param(key)
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, CodeBadRequest, key+" must be a uuid")
		return "", false
	}
	return id, true
}

// bindJSON decodes the request body into req, writing a 400 on malformed
// JSON. Field rules are checked by the service.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, CodeBadRequest, "malformed request body")
		return false
	}
	return true
}
