package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ── success ──

// OK 200.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// ── errors ──

// Error writes a generic error reply.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithFields writes an error reply carrying field-keyed messages.
func ErrorWithFields(c *gin.Context, httpStatus int, code int, message string, fields map[string]string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Fields:  fields,
	})
}

// ValidationFailed 422 with field-keyed messages for inline form errors.
func ValidationFailed(c *gin.Context, code int, message string, fields map[string]string) {
	ErrorWithFields(c, http.StatusUnprocessableEntity, code, message, fields)
}

// ── shortcuts ──

// BadRequest 400.
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401.
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403.
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404.
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "something went wrong")
}
