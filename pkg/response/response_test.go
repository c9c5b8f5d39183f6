package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	w := record(func(c *gin.Context) { OK(c, gin.H{"name": "Propedeuse"}) })

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 0, body["code"])
	assert.Equal(t, "success", body["message"])
	assert.Equal(t, "Propedeuse", body["data"].(map[string]interface{})["name"])
	assert.NotContains(t, body, "fields")
}

func TestCreated_NilDataOmitted(t *testing.T) {
	w := record(func(c *gin.Context) { Created(c, nil) })

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, decode(t, w), "data")
}

func TestValidationFailed(t *testing.T) {
	w := record(func(c *gin.Context) {
		ValidationFailed(c, 10022, "validation failed", map[string]string{"end_year": "must be after start_year"})
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 10022, body["code"])
	assert.Equal(t, "must be after start_year", body["fields"].(map[string]interface{})["end_year"])
}

func TestInternalError(t *testing.T) {
	w := record(InternalError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 50000, body["code"])
	assert.Equal(t, "something went wrong", body["message"])
}
