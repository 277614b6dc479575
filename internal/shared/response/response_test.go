package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(11, 2, 5)
	assert.Equal(t, int64(11), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 5, meta.PageSize)

	// Zero limit must not divide by zero
	assert.Equal(t, 0, NewPaginationMeta(11, 1, 0).TotalPages)
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	meta := NewPaginationMeta(1, 1, 10)
	Success(c, http.StatusOK, gin.H{"name": "Asha"}, &meta)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Asha", body["data"].(map[string]any)["name"])
	assert.Equal(t, float64(10), body["meta"].(map[string]any)["pageSize"])
	assert.NotContains(t, body, "error")
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
	assert.Equal(t, "User not found", errBody["message"])
	assert.NotContains(t, body, "data")
}
