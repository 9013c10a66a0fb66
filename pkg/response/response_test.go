package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
	"github.com/noah-isme/adminui-api/pkg/middleware/requestid"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware())
	r.GET("/", h)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJSONCarriesRequestID(t *testing.T) {
	w := serve(func(c *gin.Context) {
		JSON(c, http.StatusOK, gin.H{"ok": true}, map[string]interface{}{"page": 1})
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	var env struct {
		Data map[string]bool        `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Data["ok"])
	assert.Equal(t, "req-1", env.Meta["request_id"])
	assert.Equal(t, float64(1), env.Meta["page"])
}

func TestErrorMapsStatus(t *testing.T) {
	w := serve(func(c *gin.Context) { Error(c, appErrors.ErrSessionNotFound) })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SESSION_NOT_FOUND"`)

	w = serve(func(c *gin.Context) { Error(c, errors.New("redis down")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, w.Body.String(), "redis down")
}

func TestAttachment(t *testing.T) {
	w := serve(func(c *gin.Context) { Attachment(c, "members.csv", "text/csv", []byte("ID\n")) })
	assert.Equal(t, `attachment; filename="members.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\n", w.Body.String())
}
