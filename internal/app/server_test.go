package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientIPOf(t *testing.T, engine *gin.Engine, forwardedFor string) string {
	t.Helper()
	engine.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "198.51.100.7:40000"
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewEngine_IgnoresForwardedForByDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	assert.Equal(t, "198.51.100.7", clientIPOf(t, engine, "203.0.113.9"))
}

func TestNewEngine_HonoursTrustedProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, err := NewEngine([]string{"198.51.100.0/24"})
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.9", clientIPOf(t, engine, "203.0.113.9"))
}

func TestNewEngine_RejectsBadProxy(t *testing.T) {
	_, err := NewEngine([]string{"not-an-ip"})
	assert.Error(t, err)
}
