package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serve(t *testing.T, checks map[string]Check) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", NewHealthHandler(checks, zap.NewNop()).Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealth_AllUp(t *testing.T) {
	ok := func(context.Context) error { return nil }
	w, body := serve(t, map[string]Check{"postgres": ok, "redis": ok})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]interface{}{"postgres": "up", "redis": "up"}, body["checks"])
}

func TestHealth_DependencyDown(t *testing.T) {
	w, body := serve(t, map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "down", body["checks"].(map[string]interface{})["redis"])
}
