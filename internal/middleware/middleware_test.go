package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	sessions map[string]*session.SessionData
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*session.SessionData, error) {
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, xerrors.Unauthorized("Not authenticated")
}

func newAuthEngine() *gin.Engine {
	auth := NewAuthMiddleware(stubAuthenticator{sessions: map[string]*session.SessionData{
		"good": {ID: "s1", UserID: "u1", Role: "staff"},
	}}, session.Cookie{Name: "connect.sid"})

	r := gin.New()
	r.GET("/private", auth.Auth(), func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, sess.UserID+":"+GetUserID(c))
	})
	return r
}

func TestAuth_RejectsMissingAndInvalidCookie(t *testing.T) {
	r := newAuthEngine()

	for _, cookie := range []string{"", "bad"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "connect.sid", Value: cookie})
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())
	}
}

func TestAuth_BindsSession(t *testing.T) {
	r := newAuthEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: "good"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1:u1", w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery_AnswersGeneric500(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyListAllowsNoOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
