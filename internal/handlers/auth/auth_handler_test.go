package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm-service/internal/domain/auth"
	"crm-service/internal/middleware"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/session"
	authUsecase "crm-service/internal/service/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memUsers is an in-memory user store keyed by id.
type memUsers struct {
	byID map[string]*auth.User
}

func (m *memUsers) Create(_ context.Context, u *auth.User) error {
	u.ID = fmt.Sprintf("22222222-2222-2222-2222-%012d", len(m.byID)+1)
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, xerrors.ErrNotFound
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (m *memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	return err == nil, nil
}

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type nopNotifier struct{}

func (nopNotifier) DisconnectSession(string, string) {}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	signer, err := jwt.Build(jwt.Config{Secret: "handler-test-secret-0123", Issuer: "crm-test", TTL: time.Hour})
	require.NoError(t, err)

	svc := authUsecase.NewAuthService(
		&memUsers{byID: map[string]*auth.User{}},
		session.NewManager(client, time.Hour),
		session.NewRateLimiter(client, 5, 15*time.Minute),
		signer,
		nopNotifier{},
		zap.NewNop(),
	).WithBcryptCost(bcrypt.MinCost)

	cookie := session.Cookie{Name: "connect.sid"}
	h := NewAuthHandler(svc, cookie, zap.NewNop())
	mw := middleware.NewAuthMiddleware(svc, cookie)

	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
	r.GET("/api/user", mw.Auth(), h.Me)
	return r
}

func do(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "connect.sid" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

const registerBody = `{"username":"jdoe","email":"jdoe@example.com","password":"Str0ng!pass","firstName":"Jane","lastName":"Doe","role":"admin"}`

func TestRegisterLoginLogoutFlow(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "jdoe", user["username"])
	assert.Equal(t, "staff", user["role"])
	assert.NotContains(t, w.Body.String(), "password")

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)

	w = do(r, http.MethodGet, "/api/user", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"jdoe"`)

	w = do(r, http.MethodPost, "/api/logout", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/user", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/login", `{"username":"jdoe","password":"Str0ng!pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	sessionCookie(t, w)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/register", registerBody).Code)

	wrong := do(r, http.MethodPost, "/api/login", `{"username":"jdoe","password":"nope"}`)
	unknown := do(r, http.MethodPost, "/api/login", `{"username":"ghost","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password"}`, wrong.Body.String())
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestLogin_RateLimitedAfterFiveAttempts(t *testing.T) {
	r := setupRouter(t)

	for i := 0; i < 5; i++ {
		w := do(r, http.MethodPost, "/api/login", `{"username":"ghost","password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := do(r, http.MethodPost, "/api/login", `{"username":"ghost","password":"nope"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many authentication attempts, please try again later."}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLogin_RateLimitIgnoresForwardedFor(t *testing.T) {
	r := setupRouter(t)

	attempt := func(n int) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"ghost","password":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", n))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 1; i <= 5; i++ {
		require.Equal(t, http.StatusUnauthorized, attempt(i).Code, "attempt %d", i)
	}
	w := attempt(6)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLogout_WithoutSession(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
}

func TestUser_Unauthenticated(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/user", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
