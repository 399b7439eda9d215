// internal/middleware/auth_middleware.go
package middleware

import (
	"context"

	"crm-service/internal/pkg/response"
	"crm-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a session cookie value to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.SessionData, error)
}

type AuthMiddleware struct {
	auth   Authenticator
	cookie session.Cookie
}

func NewAuthMiddleware(auth Authenticator, cookie session.Cookie) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		cookie: cookie,
	}
}

// Auth rejects requests without a live session and otherwise binds the
// session to the request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.auth.Authenticate(c.Request.Context(), m.cookie.Read(c))
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(sessionKey, sess)
		c.Set("user_id", sess.UserID)
		c.Set("session_id", sess.ID)
		c.Set("role", sess.Role)

		c.Next()
	}
}
