// internal/middleware/helpers.go
package middleware

import (
	"crm-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// CurrentSession returns the session bound by Auth.
func CurrentSession(c *gin.Context) (*session.SessionData, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.SessionData)
	return sess, ok && sess != nil
}

// GetUserID returns the signed-in user's id, or "" when anonymous.
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// GetRequestID returns the id assigned by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
