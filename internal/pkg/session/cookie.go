package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie describes how the signed session token is carried.
type Cookie struct {
	Name   string
	Secure bool
}

// Read returns the raw cookie value, or "" when absent.
func (c Cookie) Read(ctx *gin.Context) string {
	v, err := ctx.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return v
}

// Write sets an http-only cookie that expires at expiresAt.
func (c Cookie) Write(ctx *gin.Context, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, value, maxAge, "/", "", c.Secure, true)
}

// Clear expires the cookie on the client.
func (c Cookie) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, "", -1, "/", "", c.Secure, true)
}
