// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"crm-service/internal/domain/auth"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	"crm-service/internal/pkg/session"
	authUsecase "crm-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	cookie      session.Cookie
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, cookie session.Cookie, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// ========== Registration ==========

// Register handles user registration (public endpoint)
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := request.BindJSON(c, &req, "Invalid registration data"); err != nil {
		response.Error(c, err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")
	req.PreviousToken = h.cookie.Read(c)

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookie.Write(c, result.Token, result.ExpiresAt)
	response.Created(c, result.User)
}

// ========== Login ==========

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := request.BindJSON(c, &req, "Invalid login data"); err != nil {
		response.Error(c, err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")
	req.PreviousToken = h.cookie.Read(c)

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookie.Write(c, result.Token, result.ExpiresAt)
	response.OK(c, result.User)
}

// ========== Logout ==========

// Logout ends the current session, if any, and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), h.cookie.Read(c)); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.Error(c, err)
		return
	}

	h.cookie.Clear(c)
	response.Message(c, http.StatusOK, "Logged out successfully")
}

// ========== Current user ==========

// Me returns the signed-in user. Must run behind the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	user, err := h.authService.CurrentUser(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}
