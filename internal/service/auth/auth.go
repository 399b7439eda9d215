// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"crm-service/internal/domain/auth"
	"crm-service/internal/metrics"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/session"
	"crm-service/internal/pkg/validate"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the work factor for stored password hashes.
	BcryptCost = 12

	scopeLogin    = "login"
	scopeRegister = "register"

	msgRateLimited        = "Too many authentication attempts, please try again later."
	msgInvalidCredentials = "Invalid username or password"
	msgNotAuthenticated   = "Not authenticated"
	msgUsernameTaken      = "Username already exists"
	msgEmailTaken         = "Email already exists"
)

type UserRepository interface {
	Create(ctx context.Context, u *auth.User) error
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByUsername(ctx context.Context, username string) (*auth.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type SessionStore interface {
	Regenerate(ctx context.Context, previousID string, s *session.SessionData) error
	GetSession(ctx context.Context, id string) (*session.SessionData, error)
	InvalidateSession(ctx context.Context, id string) error
}

type AttemptLimiter interface {
	Allow(ctx context.Context, scope, ip string) (bool, time.Duration, error)
}

type TokenSigner interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Verify(token string) (*jwt.Claims, error)
}

// SessionNotifier is told when a session ends so live connections bound to
// it can be closed.
type SessionNotifier interface {
	DisconnectSession(sessionID, reason string)
}

type AuthService struct {
	users      UserRepository
	sessions   SessionStore
	limiter    AttemptLimiter
	signer     TokenSigner
	notifier   SessionNotifier
	bcryptCost int
	logger     *zap.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(
	users UserRepository,
	sessions SessionStore,
	limiter AttemptLimiter,
	signer TokenSigner,
	notifier SessionNotifier,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		limiter:    limiter,
		signer:     signer,
		notifier:   notifier,
		bcryptCost: BcryptCost,
		logger:     logger,
	}
}

// WithBcryptCost overrides the hash work factor. Tests use bcrypt.MinCost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

// ========== Register ==========

// Register creates a staff account and signs it in. Any role in the request
// is ignored.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.LoginResult, error) {
	if err := s.checkRate(ctx, scopeRegister, req.IPAddress); err != nil {
		return nil, err
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if verr := (validate.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}).Check(); verr != nil {
		metrics.RecordAuthAttempt(scopeRegister, "invalid")
		return nil, verr
	}

	user, err := s.createUser(ctx, &auth.CreateUserRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      auth.RoleStaff,
	})
	if err != nil {
		metrics.RecordAuthAttempt(scopeRegister, "rejected")
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)
	metrics.RecordAuthAttempt(scopeRegister, "success")

	return s.startSession(ctx, user, req.IPAddress, req.UserAgent, req.PreviousToken)
}

// createUser checks uniqueness, hashes the password and stores the user.
func (s *AuthService) createUser(ctx context.Context, req *auth.CreateUserRequest) (*auth.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, xerrors.Validation(msgUsernameTaken, xerrors.FieldError{Field: "username", Message: msgUsernameTaken})
	}

	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, xerrors.Validation(msgEmailTaken, xerrors.FieldError{Field: "email", Message: msgEmailTaken})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &auth.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			if strings.Contains(err.Error(), "email") {
				return nil, xerrors.Validation(msgEmailTaken, xerrors.FieldError{Field: "email", Message: msgEmailTaken})
			}
			return nil, xerrors.Validation(msgUsernameTaken, xerrors.FieldError{Field: "username", Message: msgUsernameTaken})
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ========== Login ==========

// Login verifies credentials. Unknown users and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
	if err := s.checkRate(ctx, scopeLogin, req.IPAddress); err != nil {
		return nil, err
	}

	if req.Username == "" || req.Password == "" {
		metrics.RecordAuthAttempt(scopeLogin, "failure")
		return nil, xerrors.Unauthorized(msgInvalidCredentials)
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user == nil {
		// Spend the same time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
		metrics.RecordAuthAttempt(scopeLogin, "failure")
		return nil, xerrors.Unauthorized(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login failed", zap.String("username", req.Username), zap.String("ip", req.IPAddress))
		metrics.RecordAuthAttempt(scopeLogin, "failure")
		return nil, xerrors.Unauthorized(msgInvalidCredentials)
	}

	metrics.RecordAuthAttempt(scopeLogin, "success")
	return s.startSession(ctx, user, req.IPAddress, req.UserAgent, req.PreviousToken)
}

// startSession discards any session the caller already had and binds user to
// a freshly issued one.
func (s *AuthService) startSession(ctx context.Context, user *auth.User, ip, userAgent, previousToken string) (*auth.LoginResult, error) {
	previousID := ""
	if previousToken != "" {
		if claims, err := s.signer.Verify(previousToken); err == nil {
			previousID = claims.SessionID()
		}
	}

	data := &session.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.sessions.Regenerate(ctx, previousID, data); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.signer.Sign(data.ID, data.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	s.logger.Info("session started",
		zap.String("user_id", user.ID),
		zap.String("session_id", data.ID),
	)

	return &auth.LoginResult{
		User:      user.Public(),
		SessionID: data.ID,
		Token:     token,
		ExpiresAt: data.ExpiresAt,
	}, nil
}

// ========== Logout ==========

// Logout ends the session the token points at. An absent or invalid token is
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil
	}

	if err := s.sessions.InvalidateSession(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	if s.notifier != nil {
		s.notifier.DisconnectSession(claims.SessionID(), "logged out")
	}

	s.logger.Info("session ended", zap.String("session_id", claims.SessionID()))
	return nil
}

// ========== Session lookup ==========

// Authenticate resolves a cookie value to its live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*session.SessionData, error) {
	if token == "" {
		return nil, xerrors.Unauthorized(msgNotAuthenticated)
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, xerrors.Unauthorized(msgNotAuthenticated)
	}

	sess, err := s.sessions.GetSession(ctx, claims.SessionID())
	if errors.Is(err, xerrors.ErrSessionExpired) {
		return nil, xerrors.Unauthorized(msgNotAuthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return sess, nil
}

// CurrentUser returns the public projection of the session's user.
func (s *AuthService) CurrentUser(ctx context.Context, sess *session.SessionData) (*auth.PublicUser, error) {
	if sess == nil {
		return nil, xerrors.Unauthorized(msgNotAuthenticated)
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Unauthorized(msgNotAuthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user.Public(), nil
}

func (s *AuthService) checkRate(ctx context.Context, scope, ip string) error {
	allowed, retry, err := s.limiter.Allow(ctx, scope, ip)
	if err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	if !allowed {
		s.logger.Warn("auth rate limit exceeded", zap.String("scope", scope), zap.String("ip", ip))
		metrics.RecordAuthAttempt(scope, "rate_limited")
		return xerrors.RateLimited(msgRateLimited, retry)
	}
	return nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.bcryptCost)
	})
	return s.dummyHash
}
