// internal/service/auth/admin_create.go
package auth

import (
	"context"
	"strings"

	"crm-service/internal/domain/auth"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/validate"

	"go.uber.org/zap"
)

// CreateUser provisions an account with an explicit role. It is the only way
// to obtain a role other than staff and is reachable from the operator CLI
// only.
func (s *AuthService) CreateUser(ctx context.Context, req *auth.CreateUserRequest) (*auth.PublicUser, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Role == "" {
		req.Role = auth.RoleStaff
	}

	if !auth.ValidRole(req.Role) {
		return nil, xerrors.Validation("Invalid role", xerrors.FieldError{
			Field:   "role",
			Message: "Invalid enum value. Expected 'staff' | 'manager' | 'admin'",
		})
	}

	if verr := (validate.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}).Check(); verr != nil {
		return nil, verr
	}

	user, err := s.createUser(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user provisioned",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role),
	)

	return user.Public(), nil
}
