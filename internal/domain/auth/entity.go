// internal/domain/auth/entity.go
package auth

import (
	"time"
)

const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User is a staff account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicUser is the projection returned by the auth endpoints.
type PublicUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStaff, RoleManager, RoleAdmin:
		return true
	}
	return false
}
