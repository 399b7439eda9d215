// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, password, email, first_name, last_name, role, created_at, updated_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. Unique violations surface as ErrDuplicateEntry.
func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	query := `
		INSERT INTO users (id, username, password, email, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	err := r.db.QueryRow(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName, u.Role,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translateError(err, "create user")
	}

	return nil
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, "find user")
	}
	return u, nil
}

// FindByUsername retrieves a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, translateError(err, "find user")
	}
	return u, nil
}

// ExistsByUsername reports whether username is taken
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// ExistsByEmail reports whether email is taken
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
