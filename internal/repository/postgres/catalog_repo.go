// internal/repository/postgres/catalog_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/catalog"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceColumns = `id, name, description, base_price, estimated_duration, is_active, created_at, updated_at`

// CatalogRepository stores the services offered to clients.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func scanService(row pgx.Row) (*catalog.Service, error) {
	var s catalog.Service
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.EstimatedDuration, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new service
func (r *CatalogRepository) Create(ctx context.Context, s *catalog.Service) error {
	query := `
		INSERT INTO services (id, name, description, base_price, estimated_duration, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	err := r.db.QueryRow(ctx, query,
		s.ID, s.Name, s.Description, s.BasePrice, s.EstimatedDuration, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return translateError(err, "create service")
	}

	return nil
}

// FindByID retrieves a service by ID
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*catalog.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	s, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "find service")
	}
	return s, nil
}

// List returns active services by name, or every service newest first
func (r *CatalogRepository) List(ctx context.Context, filters *catalog.ServiceListFilters) ([]catalog.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at DESC`
	if filters != nil && filters.Active {
		query = `SELECT ` + serviceColumns + ` FROM services WHERE is_active = TRUE ORDER BY name ASC`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	services, err := collect(rows, scanService)
	if err != nil {
		return nil, fmt.Errorf("failed to scan services: %w", err)
	}
	return services, nil
}

// Update applies the non-nil fields of req and returns the stored service
func (r *CatalogRepository) Update(ctx context.Context, id string, req *catalog.UpdateServiceRequest) (*catalog.Service, error) {
	b := newSetBuilder()
	if req.Name != nil {
		b.add("name", *req.Name)
	}
	if req.Description != nil {
		b.add("description", *req.Description)
	}
	if req.BasePrice != nil {
		b.add("base_price", *req.BasePrice)
	}
	if req.EstimatedDuration != nil {
		b.add("estimated_duration", *req.EstimatedDuration)
	}
	if req.IsActive != nil {
		b.add("is_active", *req.IsActive)
	}

	query, args := b.build("services", id, serviceColumns)
	s, err := scanService(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "update service")
	}
	return s, nil
}

// Delete removes a service
func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Truncate removes every service. Used by the seeder.
func (r *CatalogRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE services`); err != nil {
		return fmt.Errorf("failed to truncate services: %w", err)
	}
	return nil
}
