// internal/repository/postgres/client_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/client"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, name, email, phone, alternate_phone, address, city, state,
	zip_code, source, tags, status, notes, created_at, updated_at`

type ClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.AlternatePhone, &c.Address, &c.City, &c.State,
		&c.ZipCode, &c.Source, &c.Tags, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c, nil
}

// Create inserts a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	return r.create(ctx, r.db, c)
}

// CreateWithTx inserts a new client inside tx
func (r *ClientRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, c *client.Client) error {
	return r.create(ctx, tx, c)
}

func (r *ClientRepository) create(ctx context.Context, q querier, c *client.Client) error {
	query := `
		INSERT INTO clients (
			id, name, email, phone, alternate_phone, address, city, state,
			zip_code, source, tags, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}

	err := q.QueryRow(
		ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.AlternatePhone, c.Address, c.City, c.State,
		c.ZipCode, c.Source, c.Tags, c.Status, c.Notes,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translateError(err, "create client")
	}

	return nil
}

// FindByID retrieves a client by ID
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "find client")
	}
	return c, nil
}

// List returns clients newest first, optionally narrowed by a search term
// matched against name, email and phone.
func (r *ClientRepository) List(ctx context.Context, filters *client.ClientListFilters) ([]client.Client, error) {
	var (
		conditions []string
		args       []interface{}
		argPos     = 1
	)

	if filters != nil && filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, "%"+escapeLike(filters.Search)+"%")
		argPos++
	}

	query := `SELECT ` + clientColumns + ` FROM clients` + whereClause(conditions) + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients, err := collect(rows, scanClient)
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients: %w", err)
	}
	return clients, nil
}

// Update applies the non-nil fields of req and returns the stored client
func (r *ClientRepository) Update(ctx context.Context, id string, req *client.UpdateClientRequest) (*client.Client, error) {
	query, args := clientUpdate(req).build("clients", id, clientColumns)
	c, err := scanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "update client")
	}
	return c, nil
}

// clientUpdate assigns only the fields present in req.
func clientUpdate(req *client.UpdateClientRequest) *setBuilder {
	b := newSetBuilder()
	if req.Name != nil {
		b.add("name", *req.Name)
	}
	if req.Email != nil {
		b.add("email", *req.Email)
	}
	if req.Phone != nil {
		b.add("phone", *req.Phone)
	}
	if req.AlternatePhone != nil {
		b.add("alternate_phone", *req.AlternatePhone)
	}
	if req.Address != nil {
		b.add("address", *req.Address)
	}
	if req.City != nil {
		b.add("city", *req.City)
	}
	if req.State != nil {
		b.add("state", *req.State)
	}
	if req.ZipCode != nil {
		b.add("zip_code", *req.ZipCode)
	}
	if req.Source != nil {
		b.add("source", *req.Source)
	}
	if req.Tags != nil {
		b.add("tags", nonNilStrings(*req.Tags))
	}
	if req.Status != nil {
		b.add("status", *req.Status)
	}
	if req.Notes != nil {
		b.add("notes", *req.Notes)
	}
	return b
}

// Delete removes a client and, by cascade, its jobs, bookings and messages
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Truncate removes every client. Used by the seeder.
func (r *ClientRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE clients CASCADE`); err != nil {
		return fmt.Errorf("failed to truncate clients: %w", err)
	}
	return nil
}
