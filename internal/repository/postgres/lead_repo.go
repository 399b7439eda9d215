// internal/repository/postgres/lead_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/lead"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadColumns = `id, name, email, phone, address, service, source, status, value,
	last_contact_date, notes, client_id, created_at, updated_at`

type LeadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{db: db}
}

func scanLead(row pgx.Row) (*lead.Lead, error) {
	var l lead.Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Address, &l.Service, &l.Source, &l.Status, &l.Value,
		&l.LastContactDate, &l.Notes, &l.ClientID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new lead
func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, email, phone, address, service, source, status, value,
			last_contact_date, notes, client_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	err := r.db.QueryRow(
		ctx, query,
		l.ID, l.Name, l.Email, l.Phone, l.Address, l.Service, l.Source, l.Status, l.Value,
		l.LastContactDate, l.Notes, l.ClientID,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return translateError(err, "create lead")
	}

	return nil
}

// FindByID retrieves a lead by ID
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	l, err := scanLead(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "find lead")
	}
	return l, nil
}

// FindByIDForUpdateWithTx loads a lead and locks its row until tx ends
func (r *LeadRepository) FindByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, id string) (*lead.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 FOR UPDATE`

	l, err := scanLead(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "lock lead")
	}
	return l, nil
}

// MarkConvertedWithTx moves a lead to won and links it to clientID
func (r *LeadRepository) MarkConvertedWithTx(ctx context.Context, tx pgx.Tx, id, clientID string) (*lead.Lead, error) {
	query := `
		UPDATE leads
		SET status = $1, client_id = $2, updated_at = NOW()
		WHERE id = $3 AND client_id IS NULL
		RETURNING ` + leadColumns

	l, err := scanLead(tx.QueryRow(ctx, query, lead.StatusWon, clientID, id))
	if err != nil {
		return nil, translateError(err, "convert lead")
	}
	return l, nil
}

// List returns leads newest first, optionally narrowed to one status
func (r *LeadRepository) List(ctx context.Context, filters *lead.LeadListFilters) ([]lead.Lead, error) {
	var (
		conditions []string
		args       []interface{}
		argPos     = 1
	)

	if filters != nil && filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}

	query := `SELECT ` + leadColumns + ` FROM leads` + whereClause(conditions) + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	leads, err := collect(rows, scanLead)
	if err != nil {
		return nil, fmt.Errorf("failed to scan leads: %w", err)
	}
	return leads, nil
}

// Update applies the non-nil fields of req and returns the stored lead
func (r *LeadRepository) Update(ctx context.Context, id string, req *lead.UpdateLeadRequest) (*lead.Lead, error) {
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
	if req.Address != nil {
		b.add("address", *req.Address)
	}
	if req.Service != nil {
		b.add("service", *req.Service)
	}
	if req.Source != nil {
		b.add("source", *req.Source)
	}
	if req.Status != nil {
		b.add("status", *req.Status)
	}
	if req.Value != nil {
		b.add("value", *req.Value)
	}
	if req.LastContactDate != nil {
		b.add("last_contact_date", req.LastContactDate.Time)
	}
	if req.Notes != nil {
		b.add("notes", *req.Notes)
	}

	query, args := b.build("leads", id, leadColumns)
	l, err := scanLead(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "update lead")
	}
	return l, nil
}

// Delete removes a lead
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Truncate removes every lead. Used by the seeder.
func (r *LeadRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE leads`); err != nil {
		return fmt.Errorf("failed to truncate leads: %w", err)
	}
	return nil
}
