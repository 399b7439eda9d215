// internal/repository/postgres/followup_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/followup"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const followUpColumns = `id, client_id, lead_id, follow_up_type, title, description, scheduled_date,
	status, assigned_to, completed_at, completed_by, notes, created_by, created_at, updated_at`

type FollowUpRepository struct {
	db *pgxpool.Pool
}

func NewFollowUpRepository(db *pgxpool.Pool) *FollowUpRepository {
	return &FollowUpRepository{db: db}
}

func scanFollowUp(row pgx.Row) (*followup.FollowUp, error) {
	var f followup.FollowUp
	err := row.Scan(
		&f.ID, &f.ClientID, &f.LeadID, &f.FollowUpType, &f.Title, &f.Description, &f.ScheduledDate,
		&f.Status, &f.AssignedTo, &f.CompletedAt, &f.CompletedBy, &f.Notes, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new follow-up
func (r *FollowUpRepository) Create(ctx context.Context, f *followup.FollowUp) error {
	query := `
		INSERT INTO follow_ups (
			id, client_id, lead_id, follow_up_type, title, description, scheduled_date,
			status, assigned_to, completed_at, completed_by, notes, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	err := r.db.QueryRow(ctx, query,
		f.ID, f.ClientID, f.LeadID, f.FollowUpType, f.Title, f.Description, f.ScheduledDate,
		f.Status, f.AssignedTo, f.CompletedAt, f.CompletedBy, f.Notes, f.CreatedBy,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return translateError(err, "create follow-up")
	}

	return nil
}

// FindByID retrieves a follow-up by ID
func (r *FollowUpRepository) FindByID(ctx context.Context, id string) (*followup.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE id = $1`

	f, err := scanFollowUp(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "find follow-up")
	}
	return f, nil
}

// List applies the first present filter: pending, status, client, assignee.
// Filtered lists come soonest first; otherwise newest created first.
func (r *FollowUpRepository) List(ctx context.Context, filters *followup.FollowUpListFilters) ([]followup.FollowUp, error) {
	var (
		conditions []string
		args       []interface{}
		argPos     = 1
		orderBy    = "created_at DESC"
	)

	switch {
	case filters == nil:
	case filters.Pending:
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, followup.StatusPending)
		argPos++
	case filters.Status != "":
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	case filters.ClientID != "":
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, filters.ClientID)
		argPos++
	case filters.AssignedTo != "":
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", argPos))
		args = append(args, filters.AssignedTo)
		argPos++
	}
	if len(conditions) > 0 {
		orderBy = "scheduled_date ASC"
	}

	query := `SELECT ` + followUpColumns + ` FROM follow_ups` + whereClause(conditions) + ` ORDER BY ` + orderBy

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}

	followUps, err := collect(rows, scanFollowUp)
	if err != nil {
		return nil, fmt.Errorf("failed to scan follow-ups: %w", err)
	}
	return followUps, nil
}

// Update applies the non-nil fields of req. Completing a follow-up stamps
// completed_at and completed_by; any other status clears them.
func (r *FollowUpRepository) Update(ctx context.Context, id string, req *followup.UpdateFollowUpRequest) (*followup.FollowUp, error) {
	b := newSetBuilder()
	if req.LeadID != nil {
		b.add("lead_id", *req.LeadID)
	}
	if req.FollowUpType != nil {
		b.add("follow_up_type", *req.FollowUpType)
	}
	if req.Title != nil {
		b.add("title", *req.Title)
	}
	if req.Description != nil {
		b.add("description", *req.Description)
	}
	if req.ScheduledDate != nil {
		b.add("scheduled_date", req.ScheduledDate.Time)
	}
	if req.AssignedTo != nil {
		b.add("assigned_to", *req.AssignedTo)
	}
	if req.Notes != nil {
		b.add("notes", *req.Notes)
	}
	if req.Status != nil {
		b.add("status", *req.Status)
		b.addExpr("completed_at",
			"CASE WHEN %s::text = 'completed' THEN COALESCE(completed_at, NOW()) ELSE NULL END", *req.Status)
		var actor *string
		if req.ActorID != "" {
			actor = &req.ActorID
		}
		if *req.Status == followup.StatusCompleted {
			b.addExpr("completed_by", "COALESCE(completed_by, %s::uuid)", actor)
		} else {
			b.raw("completed_by = NULL")
		}
	}

	query, args := b.build("follow_ups", id, followUpColumns)
	f, err := scanFollowUp(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "update follow-up")
	}
	return f, nil
}

// Delete removes a follow-up
func (r *FollowUpRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM follow_ups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete follow-up: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
