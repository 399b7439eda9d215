// internal/repository/postgres/job_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/job"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, client_id, service, description, address, scheduled_date, scheduled_time,
	estimated_duration, actual_duration, status, cost, tips, materials, staff, photos, notes,
	completed_at, created_at, updated_at`

type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

func scanJob(row pgx.Row) (*job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.ClientID, &j.Service, &j.Description, &j.Address, &j.ScheduledDate, &j.ScheduledTime,
		&j.EstimatedDuration, &j.ActualDuration, &j.Status, &j.Cost, &j.Tips, &j.Materials, &j.Staff, &j.Photos, &j.Notes,
		&j.CompletedAt, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	for _, s := range []*[]string{&j.Materials, &j.Staff, &j.Photos} {
		if *s == nil {
			*s = []string{}
		}
	}
	return &j, nil
}

// Create inserts a new job
func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (
			id, client_id, service, description, address, scheduled_date, scheduled_time,
			estimated_duration, actual_duration, status, cost, tips, materials, staff, photos,
			notes, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at
	`

	if j.ID == "" {
		j.ID = uuid.NewString()
	}

	err := r.db.QueryRow(
		ctx, query,
		j.ID, j.ClientID, j.Service, j.Description, j.Address, j.ScheduledDate, j.ScheduledTime,
		j.EstimatedDuration, j.ActualDuration, j.Status, j.Cost, j.Tips, j.Materials, j.Staff, j.Photos,
		j.Notes, j.CompletedAt,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return translateError(err, "create job")
	}

	return nil
}

// FindByID retrieves a job by ID
func (r *JobRepository) FindByID(ctx context.Context, id string) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	j, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "find job")
	}
	return j, nil
}

// List applies the first present filter: status, then client, then a
// [From, To) schedule window. Without filters jobs come newest first.
func (r *JobRepository) List(ctx context.Context, filters *job.JobListFilters) ([]job.Job, error) {
	var (
		conditions []string
		args       []interface{}
		argPos     = 1
		orderBy    = "created_at DESC"
	)

	switch {
	case filters == nil:
	case filters.Status != "":
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
		orderBy = "scheduled_date DESC"
	case filters.ClientID != "":
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, filters.ClientID)
		argPos++
		orderBy = "scheduled_date DESC"
	case filters.From != nil && filters.To != nil:
		conditions = append(conditions,
			fmt.Sprintf("scheduled_date >= $%d", argPos),
			fmt.Sprintf("scheduled_date < $%d", argPos+1))
		args = append(args, *filters.From, *filters.To)
		argPos += 2
		orderBy = "scheduled_date ASC"
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + whereClause(conditions) + ` ORDER BY ` + orderBy

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs, err := collect(rows, scanJob)
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return jobs, nil
}

// Update applies the non-nil fields of req. A status change also settles
// completed_at: kept or stamped for completed, cleared otherwise.
func (r *JobRepository) Update(ctx context.Context, id string, req *job.UpdateJobRequest) (*job.Job, error) {
	query, args := jobUpdate(req).build("jobs", id, jobColumns)
	j, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "update job")
	}
	return j, nil
}

// jobUpdate assigns only the fields present in req. A status change also sets
// completed_at when the job becomes completed and clears it otherwise.
func jobUpdate(req *job.UpdateJobRequest) *setBuilder {
	b := newSetBuilder()
	if req.ClientID != nil {
		b.add("client_id", *req.ClientID)
	}
	if req.Service != nil {
		b.add("service", *req.Service)
	}
	if req.Description != nil {
		b.add("description", *req.Description)
	}
	if req.Address != nil {
		b.add("address", *req.Address)
	}
	if req.ScheduledDate != nil {
		b.add("scheduled_date", req.ScheduledDate.Time)
	}
	if req.ScheduledTime != nil {
		b.add("scheduled_time", *req.ScheduledTime)
	}
	if req.EstimatedDuration != nil {
		b.add("estimated_duration", *req.EstimatedDuration)
	}
	if req.ActualDuration != nil {
		b.add("actual_duration", *req.ActualDuration)
	}
	if req.Cost != nil {
		b.add("cost", *req.Cost)
	}
	if req.Tips != nil {
		b.add("tips", *req.Tips)
	}
	if req.Materials != nil {
		b.add("materials", nonNilStrings(*req.Materials))
	}
	if req.Staff != nil {
		b.add("staff", nonNilStrings(*req.Staff))
	}
	if req.Photos != nil {
		b.add("photos", nonNilStrings(*req.Photos))
	}
	if req.Notes != nil {
		b.add("notes", *req.Notes)
	}
	if req.Status != nil {
		b.add("status", *req.Status)
		b.addExpr("completed_at",
			"CASE WHEN %s::text = 'completed' THEN COALESCE(completed_at, NOW()) ELSE NULL END", *req.Status)
	}
	return b
}

// Delete removes a job
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
