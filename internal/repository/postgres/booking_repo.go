// internal/repository/postgres/booking_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/booking"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, client_id, job_id, service, date, time, duration, staff, address,
	phone, status, estimated_cost, notes, created_at, updated_at`

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var b booking.Booking
	err := row.Scan(
		&b.ID, &b.ClientID, &b.JobID, &b.Service, &b.Date, &b.Time, &b.Duration, &b.Staff, &b.Address,
		&b.Phone, &b.Status, &b.EstimatedCost, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Staff = nonNilStrings(b.Staff)
	return &b, nil
}

// Create inserts a new booking
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (
			id, client_id, job_id, service, date, time, duration, staff, address,
			phone, status, estimated_cost, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	err := r.db.QueryRow(
		ctx, query,
		b.ID, b.ClientID, b.JobID, b.Service, b.Date, b.Time, b.Duration, nonNilStrings(b.Staff), b.Address,
		b.Phone, b.Status, b.EstimatedCost, b.Notes,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return translateError(err, "create booking")
	}

	return nil
}

// FindByID retrieves a booking by ID
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "find booking")
	}
	return b, nil
}

// List applies the first present filter: status, then a calendar day, then
// client. Without filters bookings come newest first.
func (r *BookingRepository) List(ctx context.Context, filters *booking.BookingListFilters) ([]booking.Booking, error) {
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
		orderBy = "date ASC"
	case filters.DayStart != nil && filters.DayEnd != nil:
		conditions = append(conditions,
			fmt.Sprintf("date >= $%d", argPos),
			fmt.Sprintf("date < $%d", argPos+1))
		args = append(args, *filters.DayStart, *filters.DayEnd)
		argPos += 2
		orderBy = "time ASC"
	case filters.ClientID != "":
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, filters.ClientID)
		argPos++
		orderBy = "date DESC"
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings` + whereClause(conditions) + ` ORDER BY ` + orderBy

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := collect(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bookings: %w", err)
	}
	return bookings, nil
}

// Update applies the non-nil fields of req and returns the stored booking
func (r *BookingRepository) Update(ctx context.Context, id string, req *booking.UpdateBookingRequest) (*booking.Booking, error) {
	b := newSetBuilder()
	if req.ClientID != nil {
		b.add("client_id", *req.ClientID)
	}
	if req.JobID != nil {
		b.add("job_id", *req.JobID)
	}
	if req.Service != nil {
		b.add("service", *req.Service)
	}
	if req.Date != nil {
		b.add("date", req.Date.Time)
	}
	if req.Time != nil {
		b.add("time", *req.Time)
	}
	if req.Duration != nil {
		b.add("duration", *req.Duration)
	}
	if req.Staff != nil {
		b.add("staff", nonNilStrings(*req.Staff))
	}
	if req.Address != nil {
		b.add("address", *req.Address)
	}
	if req.Phone != nil {
		b.add("phone", *req.Phone)
	}
	if req.Status != nil {
		b.add("status", *req.Status)
	}
	if req.EstimatedCost != nil {
		b.add("estimated_cost", *req.EstimatedCost)
	}
	if req.Notes != nil {
		b.add("notes", *req.Notes)
	}

	query, args := b.build("bookings", id, bookingColumns)
	bk, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "update booking")
	}
	return bk, nil
}

// Delete removes a booking
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
