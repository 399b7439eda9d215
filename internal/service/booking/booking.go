// internal/service/booking/booking.go
package booking

import (
	"context"

	"crm-service/internal/domain/booking"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/types"

	"go.uber.org/zap"
)

const msgNotFound = "Booking not found"

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id string) (*booking.Booking, error)
	List(ctx context.Context, filters *booking.BookingListFilters) ([]booking.Booking, error)
	Update(ctx context.Context, id string, req *booking.UpdateBookingRequest) (*booking.Booking, error)
	Delete(ctx context.Context, id string) error
}

type BookingService struct {
	repo   BookingRepository
	logger *zap.Logger
}

func NewBookingService(repo BookingRepository, logger *zap.Logger) *BookingService {
	return &BookingService{repo: repo, logger: logger}
}

func (s *BookingService) CreateBooking(ctx context.Context, req *booking.CreateBookingRequest) (*booking.Booking, error) {
	b := req.ToBooking()
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("failed to create booking", zap.Error(err))
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("client_id", b.ClientID),
		zap.Time("date", b.Date),
	)
	return b, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return b, nil
}

// ListBookings resolves the date filter to the calendar day containing it.
func (s *BookingService) ListBookings(ctx context.Context, filters *booking.BookingListFilters) ([]booking.Booking, error) {
	if filters.Date != "" {
		day, ok := types.ParseDate(filters.Date)
		if !ok {
			return nil, xerrors.Validation("Invalid query parameters",
				xerrors.FieldError{Field: "date", Message: "Invalid date"})
		}
		start, end := types.DayRange(day)
		filters.DayStart = &start
		filters.DayEnd = &end
	}

	return s.repo.List(ctx, filters)
}

func (s *BookingService) UpdateBooking(ctx context.Context, id string, req *booking.UpdateBookingRequest) (*booking.Booking, error) {
	b, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return b, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}

	s.logger.Info("booking deleted", zap.String("booking_id", id))
	return nil
}
