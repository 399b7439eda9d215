package booking

import (
	"time"

	"crm-service/internal/pkg/types"
)

type CreateBookingRequest struct {
	ClientID      string       `json:"clientId" binding:"required,uuid"`
	JobID         *string      `json:"jobId" binding:"omitnil,uuid"`
	Service       string       `json:"service" binding:"required,max=255"`
	Date          *types.Date  `json:"date" binding:"required"`
	Time          string       `json:"time" binding:"required,max=20"`
	Duration      *types.Int   `json:"duration" binding:"required,gt=0"`
	Staff         []string     `json:"staff"`
	Address       string       `json:"address" binding:"required"`
	Phone         string       `json:"phone" binding:"required,max=50"`
	Status        string       `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	EstimatedCost *types.Money `json:"estimatedCost" binding:"required,gte=0"`
	Notes         string       `json:"notes"`
}

func (r *CreateBookingRequest) ToBooking() *Booking {
	b := &Booking{
		ClientID:      r.ClientID,
		JobID:         r.JobID,
		Service:       r.Service,
		Date:          r.Date.Time,
		Time:          r.Time,
		Duration:      *r.Duration,
		Staff:         r.Staff,
		Address:       r.Address,
		Phone:         r.Phone,
		Status:        r.Status,
		EstimatedCost: *r.EstimatedCost,
		Notes:         r.Notes,
	}
	if b.Staff == nil {
		b.Staff = []string{}
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return b
}

type UpdateBookingRequest struct {
	ClientID      *string      `json:"clientId" binding:"omitnil,uuid"`
	JobID         *string      `json:"jobId" binding:"omitnil,uuid"`
	Service       *string      `json:"service" binding:"omitnil,min=1,max=255"`
	Date          *types.Date  `json:"date"`
	Time          *string      `json:"time" binding:"omitnil,min=1,max=20"`
	Duration      *types.Int   `json:"duration" binding:"omitnil,gt=0"`
	Staff         *[]string    `json:"staff"`
	Address       *string      `json:"address" binding:"omitnil,min=1"`
	Phone         *string      `json:"phone" binding:"omitnil,min=1,max=50"`
	Status        *string      `json:"status" binding:"omitnil,oneof=pending confirmed completed cancelled"`
	EstimatedCost *types.Money `json:"estimatedCost" binding:"omitnil,gte=0"`
	Notes         *string      `json:"notes"`
}

type BookingListFilters struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Date     string `form:"date"`
	ClientID string `form:"clientId" binding:"omitempty,uuid"`

	// Day is the parsed calendar day of Date, as [DayStart, DayEnd).
	DayStart *time.Time `form:"-"`
	DayEnd   *time.Time `form:"-"`
}
