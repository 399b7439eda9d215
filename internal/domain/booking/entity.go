package booking

import (
	"time"

	"crm-service/internal/pkg/types"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID            string      `json:"id" db:"id"`
	ClientID      string      `json:"clientId" db:"client_id"`
	JobID         *string     `json:"jobId" db:"job_id"`
	Service       string      `json:"service" db:"service"`
	Date          time.Time   `json:"date" db:"date"`
	Time          string      `json:"time" db:"time"`
	Duration      types.Int   `json:"duration" db:"duration"`
	Staff         []string    `json:"staff" db:"staff"`
	Address       string      `json:"address" db:"address"`
	Phone         string      `json:"phone" db:"phone"`
	Status        string      `json:"status" db:"status"`
	EstimatedCost types.Money `json:"estimatedCost" db:"estimated_cost"`
	Notes         string      `json:"notes" db:"notes"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}
