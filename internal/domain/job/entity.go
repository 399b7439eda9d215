package job

import (
	"time"

	"crm-service/internal/pkg/types"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Job struct {
	ID                string      `json:"id" db:"id"`
	ClientID          string      `json:"clientId" db:"client_id"`
	Service           string      `json:"service" db:"service"`
	Description       string      `json:"description" db:"description"`
	Address           string      `json:"address" db:"address"`
	ScheduledDate     time.Time   `json:"scheduledDate" db:"scheduled_date"`
	ScheduledTime     string      `json:"scheduledTime" db:"scheduled_time"`
	EstimatedDuration types.Int   `json:"estimatedDuration" db:"estimated_duration"`
	ActualDuration    *types.Int  `json:"actualDuration" db:"actual_duration"`
	Status            string      `json:"status" db:"status"`
	Cost              types.Money `json:"cost" db:"cost"`
	Tips              types.Money `json:"tips" db:"tips"`
	Materials         []string    `json:"materials" db:"materials"`
	Staff             []string    `json:"staff" db:"staff"`
	Photos            []string    `json:"photos" db:"photos"`
	Notes             string      `json:"notes" db:"notes"`
	CompletedAt       *time.Time  `json:"completedAt" db:"completed_at"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}
