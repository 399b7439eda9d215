// Package catalog holds the offered services a business sells.
package catalog

import (
	"time"

	"crm-service/internal/pkg/types"
)

type Service struct {
	ID                string      `json:"id" db:"id"`
	Name              string      `json:"name" db:"name"`
	Description       string      `json:"description" db:"description"`
	BasePrice         types.Money `json:"basePrice" db:"base_price"`
	EstimatedDuration types.Int   `json:"estimatedDuration" db:"estimated_duration"`
	IsActive          bool        `json:"isActive" db:"is_active"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}
