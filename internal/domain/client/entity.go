package client

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Client struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	AlternatePhone *string   `json:"alternatePhone" db:"alternate_phone"`
	Address        string    `json:"address" db:"address"`
	City           *string   `json:"city" db:"city"`
	State          *string   `json:"state" db:"state"`
	ZipCode        *string   `json:"zipCode" db:"zip_code"`
	Source         *string   `json:"source" db:"source"`
	Tags           []string  `json:"tags" db:"tags"`
	Status         string    `json:"status" db:"status"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
