package lead

import (
	"time"

	"crm-service/internal/domain/client"
	"crm-service/internal/pkg/types"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusProposal  = "proposal"
	StatusBooked    = "booked"
	StatusWon       = "won"
	StatusLost      = "lost"
)

// ActiveStatuses are the early pipeline stages counted as active leads.
var ActiveStatuses = []string{StatusNew, StatusContacted, StatusProposal}

type Lead struct {
	ID              string      `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Email           string      `json:"email" db:"email"`
	Phone           string      `json:"phone" db:"phone"`
	Address         *string     `json:"address" db:"address"`
	Service         string      `json:"service" db:"service"`
	Source          string      `json:"source" db:"source"`
	Status          string      `json:"status" db:"status"`
	Value           types.Money `json:"value" db:"value"`
	LastContactDate *time.Time  `json:"lastContactDate" db:"last_contact_date"`
	Notes           string      `json:"notes" db:"notes"`
	ClientID        *string     `json:"clientId" db:"client_id"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// Converted reports whether the lead already produced a client.
func (l *Lead) Converted() bool {
	return l.ClientID != nil
}

// NewClient builds the client record a conversion creates from this lead.
func (l *Lead) NewClient() *client.Client {
	c := &client.Client{
		Name:   l.Name,
		Email:  l.Email,
		Phone:  l.Phone,
		Tags:   []string{},
		Status: client.StatusActive,
		Notes:  l.Notes,
	}
	if l.Address != nil {
		c.Address = *l.Address
	}
	return c
}

// ConversionResult is returned by a successful lead conversion.
type ConversionResult struct {
	Lead   *Lead          `json:"lead"`
	Client *client.Client `json:"client"`
}
