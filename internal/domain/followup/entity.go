package followup

import "time"

const (
	TypeCall  = "call"
	TypeEmail = "email"
	TypeSMS   = "sms"
	TypeVisit = "visit"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// FollowUp is a scheduled contact action against a client.
type FollowUp struct {
	ID            string     `json:"id" db:"id"`
	ClientID      string     `json:"clientId" db:"client_id"`
	LeadID        *string    `json:"leadId" db:"lead_id"`
	FollowUpType  string     `json:"followUpType" db:"follow_up_type"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	ScheduledDate time.Time  `json:"scheduledDate" db:"scheduled_date"`
	Status        string     `json:"status" db:"status"`
	AssignedTo    *string    `json:"assignedTo" db:"assigned_to"`
	CompletedAt   *time.Time `json:"completedAt" db:"completed_at"`
	CompletedBy   *string    `json:"completedBy" db:"completed_by"`
	Notes         string     `json:"notes" db:"notes"`
	CreatedBy     *string    `json:"createdBy" db:"created_by"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}
