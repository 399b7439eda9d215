package followup

import (
	"time"

	"crm-service/internal/pkg/types"
)

type CreateFollowUpRequest struct {
	ClientID      string      `json:"clientId" binding:"required,uuid"`
	LeadID        *string     `json:"leadId" binding:"omitnil,uuid"`
	FollowUpType  string      `json:"followUpType" binding:"required,oneof=call email sms visit"`
	Title         string      `json:"title" binding:"required,max=255"`
	Description   string      `json:"description"`
	ScheduledDate *types.Date `json:"scheduledDate" binding:"required"`
	Status        string      `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	AssignedTo    *string     `json:"assignedTo" binding:"omitnil,uuid"`
	Notes         string      `json:"notes"`
}

// ToFollowUp applies defaults. actorID is the signed-in user creating it.
func (r *CreateFollowUpRequest) ToFollowUp(actorID string, now time.Time) *FollowUp {
	f := &FollowUp{
		ClientID:      r.ClientID,
		LeadID:        r.LeadID,
		FollowUpType:  r.FollowUpType,
		Title:         r.Title,
		Description:   r.Description,
		ScheduledDate: r.ScheduledDate.Time,
		Status:        r.Status,
		AssignedTo:    r.AssignedTo,
		Notes:         r.Notes,
	}
	if f.Status == "" {
		f.Status = StatusPending
	}
	if actorID != "" {
		f.CreatedBy = &actorID
		if f.AssignedTo == nil {
			f.AssignedTo = &actorID
		}
	}
	if f.Status == StatusCompleted {
		f.CompletedAt = &now
		if actorID != "" {
			f.CompletedBy = &actorID
		}
	}
	return f
}

type UpdateFollowUpRequest struct {
	LeadID        *string     `json:"leadId" binding:"omitnil,uuid"`
	FollowUpType  *string     `json:"followUpType" binding:"omitnil,oneof=call email sms visit"`
	Title         *string     `json:"title" binding:"omitnil,min=1,max=255"`
	Description   *string     `json:"description"`
	ScheduledDate *types.Date `json:"scheduledDate"`
	Status        *string     `json:"status" binding:"omitnil,oneof=pending completed cancelled"`
	AssignedTo    *string     `json:"assignedTo" binding:"omitnil,uuid"`
	Notes         *string     `json:"notes"`

	// Set by the service from the session.
	ActorID string `json:"-"`
}

type FollowUpListFilters struct {
	Pending    bool   `form:"pending"`
	Status     string `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	ClientID   string `form:"clientId" binding:"omitempty,uuid"`
	AssignedTo string `form:"assignedTo" binding:"omitempty,uuid"`
}
