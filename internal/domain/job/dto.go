package job

import (
	"time"

	"crm-service/internal/pkg/types"
)

type CreateJobRequest struct {
	ClientID          string       `json:"clientId" binding:"required,uuid"`
	Service           string       `json:"service" binding:"required,max=255"`
	Description       string       `json:"description"`
	Address           string       `json:"address" binding:"required"`
	ScheduledDate     *types.Date  `json:"scheduledDate" binding:"required"`
	ScheduledTime     string       `json:"scheduledTime" binding:"required,max=20"`
	EstimatedDuration *types.Int   `json:"estimatedDuration" binding:"required,gt=0"`
	ActualDuration    *types.Int   `json:"actualDuration" binding:"omitnil,gte=0"`
	Status            string       `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
	Cost              *types.Money `json:"cost" binding:"required,gte=0"`
	Tips              *types.Money `json:"tips" binding:"omitnil,gte=0"`
	Materials         []string     `json:"materials"`
	Staff             []string     `json:"staff"`
	Photos            []string     `json:"photos"`
	Notes             string       `json:"notes"`
	CompletedAt       *types.Date  `json:"completedAt"`
}

// ToJob applies defaults and the completion rule: a job carries a completion
// time exactly when its status is completed.
func (r *CreateJobRequest) ToJob(now time.Time) *Job {
	j := &Job{
		ClientID:          r.ClientID,
		Service:           r.Service,
		Description:       r.Description,
		Address:           r.Address,
		ScheduledDate:     r.ScheduledDate.Time,
		ScheduledTime:     r.ScheduledTime,
		EstimatedDuration: *r.EstimatedDuration,
		ActualDuration:    r.ActualDuration,
		Status:            r.Status,
		Cost:              *r.Cost,
		Materials:         nonNil(r.Materials),
		Staff:             nonNil(r.Staff),
		Photos:            nonNil(r.Photos),
		Notes:             r.Notes,
	}
	if r.Tips != nil {
		j.Tips = *r.Tips
	}
	if j.Status == "" {
		j.Status = StatusScheduled
	}
	if j.Status == StatusCompleted {
		completed := now
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Time
		}
		j.CompletedAt = &completed
	}
	return j
}

type UpdateJobRequest struct {
	ClientID          *string      `json:"clientId" binding:"omitnil,uuid"`
	Service           *string      `json:"service" binding:"omitnil,min=1,max=255"`
	Description       *string      `json:"description"`
	Address           *string      `json:"address" binding:"omitnil,min=1"`
	ScheduledDate     *types.Date  `json:"scheduledDate"`
	ScheduledTime     *string      `json:"scheduledTime" binding:"omitnil,min=1,max=20"`
	EstimatedDuration *types.Int   `json:"estimatedDuration" binding:"omitnil,gt=0"`
	ActualDuration    *types.Int   `json:"actualDuration" binding:"omitnil,gte=0"`
	Status            *string      `json:"status" binding:"omitnil,oneof=scheduled in-progress completed cancelled"`
	Cost              *types.Money `json:"cost" binding:"omitnil,gte=0"`
	Tips              *types.Money `json:"tips" binding:"omitnil,gte=0"`
	Materials         *[]string    `json:"materials"`
	Staff             *[]string    `json:"staff"`
	Photos            *[]string    `json:"photos"`
	Notes             *string      `json:"notes"`
}

type JobListFilters struct {
	Status    string `form:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
	ClientID  string `form:"clientId" binding:"omitempty,uuid"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`

	// Parsed from StartDate/EndDate by the service as [From, To).
	From *time.Time `form:"-"`
	To   *time.Time `form:"-"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
