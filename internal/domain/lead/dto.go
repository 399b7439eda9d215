package lead

import "crm-service/internal/pkg/types"

type CreateLeadRequest struct {
	Name            string       `json:"name" binding:"required,max=255"`
	Email           string       `json:"email" binding:"required,max=255"`
	Phone           string       `json:"phone" binding:"required,max=50"`
	Address         *string      `json:"address"`
	Service         string       `json:"service" binding:"required,max=255"`
	Source          string       `json:"source" binding:"required,max=100"`
	Status          string       `json:"status" binding:"omitempty,oneof=new contacted proposal booked won lost"`
	Value           *types.Money `json:"value" binding:"required,gte=0"`
	LastContactDate *types.Date  `json:"lastContactDate"`
	Notes           string       `json:"notes"`
}

// ToLead applies defaults and returns the record to insert. A lead is never
// created already linked to a client; that only happens through conversion.
func (r *CreateLeadRequest) ToLead() *Lead {
	l := &Lead{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		Service:         r.Service,
		Source:          r.Source,
		Status:          r.Status,
		Value:           *r.Value,
		LastContactDate: types.TimePtr(r.LastContactDate),
		Notes:           r.Notes,
	}
	if l.Status == "" {
		l.Status = StatusNew
	}
	return l
}

type UpdateLeadRequest struct {
	Name            *string      `json:"name" binding:"omitnil,min=1,max=255"`
	Email           *string      `json:"email" binding:"omitnil,min=1,max=255"`
	Phone           *string      `json:"phone" binding:"omitnil,min=1,max=50"`
	Address         *string      `json:"address"`
	Service         *string      `json:"service" binding:"omitnil,min=1,max=255"`
	Source          *string      `json:"source" binding:"omitnil,min=1,max=100"`
	Status          *string      `json:"status" binding:"omitnil,oneof=new contacted proposal booked won lost"`
	Value           *types.Money `json:"value" binding:"omitnil,gte=0"`
	LastContactDate *types.Date  `json:"lastContactDate"`
	Notes           *string      `json:"notes"`
}

type LeadListFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=new contacted proposal booked won lost"`
}
