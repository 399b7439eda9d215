package catalog

import "crm-service/internal/pkg/types"

type CreateServiceRequest struct {
	Name              string       `json:"name" binding:"required,max=255"`
	Description       string       `json:"description"`
	BasePrice         *types.Money `json:"basePrice" binding:"required,gte=0"`
	EstimatedDuration *types.Int   `json:"estimatedDuration" binding:"required,gt=0"`
	IsActive          *bool        `json:"isActive"`
}

func (r *CreateServiceRequest) ToService() *Service {
	s := &Service{
		Name:              r.Name,
		Description:       r.Description,
		BasePrice:         *r.BasePrice,
		EstimatedDuration: *r.EstimatedDuration,
		IsActive:          true,
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

type UpdateServiceRequest struct {
	Name              *string      `json:"name" binding:"omitnil,min=1,max=255"`
	Description       *string      `json:"description"`
	BasePrice         *types.Money `json:"basePrice" binding:"omitnil,gte=0"`
	EstimatedDuration *types.Int   `json:"estimatedDuration" binding:"omitnil,gt=0"`
	IsActive          *bool        `json:"isActive"`
}

type ServiceListFilters struct {
	Active bool `form:"active"`
}
