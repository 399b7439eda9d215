package client

type CreateClientRequest struct {
	Name           string   `json:"name" binding:"required,max=255"`
	Email          string   `json:"email" binding:"required,max=255"`
	Phone          string   `json:"phone" binding:"required,max=50"`
	AlternatePhone *string  `json:"alternatePhone" binding:"omitempty,max=50"`
	Address        string   `json:"address" binding:"required"`
	City           *string  `json:"city" binding:"omitempty,max=100"`
	State          *string  `json:"state" binding:"omitempty,max=100"`
	ZipCode        *string  `json:"zipCode" binding:"omitempty,max=20"`
	Source         *string  `json:"source" binding:"omitempty,max=100"`
	Tags           []string `json:"tags"`
	Status         string   `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes          string   `json:"notes"`
}

// ToClient applies defaults and returns the record to insert.
func (r *CreateClientRequest) ToClient() *Client {
	c := &Client{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		AlternatePhone: r.AlternatePhone,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		Source:         r.Source,
		Tags:           r.Tags,
		Status:         r.Status,
		Notes:          r.Notes,
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	return c
}

type UpdateClientRequest struct {
	Name           *string   `json:"name" binding:"omitnil,min=1,max=255"`
	Email          *string   `json:"email" binding:"omitnil,min=1,max=255"`
	Phone          *string   `json:"phone" binding:"omitnil,min=1,max=50"`
	AlternatePhone *string   `json:"alternatePhone" binding:"omitempty,max=50"`
	Address        *string   `json:"address" binding:"omitnil,min=1"`
	City           *string   `json:"city" binding:"omitempty,max=100"`
	State          *string   `json:"state" binding:"omitempty,max=100"`
	ZipCode        *string   `json:"zipCode" binding:"omitempty,max=20"`
	Source         *string   `json:"source" binding:"omitempty,max=100"`
	Tags           *[]string `json:"tags"`
	Status         *string   `json:"status" binding:"omitnil,oneof=active inactive"`
	Notes          *string   `json:"notes"`
}

type ClientListFilters struct {
	Search string `form:"search"` // name, email or phone
}
