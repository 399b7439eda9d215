// internal/handlers/lead/lead_handler.go
package lead

import (
	"crm-service/internal/domain/lead"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/lead"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Lead not found"

type LeadHandler struct {
	leadService *service.LeadService
}

func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) ListLeads(c *gin.Context) {
	var filters lead.LeadListFilters
	if err := request.BindQuery(c, &filters); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.leadService.ListLeads(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *LeadHandler) GetLead(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.leadService.GetLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req lead.CreateLeadRequest
	if err := request.BindJSON(c, &req, "Invalid lead data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.leadService.CreateLead(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *LeadHandler) UpdateLead(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req lead.UpdateLeadRequest
	if err := request.BindJSON(c, &req, "Invalid update data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.leadService.UpdateLead(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ConvertLead handles POST /api/leads/:id/convert
func (h *LeadHandler) ConvertLead(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.leadService.ConvertLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
