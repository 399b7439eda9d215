// internal/handlers/followup/followup_handler.go
package followup

import (
	"crm-service/internal/domain/followup"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/followup"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Follow-up not found"

type FollowUpHandler struct {
	followUpService *service.FollowUpService
}

func NewFollowUpHandler(followUpService *service.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{followUpService: followUpService}
}

// ListFollowUps handles GET /api/follow-ups?pending=true|status=|clientId=|assignedTo=
func (h *FollowUpHandler) ListFollowUps(c *gin.Context) {
	var filters followup.FollowUpListFilters
	if err := request.BindQuery(c, &filters); err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.followUpService.ListFollowUps(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *FollowUpHandler) GetFollowUp(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	f, err := h.followUpService.GetFollowUp(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, f)
}

func (h *FollowUpHandler) CreateFollowUp(c *gin.Context) {
	var req followup.CreateFollowUpRequest
	if err := request.BindJSON(c, &req, "Invalid follow-up data"); err != nil {
		response.Error(c, err)
		return
	}

	f, err := h.followUpService.CreateFollowUp(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, f)
}

func (h *FollowUpHandler) UpdateFollowUp(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req followup.UpdateFollowUpRequest
	if err := request.BindJSON(c, &req, "Invalid update data"); err != nil {
		response.Error(c, err)
		return
	}

	f, err := h.followUpService.UpdateFollowUp(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, f)
}

func (h *FollowUpHandler) DeleteFollowUp(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.followUpService.DeleteFollowUp(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
