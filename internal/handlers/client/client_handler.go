// internal/handlers/client/client_handler.go
package client

import (
	"crm-service/internal/domain/client"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/client"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Client not found"

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ListClients handles GET /api/clients?search=
func (h *ClientHandler) ListClients(c *gin.Context) {
	var filters client.ClientListFilters
	if err := request.BindQuery(c, &filters); err != nil {
		response.Error(c, err)
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, clients)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req client.CreateClientRequest
	if err := request.BindJSON(c, &req, "Invalid client data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.clientService.CreateClient(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req client.UpdateClientRequest
	if err := request.BindJSON(c, &req, "Invalid update data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.clientService.UpdateClient(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
