// internal/handlers/message/message_handler.go
package message

import (
	"crm-service/internal/domain/message"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/message"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Message not found"

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListMessages handles GET /api/messages?clientId=
func (h *MessageHandler) ListMessages(c *gin.Context) {
	var filters message.MessageListFilters
	if err := request.BindQuery(c, &filters); err != nil {
		response.Error(c, err)
		return
	}

	messages, err := h.messageService.ListMessages(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, messages)
}

// Conversations handles GET /api/conversations
func (h *MessageHandler) Conversations(c *gin.Context) {
	convs, err := h.messageService.Conversations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, convs)
}

func (h *MessageHandler) GetMessage(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	m, err := h.messageService.GetMessage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req message.CreateMessageRequest
	if err := request.BindJSON(c, &req, "Invalid message data"); err != nil {
		response.Error(c, err)
		return
	}

	m, err := h.messageService.CreateMessage(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, m)
}

func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req message.UpdateMessageRequest
	if err := request.BindJSON(c, &req, "Invalid update data"); err != nil {
		response.Error(c, err)
		return
	}

	m, err := h.messageService.UpdateMessage(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

// MarkRead handles PATCH /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	m, err := h.messageService.MarkRead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.messageService.DeleteMessage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
