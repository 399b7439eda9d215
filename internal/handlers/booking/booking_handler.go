// internal/handlers/booking/booking_handler.go
package booking

import (
	"crm-service/internal/domain/booking"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/booking"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Booking not found"

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filters booking.BookingListFilters
	if err := request.BindQuery(c, &filters); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := request.BindJSON(c, &req, "Invalid booking data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req booking.UpdateBookingRequest
	if err := request.BindJSON(c, &req, "Invalid update data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.bookingService.UpdateBooking(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
