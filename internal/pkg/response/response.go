// internal/pkg/response/response.go
package response

import (
	"math"
	"net/http"
	"strconv"

	xerrors "crm-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire shape of every failed request.
type ErrorBody struct {
	Error   string               `json:"error"`
	Details []xerrors.FieldError `json:"details,omitempty"`
}

// MessageBody carries a plain confirmation message.
type MessageBody struct {
	Message string `json:"message"`
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind xerrors.Kind) int {
	switch kind {
	case xerrors.KindValidation:
		return http.StatusBadRequest
	case xerrors.KindUnauthorized:
		return http.StatusUnauthorized
	case xerrors.KindNotFound:
		return http.StatusNotFound
	case xerrors.KindRateLimited:
		return http.StatusTooManyRequests
	case xerrors.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// OK sends a 200 response with data as the body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with data as the body.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Message sends {"message": msg} with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageBody{Message: msg})
}

// Error sends a standardized error response. Internal failures are recorded on
// the context for the logging middleware and never leak to the client.
func Error(c *gin.Context, err error) {
	// CRITICAL: Abort FIRST before writing response
	c.Abort()

	appErr, ok := xerrors.As(err)
	if !ok {
		appErr = &xerrors.Error{Kind: xerrors.KindOf(err), Err: err}
	}

	status := StatusFor(appErr.Kind)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	if appErr.RetryAfter > 0 {
		secs := int(math.Ceil(appErr.RetryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(secs))
	}

	body := ErrorBody{Error: appErr.Message, Details: appErr.Details}
	if appErr.Kind == xerrors.KindInternal || body.Error == "" {
		body = ErrorBody{Error: defaultMessage(status)}
	}

	c.JSON(status, body)
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Not found"
	case http.StatusUnauthorized:
		return "Not authenticated"
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusTooManyRequests:
		return "Too many requests, please try again later."
	case http.StatusServiceUnavailable:
		return "Service temporarily unavailable"
	default:
		return "Internal server error"
	}
}
