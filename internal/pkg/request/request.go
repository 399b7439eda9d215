package request

import (
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/validate"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BindJSON decodes and validates the request body into dst. Failures come back
// as validation errors headed by message.
func BindJSON(c *gin.Context, dst interface{}, message string) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return validate.Translate(err, message)
	}
	return nil
}

// BindQuery decodes and validates query parameters into dst.
func BindQuery(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return validate.Translate(err, "Invalid query parameters")
	}
	return nil
}

// ID returns the named path parameter when it is a well-formed UUID. Anything
// else cannot identify a stored record, so it is reported as notFound.
func ID(c *gin.Context, name, notFound string) (string, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", xerrors.NotFound(notFound)
	}
	return id.String(), nil
}
