// internal/middleware/recovery_middleware.go
package middleware

import (
	"fmt"

	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", GetRequestID(c)),
					zap.Stack("stack"),
				)
				response.Error(c, xerrors.Internal(fmt.Errorf("panic: %v", err)))
			}
		}()
		c.Next()
	}
}
