// internal/handlers/health/health_handler.go
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Check reports whether one dependency answers.
type Check func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthHandler(checks map[string]Check, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Health handles GET /api/health. Any failing dependency turns the answer into a 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			results[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
