// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// DBInfo handles GET /api/debug/db-info
func (h *DashboardHandler) DBInfo(c *gin.Context) {
	info, err := h.dashboardService.DBInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}
