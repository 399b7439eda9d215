// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"crm-service/internal/domain/catalog"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Service not found"

// CatalogHandler serves the offered-services catalog under /api/services.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListServices handles GET /api/services?active=true
func (h *CatalogHandler) ListServices(c *gin.Context) {
	var filters catalog.ServiceListFilters
	if err := request.BindQuery(c, &filters); err != nil {
		response.Error(c, err)
		return
	}

	services, err := h.catalogService.ListServices(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, services)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, svc)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req catalog.CreateServiceRequest
	if err := request.BindJSON(c, &req, "Invalid service data"); err != nil {
		response.Error(c, err)
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req catalog.UpdateServiceRequest
	if err := request.BindJSON(c, &req, "Invalid update data"); err != nil {
		response.Error(c, err)
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
