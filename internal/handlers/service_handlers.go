package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"servicefinder/internal/models"
	"servicefinder/internal/repositories"
	"servicefinder/internal/services"
)

// ServiceHandlers handles catalog HTTP requests.
type ServiceHandlers struct {
	catalogSvc services.CatalogService
}

func NewServiceHandlers(catalogSvc services.CatalogService) *ServiceHandlers {
	return &ServiceHandlers{catalogSvc: catalogSvc}
}

// ListServicesRequest represents query parameters for listing services.
type ListServicesRequest struct {
	Category  *string `query:"category"`
	Available *bool   `query:"available"`
}

// ListServices returns catalog entries, optionally filtered by category and
// availability.
func (h *ServiceHandlers) ListServices(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListServicesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	list, err := h.catalogSvc.List(ctx, repositories.ServiceFilter{
		Category:  req.Category,
		Available: req.Available,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list services")
	}

	if list == nil {
		list = []*models.Service{}
	}
	return c.JSON(http.StatusOK, list)
}

// CreateService adds a new catalog entry.
func (h *ServiceHandlers) CreateService(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	service, err := h.catalogSvc.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidService) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Printf("Failed to create service %s: %v", req.Name, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create service")
	}

	return c.JSON(http.StatusOK, service)
}

// ListCategories returns the fixed category enumeration.
func (h *ServiceHandlers) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalogSvc.Categories())
}
