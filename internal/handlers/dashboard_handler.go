package handlers

import (
	"inventory/internal/logger"
	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/responses"
	"inventory/internal/services"
	"inventory/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// DashboardResponse is the landing view returned by GET /dashboard.
type DashboardResponse struct {
	Stats      *models.ProductStats   `json:"stats"`
	Products   ProductListResponse    `json:"products"`
	Categories *services.CategoryPage `json:"categories"`
}

// DashboardHandler serves the dashboard.
type DashboardHandler struct {
	service *services.DashboardService
	log     *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// RegisterRoutes registers the dashboard route with the Fiber router.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
}

// HandleDashboard returns statistics, recent products and categories. The
// product and category lists page independently.
func (h *DashboardHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Get(
		c.UserContext(),
		middleware.Actor(c),
		pagination.ParseNumber(c.Query("products_page")),
		pagination.ParseNumber(c.Query("categories_page")),
	)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(DashboardResponse{
		Stats:      dashboard.Stats,
		Products:   newProductListResponse(dashboard.Products),
		Categories: dashboard.Categories,
	})
}
