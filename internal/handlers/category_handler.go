package handlers

import (
	"inventory/internal/logger"
	"inventory/internal/middleware"
	"inventory/internal/responses"
	"inventory/internal/services"
	"inventory/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryRequest is the body of category create and update requests.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	log      *logger.Logger
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log, validate: newValidator()}
}

// RegisterRoutes registers the category routes with the Fiber router.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Get("/all", h.HandleAll)
	categoryRoutes.Get("/:id", h.HandleGet)
	categoryRoutes.Post("/", h.HandleCreate)
	categoryRoutes.Put("/:id", h.HandleUpdate)
	categoryRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns one page of categories with their product counts.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(
		c.UserContext(),
		pagination.ParseNumber(c.Query("page")),
		c.QueryInt("page_size", pagination.DefaultPageSize),
	)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleAll returns every category, for selection lists.
func (h *CategoryHandler) HandleAll(c *fiber.Ctx) error {
	categories, err := h.service.All(c.UserContext())
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(categories)
}

// HandleGet returns a single category.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "category")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	category, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) parseBody(c *fiber.Ctx) (services.CategoryInput, error) {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return services.CategoryInput{}, err
	}
	if err := h.validate.Struct(req); err != nil {
		return services.CategoryInput{}, validationError(err)
	}
	return services.CategoryInput{Name: req.Name, Description: req.Description}, nil
}

// HandleCreate creates a category. Admin only.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	in, err := h.parseBody(c)
	if err != nil {
		return h.bodyError(c, err)
	}
	category, err := h.service.Create(c.UserContext(), middleware.Actor(c), in)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate renames or redescribes a category. Admin only.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "category")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	in, err := h.parseBody(c)
	if err != nil {
		return h.bodyError(c, err)
	}
	category, err := h.service.Update(c.UserContext(), middleware.Actor(c), id, in)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(category)
}

// HandleDelete removes a category and detaches its products. Admin only.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "category")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	if err := h.service.Delete(c.UserContext(), middleware.Actor(c), id); err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CategoryHandler) bodyError(c *fiber.Ctx, err error) error {
	if isTyped(err) {
		return responses.WriteError(c, h.log, err)
	}
	return responses.BadRequest(c, err)
}
