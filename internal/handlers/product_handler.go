package handlers

import (
	"inventory/internal/logger"
	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/responses"
	"inventory/internal/services"
	"inventory/internal/storage"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const listReportTitle = "Products Report"

// ProductRequest is the body of product create and update requests. Any
// status sent by the client is ignored; it is derived from stock_quantity.
type ProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Category      *uint            `json:"category"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	Rating        *decimal.Decimal `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsActive      *bool            `json:"is_active"`
	Status        string           `json:"status"`
}

func (r ProductRequest) input() services.ProductInput {
	in := services.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.Category,
		IsActive:    r.IsActive,
		Rating:      decimal.Zero,
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.StockQuantity != nil {
		in.StockQuantity = *r.StockQuantity
	}
	if r.Rating != nil {
		in.Rating = *r.Rating
	}
	return in
}

// ProductResponse is a product with display fields resolved. Price and
// rating are rendered with the fixed scale of their columns.
type ProductResponse struct {
	models.Product
	Price         string  `json:"price"`
	Rating        string  `json:"rating"`
	CategoryName  *string `json:"category_name"`
	CreatedByName string  `json:"created_by_name"`
	StatusDisplay string  `json:"status_display"`
}

func newProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		Product:       *p,
		Price:         p.Price.StringFixed(2),
		Rating:        p.Rating.StringFixed(1),
		CreatedByName: p.CreatorName(),
		StatusDisplay: p.Status.Label(),
	}
	if p.Category != nil {
		name := p.Category.Name
		resp.CategoryName = &name
	}
	return resp
}

// ProductListResponse is one page of products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  pagination.Page   `json:"page"`
}

func newProductListResponse(page *services.ProductPage) ProductListResponse {
	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, newProductResponse(&page.Items[i]))
	}
	return ProductListResponse{Items: items, Page: page.Page}
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	log      *logger.Logger
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		log:      log,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/stats", h.HandleStats)
	productRoutes.Get("/export/all", h.HandleExportAll)
	productRoutes.Get("/export/:id", h.HandleExportOne)
	productRoutes.Get("/:id", h.HandleGet)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
	productRoutes.Post("/:id/image", h.HandleUploadImage)
}

func filterFromQuery(c *fiber.Ctx) repositories.ProductFilter {
	return repositories.NewProductFilter(c.Query("search"), c.Query("category"), c.Query("status"))
}

// HandleList returns one page of filtered products, newest first.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(
		c.UserContext(),
		middleware.Actor(c),
		filterFromQuery(c),
		pagination.ParseNumber(c.Query("page")),
		c.QueryInt("page_size", pagination.DefaultPageSize),
	)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(newProductListResponse(page))
}

// HandleGet returns a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "product")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	product, err := h.service.Get(c.UserContext(), middleware.Actor(c), id)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleStats returns aggregate product statistics.
func (h *ProductHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(stats)
}

func (h *ProductHandler) parseBody(c *fiber.Ctx) (services.ProductInput, error) {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ProductInput{}, pkgerrors.Field("body", "Invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return services.ProductInput{}, validationError(err)
	}
	return req.input(), nil
}

// HandleCreate creates a product owned by the caller.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	in, err := h.parseBody(c)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	product, err := h.service.Create(c.UserContext(), middleware.Actor(c), in)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProductResponse(product))
}

// HandleUpdate replaces a product's writable fields.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "product")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	in, err := h.parseBody(c)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	product, err := h.service.Update(c.UserContext(), middleware.Actor(c), id, in)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "product")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	if err := h.service.Delete(c.UserContext(), middleware.Actor(c), id); err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImage stores the multipart "image" file for a product.
func (h *ProductHandler) HandleUploadImage(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "product")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	header, err := c.FormFile("image")
	if err != nil {
		return responses.WriteError(c, h.log, pkgerrors.Field("image", "No file was submitted."))
	}
	file, err := header.Open()
	if err != nil {
		return responses.WriteError(c, h.log, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to read upload"))
	}
	defer file.Close()

	product, err := h.service.UploadImage(c.UserContext(), middleware.Actor(c), id, storage.Image{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleExportAll downloads a PDF report of every product matching the filters.
func (h *ProductHandler) HandleExportAll(c *fiber.Ctx) error {
	doc, err := h.service.ExportAll(c.UserContext(), middleware.Actor(c), filterFromQuery(c), listReportTitle)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return sendDocument(c, doc)
}

// HandleExportOne downloads a PDF report of one product.
func (h *ProductHandler) HandleExportOne(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "product")
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	doc, err := h.service.ExportOne(c.UserContext(), middleware.Actor(c), id)
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return sendDocument(c, doc)
}

func sendDocument(c *fiber.Ctx, doc *services.Document) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Send(doc.Content)
}
