package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"inventory/internal/access"
	"inventory/internal/cache"
	"inventory/internal/events"
	"inventory/internal/logger"
	"inventory/internal/metrics"
	"inventory/internal/models"
	"inventory/internal/report"
	"inventory/internal/repositories"
	"inventory/internal/storage"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/pagination"

	"github.com/shopspring/decimal"
)

const (
	maxProductName = 200
	maxRating      = 5

	// Column precision of products.price and products.rating.
	priceDigits  = 10
	pricePlaces  = 2
	ratingDigits = 3
	ratingPlaces = 1

	invalidImageMessage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	CategoryID    *uint
	StockQuantity int
	Rating        decimal.Decimal
	IsActive      *bool
}

// ProductPage is one page of products.
type ProductPage struct {
	Items []models.Product `json:"items"`
	Page  pagination.Page  `json:"page"`
}

// Document is a rendered report ready for download.
type Document struct {
	Filename string
	Content  []byte
}

// ProductDeps wires the collaborators of ProductService. Only the
// repositories are required.
type ProductDeps struct {
	Products   repositories.ProductRepository
	Categories repositories.CategoryRepository
	Policy     access.Policy
	Reports    *report.Generator
	Images     storage.ImageStore
	Events     events.Publisher
	Stats      cache.StatsCache
	Metrics    *metrics.CatalogMetrics
	Logger     *logger.Logger
}

// ProductService handles business logic related to products.
type ProductService struct {
	notifier
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	policy       access.Policy
	reports      *report.Generator
	images       storage.ImageStore
}

// NewProductService creates a new ProductService.
func NewProductService(deps ProductDeps) *ProductService {
	s := &ProductService{
		notifier:     newNotifier(deps.Events, deps.Stats, deps.Metrics, deps.Logger),
		productRepo:  deps.Products,
		categoryRepo: deps.Categories,
		policy:       deps.Policy,
		reports:      deps.Reports,
		images:       deps.Images,
	}
	if s.policy.Mode == "" {
		s.policy = access.NewPolicy("")
	}
	if s.reports == nil {
		s.reports = report.NewGenerator(report.Options{})
	}
	return s
}

// List returns one page of products visible to actor.
func (s *ProductService) List(ctx context.Context, actor access.Actor, filter repositories.ProductFilter, page, size int) (*ProductPage, error) {
	filter = filter.ScopedTo(s.policy.ReadScope(actor))
	items, p, err := s.productRepo.List(ctx, filter, page, size)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list products")
	}
	return &ProductPage{Items: items, Page: p}, nil
}

// Get returns a single product visible to actor.
func (s *ProductService) Get(ctx context.Context, actor access.Actor, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "product with ID %d not found", id)
	}
	if err := s.policy.AuthorizeProductRead(actor, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Create validates input and stores a new product owned by actor.
func (s *ProductService) Create(ctx context.Context, actor access.Actor, in ProductInput) (*models.Product, error) {
	if err := s.policy.RequireProductWriter(actor); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	product := &models.Product{CreatedBy: actor.UserID, IsActive: true}
	apply(product, in)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create product")
	}

	s.written(ctx, events.New(events.ProductCreated, product.ID, product.Name, actor.UserID))
	return s.reload(ctx, product)
}

// Update replaces the writable fields of an existing product.
func (s *ProductService) Update(ctx context.Context, actor access.Actor, id uint, in ProductInput) (*models.Product, error) {
	product, err := s.writable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	apply(product, in)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, storeError(err, "product with ID %d not found", id)
	}

	s.written(ctx, events.New(events.ProductUpdated, product.ID, product.Name, actor.UserID))
	return s.reload(ctx, product)
}

// Delete removes a product and its stored image.
func (s *ProductService) Delete(ctx context.Context, actor access.Actor, id uint) error {
	product, err := s.writable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return storeError(err, "product with ID %d not found", id)
	}
	s.removeImage(ctx, product.Image)

	s.written(ctx, events.New(events.ProductDeleted, product.ID, product.Name, actor.UserID))
	return nil
}

// UploadImage stores a new product image and replaces the previous one.
func (s *ProductService) UploadImage(ctx context.Context, actor access.Actor, id uint, image storage.Image) (*models.Product, error) {
	if s.images == nil {
		return nil, pkgerrors.Field("image", "image uploads are not enabled")
	}
	product, err := s.writable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	image, err = storage.Sniff(image)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, pkgerrors.Field("image", invalidImageMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to read image")
	}

	key, err := s.images.Upload(ctx, product.ID, image)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store image")
	}
	previous := product.Image
	product.Image = key
	if err := s.productRepo.Update(ctx, product); err != nil {
		s.removeImage(ctx, key)
		return nil, storeError(err, "product with ID %d not found", id)
	}
	s.removeImage(ctx, previous)

	s.written(ctx, events.New(events.ProductUpdated, product.ID, product.Name, actor.UserID))
	return s.reload(ctx, product)
}

// Stats aggregates the products visible to actor.
func (s *ProductService) Stats(ctx context.Context, actor access.Actor) (*models.ProductStats, error) {
	scope := s.policy.ReadScope(actor)
	if stats, ok := s.stats.Get(ctx, scope); ok {
		return stats, nil
	}
	stats, err := s.productRepo.Stats(ctx, scope)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to compute product statistics")
	}
	s.stats.Set(ctx, scope, stats)
	return stats, nil
}

// ExportAll renders every product matching filter as a list report.
func (s *ProductService) ExportAll(ctx context.Context, actor access.Actor, filter repositories.ProductFilter, title string) (*Document, error) {
	filter = filter.ScopedTo(s.policy.ReadScope(actor))
	products, err := s.productRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list products")
	}

	started := time.Now()
	content, err := s.reports.ProductList(products, title)
	s.metrics.ObserveReport("list", time.Since(started), err)
	if err != nil {
		s.log.Error(ctx, "product list report failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to generate report")
	}
	return &Document{Filename: report.ListFilename(s.reports.Now()), Content: content}, nil
}

// ExportOne renders a single product as a detail report.
func (s *ProductService) ExportOne(ctx context.Context, actor access.Actor, id uint) (*Document, error) {
	product, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	content, err := s.reports.ProductDetail(product)
	s.metrics.ObserveReport("detail", time.Since(started), err)
	if err != nil {
		s.log.Error(ctx, "product detail report failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to generate report")
	}
	return &Document{Filename: report.DetailFilename(product, s.reports.Now()), Content: content}, nil
}

// writable loads a product after checking that actor may change it.
func (s *ProductService) writable(ctx context.Context, actor access.Actor, id uint) (*models.Product, error) {
	if err := s.policy.RequireProductWriter(actor); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "product with ID %d not found", id)
	}
	if err := s.policy.AuthorizeProductWrite(actor, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) validate(ctx context.Context, in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	errs := map[string]string{}
	switch {
	case in.Name == "":
		errs["name"] = "This field is required."
	case utf8.RuneCountInString(in.Name) > maxProductName:
		errs["name"] = "Ensure this field has no more than 200 characters."
	}
	if in.Price.IsNegative() {
		errs["price"] = "Ensure this value is greater than or equal to 0."
	} else if msg := precisionError(in.Price, priceDigits, pricePlaces); msg != "" {
		errs["price"] = msg
	}
	if in.StockQuantity < 0 {
		errs["stock_quantity"] = "Ensure this value is greater than or equal to 0."
	}
	if in.Rating.IsNegative() || in.Rating.GreaterThan(decimal.NewFromInt(maxRating)) {
		errs["rating"] = "Ensure this value is between 0 and 5."
	} else if msg := precisionError(in.Rating, ratingDigits, ratingPlaces); msg != "" {
		errs["rating"] = msg
	}
	if in.CategoryID != nil && s.categoryRepo != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up category")
			}
			errs["category"] = "Invalid category."
		}
	}
	if len(errs) > 0 {
		return pkgerrors.Validation(errs)
	}
	return nil
}

// precisionError reports why d does not fit a numeric(digits, places) column,
// counting digits the way they were written: "1.50" has two decimal places.
func precisionError(d decimal.Decimal, digits, places int) string {
	coefficient := len(new(big.Int).Abs(d.Coefficient()).String())
	exp := int(d.Exponent())

	var total, decimals int
	switch {
	case exp >= 0:
		total = coefficient + exp
	case coefficient > -exp:
		total, decimals = coefficient, -exp
	default:
		total, decimals = -exp, -exp
	}

	switch {
	case total > digits:
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", digits)
	case decimals > places:
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", places)
	case total-decimals > digits-places:
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", digits-places)
	}
	return ""
}

func apply(product *models.Product, in ProductInput) {
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.CategoryID = in.CategoryID
	product.Category = nil
	product.StockQuantity = in.StockQuantity
	product.Rating = in.Rating
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.Normalize()
}

// reload fetches the stored product with its relations; on failure the
// written value is returned as is.
func (s *ProductService) reload(ctx context.Context, product *models.Product) (*models.Product, error) {
	stored, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		s.log.Warn(ctx, "failed to reload product after write", err)
		return product, nil
	}
	return stored, nil
}

func (s *ProductService) removeImage(ctx context.Context, key string) {
	if key == "" || s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "failed to delete product image", err)
	}
}
