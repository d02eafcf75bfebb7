package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"inventory/internal/access"
	"inventory/internal/config"
	"inventory/internal/events"
	"inventory/internal/models"
	"inventory/internal/report"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/storage"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pngHeader = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

var (
	adminActor = access.Actor{UserID: "admin-1", Username: "admin", Role: models.RoleAdmin}
	userActor  = access.Actor{UserID: "user-1", Username: "alice", Role: models.RoleUser}
	ctx        = context.Background()
)

type productFixture struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	publisher  *MockPublisher
	images     *MockImageStore
	stats      *MockStatsCache
	service    *services.ProductService
}

func newProductFixture(mode string) *productFixture {
	f := &productFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		publisher:  new(MockPublisher),
		images:     new(MockImageStore),
		stats:      new(MockStatsCache),
	}
	f.service = services.NewProductService(services.ProductDeps{
		Products:   f.products,
		Categories: f.categories,
		Policy:     access.NewPolicy(mode),
		Reports: report.NewGenerator(report.Options{
			CurrencyPrefix: "Rs.",
			Location:       time.UTC,
			Now:            func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) },
		}),
		Images: f.images,
		Events: f.publisher,
		Stats:  f.stats,
	})
	return f
}

func (f *productFixture) expectWrite(eventType events.Type) {
	f.stats.On("Invalidate", mock.Anything).Return().Once()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == eventType
	})).Return(nil).Once()
}

func (f *productFixture) assertExpectations(t *testing.T) {
	f.products.AssertExpectations(t)
	f.categories.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.images.AssertExpectations(t)
	f.stats.AssertExpectations(t)
}

func validInput() services.ProductInput {
	return services.ProductInput{
		Name:          "Nike Shoes",
		Description:   "Running shoes",
		Price:         decimal.RequireFromString("129.99"),
		StockQuantity: 15,
		Rating:        decimal.RequireFromString("4.5"),
	}
}

func TestProductService_CreateDerivesStatusAndOwner(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)

	f.products.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Status == models.StatusInStock && p.CreatedBy == adminActor.UserID && p.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 1
	}).Return(nil).Once()
	f.products.On("GetByID", ctx, uint(1)).Return(&models.Product{ID: 1, Name: "Nike Shoes", Status: models.StatusInStock}, nil).Once()
	f.expectWrite(events.ProductCreated)

	product, err := f.service.Create(ctx, adminActor, validInput())
	require.NoError(t, err)
	assert.EqualValues(t, 1, product.ID)
	f.assertExpectations(t)
}

func TestProductService_CreateRequiresAdminInGlobalMode(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)

	_, err := f.service.Create(ctx, userActor, validInput())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
	f.assertExpectations(t)
}

func TestProductService_CreateValidation(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	categoryID := uint(99)
	f.categories.On("GetByID", ctx, categoryID).Return(nil, fmt.Errorf("category: %w", repositories.ErrNotFound)).Once()

	in := services.ProductInput{
		Name:          strings.Repeat("x", 201),
		Price:         decimal.NewFromInt(-1),
		StockQuantity: -2,
		Rating:        decimal.RequireFromString("5.5"),
		CategoryID:    &categoryID,
	}
	_, err := f.service.Create(ctx, adminActor, in)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	details := pkgerrors.As(err).Details()
	for _, field := range []string{"name", "price", "stock_quantity", "rating", "category"} {
		assert.Contains(t, details, field)
	}
	f.assertExpectations(t)
}

func TestProductService_CreateRejectsExcessPrecision(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		rating  string
		field   string
		message string
	}{
		{"price too many digits", "123456789012.34", "4", "price", "Ensure that there are no more than 10 digits in total."},
		{"price too many places", "0.005", "4", "price", "Ensure that there are no more than 2 decimal places."},
		{"price places with rounding", "9.999", "4", "price", "Ensure that there are no more than 2 decimal places."},
		{"price whole digits", "123456789.5", "4", "price", "Ensure that there are no more than 8 digits before the decimal point."},
		{"rating places", "10", "4.96", "rating", "Ensure that there are no more than 1 decimal places."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProductFixture(config.AccessGlobal)
			in := validInput()
			in.Price = decimal.RequireFromString(tt.price)
			in.Rating = decimal.RequireFromString(tt.rating)

			_, err := f.service.Create(ctx, adminActor, in)
			require.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
			assert.Equal(t, tt.message, pkgerrors.As(err).Details()[tt.field])
			f.assertExpectations(t)
		})
	}
}

func TestProductService_CreateKeepsExactValues(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	f.products.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Price.String() == "99999999.99" && p.Rating.String() == "4.5"
	})).Return(nil).Once()
	f.products.On("GetByID", ctx, mock.Anything).Return(&models.Product{ID: 1}, nil).Once()
	f.expectWrite(events.ProductCreated)

	in := validInput()
	in.Price = decimal.RequireFromString("99999999.99")
	in.Rating = decimal.RequireFromString("4.5")
	_, err := f.service.Create(ctx, adminActor, in)
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestProductService_UpdateRecomputesStatus(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	existing := &models.Product{ID: 3, Name: "Golf Balls", StockQuantity: 30, Status: models.StatusInStock, CreatedBy: "someone"}

	f.products.On("GetByID", ctx, uint(3)).Return(existing, nil).Once()
	f.products.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.StockQuantity == 0 && p.Status == models.StatusOutOfStock && p.CreatedBy == "someone"
	})).Return(nil).Once()
	f.products.On("GetByID", ctx, uint(3)).Return(existing, nil).Once()
	f.expectWrite(events.ProductUpdated)

	in := validInput()
	in.StockQuantity = 0
	product, err := f.service.Update(ctx, adminActor, 3, in)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutOfStock, product.Status)
	f.assertExpectations(t)
}

func TestProductService_UpdateMissing(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	f.products.On("GetByID", ctx, uint(8)).Return(nil, fmt.Errorf("product: %w", repositories.ErrNotFound)).Once()

	_, err := f.service.Update(ctx, adminActor, 8, validInput())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	f.assertExpectations(t)
}

func TestProductService_OwnerModeHidesOtherUsersProducts(t *testing.T) {
	f := newProductFixture(config.AccessOwner)
	foreign := &models.Product{ID: 4, CreatedBy: "user-2"}
	f.products.On("GetByID", ctx, uint(4)).Return(foreign, nil).Times(3)

	_, err := f.service.Get(ctx, userActor, 4)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	_, err = f.service.Update(ctx, userActor, 4, validInput())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.Is(f.service.Delete(ctx, userActor, 4), pkgerrors.CodeNotFound))
	f.assertExpectations(t)
}

func TestProductService_OwnerModeScopesReads(t *testing.T) {
	f := newProductFixture(config.AccessOwner)
	scoped := repositories.ProductFilter{OwnerID: userActor.UserID, Search: "nike"}
	f.products.On("List", ctx, scoped, 2, 10).Return([]models.Product{{ID: 1}}, pagination.Resolve(2, 10, 1), nil).Once()

	page, err := f.service.List(ctx, userActor, repositories.ProductFilter{Search: "nike"}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Page.Number)
	f.assertExpectations(t)
}

func TestProductService_DeleteRemovesImage(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	f.products.On("GetByID", ctx, uint(5)).Return(&models.Product{ID: 5, Name: "Tent", Image: "products/5/a.png"}, nil).Once()
	f.products.On("Delete", ctx, uint(5)).Return(nil).Once()
	f.images.On("Delete", ctx, "products/5/a.png").Return(errors.New("minio down")).Once()
	f.expectWrite(events.ProductDeleted)

	require.NoError(t, f.service.Delete(ctx, adminActor, 5))
	f.assertExpectations(t)
}

func TestProductService_PublishFailureDoesNotFailWrite(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	f.products.On("GetByID", ctx, uint(5)).Return(&models.Product{ID: 5}, nil).Once()
	f.products.On("Delete", ctx, uint(5)).Return(nil).Once()
	f.stats.On("Invalidate", mock.Anything).Return().Once()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	assert.NoError(t, f.service.Delete(ctx, adminActor, 5))
	f.assertExpectations(t)
}

func TestProductService_UploadImageReplacesPrevious(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	image := storage.Image{Filename: "shoe.bin", ContentType: "application/octet-stream", Size: int64(len(pngHeader)), Body: strings.NewReader(pngHeader)}
	f.products.On("GetByID", ctx, uint(6)).Return(&models.Product{ID: 6, Image: "products/6/old.png"}, nil).Twice()
	f.images.On("Upload", ctx, uint(6), mock.MatchedBy(func(img storage.Image) bool {
		return img.ContentType == "image/png"
	})).Return("products/6/new.png", nil).Once()
	f.products.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Image == "products/6/new.png"
	})).Return(nil).Once()
	f.images.On("Delete", ctx, "products/6/old.png").Return(nil).Once()
	f.expectWrite(events.ProductUpdated)

	_, err := f.service.UploadImage(ctx, adminActor, 6, image)
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestProductService_UploadImageRejectsNonImages(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	f.products.On("GetByID", ctx, uint(6)).Return(&models.Product{ID: 6}, nil).Once()

	image := storage.Image{Filename: "payload.exe", ContentType: "image/png", Size: 15, Body: strings.NewReader("MZ not an image")}
	_, err := f.service.UploadImage(ctx, adminActor, 6, image)

	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Contains(t, pkgerrors.As(err).Details()["image"], "Upload a valid image")
	f.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProductService_UploadImageDisabled(t *testing.T) {
	service := services.NewProductService(services.ProductDeps{Products: new(MockProductRepository)})
	_, err := service.UploadImage(ctx, adminActor, 1, storage.Image{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestProductService_StatsUsesCache(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	stats := &models.ProductStats{TotalProducts: 2, TotalValue: decimal.RequireFromString("164.98")}

	f.stats.On("Get", ctx, "").Return(nil, false).Once()
	f.products.On("Stats", ctx, "").Return(stats, nil).Once()
	f.stats.On("Set", ctx, "", stats).Return().Once()
	got, err := f.service.Stats(ctx, userActor)
	require.NoError(t, err)
	assert.Equal(t, stats, got)

	f.stats.On("Get", ctx, "").Return(stats, true).Once()
	got, err = f.service.Stats(ctx, userActor)
	require.NoError(t, err)
	assert.Equal(t, stats, got)
	f.assertExpectations(t)
}

func TestProductService_ExportAll(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	products := []models.Product{
		{ID: 1, Name: "Nike Shoes", Price: decimal.RequireFromString("129.99"), StockQuantity: 15, Status: models.StatusInStock},
		{ID: 2, Name: "Golf Balls", Price: decimal.RequireFromString("34.99"), StockQuantity: 3, Status: models.StatusLowStock},
	}
	f.products.On("ListAll", ctx, repositories.ProductFilter{Status: models.StatusInStock}).Return(products, nil).Once()

	doc, err := f.service.ExportAll(ctx, userActor, repositories.ProductFilter{Status: models.StatusInStock}, "")
	require.NoError(t, err)
	assert.Equal(t, "products_report_20240305_140709.pdf", doc.Filename)
	assert.True(t, strings.HasPrefix(string(doc.Content), "%PDF-"))
	f.assertExpectations(t)
}

func TestProductService_ExportOneRenderFailure(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	f.products.On("GetByID", ctx, uint(1)).Return(&models.Product{ID: 1, Name: "茶碗"}, nil).Once()

	_, err := f.service.ExportOne(ctx, userActor, 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal))
	assert.ErrorIs(t, err, report.ErrRender)
	f.assertExpectations(t)
}

func TestProductService_ExportOne(t *testing.T) {
	f := newProductFixture(config.AccessGlobal)
	f.products.On("GetByID", ctx, uint(7)).Return(&models.Product{ID: 7, Name: "Nike Air Max"}, nil).Once()

	doc, err := f.service.ExportOne(ctx, userActor, 7)
	require.NoError(t, err)
	assert.Equal(t, "product_7_Nike_Air_Max_20240305_140709.pdf", doc.Filename)
	f.assertExpectations(t)
}
