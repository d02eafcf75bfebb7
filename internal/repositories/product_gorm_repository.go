package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/models"
	"inventory/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Creator")
}

// List retrieves one page of products matching filter.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter, page, size int) ([]models.Product, pagination.Page, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(filter.Scope).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, fmt.Errorf("failed to count products: %w", err)
	}

	p := pagination.Resolve(page, size, total)
	products := make([]models.Product, 0, p.Size)
	if total > 0 {
		err := r.withRelations(ctx).
			Scopes(filter.Scope, newestFirst).
			Limit(p.Size).
			Offset(p.Offset()).
			Find(&products).Error
		if err != nil {
			return nil, pagination.Page{}, fmt.Errorf("failed to list products: %w", err)
		}
	}
	return products, p, nil
}

// ListAll retrieves every product matching filter.
func (r *GORMProductRepository) ListAll(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := r.withRelations(ctx).Scopes(filter.Scope, newestFirst).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its category and owner.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, "products.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a product. Status is derived by the model's BeforeSave hook.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit("Category", "Creator").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every column of an existing product except its identity and ownership.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.Normalize()
	res := r.db.WithContext(ctx).
		Model(product).
		Select("*").
		Omit("ID", "CreatedAt", "CreatedBy", "Category", "Creator").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product permanently.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

type statusAggregate struct {
	Status models.ProductStatus
	Count  int64
	Value  decimal.Decimal
}

// Stats counts products per status and sums their prices.
func (r *GORMProductRepository) Stats(ctx context.Context, ownerID string) (*models.ProductStats, error) {
	var rows []statusAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(ProductFilter{OwnerID: ownerID}.Scope).
		Select("products.status AS status, COUNT(*) AS count, COALESCE(SUM(products.price), 0) AS value").
		Group("products.status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate products: %w", err)
	}

	stats := &models.ProductStats{TotalValue: decimal.Zero}
	for _, row := range rows {
		stats.TotalProducts += row.Count
		stats.TotalValue = stats.TotalValue.Add(row.Value)
		switch row.Status {
		case models.StatusInStock:
			stats.InStock = row.Count
		case models.StatusLowStock:
			stats.LowStock = row.Count
		case models.StatusOutOfStock:
			stats.OutOfStock = row.Count
		}
	}
	stats.TotalValue = stats.TotalValue.Round(2)
	return stats, nil
}
