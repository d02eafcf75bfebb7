package repositories

import (
	"context"

	"inventory/internal/models"
	"inventory/pkg/pagination"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of filtered products, newest first.
	List(ctx context.Context, filter ProductFilter, page, size int) ([]models.Product, pagination.Page, error)
	// ListAll returns every filtered product, newest first.
	ListAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	// Stats aggregates products, optionally restricted to one owner.
	Stats(ctx context.Context, ownerID string) (*models.ProductStats, error)
}
