package repositories

import (
	"context"

	"inventory/internal/models"
	"inventory/pkg/pagination"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	// List returns one page of categories ordered by name, with product counts.
	List(ctx context.Context, page, size int) ([]models.CategorySummary, pagination.Page, error)
	All(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	// Delete removes the category and detaches its products.
	Delete(ctx context.Context, id uint) error
}
