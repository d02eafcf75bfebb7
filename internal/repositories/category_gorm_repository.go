package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/models"
	"inventory/pkg/pagination"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// List retrieves one page of categories with the number of products in each.
func (r *GORMCategoryRepository) List(ctx context.Context, page, size int) ([]models.CategorySummary, pagination.Page, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, fmt.Errorf("failed to count categories: %w", err)
	}

	p := pagination.Resolve(page, size, total)
	summaries := make([]models.CategorySummary, 0, p.Size)
	if total > 0 {
		err := r.db.WithContext(ctx).
			Model(&models.Category{}).
			Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count").
			Order("categories.name ASC").
			Limit(p.Size).
			Offset(p.Offset()).
			Scan(&summaries).Error
		if err != nil {
			return nil, pagination.Page{}, fmt.Errorf("failed to list categories: %w", err)
		}
	}
	return summaries, p, nil
}

// All retrieves every category ordered by name.
func (r *GORMCategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

// GetByName retrieves a category by its exact name.
func (r *GORMCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category %q: %w", name, err)
	}
	return &category, nil
}

// Create inserts a category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update saves name and description of an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).
		Model(category).
		Select("Name", "Description", "UpdatedAt").
		Updates(category)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete detaches products from the category and removes it in one transaction.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach products from category %d: %w", id, err)
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
