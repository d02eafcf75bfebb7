package services

import (
	"context"

	"inventory/internal/access"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/pkg/pagination"
)

// Dashboard is the landing view: statistics plus the newest products and
// the categories, each paginated separately.
type Dashboard struct {
	Stats      *models.ProductStats `json:"stats"`
	Products   *ProductPage         `json:"products"`
	Categories *CategoryPage        `json:"categories"`
}

// DashboardService composes product and category reads.
type DashboardService struct {
	products   *ProductService
	categories *CategoryService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(products *ProductService, categories *CategoryService) *DashboardService {
	return &DashboardService{products: products, categories: categories}
}

// Get assembles the dashboard for actor.
func (s *DashboardService) Get(ctx context.Context, actor access.Actor, productsPage, categoriesPage int) (*Dashboard, error) {
	stats, err := s.products.Stats(ctx, actor)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx, actor, repositories.ProductFilter{}, productsPage, pagination.DashboardPageSize)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx, categoriesPage, pagination.DashboardPageSize)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: stats, Products: products, Categories: categories}, nil
}
