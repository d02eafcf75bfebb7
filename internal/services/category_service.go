package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"inventory/internal/access"
	"inventory/internal/cache"
	"inventory/internal/events"
	"inventory/internal/logger"
	"inventory/internal/metrics"
	"inventory/internal/models"
	"inventory/internal/repositories"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/pagination"
)

const maxCategoryName = 100

const duplicateCategory = "category with this name already exists."

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryPage is one page of categories with product counts.
type CategoryPage struct {
	Items []models.CategorySummary `json:"items"`
	Page  pagination.Page          `json:"page"`
}

// CategoryDeps wires the collaborators of CategoryService.
type CategoryDeps struct {
	Categories repositories.CategoryRepository
	Policy     access.Policy
	Events     events.Publisher
	Stats      cache.StatsCache
	Metrics    *metrics.CatalogMetrics
	Logger     *logger.Logger
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	notifier
	categoryRepo repositories.CategoryRepository
	policy       access.Policy
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(deps CategoryDeps) *CategoryService {
	return &CategoryService{
		notifier:     newNotifier(deps.Events, deps.Stats, deps.Metrics, deps.Logger),
		categoryRepo: deps.Categories,
		policy:       deps.Policy,
	}
}

// List returns one page of categories ordered by name.
func (s *CategoryService) List(ctx context.Context, page, size int) (*CategoryPage, error) {
	items, p, err := s.categoryRepo.List(ctx, page, size)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list categories")
	}
	return &CategoryPage{Items: items, Page: p}, nil
}

// All returns every category ordered by name.
func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.All(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list categories")
	}
	return categories, nil
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "category with ID %d not found", id)
	}
	return category, nil
}

// Create stores a new category. Names must be unique.
func (s *CategoryService) Create(ctx context.Context, actor access.Actor, in CategoryInput) (*models.Category, error) {
	if err := s.policy.AuthorizeCategoryWrite(actor); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &in, 0); err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, categoryWriteError(err, 0)
	}

	s.written(ctx, events.New(events.CategoryCreated, category.ID, category.Name, actor.UserID))
	return category, nil
}

// Update renames or redescribes an existing category.
func (s *CategoryService) Update(ctx context.Context, actor access.Actor, id uint, in CategoryInput) (*models.Category, error) {
	if err := s.policy.AuthorizeCategoryWrite(actor); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "category with ID %d not found", id)
	}
	if err := s.validate(ctx, &in, id); err != nil {
		return nil, err
	}

	category.Name = in.Name
	category.Description = in.Description
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, categoryWriteError(err, id)
	}

	s.written(ctx, events.New(events.CategoryUpdated, category.ID, category.Name, actor.UserID))
	return category, nil
}

// Delete removes a category; its products stay, without a category.
func (s *CategoryService) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if err := s.policy.AuthorizeCategoryWrite(actor); err != nil {
		return err
	}
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return storeError(err, "category with ID %d not found", id)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return storeError(err, "category with ID %d not found", id)
	}

	s.written(ctx, events.New(events.CategoryDeleted, category.ID, category.Name, actor.UserID))
	return nil
}

// validate checks the input; self is the ID of the category being updated.
func (s *CategoryService) validate(ctx context.Context, in *CategoryInput, self uint) error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return pkgerrors.Field("name", "This field is required.")
	case utf8.RuneCountInString(in.Name) > maxCategoryName:
		return pkgerrors.Field("name", "Ensure this field has no more than 100 characters.")
	}

	existing, err := s.categoryRepo.GetByName(ctx, in.Name)
	switch {
	case err == nil && existing.ID != self:
		return pkgerrors.Field("name", duplicateCategory)
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up category")
	}
	return nil
}

func categoryWriteError(err error, id uint) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return pkgerrors.Field("name", duplicateCategory)
	}
	return storeError(err, "category with ID %d not found", id)
}
