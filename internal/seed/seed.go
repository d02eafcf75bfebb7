// Package seed loads demonstration data into the catalog.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"inventory/internal/logger"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SampleUsername = "testuser"
	SampleEmail    = "test@example.com"
	SamplePassword = "testpass123"

	maxSeedStock = 100
)

// ErrUserNotFound is returned when products are seeded for an unknown user.
var ErrUserNotFound = errors.New("user not found")

// Result summarizes one seeding run.
type Result struct {
	UserCreated       bool
	CategoriesCreated int
	ProductsCreated   int
	// TotalProducts is the number of products owned by the seeded user afterwards.
	TotalProducts int64
}

// Seeder creates sample users, categories and products. Every step is
// idempotent: existing rows are reused, never duplicated.
type Seeder struct {
	db    *gorm.DB
	users repositories.UserRepository
	auth  *services.AuthService
	log   *logger.Logger
	stock func() int
}

// NewSeeder returns a Seeder writing through db.
func NewSeeder(db *gorm.DB, log *logger.Logger) *Seeder {
	users := repositories.NewGORMUserRepository(db)
	return &Seeder{
		db:    db,
		users: users,
		auth:  services.NewAuthService(users, "", 0),
		log:   log,
		stock: func() int { return rand.IntN(maxSeedStock + 1) },
	}
}

// Sample creates the test user, the full category set and their products.
func (s *Seeder) Sample(ctx context.Context) (Result, error) {
	var res Result

	user, err := s.users.GetByUsername(ctx, SampleUsername)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.auth.RegisterUser(ctx, services.RegisterInput{
			Username: SampleUsername,
			Email:    SampleEmail,
			Password: SamplePassword,
		})
		if err != nil {
			return res, fmt.Errorf("failed to create %s: %w", SampleUsername, err)
		}
		res.UserCreated = true
		s.log.Info(ctx, "created test user "+SampleUsername)
	case err != nil:
		return res, err
	default:
		s.log.Info(ctx, "using existing test user "+SampleUsername)
	}

	return s.load(ctx, user, sampleCategories, sampleProducts, res)
}

// UserProducts adds the per-user product set for an existing account.
func (s *Seeder) UserProducts(ctx context.Context, username string) (Result, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return Result{}, fmt.Errorf("user %q: %w", username, ErrUserNotFound)
	}
	if err != nil {
		return Result{}, err
	}
	return s.load(ctx, user, userCategories, userProducts, Result{})
}

func (s *Seeder) load(ctx context.Context, user *models.User, cats []categorySeed, products []productSeed, res Result) (Result, error) {
	categories := make([]models.Category, len(cats))
	for i, c := range cats {
		tx := s.db.WithContext(ctx).
			Where(models.Category{Name: c.Name}).
			Attrs(models.Category{Description: c.Description}).
			FirstOrCreate(&categories[i])
		if tx.Error != nil {
			return res, fmt.Errorf("failed to seed category %s: %w", c.Name, tx.Error)
		}
		if tx.RowsAffected > 0 {
			res.CategoriesCreated++
			s.log.Debug(s.log.WithField(ctx, "category", c.Name), "created category")
		}
	}

	for _, p := range products {
		categoryID := categories[p.Category].ID
		product := models.Product{}
		tx := s.db.WithContext(ctx).
			Where(models.Product{Name: p.Name, CreatedBy: user.ID}).
			Attrs(models.Product{
				Description:   p.Description,
				Price:         decimal.RequireFromString(p.Price),
				CategoryID:    &categoryID,
				StockQuantity: s.stock(),
				IsActive:      true,
			}).
			FirstOrCreate(&product)
		if tx.Error != nil {
			return res, fmt.Errorf("failed to seed product %s: %w", p.Name, tx.Error)
		}
		if tx.RowsAffected > 0 {
			res.ProductsCreated++
			s.log.Debug(s.log.WithField(ctx, "product", p.Name), "created product")
		}
	}

	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("created_by = ?", user.ID).Count(&res.TotalProducts).Error; err != nil {
		return res, fmt.Errorf("failed to count products: %w", err)
	}
	return res, nil
}
