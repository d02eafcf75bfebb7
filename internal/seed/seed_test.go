package seed_test

import (
	"context"
	"errors"
	"testing"

	"inventory/internal/logger"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/seed"
	"inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_SampleIsIdempotent(t *testing.T) {
	db := testutil.NewSQLite(t)
	s := seed.NewSeeder(db, logger.Nop())
	ctx := context.Background()

	first, err := s.Sample(ctx)
	require.NoError(t, err)
	assert.True(t, first.UserCreated)
	assert.Equal(t, 8, first.CategoriesCreated)
	assert.Equal(t, 40, first.ProductsCreated)
	assert.EqualValues(t, 40, first.TotalProducts)

	second, err := s.Sample(ctx)
	require.NoError(t, err)
	assert.False(t, second.UserCreated)
	assert.Zero(t, second.CategoriesCreated)
	assert.Zero(t, second.ProductsCreated)
	assert.EqualValues(t, 40, second.TotalProducts)

	var products []models.Product
	require.NoError(t, db.Find(&products).Error)
	for _, p := range products {
		assert.Equal(t, models.DeriveStatus(p.StockQuantity), p.Status, p.Name)
		assert.NotNil(t, p.CategoryID, p.Name)
	}
}

func TestSeeder_SampleUserCanLogIn(t *testing.T) {
	db := testutil.NewSQLite(t)
	_, err := seed.NewSeeder(db, logger.Nop()).Sample(context.Background())
	require.NoError(t, err)

	user, err := repositories.NewGORMUserRepository(db).GetByUsername(context.Background(), seed.SampleUsername)
	require.NoError(t, err)
	assert.Equal(t, seed.SampleEmail, user.Email)
	assert.NotEqual(t, seed.SamplePassword, user.Password)
}

func TestSeeder_UserProducts(t *testing.T) {
	db := testutil.NewSQLite(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	require.NoError(t, users.Create(ctx, &models.User{Username: "asdf", Email: "asdf@example.com", Password: "x"}))

	s := seed.NewSeeder(db, logger.Nop())
	res, err := s.UserProducts(ctx, "asdf")
	require.NoError(t, err)
	assert.Equal(t, 5, res.CategoriesCreated)
	assert.Equal(t, 40, res.ProductsCreated)

	// The sample set reuses the five shared categories.
	sample, err := s.Sample(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sample.CategoriesCreated)
	assert.EqualValues(t, 40, sample.TotalProducts)
}

func TestSeeder_UserProductsUnknownUser(t *testing.T) {
	db := testutil.NewSQLite(t)
	_, err := seed.NewSeeder(db, logger.Nop()).UserProducts(context.Background(), "nobody")
	assert.True(t, errors.Is(err, seed.ErrUserNotFound))
}
