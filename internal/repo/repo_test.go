package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avdeenko/aromashop/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// One connection: every session must see the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductPhoto{},
		&models.Cart{},
		&models.CartItem{},
		&models.UserAddress{},
		&models.ShippingMethod{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	return gdb
}

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	return New(newTestDB(t))
}

// seedVariant creates a category, product and variant and returns the variant.
func seedVariant(t *testing.T, r *GormRepo, sku string, price int64, stock int) *models.ProductVariant {
	t.Helper()
	ctx := context.Background()

	cat := models.Category{Name: "Protein", Slug: "protein-" + sku, IsActive: true}
	require.NoError(t, r.CreateCategory(ctx, &cat))

	p := models.Product{CategoryID: cat.ID, Name: "Whey Isolate", Slug: "whey-" + sku, IsActive: true}
	require.NoError(t, r.CreateProduct(ctx, &p))

	v := models.ProductVariant{
		ProductID:  p.ID,
		Name:       "Vanilla 900g",
		SKU:        sku,
		Price:      price,
		StockCount: stock,
		IsActive:   true,
		Aroma:      "vanilla",
		SizeGrams:  900,
		Servings:   30,
	}
	require.NoError(t, r.CreateVariant(ctx, &v))
	return &v
}

func TestIsDuplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.False(t, IsDuplicate(nil))

	cat := models.Category{Name: "Protein", Slug: "protein"}
	require.NoError(t, r.CreateCategory(ctx, &cat))

	dup := models.Category{Name: "Protein again", Slug: "protein"}
	err := r.CreateCategory(ctx, &dup)
	require.Error(t, err)
	require.True(t, IsDuplicate(err))
}
