package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/pricing"
	"github.com/avdeenko/aromashop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
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
	return repo.New(gdb)
}

// seedCatalog creates a user, category, product and variant.
func seedCatalog(t *testing.T, r *repo.GormRepo, sku string, price int64, discount, stock int) (*models.Product, *models.ProductVariant) {
	t.Helper()
	ctx := context.Background()

	cat := models.Category{Name: "Protein", Slug: "protein-" + sku, IsActive: true}
	require.NoError(t, r.CreateCategory(ctx, &cat))

	p := models.Product{CategoryID: cat.ID, Name: "Whey Isolate", Slug: "whey-" + sku, IsActive: true}
	require.NoError(t, r.CreateProduct(ctx, &p))

	v := models.ProductVariant{
		ProductID:       p.ID,
		Name:            "Chocolate 900g",
		SKU:             sku,
		Price:           price,
		DiscountPercent: discount,
		StockCount:      stock,
		IsActive:        true,
		Aroma:           "chocolate",
		SizeGrams:       900,
		Servings:        30,
	}
	require.NoError(t, r.CreateVariant(ctx, &v))
	return &p, &v
}

func seedUser(t *testing.T, r *repo.GormRepo, username string) uint {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, r.DB.Create(&user).Error)
	return user.ID
}

func seedAddress(t *testing.T, r *repo.GormRepo, userID uint) *models.UserAddress {
	t.Helper()
	addr := &models.UserAddress{
		UserID:    userID,
		Recipient: "Ivan Petrov",
		Phone:     "+371 20000000",
		City:      "Riga",
		Street:    "Brivibas iela",
		Building:  "1",
	}
	require.NoError(t, r.CreateAddress(context.Background(), addr))
	return addr
}

func addToCart(t *testing.T, r *repo.GormRepo, userID, variantID uint, quantity int) {
	t.Helper()
	ctx := context.Background()
	cart, err := r.GetOrCreateCart(ctx, userID)
	require.NoError(t, err)
	_, err = r.AddCartItem(ctx, cart.ID, variantID, quantity)
	require.NoError(t, err)
}

func newCheckout(r *repo.GormRepo) *CheckoutService {
	return &CheckoutService{
		Repo:     r,
		Shipping: &MethodTableResolver{Repo: r, Fallback: pricing.ThresholdShipping{FreeOver: 500000, Fee: 30000}},
		Tax:      pricing.ZeroTax{},
	}
}
