package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/pricing"
	"github.com/avdeenko/aromashop/internal/repo"
	"github.com/avdeenko/aromashop/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo

	Cart   *CartHandler
	Orders *OrderHandler
	Addr   *AddressHandler
}

func newTestEnv(t *testing.T) *testEnv {
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

	r := repo.New(gdb)
	checkout := &service.CheckoutService{
		Repo:     r,
		Shipping: &service.MethodTableResolver{Repo: r, Fallback: pricing.ThresholdShipping{FreeOver: 500000, Fee: 30000}},
		Tax:      pricing.ZeroTax{},
	}

	return &testEnv{
		T:      t,
		E:      echo.New(),
		Repo:   r,
		Cart:   &CartHandler{Svc: &service.CartService{Repo: r}},
		Orders: &OrderHandler{Checkout: checkout, Orders: &service.OrderService{Repo: r}},
		Addr:   &AddressHandler{Svc: &service.AddressService{Repo: r}},
	}
}

// doJSONRequest builds an echo context for a handler call. userID 0 leaves
// the request unauthenticated.
func (env *testEnv) doJSONRequest(method, path string, body any, userID uint) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
		c.Set("role", "user")
	}
	return rec, c
}

func (env *testEnv) seedUser(username string) uint {
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: "user"}
	require.NoError(env.T, env.Repo.DB.Create(&user).Error)
	return user.ID
}

func (env *testEnv) seedVariant(sku string, price int64, stock int) *models.ProductVariant {
	ctx := context.Background()

	cat := models.Category{Name: "Protein", Slug: "protein-" + sku, IsActive: true}
	require.NoError(env.T, env.Repo.CreateCategory(ctx, &cat))

	p := models.Product{CategoryID: cat.ID, Name: "Whey Isolate", Slug: "whey-" + sku, IsActive: true}
	require.NoError(env.T, env.Repo.CreateProduct(ctx, &p))

	v := models.ProductVariant{
		ProductID:  p.ID,
		Name:       "Vanilla 900g",
		SKU:        sku,
		Price:      price,
		StockCount: stock,
		IsActive:   true,
	}
	require.NoError(env.T, env.Repo.CreateVariant(ctx, &v))
	return &v
}

func (env *testEnv) seedAddress(userID uint) *models.UserAddress {
	addr := &models.UserAddress{
		UserID:    userID,
		Recipient: "Ivan Petrov",
		City:      "Riga",
		Street:    "Brivibas iela",
	}
	require.NoError(env.T, env.Repo.CreateAddress(context.Background(), addr))
	return addr
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireStatus(t *testing.T, err error, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if err != nil {
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "unexpected error type: %v", err)
		require.Equal(t, want, he.Code)
		return
	}
	require.Equal(t, want, rec.Code)
}
