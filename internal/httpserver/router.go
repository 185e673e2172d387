package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/jwtmiddleware"
	appmw "github.com/avdeenko/aromashop/internal/middleware"
	"github.com/avdeenko/aromashop/internal/mykafka"
	"github.com/avdeenko/aromashop/internal/service"
	"github.com/avdeenko/aromashop/internal/token"
)

// Deps bundles everything the HTTP layer needs. Optional collaborators
// (Producer, ES) may be nil; the handlers degrade gracefully.
type Deps struct {
	Log            *slog.Logger
	DB             *gorm.DB
	Tokens         *token.Service
	AdminTokenKeys map[string][]byte

	Cart     *service.CartService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Catalog  *service.CatalogService
	Address  *service.AddressService
	Reviews  *service.ReviewService
	Reports  *service.ReportService

	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

// Register wires all routes onto e.
func Register(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(appmw.RequestLogger(d.Log))

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	auth := &AuthHandler{DB: d.DB, Tokens: d.Tokens, Producer: d.Producer}
	cart := &CartHandler{Svc: d.Cart, Producer: d.Producer}
	orders := &OrderHandler{Checkout: d.Checkout, Orders: d.Orders}
	catalog := &CatalogHandler{Svc: d.Catalog}
	addresses := &AddressHandler{Svc: d.Address}
	reviews := &ReviewHandler{Svc: d.Reviews}
	reports := &ReportHandler{Svc: d.Reports}
	searchH := &SearchHandler{ES: d.ES, Index: d.ESIndex}

	api := e.Group("/api/v1")

	authLimiter := appmw.NewRateLimiter(rate.Limit(1), 5)
	authGroup := api.Group("/auth", authLimiter.Middleware)
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)
	authGroup.POST("/logout", auth.Logout)

	// Public catalog.
	api.GET("/categories", catalog.ListCategories)
	api.GET("/products", catalog.ListProducts)
	api.GET("/products/:id", catalog.GetProduct)
	api.GET("/products/:id/reviews", reviews.ListForProduct)
	api.GET("/shipping-methods", catalog.ListShippingMethods)
	api.GET("/search", searchH.Search)

	// Authenticated customer surface.
	user := api.Group("", d.Tokens.AutoRefresh)
	user.GET("/cart", cart.GetCart)
	user.POST("/cart/items", cart.AddItem)
	user.PATCH("/cart/items/:id", cart.UpdateItem)
	user.DELETE("/cart/items/:id", cart.RemoveItem)
	user.DELETE("/cart", cart.Clear)

	user.POST("/orders", orders.Create)
	user.GET("/orders", orders.List)
	user.GET("/orders/:id", orders.Get)
	user.POST("/orders/:id/cancel", orders.Cancel)

	user.GET("/addresses", addresses.List)
	user.POST("/addresses", addresses.Create)
	user.PATCH("/addresses/:id", addresses.Update)
	user.DELETE("/addresses/:id", addresses.Delete)
	user.POST("/addresses/:id/default", addresses.SetDefault)

	user.POST("/products/:id/reviews", reviews.Create)
	user.DELETE("/reviews/:id", reviews.Delete)

	// Admin surface, guarded by kid-selected service tokens.
	admin := api.Group("/admin", jwtmiddleware.AdminTokens(d.AdminTokenKeys))
	admin.GET("/categories", catalog.AdminListCategories)
	admin.POST("/categories", catalog.CreateCategory)
	admin.PUT("/categories/:id", catalog.UpdateCategory)
	admin.DELETE("/categories/:id", catalog.DeleteCategory)

	admin.GET("/products", catalog.AdminListProducts)
	admin.POST("/products", catalog.CreateProduct)
	admin.PUT("/products/:id", catalog.UpdateProduct)
	admin.DELETE("/products/:id", catalog.DeleteProduct)
	admin.POST("/products/:id/photos", catalog.UploadPhoto)
	admin.DELETE("/photos/:id", catalog.DeletePhoto)

	admin.POST("/variants", catalog.CreateVariant)
	admin.PUT("/variants/:id", catalog.UpdateVariant)
	admin.DELETE("/variants/:id", catalog.DeleteVariant)

	admin.POST("/shipping-methods", catalog.CreateShippingMethod)
	admin.PUT("/shipping-methods/:id", catalog.UpdateShippingMethod)
	admin.DELETE("/shipping-methods/:id", catalog.DeleteShippingMethod)

	admin.GET("/orders", orders.AdminList)
	admin.GET("/orders/:id", orders.AdminGet)
	admin.PATCH("/orders/:id/status", orders.AdminUpdateStatus)

	admin.DELETE("/reviews/:id", reviews.Delete)

	admin.GET("/reports/sales", reports.Sales)
}
