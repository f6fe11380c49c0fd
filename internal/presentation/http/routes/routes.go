package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/config"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/presentation/http/handler"
	"github.com/injapanfood/pos-api/internal/presentation/http/middleware"
	"github.com/injapanfood/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Pos         *handler.PosHandler
	Product     *handler.ProductHandler
	Transaction *handler.TransactionHandler
	Receipt     *handler.ReceiptHandler
	Order       *handler.OrderHandler
	Dashboard   *handler.DashboardHandler
	Report      *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Authorizer      service.Authorizer
	RateLimiter     *middleware.CashierRateLimiter
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-cashier rate limiter
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)

		// Admin routes
		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin(deps.Authorizer))
		registerAdminRoutes(admin, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Catalog
	protected.GET("/products", h.Product.List)
	protected.GET("/products/:id", h.Product.Get)

	// Inventory
	protected.GET("/inventory", handler.Inventory)

	// POS
	registerPosRoutes(protected, h, deps)

	// Transactions
	registerTransactionRoutes(protected, h)
}

func registerPosRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sessions := protected.Group("/pos/sessions")
	{
		sessions.POST("", h.Pos.OpenSession)
		sessions.GET("/:id", h.Pos.GetSession)
		sessions.DELETE("/:id", h.Pos.CloseSession)
		sessions.POST("/:id/items", h.Pos.AddItem)
		sessions.DELETE("/:id/items", h.Pos.ClearCart)
		sessions.PATCH("/:id/items/:product_id", h.Pos.UpdateItem)
		sessions.DELETE("/:id/items/:product_id", h.Pos.RemoveItem)

		checkout := []gin.HandlerFunc{h.Pos.Checkout}
		if deps.Cfg.POS.CheckoutIdempotency && deps.IdempotencyRepo != nil {
			checkout = append([]gin.HandlerFunc{middleware.Idempotency(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
			})}, checkout...)
		}
		sessions.POST("/:id/checkout", checkout...)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.GET("/:id/receipt", h.Receipt.Get)
		transactions.GET("/:id/receipt/print", h.Receipt.Print)
		transactions.GET("/:id/receipt/pdf", h.Receipt.PDF)
		transactions.GET("/:id/receipt/png", h.Receipt.PNG)
	}
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers) {
	// Dashboard
	admin.GET("/dashboard", h.Dashboard.Get)
	admin.GET("/dashboard/live", h.Dashboard.Live)

	// Orders
	admin.GET("/orders", h.Order.List)

	// Reports
	reports := admin.Group("/reports")
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/sales/export", h.Report.ExportSales)
		reports.GET("/monthly", h.Report.Monthly)
	}
}
