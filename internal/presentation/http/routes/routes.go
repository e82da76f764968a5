package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/config"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/handler"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/middleware"
	"github.com/dokanlab/pos-terminal-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session  *handler.SessionHandler
	Cart     *handler.CartHandler
	Payment  *handler.PaymentHandler
	Customer *handler.CustomerHandler
	Checkout *handler.CheckoutHandler
	Receipt  *handler.ReceiptHandler
	Sales    *handler.SalesHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Verifier *utils.TokenVerifier
	Cfg      *config.Config
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
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Verifier))

		// Per-cashier rate limiter
		rateLimiter := middleware.NewCashierRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h)
		registerPaymentMethodRoutes(protected, h)
		registerCustomerRoutes(protected, h)
		registerSalesRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	sessions := protected.Group("/sessions")
	{
		sessions.POST("", h.Session.Create)
		sessions.GET("/:session_id", h.Session.Get)
		sessions.POST("/:session_id/reset", h.Session.Reset)

		// Cart
		sessions.POST("/:session_id/cart/items", h.Cart.AddItem)
		sessions.POST("/:session_id/cart/barcode", h.Cart.ScanBarcode)
		sessions.PATCH("/:session_id/cart/items/:index", h.Cart.UpdateQuantity)
		sessions.DELETE("/:session_id/cart/items/:index", h.Cart.RemoveItem)
		sessions.POST("/:session_id/cart/clear", h.Cart.Clear)
		sessions.PUT("/:session_id/cart/discount", h.Cart.SetDiscount)

		// Payment selection
		sessions.PUT("/:session_id/payment/selection", h.Payment.Select)
		sessions.PUT("/:session_id/payment/reference", h.Payment.SetReference)
		sessions.PUT("/:session_id/payment/cash", h.Payment.SetCashReceived)

		// Customer
		sessions.PUT("/:session_id/customer", h.Customer.Attach)

		// Checkout and receipt
		sessions.POST("/:session_id/checkout", h.Checkout.Submit)
		sessions.GET("/:session_id/receipt", h.Receipt.Get)
		sessions.POST("/:session_id/receipt/print", h.Receipt.Print)
	}
}

func registerPaymentMethodRoutes(protected *gin.RouterGroup, h *Handlers) {
	methods := protected.Group("/payment-methods")
	{
		methods.GET("", h.Payment.List)
		methods.POST("/refresh", h.Payment.Refresh)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.Search)
		customers.POST("", h.Customer.Create)
	}
}

func registerSalesRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sales.List)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Receipt.Status)
	}
}
