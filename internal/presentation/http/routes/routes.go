package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmutua/dukabook-api/internal/config"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	domainRepo "github.com/kmutua/dukabook-api/internal/domain/repository"
	"github.com/kmutua/dukabook-api/internal/presentation/http/handler"
	"github.com/kmutua/dukabook-api/internal/presentation/http/middleware"
	"github.com/kmutua/dukabook-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Shop        *handler.ShopHandler
	Customer    *handler.CustomerHandler
	Product     *handler.ProductHandler
	Item        *handler.ItemHandler
	Transaction *handler.TransactionHandler
	Quotation   *handler.QuotationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	ShopRepo        domainRepo.ShopRepository
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
		registerAuthRoutes(v1, h)

		// Authenticated routes
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerShopRoutes(authed, h)

		// Shop-scoped routes: everything below operates inside one shop
		// (or, for privileged reads, across all of them)
		scoped := authed.Group("")
		scoped.Use(middleware.ScopeMiddleware(deps.ShopRepo))

		rateLimiter := middleware.NewShopRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		scoped.Use(rateLimiter.Middleware())
		scoped.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

		registerScopedRoutes(scoped, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerShopRoutes(g *gin.RouterGroup, h *Handlers) {
	shops := g.Group("/shops")
	shops.Use(middleware.RequireRole(enum.RolePrivileged))
	{
		shops.GET("", h.Shop.List)
		shops.GET("/:id", h.Shop.Get)
		shops.POST("", h.Shop.Create)
	}
}

func registerScopedRoutes(g *gin.RouterGroup, h *Handlers) {
	customers := g.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.POST("/find-or-create", h.Customer.FindOrCreate)
		customers.GET("/search", h.Customer.Search)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	products := g.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("/search", h.Product.Search)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	items := g.Group("/items")
	{
		items.POST("", h.Item.Create)
		items.GET("/low-stock", h.Item.ListLowStock)
		items.GET("", h.Item.List)
		items.GET("/:id", h.Item.Get)
		items.PATCH("/:id/quantity", h.Item.AdjustQuantity)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
	}

	transactions := g.Group("/transactions")
	{
		transactions.POST("", h.Transaction.Create)
		transactions.GET("/due", h.Transaction.ListDue)
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PUT("/:id", h.Transaction.Update)
		transactions.DELETE("/:id", h.Transaction.Delete)
	}

	g.POST("/quotation/generate", h.Quotation.Generate)
	quotations := g.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.GET("/:id", h.Quotation.Get)
	}
}
