package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/kmutua/dukabook-api/internal/application/service"
	"github.com/kmutua/dukabook-api/internal/cache"
	"github.com/kmutua/dukabook-api/internal/config"
	"github.com/kmutua/dukabook-api/internal/infrastructure/database"
	"github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/internal/presentation/http/handler"
	"github.com/kmutua/dukabook-api/internal/presentation/http/routes"
	"github.com/kmutua/dukabook-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	itemRepo := repository.NewItemRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize search cache; fall back to no-op when Redis is disabled or
	// unreachable
	var searchCache cache.SearchCache = cache.NoopSearchCache{}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisSearchCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Printf("Warning: Redis unreachable, search cache disabled: %v", err)
		} else {
			searchCache = redisCache
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, shopRepo, jwtManager)
	shopService := service.NewShopService(shopRepo)
	customerService := service.NewCustomerService(customerRepo, searchCache)
	productService := service.NewProductService(productRepo)
	itemService := service.NewItemService(itemRepo, productRepo)
	transactionService := service.NewTransactionService(transactionRepo, customerRepo)
	quotationService := service.NewQuotationService(quotationRepo, customerRepo, productRepo, cfg.Storage.BaseURL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Shop:        handler.NewShopHandler(shopService),
		Customer:    handler.NewCustomerHandler(customerService),
		Product:     handler.NewProductHandler(productService),
		Item:        handler.NewItemHandler(itemService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Quotation:   handler.NewQuotationHandler(quotationService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		ShopRepo:        shopRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	addr := ":" + cfg.App.Port
	log.Printf("Starting %s on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
