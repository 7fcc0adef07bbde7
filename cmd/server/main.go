package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bundleapp "github.com/omnistock/backend/internal/application/bundle"
	catalogapp "github.com/omnistock/backend/internal/application/catalog"
	channelapp "github.com/omnistock/backend/internal/application/channel"
	inventoryapp "github.com/omnistock/backend/internal/application/inventory"
	locationapp "github.com/omnistock/backend/internal/application/location"
	"github.com/omnistock/backend/internal/domain/shared"
	"github.com/omnistock/backend/internal/infrastructure/cache"
	"github.com/omnistock/backend/internal/infrastructure/config"
	"github.com/omnistock/backend/internal/infrastructure/ecommerce"
	"github.com/omnistock/backend/internal/infrastructure/event"
	"github.com/omnistock/backend/internal/infrastructure/logger"
	"github.com/omnistock/backend/internal/infrastructure/persistence"
	"github.com/omnistock/backend/internal/interfaces/http/handler"
	"github.com/omnistock/backend/internal/interfaces/http/middleware"
	"github.com/omnistock/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/omnistock/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			OmniStock Backend API
//	@version		1.0
//	@description	Multi-channel retail inventory management API
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/omnistock/backend
//	@contact.email	support@omnistock.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting OmniStock Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Outside production the schema is kept in sync automatically;
	// production deployments run the migrate tool instead.
	if cfg.App.Env != "production" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	transactionRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	mappingRepo := persistence.NewGormProductMappingRepository(db.DB)
	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)

	// Transaction scope for multi-aggregate stock mutations
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo)
	locationService := locationapp.NewLocationService(locationRepo, productRepo)
	inventoryService := inventoryapp.NewInventoryService(txScope, productRepo, locationRepo, transactionRepo)
	bundleService := bundleapp.NewBundleService(productRepo, locationRepo, inventoryService)
	mappingService := channelapp.NewMappingService(mappingRepo, productRepo)

	syncService := channelapp.NewSyncService(mappingRepo, productRepo, syncLogRepo, log)
	syncService.SetScanPageSize(cfg.Sync.PageSize)

	// Register platform fetchers for channels with configured credentials
	if cfg.Channels.Shopify.AccessToken != "" && cfg.Channels.Shopify.ShopDomain != "" {
		shopifyFetcher, err := ecommerce.NewShopifyFetcher(
			ecommerce.NewShopifyConfig(cfg.Channels.Shopify.ShopDomain, cfg.Channels.Shopify.AccessToken),
		)
		if err != nil {
			log.Fatal("Failed to configure Shopify fetcher", zap.Error(err))
		}
		syncService.RegisterFetcher(shopifyFetcher)
		log.Info("Shopify discrepancy checks enabled", zap.String("shop", cfg.Channels.Shopify.ShopDomain))
	}
	if cfg.Channels.Square.AccessToken != "" {
		squareCfg := ecommerce.NewSquareConfig(cfg.Channels.Square.AccessToken)
		if cfg.Channels.Square.Sandbox {
			squareCfg = ecommerce.NewSandboxSquareConfig(cfg.Channels.Square.AccessToken)
		}
		squareFetcher, err := ecommerce.NewSquareFetcher(squareCfg)
		if err != nil {
			log.Fatal("Failed to configure Square fetcher", zap.Error(err))
		}
		syncService.RegisterFetcher(squareFetcher)
		log.Info("Square discrepancy checks enabled", zap.Bool("sandbox", cfg.Channels.Square.Sandbox))
	}
	if cfg.Channels.Amazon.AccessToken != "" && cfg.Channels.Amazon.MarketplaceID != "" {
		amazonCfg := ecommerce.NewAmazonConfig(cfg.Channels.Amazon.MarketplaceID, cfg.Channels.Amazon.AccessToken)
		if cfg.Channels.Amazon.Endpoint != "" {
			amazonCfg.Endpoint = cfg.Channels.Amazon.Endpoint
		}
		amazonFetcher, err := ecommerce.NewAmazonFetcher(amazonCfg)
		if err != nil {
			log.Fatal("Failed to configure Amazon fetcher", zap.Error(err))
		}
		syncService.RegisterFetcher(amazonFetcher)
		log.Info("Amazon discrepancy checks enabled", zap.String("marketplace", cfg.Channels.Amazon.MarketplaceID))
	}

	// Webhook idempotency store: Redis when enabled, in-memory otherwise
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		idempotencyStore, err = storeFactory.CreateStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
	} else {
		idempotencyStore = storeFactory.CreateInMemoryStore()
	}

	webhookService := channelapp.NewWebhookService(
		mappingRepo, productRepo, locationRepo,
		inventoryService, bundleService,
		idempotencyStore, log,
	)
	if cfg.Webhook.IdempotencyTTL > 0 {
		webhookService.SetIdempotencyConfig(shared.IdempotencyConfig{
			TTL:     cfg.Webhook.IdempotencyTTL,
			Enabled: true,
		})
	}

	// Initialize in-memory event bus and low-stock alerting
	eventBus := event.NewInMemoryEventBus(log)

	lowStockHandler := inventoryapp.NewLowStockHandler(log).
		WithNotifier(inventoryapp.NewLoggingLowStockNotifier(log))
	eventBus.Subscribe(lowStockHandler, lowStockHandler.EventTypes()...)

	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	if err := eventBus.Start(busCtx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	productService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	locationService.SetEventPublisher(eventBus)

	// Seed the default location set on first start when configured
	if cfg.App.SeedLocations {
		if err := locationService.SeedDefaults(context.Background()); err != nil {
			log.Fatal("Failed to seed default locations", zap.Error(err))
		}
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	locationHandler := handler.NewLocationHandler(locationService)
	bundleHandler := handler.NewBundleHandler(bundleService)
	mappingHandler := handler.NewMappingHandler(mappingService)
	syncHandler := handler.NewSyncHandler(syncService)
	webhookHandler := handler.NewWebhookHandler(webhookService, cfg.Webhook, log)

	// Configure gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validators
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Middleware stack (order matters)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Platform webhook endpoints (no API versioning; external platforms
	// call these directly, verified by signature instead of auth)
	webhookGroup := engine.Group("/webhooks")
	webhookGroup.POST("/shopify", webhookHandler.HandleShopify)
	webhookGroup.POST("/square", webhookHandler.HandleSquare)
	webhookGroup.POST("/amazon", webhookHandler.HandleAmazon)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (products)
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	catalogRoutes.GET("/products/:id/inventory", inventoryHandler.GetStatus)
	r.Register(catalogRoutes)

	// Inventory domain (stock mutations, transaction ledger)
	inventoryRoutes := router.NewDomainGroup("inventory", "")
	inventoryRoutes.POST("/inventory/adjust", inventoryHandler.Adjust)
	inventoryRoutes.POST("/inventory/transfer", inventoryHandler.Transfer)
	inventoryRoutes.POST("/inventory/production", inventoryHandler.AddProduction)
	inventoryRoutes.POST("/inventory/sale", inventoryHandler.RecordSale)
	inventoryRoutes.GET("/transactions", inventoryHandler.ListTransactions)
	inventoryRoutes.GET("/transactions/stats", inventoryHandler.GetStats)
	r.Register(inventoryRoutes)

	// Location domain
	locationRoutes := router.NewDomainGroup("location", "")
	locationRoutes.POST("/locations", locationHandler.Create)
	locationRoutes.GET("/locations", locationHandler.List)
	locationRoutes.GET("/locations/primary", locationHandler.GetPrimary)
	locationRoutes.GET("/locations/:id", locationHandler.GetByID)
	locationRoutes.PUT("/locations/:id", locationHandler.Update)
	locationRoutes.PUT("/locations/:id/primary", locationHandler.SetPrimary)
	locationRoutes.DELETE("/locations/:id", locationHandler.Delete)
	r.Register(locationRoutes)

	// Bundle domain
	bundleRoutes := router.NewDomainGroup("bundle", "")
	bundleRoutes.GET("/bundles", bundleHandler.List)
	bundleRoutes.PUT("/bundles/:id", bundleHandler.Define)
	bundleRoutes.DELETE("/bundles/:id", bundleHandler.Clear)
	bundleRoutes.POST("/bundles/:id/sale", bundleHandler.ProcessSale)
	bundleRoutes.GET("/bundles/:id/inventory", bundleHandler.InventoryStatus)
	r.Register(bundleRoutes)

	// Channel domain (mappings, sync)
	channelRoutes := router.NewDomainGroup("channel", "")
	channelRoutes.POST("/mappings", mappingHandler.Create)
	channelRoutes.GET("/mappings", mappingHandler.List)
	channelRoutes.GET("/mappings/:id", mappingHandler.GetByID)
	channelRoutes.GET("/mappings/product/:id", mappingHandler.GetByProduct)
	channelRoutes.GET("/mappings/resolve/:platform", mappingHandler.Resolve)
	channelRoutes.PUT("/mappings/:id", mappingHandler.Update)
	channelRoutes.DELETE("/mappings/:id", mappingHandler.Delete)
	channelRoutes.POST("/sync/discrepancies", syncHandler.DetectDiscrepancies)
	channelRoutes.GET("/sync/logs", syncHandler.ListLogs)
	r.Register(channelRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
