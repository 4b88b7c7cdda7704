package main

import (
	"inventory-service/internal/handler"
	"inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/service"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", cfg.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(db,
		&model.User{},
		&model.ProductCategory{},
		&model.Product{},
		&model.StockEntry{},
		&model.PurchaseOrder{},
		&model.OrderLine{},
		&model.Supplier{},
		&model.SupplierProduct{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// JWT utility with config injected at construction
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)

	// Domain services
	orderSvc := service.NewOrderService(db)
	stockSvc := service.NewStockService(db, cfg.Stock.LowStockThreshold)
	productSvc := service.NewProductService(db)
	categorySvc := service.NewCategoryService(db)
	supplierSvc := service.NewSupplierService(db)
	reportSvc := service.NewReportService(db, cfg.Stock.LowStockThreshold)

	// Handlers
	authHandler := handler.NewAuthHandler(db, jwtUtil)
	orderHandler := handler.NewOrderHandler(orderSvc)
	stockHandler := handler.NewStockHandler(stockSvc)
	productHandler := handler.NewProductHandler(productSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	supplierHandler := handler.NewSupplierHandler(supplierSvc)
	reportHandler := handler.NewReportHandler(reportSvc)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(middleware.MetricsMiddleware)

	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtUtil))

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)
	products.GET("/category/:category_id", productHandler.ListByCategory)
	products.GET("/:product_id/suppliers", supplierHandler.ByProduct)

	categories := api.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", supplierHandler.List)
	suppliers.GET("/:id", supplierHandler.Get)
	suppliers.POST("", supplierHandler.Create)
	suppliers.PUT("/:id", supplierHandler.Update)
	suppliers.DELETE("/:id", supplierHandler.Delete)
	suppliers.GET("/:id/products", supplierHandler.Products)
	suppliers.POST("/:id/products/:product_id", supplierHandler.AddProduct)
	suppliers.DELETE("/:id/products/:product_id", supplierHandler.RemoveProduct)

	stock := api.Group("/stock")
	stock.GET("", stockHandler.List)
	stock.PUT("/:product_id", stockHandler.Update)
	stock.GET("/low", stockHandler.LowStock)
	stock.GET("/statistics", stockHandler.Statistics)

	orders := api.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("", orderHandler.Create)
	orders.PUT("/:id/complete", orderHandler.Complete)
	orders.DELETE("/:id", orderHandler.Delete)

	reports := api.Group("/reports")
	reports.GET("/purchases", reportHandler.Purchases)
	reports.GET("/top-products", reportHandler.TopProducts)
	reports.GET("/stock-summary", reportHandler.StockSummary)
	reports.GET("/orders-by-status", reportHandler.OrdersByStatus)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
