package main

import (
	"os"

	"fashionhub/internal/database"
	"fashionhub/internal/handler"
	"fashionhub/internal/logger"
	"fashionhub/internal/middleware"
	"fashionhub/internal/repository"
	"fashionhub/internal/service"
	"fashionhub/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// @title           FashionHub API
// @version         1.0
// @description     Retail inventory and point-of-sale backend for a fashion store.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.NewWithDefaults()
	defer func() { _ = log.Sync() }()

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("no configs/.env file found, using environment variables")
	}

	dsn := "postgres://" + envOr("DB_USER", "postgres") +
		":" + envOr("DB_PASSWORD", "postgres") +
		"@" + envOr("DB_HOST", "localhost") +
		":" + envOr("DB_PORT", "5432") +
		"/" + envOr("DB_NAME", "fashionhub") +
		"?sslmode=" + envOr("DB_SSLMODE", "disable")

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("connected to postgres")

	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	orderRepo := repository.NewPurchaseOrderRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	stockService := service.NewStockService(productRepo, movementRepo, log)
	userService := service.NewUserService(userRepo, auditRepo, txManager, log)
	productService := service.NewProductService(productRepo, movementRepo, auditRepo, stockService, txManager, wsHub, log)
	supplierService := service.NewSupplierService(supplierRepo)
	purchaseService := service.NewPurchaseService(orderRepo, supplierRepo, productRepo, counterRepo, auditRepo, stockService, txManager, wsHub, log)
	saleService := service.NewSaleService(saleRepo, productRepo, counterRepo, auditRepo, stockService, txManager, wsHub, log)
	draftService := service.NewDraftService(draftRepo)
	auditService := service.NewAuditService(auditRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	purchaseHandler := handler.NewPurchaseOrderHandler(purchaseService)
	saleHandler := handler.NewSaleHandler(saleService)
	draftHandler := handler.NewDraftHandler(draftService)
	auditHandler := handler.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	api := router.Group("")
	userHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	supplierHandler.RegisterRoutes(api)
	purchaseHandler.RegisterRoutes(api)
	saleHandler.RegisterRoutes(api)
	draftHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := envOr("PORT", "8080")
	log.Info("server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
