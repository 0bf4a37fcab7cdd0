package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"xrpvault/internal/chains"
	"xrpvault/internal/config"
	"xrpvault/internal/database"
	"xrpvault/internal/events"
	"xrpvault/internal/handlers"
	"xrpvault/internal/logger"
	"xrpvault/internal/middleware"
	"xrpvault/internal/portfolio"
	"xrpvault/internal/pricing"
	"xrpvault/internal/services"
	"xrpvault/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "xrpvault/internal/docs" // Import swagger docs
)

// @title           XRPVault API
// @version         1.0
// @description     XRPVault is a multi-chain wallet backend for tracking balances, swapping assets into XRP, and managing identity verification.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Price feed
	priceService := pricing.NewService(appConfig.CoinGeckoURL, appConfig.PriceRefreshInterval)
	priceService.Start(context.Background())
	defer priceService.Stop()

	// Chain balance readers and portfolio aggregation
	chainClient := chains.NewClient(chains.Config{
		XRPLEndpoint:      appConfig.XRPLEndpoint,
		SolanaEndpoint:    appConfig.SolanaEndpoint,
		TronEndpoint:      appConfig.TronEndpoint,
		BitcoinEndpoint:   appConfig.BitcoinEndpoint,
		RequestsPerSecond: 10,
	})
	aggregator := portfolio.NewAggregator(chainClient, priceService)

	hub := events.NewHub()

	// Initialize services
	db := dbManager.DB()
	telegramService := services.NewTelegramService(appConfig.TelegramBotToken, appConfig.TelegramChatID)
	userService := services.NewUserService(db)
	walletService := services.NewWalletService(db, telegramService)
	transactionService := services.NewTransactionService(db, priceService, hub, appConfig.MinPurchaseUSD)
	kycService := services.NewKYCService(db, hub, telegramService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService)
	portfolioHandler := handlers.NewPortfolioHandler(walletService, aggregator, priceService)
	priceHandler := handlers.NewPriceHandler(priceService)
	tradeHandler := handlers.NewTradeHandler(transactionService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, hub)
	kycHandler := handlers.NewKYCHandler(kycService)
	telegramHandler := handlers.NewTelegramHandler(kycService, telegramService, appConfig.TelegramWebhookSecret)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/prices", priceHandler.Get)
	v1.POST("/telegram/webhook", telegramHandler.Webhook)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Wallet routes
	wallets := protected.Group("/wallets")
	wallets.POST("/generate", walletHandler.Generate)
	wallets.POST("/import", walletHandler.Import)
	wallets.GET("", walletHandler.List)
	wallets.GET("/:id", walletHandler.Get)
	wallets.DELETE("/:id", walletHandler.Delete)

	// Portfolio
	protected.GET("/portfolio", portfolioHandler.Get)

	// Trade routes
	swap := protected.Group("/swap")
	swap.POST("/quote", tradeHandler.SwapQuote)
	swap.POST("/execute", tradeHandler.SwapExecute)

	buy := protected.Group("/buy")
	buy.POST("/quote", tradeHandler.BuyQuote)
	buy.POST("/execute", tradeHandler.BuyExecute)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.GET("/stream", transactionHandler.Stream)
	transactions.GET("/:id", transactionHandler.Get)

	// KYC routes
	kyc := protected.Group("/kyc")
	kyc.GET("", kycHandler.Get)
	kyc.PUT("/personal-info", kycHandler.SavePersonalInfo)
	kyc.PUT("/address", kycHandler.SaveAddress)
	kyc.PUT("/documents", kycHandler.SaveDocuments)
	kyc.POST("/submit", kycHandler.Submit)
	kyc.POST("/retry", kycHandler.Retry)

	log.Infof("Starting XRPVault backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
