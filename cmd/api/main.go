package main

import (
	"fmt"
	"net/http"
	"os"

	"borrowtrack/internal/config"
	"borrowtrack/internal/database"
	"borrowtrack/internal/handlers"
	"borrowtrack/internal/logger"
	"borrowtrack/internal/middleware"
	"borrowtrack/internal/services"
	"borrowtrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "borrowtrack/internal/docs" // Import swagger docs
)

// @title           Borrow Tracker API
// @version         1.0
// @description     Borrow Tracker is a bookkeeping application for shopkeepers who extend informal credit: customers, groups, borrow and payment ledgers, and identity documents.

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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	groupService := services.NewGroupService(db)
	personService := services.NewPersonService(db, groupService)
	contactService := services.NewContactService(db)
	transactionService := services.NewTransactionService(db)
	documentService := services.NewDocumentService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	groupHandler := handlers.NewGroupHandler(groupService, auditService)
	personHandler := handlers.NewPersonHandler(personService, auditService)
	contactHandler := handlers.NewContactHandler(contactService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	documentHandler := handlers.NewDocumentHandler(documentService, auditService)

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

	// Health check endpoint. Reports whether the schema has been provisioned
	// so a fresh deployment surfaces its state before the first request fails.
	router.GET("/api/health", func(c *gin.Context) {
		if !dbManager.SchemaReady() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "schema_missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/password", authHandler.ChangePassword)

	// Group routes
	groups := protected.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("", groupHandler.GetGroups)
	groups.GET("/:id", groupHandler.GetGroupByID)

	// People routes
	people := protected.Group("/people")
	people.POST("", personHandler.CreatePerson)
	people.GET("", personHandler.GetPeople)
	people.GET("/:id", personHandler.GetPersonByID)
	people.PUT("/:id", personHandler.UpdatePerson)
	people.POST("/:id/contacts", contactHandler.AddContact)
	people.POST("/:id/transactions", transactionHandler.CreateTransaction)
	people.GET("/:id/transactions", transactionHandler.GetPersonTransactions)
	people.POST("/:id/documents", documentHandler.CreateDocument)
	people.GET("/:id/documents", documentHandler.GetPersonDocuments)

	// Contact routes
	contacts := protected.Group("/contacts")
	contacts.PUT("/:id", contactHandler.UpdateContact)
	contacts.DELETE("/:id", contactHandler.DeleteContact)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Document routes
	documents := protected.Group("/documents")
	documents.GET("/:id", documentHandler.GetDocumentByID)
	documents.DELETE("/:id", documentHandler.DeleteDocument)

	log.Infof("Starting Borrow Tracker backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
