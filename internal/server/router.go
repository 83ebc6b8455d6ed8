// Package server assembles the HTTP API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"homebudget/internal/auth"
	"homebudget/internal/config"
	_ "homebudget/internal/docs" // swagger docs
	"homebudget/internal/handlers"
	"homebudget/internal/middleware"
	"homebudget/internal/services"
	"homebudget/internal/validator"
)

// Options are the dependencies of the router.
type Options struct {
	DB     *gorm.DB
	Config *config.Config
	// Provider defaults to Google with the configured OAuth client.
	Provider auth.Provider
	// Metrics defaults to a fresh registry.
	Metrics *middleware.Metrics
}

// NewRouter builds the gin engine with every route of the API.
// @title                      Home Budget API
// @version                    1.0
// @description                Household budget tracker: transactions, monthly budgets per category and spend-vs-budget reports.
// @BasePath                   /api
// @securityDefinitions.apikey SessionAuth
// @in                         header
// @name                       Authorization
// @description                Session token from the sign-in cookie, sent as "Bearer <token>".
func NewRouter(opts Options) *gin.Engine {
	validator.Register()

	cfg := opts.Config
	provider := opts.Provider
	if provider == nil {
		provider = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = middleware.NewMetrics()
	}
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)

	// Services
	db := opts.DB
	auditService := services.NewAuditService(db)
	typeService := services.NewTransactionTypeService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db)
	reportService := services.NewReportService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(provider, sessions, cfg.IsEmailAllowed, cfg.Env == "production")
	typeHandler := handlers.NewTransactionTypeHandler(typeService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigin))
	router.Use(metrics.Middleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())

	// Sign-in flow
	authRoutes := router.Group("/auth")
	authRoutes.GET("/oauth/google", authHandler.Login)
	authRoutes.GET("/callback", authHandler.Callback)
	authRoutes.POST("/logout", authHandler.Logout)

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.SessionAuth(middleware.AuthOptions{
		Sessions: sessions,
		Allowed:  cfg.IsEmailAllowed,
		SkipAuth: cfg.SkipAuth,
	}))

	protected.GET("/me", authHandler.Me)

	transactionTypes := protected.Group("/transaction-types")
	transactionTypes.GET("", typeHandler.ListTransactionTypes)
	transactionTypes.GET("/:id", typeHandler.GetTransactionType)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.POST("", budgetHandler.UpsertBudget)
	budgets.GET("/:month_date/:type_id", budgetHandler.GetBudget)
	budgets.PUT("/:month_date/:type_id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:month_date/:type_id", budgetHandler.DeleteBudget)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.ReplaceTransaction)
	transactions.PATCH("/:id", transactionHandler.PatchTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	protected.GET("/reports/monthly", reportHandler.GetMonthlyReport)

	return router
}
