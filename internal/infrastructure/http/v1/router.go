// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/auth"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/cashregister"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/category"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/income"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/product"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/purchase"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/recurring"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/summary"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/handlers"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/middleware"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/storage/postgres"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool         *postgres.Pool
	Logger       *logger.Logger
	JWTValidator middleware.JWTValidator
	Location     *time.Location

	AuthService         *auth.Service
	CategoryService     *category.Service
	CashRegisterService *cashregister.Service
	ExpenseService      *expense.Service
	ProductService      *product.Service
	PurchaseService     *purchase.Service
	IncomeService       *income.Service
	RecurringService    *recurring.Service
	Expander            *recurring.Expander
	SummaryService      *summary.Service
	AuditService        *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints, no auth required
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerAuthRoutes(protected, authHandler)
		registerLedgerRoutes(protected, cfg)

		auditHandler := handlers.NewAuditHandler(cfg.AuditService)
		auditGroup := protected.Group("/audit")
		auditGroup.Use(middleware.RequireAdmin())
		auditGroup.GET("/:entityType/:id", auditHandler.History)
	}

	return router
}

func registerAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/users/:id/password", h.ChangePassword)

	// Account management is admin only, including new registrations.
	admin := rg.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/auth/register", h.Register)
		admin.GET("/auth/users", h.List)
		admin.POST("/auth/users/:id/active", h.SetActive)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	categoryHandler := handlers.NewCategoryHandler(cfg.CategoryService)
	categories := rg.Group("/categories")
	{
		categories.POST("", categoryHandler.Create)
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	cashHandler := handlers.NewCashRegisterHandler(cfg.CashRegisterService)
	cash := rg.Group("/cash-register")
	{
		cash.POST("", cashHandler.Create)
		cash.GET("", cashHandler.List)
		cash.GET("/:id", cashHandler.Get)
		cash.PUT("/:id", cashHandler.Update)
		cash.DELETE("/:id", cashHandler.Delete)
	}

	expenseHandler := handlers.NewExpenseHandler(cfg.ExpenseService)
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", expenseHandler.Create)
		expenses.GET("", expenseHandler.List)
		expenses.GET("/:id", expenseHandler.Get)
		expenses.PUT("/:id", expenseHandler.Update)
		expenses.POST("/:id/paid", expenseHandler.MarkPaid)
		expenses.DELETE("/:id", expenseHandler.Delete)
	}

	productHandler := handlers.NewProductHandler(cfg.ProductService)
	products := rg.Group("/products")
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.POST("/:id/stock", productHandler.AdjustStock)
		products.DELETE("/:id", productHandler.Delete)
	}

	purchaseHandler := handlers.NewPurchaseHandler(cfg.PurchaseService)
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", purchaseHandler.Create)
		purchases.GET("", purchaseHandler.List)
		purchases.GET("/:id", purchaseHandler.Get)
		purchases.PUT("/:id", purchaseHandler.Update)
		purchases.POST("/:id/paid", purchaseHandler.MarkPaid)
		purchases.DELETE("/:id", purchaseHandler.Delete)
	}

	incomeHandler := handlers.NewIncomeHandler(cfg.IncomeService)
	incomes := rg.Group("/incomes")
	{
		incomes.POST("", incomeHandler.Create)
		incomes.GET("", incomeHandler.List)
		incomes.GET("/:id", incomeHandler.Get)
		incomes.PUT("/:id", incomeHandler.Update)
		incomes.DELETE("/:id", incomeHandler.Delete)
	}

	recurringHandler := handlers.NewRecurringHandler(cfg.RecurringService, cfg.Expander, cfg.Location)
	recurringGroup := rg.Group("/recurring")
	{
		recurringGroup.POST("/rules", recurringHandler.CreateRule)
		recurringGroup.GET("/rules", recurringHandler.ListRules)
		recurringGroup.GET("/rules/:id", recurringHandler.GetRule)
		recurringGroup.PUT("/rules/:id", recurringHandler.UpdateRule)
		recurringGroup.POST("/rules/:id/deactivate", recurringHandler.DeactivateRule)
		recurringGroup.DELETE("/rules/:id", recurringHandler.DeleteRule)
		recurringGroup.GET("/rules/:id/occurrences", recurringHandler.ListRuleOccurrences)

		recurringGroup.GET("/occurrences", recurringHandler.ListOccurrences)
		recurringGroup.POST("/occurrences/:id/paid", recurringHandler.MarkOccurrencePaid)

		recurringGroup.POST("/expand", recurringHandler.Expand)
	}

	summaryHandler := handlers.NewSummaryHandler(cfg.SummaryService)
	rg.GET("/summary", summaryHandler.Get)
}
