// Package main is the entry point for the financial tracker API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/config"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/auth"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/cashregister"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/category"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/income"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/product"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/purchase"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/recurring"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/summary"
	v1 "github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/storage/postgres"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	ctx := context.Background()
	log.Info("starting ferreira-financeiro server")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}
	defer auditService.Close()

	// --- Repositories ---
	userRepo := postgres.NewUserRepo(txManager)
	categoryRepo := postgres.NewCategoryRepo(txManager)
	cashRepo := postgres.NewCashRegisterRepo(txManager)
	expenseRepo := postgres.NewExpenseRepo(txManager)
	productRepo := postgres.NewProductRepo(txManager)
	purchaseRepo := postgres.NewPurchaseRepo(txManager)
	incomeRepo := postgres.NewIncomeRepo(txManager)
	recurringRepo := postgres.NewRecurringRepo(txManager)
	summaryRepo := postgres.NewSummaryRepo(txManager)

	// --- Services ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.AccessTokenTTL
	jwtService := auth.NewJWTService(jwtConfig)

	authService := auth.NewService(userRepo, txManager, jwtService, auth.DefaultServiceConfig())
	categoryService := category.NewService(categoryRepo, txManager)
	cashService := cashregister.NewService(cashRepo)
	expenseService := expense.NewService(expenseRepo, txManager, auditService)
	productService := product.NewService(productRepo)
	purchaseService := purchase.NewService(purchaseRepo, productRepo, txManager, auditService)
	incomeService := income.NewService(incomeRepo, productRepo, txManager, auditService)
	recurringService := recurring.NewService(recurringRepo, auditService)
	expander := recurring.NewExpander(recurringRepo, txManager)
	summaryService := summary.NewService(summaryRepo)

	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: jwtService,
		Location:     cfg.Location(),

		AuthService:         authService,
		CategoryService:     categoryService,
		CashRegisterService: cashService,
		ExpenseService:      expenseService,
		ProductService:      productService,
		PurchaseService:     purchaseService,
		IncomeService:       incomeService,
		RecurringService:    recurringService,
		Expander:            expander,
		SummaryService:      summaryService,
		AuditService:        auditService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
