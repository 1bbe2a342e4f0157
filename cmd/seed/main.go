// Package main provides a CLI tool for seeding the database with an
// administrator account and default expense categories.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/config"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/auth"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/category"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/storage/postgres"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

var defaultCategories = []string{
	"Aluguel",
	"Energia",
	"Internet",
	"Fornecedores",
	"Impostos",
	"Outros",
}

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.DatabaseURL == "" {
		log.Fatalw("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	userRepo := postgres.NewUserRepo(txManager)
	categoryRepo := postgres.NewCategoryRepo(txManager)

	if err := seedAdminUser(ctx, userRepo, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}
	if err := seedCategories(ctx, categoryRepo, log); err != nil {
		log.Fatalw("failed to seed categories", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, repo auth.Repository, log *logger.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@ferreira.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Infow("admin user already exists", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := auth.NewUser(email, "Administrator", string(hash))
	admin.IsAdmin = true

	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Infow("admin user created", "email", email, "id", admin.ID)
	return nil
}

func seedCategories(ctx context.Context, repo category.Repository, log *logger.Logger) error {
	for _, name := range defaultCategories {
		exists, err := repo.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		c := category.NewCategory(name)
		if err := repo.Create(ctx, c); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
				continue
			}
			return err
		}
		log.Infow("category created", "name", name)
	}
	return nil
}
