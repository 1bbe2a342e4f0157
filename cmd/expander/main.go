// Package main runs one recurring expense expansion pass and exits.
// Meant to be scheduled daily (cron or similar); reruns are harmless
// because the expander never duplicates an occurrence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/config"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/recurring"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/storage/postgres"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

func main() {
	asOfFlag := flag.String("as-of", "", "date to expand for (YYYY-MM-DD, default today in the configured zone)")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.DatabaseURL == "" {
		log.Fatalw("DATABASE_URL is required")
	}

	asOf := types.Today(cfg.Location())
	if *asOfFlag != "" {
		asOf, err = types.ParseDate(*asOfFlag)
		if err != nil {
			log.Fatalw("invalid -as-of date, expected YYYY-MM-DD", "value", *asOfFlag)
		}
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	expander := recurring.NewExpander(postgres.NewRecurringRepo(txManager), txManager)

	created, err := expander.Run(ctx, asOf)
	if err != nil {
		log.Fatalw("expansion failed", "as_of", asOf.String(), "error", err)
	}

	log.Infow("expansion complete", "as_of", asOf.String(), "created", created)
	fmt.Printf("created %d occurrence(s) for %s\n", created, asOf)
}
