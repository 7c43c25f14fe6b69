// Command seed installs the database schema for the configured environment:
// the prompts, categories and beta_codes tables plus the match_prompts
// similarity function, all under the environment's table prefix.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"promptdeck/internal/config"
	"promptdeck/internal/repository/postgres"

	"github.com/joho/godotenv"
)

func main() {
	drop := flag.Bool("drop", false, "drop existing tables and the match function before creating")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *drop && cfg.Environment == "prod" {
		log.Fatal("refusing to drop prod tables; run against dev or test")
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *drop {
		logger.Warn("dropping existing schema", "prefix", cfg.TablePrefix)
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop schema: %v", err)
		}
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	logger.Info("schema ready",
		"prompts", tables.Prompts,
		"categories", tables.Categories,
		"beta_codes", tables.BetaCodes,
		"match_function", tables.MatchPrompts,
	)
}
