// Command betacodes mints single-use beta access codes and prints them to
// stdout, one per line, ready for handing out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"promptdeck/internal/config"
	"promptdeck/internal/repository/postgres"
	"promptdeck/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	count := flag.Int("count", 10, "number of codes to generate")
	validDays := flag.Int("valid-days", 30, "days until the codes expire")
	flag.Parse()

	if *count <= 0 || *validDays <= 0 {
		log.Fatal("count and valid-days must be positive")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	betaRepo := postgres.NewBetaCodeRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})

	codes, err := service.GenerateBetaCodes(*count, time.Duration(*validDays)*24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to generate codes: %v", err)
	}

	if err := betaRepo.CreateBatch(ctx, codes); err != nil {
		log.Fatalf("Failed to store codes: %v", err)
	}

	for _, code := range codes {
		fmt.Println(code.Code)
	}
	logger.Info("codes created", "count", len(codes), "expires", codes[0].ExpiresAt.Format(time.RFC3339))
}
