// Command backfill enriches a user's prompts that have no stored embedding.
// It runs the same sequential pass the POST /api/prompts/backfill endpoint
// uses, but from an operator shell, where long runs do not tie up a request.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"promptdeck/internal/ai/openai"
	"promptdeck/internal/config"
	"promptdeck/internal/repository/postgres"
	"promptdeck/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "user ID whose prompts to backfill (required)")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
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
	promptRepo := postgres.NewPromptRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})

	aiProvider, err := openai.NewProvider(openai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		ChatModel:      cfg.ChatModel,
	})
	if err != nil {
		log.Fatalf("Failed to setup OpenAI provider: %v", err)
	}
	defer aiProvider.Close()

	enricher, err := service.NewEnrichmentService(
		promptRepo,
		aiProvider.UseCaseGenerator(),
		aiProvider.Embedder(),
		1, // sequential; this is a rate-limit-friendly batch job
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create enrichment service: %v", err)
	}
	defer enricher.Close()

	report, err := enricher.Backfill(ctx, *userID)
	if err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}

	logger.Info("backfill complete",
		"total", report.Total,
		"updated", report.Updated,
		"failed", len(report.Errors),
	)
	for _, msg := range report.Errors {
		logger.Warn("backfill error", "detail", msg)
	}
}
