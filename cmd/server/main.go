package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"promptdeck/internal/ai/openai"
	"promptdeck/internal/auth"
	"promptdeck/internal/config"
	"promptdeck/internal/handler"
	"promptdeck/internal/middleware"
	"promptdeck/internal/repository/postgres"
	"promptdeck/internal/service"
	"promptdeck/internal/tuning"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	promptRepo := postgres.NewPromptRepository(repoConfig)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	betaRepo := postgres.NewBetaCodeRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// OpenAI provider for embeddings, query expansion and use-case text
	aiProvider, err := openai.NewProvider(openai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		ChatModel:      cfg.ChatModel,
	})
	if err != nil {
		log.Fatalf("Failed to setup OpenAI provider: %v", err)
	}
	defer aiProvider.Close()

	// Search tuning (thresholds, limits, display percentages)
	searchTuning, err := tuning.LoadSearch()
	if err != nil {
		log.Fatalf("Failed to load search tuning: %v", err)
	}

	// Create services
	enricher, err := service.NewEnrichmentService(
		promptRepo,
		aiProvider.UseCaseGenerator(),
		aiProvider.Embedder(),
		cfg.EnrichWorkers,
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create enrichment service: %v", err)
	}
	defer enricher.Close()

	promptService := service.NewPromptService(promptRepo, categoryRepo, enricher, logger)
	categoryService := service.NewCategoryService(categoryRepo, txManager, logger)
	searchService := service.NewSearchService(promptRepo, aiProvider.QueryExpander(), aiProvider.Embedder(), searchTuning, logger)
	betaService := service.NewBetaService(betaRepo, logger)

	// Create handlers
	healthHandler := handler.NewHealthHandler(pool)
	promptHandler := handler.NewPromptHandler(promptService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	searchHandler := handler.NewSearchHandler(searchService, enricher, logger)
	betaHandler := handler.NewBetaHandler(betaService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Prompt routes. Search and backfill register before {id} so the literal
	// segments win.
	mux.HandleFunc("GET /api/prompts", promptHandler.List)
	mux.HandleFunc("POST /api/prompts", promptHandler.Create)
	mux.HandleFunc("POST /api/prompts/search", searchHandler.Search)
	mux.HandleFunc("POST /api/prompts/backfill", searchHandler.Backfill)
	mux.HandleFunc("GET /api/prompts/{id}", promptHandler.Get)
	mux.HandleFunc("PATCH /api/prompts/{id}", promptHandler.Update)
	mux.HandleFunc("DELETE /api/prompts/{id}", promptHandler.Delete)

	// Category routes
	mux.HandleFunc("GET /api/categories", categoryHandler.List)
	mux.HandleFunc("POST /api/categories", categoryHandler.Create)
	mux.HandleFunc("PATCH /api/categories/{id}", categoryHandler.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.Delete)

	// Beta access routes
	mux.HandleFunc("POST /api/beta/validate", betaHandler.Validate)
	mux.HandleFunc("GET /api/beta/status", betaHandler.Status)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // backfill runs on the request
		IdleTimeout:  60 * time.Second,
	}

	// Serve until signalled, then drain
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
