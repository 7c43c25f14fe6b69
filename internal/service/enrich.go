package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/panjf2000/ants/v2"
	"promptdeck/internal/ai"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
	"promptdeck/internal/domain/services"
)

const (
	// enrichTimeout bounds one enrichment task: two model calls plus one
	// database write.
	enrichTimeout = 60 * time.Second

	// backfillRetries is how many times a rate-limited model call is retried
	// before the row is recorded as a failure and skipped.
	backfillRetries = 3
)

var (
	// backfillBatchSize is how many NULL-embedding rows the backfill job
	// fetches per pass. Variable so tests can force multi-pass runs.
	backfillBatchSize = 100

	// backfillRetryDelay is the base backoff between rate-limit retries.
	// Variable so tests do not sleep through real backoff windows.
	backfillRetryDelay = 2 * time.Second
)

type enrichmentService struct {
	promptRepo repositories.PromptRepository
	generator  ai.UseCaseGenerator
	embedder   ai.Embedder
	pool       *ants.Pool
	logger     *slog.Logger
}

// NewEnrichmentService creates the enrichment service backed by a bounded
// worker pool. Workers controls how many prompts enrich concurrently; model
// providers rate-limit aggressively, so keep it small.
func NewEnrichmentService(
	promptRepo repositories.PromptRepository,
	generator ai.UseCaseGenerator,
	embedder ai.Embedder,
	workers int,
	logger *slog.Logger,
) (services.EnrichmentService, error) {
	pool, err := ants.NewPool(workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("create enrichment pool: %w", err)
	}

	return &enrichmentService{
		promptRepo: promptRepo,
		generator:  generator,
		embedder:   embedder,
		pool:       pool,
		logger:     logger,
	}, nil
}

// Schedule queues enrichment for a prompt. The caller's request never waits
// on model calls; failures are logged and the row stays un-embedded until
// the next write or a backfill run.
func (s *enrichmentService) Schedule(prompt *models.Prompt) {
	// Copy what the task needs; the caller may mutate the prompt after
	// Schedule returns.
	snapshot := *prompt

	err := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
		defer cancel()

		if err := s.enrichOne(ctx, &snapshot); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Deleted while enrichment was in flight.
				return
			}
			s.logger.Warn("prompt enrichment failed",
				"prompt_id", snapshot.ID,
				"user_id", snapshot.UserID,
				"error", err,
			)
		}
	})
	if err != nil {
		s.logger.Warn("enrichment not scheduled", "prompt_id", prompt.ID, "error", err)
	}
}

// Backfill walks the user's prompts that have no stored embedding and
// enriches them one at a time. Rate-limited calls are retried with backoff;
// other failures are recorded and the pass moves on. Safe to re-run: it only
// ever selects rows that still have a NULL embedding.
func (s *enrichmentService) Backfill(ctx context.Context, userID string) (*services.BackfillReport, error) {
	report := &services.BackfillReport{}

	// Rows that failed enrichment still have a NULL embedding and get
	// selected again on later passes; remember them so each row is counted
	// and reported at most once per run.
	failed := map[string]bool{}

	for {
		prompts, err := s.promptRepo.ListMissingEmbeddings(ctx, userID, backfillBatchSize)
		if err != nil {
			return nil, err
		}
		if len(prompts) == 0 {
			return report, nil
		}

		updatedThisPass := 0
		for i := range prompts {
			prompt := &prompts[i]
			if failed[prompt.ID] {
				continue
			}
			report.Total++

			err := retry.Do(
				func() error { return s.enrichOne(ctx, prompt) },
				retry.Context(ctx),
				retry.Attempts(backfillRetries),
				retry.Delay(backfillRetryDelay),
				retry.DelayType(retry.BackOffDelay),
				retry.LastErrorOnly(true),
				retry.RetryIf(isRateLimited),
			)
			switch {
			case err == nil:
				report.Updated++
				updatedThisPass++
			case errors.Is(err, domain.ErrNotFound):
				// Deleted mid-run; not a failure.
			case ctx.Err() != nil:
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", prompt.ID, err))
				return report, ctx.Err()
			default:
				s.logger.Warn("backfill enrichment failed", "prompt_id", prompt.ID, "error", err)
				failed[prompt.ID] = true
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", prompt.ID, err))
			}
		}

		// Stop once a pass produces no updates; anything still selected is in
		// the failed set.
		if updatedThisPass == 0 || len(prompts) < backfillBatchSize {
			return report, nil
		}
	}
}

// Close drains the worker pool. In-flight tasks finish; queued tasks run.
func (s *enrichmentService) Close() {
	s.pool.Release()
}

// enrichOne generates the use-cases blurb and the embedding for a prompt and
// writes both back. The blurb is best-effort: if generation fails the
// embedding is still produced from name and content alone.
func (s *enrichmentService) enrichOne(ctx context.Context, prompt *models.Prompt) error {
	var useCases *string
	text, err := s.generator.GenerateUseCases(ctx, prompt.Name, prompt.Content)
	if err != nil {
		s.logger.Debug("use-case generation failed", "prompt_id", prompt.ID, "error", err)
	} else if text != "" {
		useCases = &text
	}

	embedding, err := s.embedder.EmbedText(ctx, ai.EmbeddingText(prompt.Name, prompt.Content, useCases))
	if err != nil {
		return err
	}

	return s.promptRepo.StoreEnrichment(ctx, prompt.ID, prompt.UserID, &repositories.PromptEnrichment{
		Embedding: embedding,
		UseCases:  useCases,
	})
}

func isRateLimited(err error) bool {
	var upstream *domain.UpstreamError
	return errors.As(err, &upstream) && upstream.Kind == domain.UpstreamRateLimit
}
