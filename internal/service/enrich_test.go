package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"promptdeck/internal/ai"
	"promptdeck/internal/ai/mock"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
	"promptdeck/internal/domain/services"
)

func newEnricher(t *testing.T, repo *fakePromptRepo, generator *mock.UseCaseGenerator, embedder *mock.Embedder) services.EnrichmentService {
	t.Helper()
	enricher, err := NewEnrichmentService(repo, generator, embedder, 1, discardLogger())
	if err != nil {
		t.Fatalf("NewEnrichmentService() error = %v", err)
	}
	t.Cleanup(enricher.Close)
	return enricher
}

func seedPrompt(t *testing.T, repo *fakePromptRepo, id, userID string) *models.Prompt {
	t.Helper()
	prompt := &models.Prompt{
		ID:        id,
		UserID:    userID,
		Name:      "Prompt " + id,
		Content:   "content of " + id,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Create(context.Background(), prompt); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return prompt
}

func TestScheduleStoresEnrichment(t *testing.T) {
	repo := newFakePromptRepo()
	prompt := seedPrompt(t, repo, "p1", "u1")

	done := make(chan string, 1)
	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		done <- text
		return mock.DeterministicVector(text, 8), nil
	}

	enricher := newEnricher(t, repo, mock.NewUseCaseGenerator(), embedder)
	enricher.Schedule(prompt)

	var embedded string
	select {
	case embedded = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("enrichment task never ran")
	}

	wantUseCases := "use cases for Prompt p1"
	if want := ai.EmbeddingText(prompt.Name, prompt.Content, &wantUseCases); embedded != want {
		t.Errorf("embedded text = %q, want %q", embedded, want)
	}

	// The write happens after EmbedText returns; poll briefly.
	deadline := time.Now().Add(5 * time.Second)
	for {
		stored, err := repo.GetByID(context.Background(), "p1", "u1")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if stored.HasEmbedding() {
			if stored.UseCases == nil || *stored.UseCases != wantUseCases {
				t.Errorf("UseCases = %v, want %q", stored.UseCases, wantUseCases)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("enrichment never persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEnrichmentSurvivesUseCaseFailure(t *testing.T) {
	repo := newFakePromptRepo()
	seedPrompt(t, repo, "p1", "u1")

	generator := mock.NewUseCaseGenerator()
	generator.GenerateUseCasesFunc = func(ctx context.Context, name, content string) (string, error) {
		return "", fmt.Errorf("chat model down")
	}

	enricher := newEnricher(t, repo, generator, mock.NewEmbedder())

	report, err := enricher.Backfill(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("Updated = %d, want 1; the embedding must still be written", report.Updated)
	}

	stored, err := repo.GetByID(context.Background(), "p1", "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !stored.HasEmbedding() {
		t.Error("embedding missing after use-case generation failed")
	}
	if stored.UseCases != nil {
		t.Errorf("UseCases = %q, want nil", *stored.UseCases)
	}
}

func TestBackfillOnlyTouchesMissingRows(t *testing.T) {
	repo := newFakePromptRepo()
	seedPrompt(t, repo, "p1", "u1")
	enrichedAlready := seedPrompt(t, repo, "p2", "u1")
	if err := repo.StoreEnrichment(context.Background(), enrichedAlready.ID, "u1", &repositories.PromptEnrichment{
		Embedding: mock.DeterministicVector("p2", 8),
	}); err != nil {
		t.Fatalf("StoreEnrichment() error = %v", err)
	}
	seedPrompt(t, repo, "p3", "u2")

	enricher := newEnricher(t, repo, mock.NewUseCaseGenerator(), mock.NewEmbedder())

	report, err := enricher.Backfill(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if report.Total != 1 || report.Updated != 1 {
		t.Errorf("report = %+v, want Total=1 Updated=1", report)
	}

	// Second run finds nothing: backfill is idempotent.
	report, err = enricher.Backfill(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Backfill() second run error = %v", err)
	}
	if report.Total != 0 {
		t.Errorf("second run Total = %d, want 0", report.Total)
	}

	other, err := repo.GetByID(context.Background(), "p3", "u2")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if other.HasEmbedding() {
		t.Error("backfill crossed user boundaries")
	}
}

func TestBackfillRetriesRateLimits(t *testing.T) {
	oldDelay := backfillRetryDelay
	backfillRetryDelay = time.Millisecond
	defer func() { backfillRetryDelay = oldDelay }()

	repo := newFakePromptRepo()
	seedPrompt(t, repo, "p1", "u1")

	attempts := 0
	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		attempts++
		if attempts < 3 {
			return nil, &domain.UpstreamError{Service: "openai", Kind: domain.UpstreamRateLimit, Err: fmt.Errorf("429")}
		}
		return mock.DeterministicVector(text, 8), nil
	}

	enricher := newEnricher(t, repo, mock.NewUseCaseGenerator(), embedder)

	report, err := enricher.Backfill(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if report.Updated != 1 {
		t.Errorf("Updated = %d, want 1 after retries", report.Updated)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestBackfillRecordsNonRetryableFailures(t *testing.T) {
	repo := newFakePromptRepo()
	seedPrompt(t, repo, "p1", "u1")
	seedPrompt(t, repo, "p2", "u1")

	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == ai.EmbeddingText("Prompt p1", "content of p1", strPtr("use cases for Prompt p1")) {
			return nil, &domain.UpstreamError{Service: "openai", Kind: domain.UpstreamAuth, Err: fmt.Errorf("401")}
		}
		return mock.DeterministicVector(text, 8), nil
	}

	enricher := newEnricher(t, repo, mock.NewUseCaseGenerator(), embedder)

	report, err := enricher.Backfill(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if report.Total != 2 || report.Updated != 1 || len(report.Errors) != 1 {
		t.Errorf("report = %+v, want Total=2 Updated=1 one error", report)
	}
}

func TestBackfillCountsFailedRowsOncePerRun(t *testing.T) {
	oldBatch := backfillBatchSize
	backfillBatchSize = 2
	defer func() { backfillBatchSize = oldBatch }()

	repo := newFakePromptRepo()
	seedPrompt(t, repo, "p1", "u1")
	seedPrompt(t, repo, "p2", "u1")
	seedPrompt(t, repo, "p3", "u1")

	// p1 is the oldest row, so it lands in every batch until the run ends;
	// it must still show up exactly once in the report.
	provider := mock.NewProvider()
	provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if strings.Contains(text, "p1") {
			return nil, &domain.UpstreamError{Service: "openai", Kind: domain.UpstreamAuth, Err: fmt.Errorf("401")}
		}
		return mock.DeterministicVector(text, 8), nil
	}

	enricher, err := NewEnrichmentService(repo, provider.UseCaseGenerator(), provider.Embedder(), 1, discardLogger())
	if err != nil {
		t.Fatalf("NewEnrichmentService() error = %v", err)
	}
	t.Cleanup(enricher.Close)

	report, err := enricher.Backfill(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if report.Total != 3 || report.Updated != 2 {
		t.Errorf("report = %+v, want Total=3 Updated=2", report)
	}
	if len(report.Errors) != 1 {
		t.Errorf("len(Errors) = %d, want 1: %v", len(report.Errors), report.Errors)
	}
}

func strPtr(s string) *string { return &s }
