package repositories

import (
	"context"

	"promptdeck/internal/domain/models"
)

// PromptEnrichment is the best-effort payload written back after model calls.
// A nil Embedding or UseCases clears the column rather than preserving it:
// enrichment is regenerated wholesale on every write.
type PromptEnrichment struct {
	Embedding []float32
	UseCases  *string
}

// PromptRepository persists prompts. Every operation is scoped by owner;
// implementations must never return or mutate another user's rows.
type PromptRepository interface {
	// Create inserts a new prompt. The embedding and use-cases columns start
	// NULL; enrichment arrives later via StoreEnrichment.
	Create(ctx context.Context, prompt *models.Prompt) error

	// GetByID returns the prompt or domain.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Prompt, error)

	// List returns all of the user's prompts ordered by creation time
	// descending.
	List(ctx context.Context, userID string) ([]models.Prompt, error)

	// Update rewrites name, content and category. Enrichment columns are
	// cleared; the enrichment task repopulates them.
	Update(ctx context.Context, prompt *models.Prompt) error

	// Delete removes the prompt or returns domain.ErrNotFound.
	Delete(ctx context.Context, id, userID string) error

	// StoreEnrichment writes the embedding and use-cases for a prompt.
	// Owner-scoped like everything else.
	StoreEnrichment(ctx context.Context, id, userID string, enrichment *PromptEnrichment) error

	// ListMissingEmbeddings returns up to limit prompts of the user that
	// have no stored embedding, oldest first. Used by the backfill job.
	ListMissingEmbeddings(ctx context.Context, userID string, limit int) ([]models.Prompt, error)

	// SimilaritySearch invokes the server-side match_prompts function:
	// results are the caller's own prompts with similarity >= threshold,
	// ordered by descending similarity, truncated to limit. A missing or
	// misconfigured function surfaces as *domain.RankerError, never as an
	// empty result set.
	SimilaritySearch(ctx context.Context, userID string, queryEmbedding []float32, threshold float64, limit int) ([]models.SearchResult, error)
}
