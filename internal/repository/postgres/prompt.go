package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
)

// PostgresPromptRepository implements the PromptRepository interface
type PostgresPromptRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPromptRepository creates a new PostgresPromptRepository
func NewPromptRepository(config *RepositoryConfig) repositories.PromptRepository {
	return &PostgresPromptRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new prompt. Enrichment columns start NULL.
func (r *PostgresPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, content, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		prompt.ID,
		prompt.UserID,
		prompt.Name,
		prompt.Content,
		prompt.CategoryID,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: category does not exist", domain.ErrValidation)
		}
		return fmt.Errorf("create prompt: %w", err)
	}

	return nil
}

// GetByID retrieves a prompt scoped to its owner. The stored embedding is
// read back in text form so callers can tell whether semantic search covers
// this prompt.
func (r *PostgresPromptRepository) GetByID(ctx context.Context, id, userID string) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, content, category_id, embedding::text, use_cases, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Prompts)

	var prompt models.Prompt
	var embeddingText *string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&prompt.ID,
		&prompt.UserID,
		&prompt.Name,
		&prompt.Content,
		&prompt.CategoryID,
		&embeddingText,
		&prompt.UseCases,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get prompt: %w", err)
	}

	if embeddingText != nil {
		embedding, err := ParseVector(*embeddingText)
		if err != nil {
			return nil, fmt.Errorf("get prompt: %w", err)
		}
		prompt.Embedding = embedding
	}

	return &prompt, nil
}

// List returns the user's prompts, newest first. Embeddings are not loaded;
// list views never need them.
func (r *PostgresPromptRepository) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, content, category_id, use_cases, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		var prompt models.Prompt
		if err := rows.Scan(
			&prompt.ID,
			&prompt.UserID,
			&prompt.Name,
			&prompt.Content,
			&prompt.CategoryID,
			&prompt.UseCases,
			&prompt.CreatedAt,
			&prompt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	return prompts, nil
}

// Update rewrites the editable fields and clears enrichment; the async
// enrichment task repopulates embedding and use-cases afterwards.
func (r *PostgresPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, content = $2, category_id = $3,
		    embedding = NULL, use_cases = NULL, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		prompt.Name,
		prompt.Content,
		prompt.CategoryID,
		prompt.UpdatedAt,
		prompt.ID,
		prompt.UserID,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: category does not exist", domain.ErrValidation)
		}
		return fmt.Errorf("update prompt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, prompt.ID)
	}

	return nil
}

// Delete removes a prompt scoped to its owner.
func (r *PostgresPromptRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}

	return nil
}

// StoreEnrichment writes the generated embedding and use-cases text.
func (r *PostgresPromptRepository) StoreEnrichment(ctx context.Context, id, userID string, enrichment *repositories.PromptEnrichment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET embedding = $1::vector, use_cases = $2
		WHERE id = $3 AND user_id = $4
	`, r.tables.Prompts)

	var embeddingArg any
	if len(enrichment.Embedding) > 0 {
		embeddingArg = VectorLiteral(enrichment.Embedding)
	}

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, embeddingArg, enrichment.UseCases, id, userID)
	if err != nil {
		return fmt.Errorf("store enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// The prompt was deleted while enrichment was in flight; nothing to do.
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}

	return nil
}

// ListMissingEmbeddings returns up to limit of the user's prompts without a
// stored embedding, oldest first, for the sequential backfill job.
func (r *PostgresPromptRepository) ListMissingEmbeddings(ctx context.Context, userID string, limit int) ([]models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, content, category_id, use_cases, created_at, updated_at
		FROM %s
		WHERE user_id = $1 AND embedding IS NULL
		ORDER BY created_at ASC
		LIMIT $2
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list missing embeddings: %w", err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		var prompt models.Prompt
		if err := rows.Scan(
			&prompt.ID,
			&prompt.UserID,
			&prompt.Name,
			&prompt.Content,
			&prompt.CategoryID,
			&prompt.UseCases,
			&prompt.CreatedAt,
			&prompt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list missing embeddings: %w", err)
	}

	return prompts, nil
}

// SimilaritySearch calls the server-side match_prompts function. The
// function itself applies the threshold, ordering and limit; this side only
// maps rows and classifies misconfiguration errors.
func (r *PostgresPromptRepository) SimilaritySearch(ctx context.Context, userID string, queryEmbedding []float32, threshold float64, limit int) ([]models.SearchResult, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, content, category_id, use_cases, created_at, updated_at, similarity
		FROM %s($1::vector, $2, $3, $4)
	`, r.tables.MatchPrompts)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, VectorLiteral(queryEmbedding), threshold, limit, userID)
	if err != nil {
		return nil, r.classifyRankerError(err)
	}
	defer rows.Close()

	results := []models.SearchResult{}
	for rows.Next() {
		var result models.SearchResult
		if err := rows.Scan(
			&result.ID,
			&result.UserID,
			&result.Name,
			&result.Content,
			&result.CategoryID,
			&result.UseCases,
			&result.CreatedAt,
			&result.UpdatedAt,
			&result.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classifyRankerError(err)
	}

	return results, nil
}

// classifyRankerError separates "search is broken" from ordinary query
// failures so the surface error codes stay actionable.
func (r *PostgresPromptRepository) classifyRankerError(err error) error {
	switch {
	case IsPgUndefinedFunction(err):
		return &domain.RankerError{
			Code:    "MATCH_FUNCTION_MISSING",
			Message: fmt.Sprintf("similarity function %s was not found", r.tables.MatchPrompts),
			Hint:    "Run the seed command to install the match_prompts function, or check the table prefix.",
			Err:     err,
		}
	case IsPgUndefinedColumn(err):
		return &domain.RankerError{
			Code:    "SCHEMA_MISMATCH",
			Message: "semantic search is misconfigured: the match function references a missing column",
			Hint:    "Re-run the seed command so the match_prompts function matches the prompts table.",
			Err:     err,
		}
	default:
		return fmt.Errorf("similarity search: %w", err)
	}
}
