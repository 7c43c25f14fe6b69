package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"promptdeck/internal/ai"
)

// EnsureSchema creates the tables, indexes and the match_prompts function
// for the configured prefix. All statements are idempotent, so the seed
// command can run repeatedly.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				name VARCHAR(50) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (user_id, name)
			)`, tables.Categories),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				name VARCHAR(100) NOT NULL,
				content TEXT NOT NULL,
				category_id UUID REFERENCES %s(id) ON DELETE SET NULL,
				embedding VECTOR(%d),
				use_cases TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, tables.Prompts, tables.Categories, ai.EmbeddingDimensions),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_id_idx ON %s (user_id, created_at DESC)`,
			tables.Prompts, tables.Prompts),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				code TEXT NOT NULL UNIQUE,
				is_used BOOLEAN NOT NULL DEFAULT false,
				used_by TEXT,
				used_at TIMESTAMPTZ,
				expires_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, tables.BetaCodes),

		// The ranking function: cosine similarity against the caller's own
		// prompts, thresholded, ordered, truncated. Rows without an
		// embedding simply never match.
		fmt.Sprintf(`
			CREATE OR REPLACE FUNCTION %s(
				query_embedding VECTOR(%d),
				match_threshold FLOAT,
				match_count INT,
				owner TEXT
			)
			RETURNS TABLE (
				id UUID,
				user_id TEXT,
				name VARCHAR(100),
				content TEXT,
				category_id UUID,
				use_cases TEXT,
				created_at TIMESTAMPTZ,
				updated_at TIMESTAMPTZ,
				similarity FLOAT
			)
			LANGUAGE sql STABLE
			AS $$
				SELECT p.id, p.user_id, p.name, p.content, p.category_id,
				       p.use_cases, p.created_at, p.updated_at,
				       1 - (p.embedding <=> query_embedding) AS similarity
				FROM %s p
				WHERE p.user_id = owner
				  AND p.embedding IS NOT NULL
				  AND 1 - (p.embedding <=> query_embedding) >= match_threshold
				ORDER BY similarity DESC
				LIMIT match_count
			$$`, tables.MatchPrompts, ai.EmbeddingDimensions, tables.Prompts),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

// DropSchema removes every promptdeck object for the prefix. Destructive;
// the seed command refuses to run it in prod.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`DROP FUNCTION IF EXISTS %s`, tables.MatchPrompts),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Prompts),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Categories),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.BetaCodes),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}

	return nil
}
