package services

import (
	"context"

	"promptdeck/internal/domain/models"
)

// BackfillReport summarizes one backfill run.
type BackfillReport struct {
	Total   int      `json:"total"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// EnrichmentService regenerates use-cases text and embeddings for prompts.
//
// Schedule is fire-and-forget: it runs off the request path and only logs
// failures. Backfill is the sequential administrative pass over rows with a
// NULL embedding; it is idempotent and safe to re-run after interruption.
type EnrichmentService interface {
	Schedule(prompt *models.Prompt)
	Backfill(ctx context.Context, userID string) (*BackfillReport, error)
	Close()
}
