package services

import (
	"context"

	"promptdeck/internal/domain/models"
)

// SearchMode selects between semantic ranking and plain name filtering.
type SearchMode string

const (
	// SearchModeSemantic expands the query, embeds it and ranks by vector
	// similarity.
	SearchModeSemantic SearchMode = "semantic"

	// SearchModeText is the fallback: case-insensitive substring match on
	// prompt names, stored order preserved, no scoring.
	SearchModeText SearchMode = "text"
)

// SearchRequest is one search invocation. Limit <= 0 means the tuned default
// in semantic mode and no cutoff at all in text mode, which filters rather
// than ranks.
type SearchRequest struct {
	UserID string
	Query  string
	Limit  int
	Mode   SearchMode
}

// SearchService runs the search pipeline: expand -> embed -> rank -> present.
// Expansion failures fall back to the raw query; embedding and ranking
// failures surface as typed errors.
type SearchService interface {
	Search(ctx context.Context, req *SearchRequest) ([]models.SearchResult, error)
}
