package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"promptdeck/internal/ai"
	"promptdeck/internal/config"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
	"promptdeck/internal/domain/services"
	"promptdeck/internal/tuning"
)

type searchService struct {
	promptRepo repositories.PromptRepository
	expander   ai.QueryExpander
	embedder   ai.Embedder
	search     *tuning.Search
	logger     *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	promptRepo repositories.PromptRepository,
	expander ai.QueryExpander,
	embedder ai.Embedder,
	search *tuning.Search,
	logger *slog.Logger,
) services.SearchService {
	return &searchService{
		promptRepo: promptRepo,
		expander:   expander,
		embedder:   embedder,
		search:     search,
		logger:     logger,
	}
}

// Search runs the pipeline: expand the query, embed it, rank against the
// user's stored prompts, then attach display percentages. Text mode skips
// all model calls and does plain name filtering.
func (s *searchService) Search(ctx context.Context, req *services.SearchRequest) ([]models.SearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrValidation)
	}

	limit := req.Limit
	if limit > config.MaxSearchLimit {
		limit = config.MaxSearchLimit
	}

	switch req.Mode {
	case services.SearchModeText:
		// Text mode is a filter, not a ranking: without an explicit limit it
		// returns every match. The tuned default cutoff only makes sense for
		// scored results.
		return s.textSearch(ctx, req.UserID, query, limit)
	case services.SearchModeSemantic, "":
		if limit <= 0 {
			limit = s.search.DefaultLimit
		}
		return s.semanticSearch(ctx, req.UserID, query, limit)
	default:
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrValidation, req.Mode)
	}
}

func (s *searchService) semanticSearch(ctx context.Context, userID, query string, limit int) ([]models.SearchResult, error) {
	embeddingInput := query
	expanded, err := s.expander.ExpandQuery(ctx, query)
	if err != nil {
		// Expansion improves recall but is never required; embed the raw
		// query instead.
		s.logger.Warn("query expansion failed, using raw query", "error", err)
	} else if strings.TrimSpace(expanded) != "" {
		embeddingInput = expanded
	}

	queryEmbedding, err := s.embedder.EmbedText(ctx, embeddingInput)
	if err != nil {
		return nil, err
	}

	results, err := s.promptRepo.SimilaritySearch(ctx, userID, queryEmbedding, s.search.MatchThreshold, limit)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].MatchPercent = s.search.MatchPercent(results[i].Similarity)
	}

	s.logger.Debug("semantic search completed",
		"user_id", userID,
		"results", len(results),
		"expanded", embeddingInput != query,
	)
	return results, nil
}

// textSearch is the no-model fallback: case-insensitive substring match on
// prompt names, stored order preserved, no scores attached. A limit <= 0
// means no cutoff.
func (s *searchService) textSearch(ctx context.Context, userID, query string, limit int) ([]models.SearchResult, error) {
	prompts, err := s.promptRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []models.SearchResult{}
	for _, prompt := range prompts {
		if !strings.Contains(strings.ToLower(prompt.Name), needle) {
			continue
		}
		results = append(results, models.SearchResult{Prompt: prompt})
		if limit > 0 && len(results) >= limit {
			break
		}
	}

	return results, nil
}
