package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"promptdeck/internal/domain"
	"promptdeck/internal/domain/services"
	"promptdeck/internal/httputil"
)

// SearchHandler serves the semantic search and backfill endpoints.
type SearchHandler struct {
	search   services.SearchService
	enricher services.EnrichmentService
	logger   *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search services.SearchService, enricher services.EnrichmentService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{search: search, enricher: enricher, logger: logger}
}

type searchBody struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
	Mode  string `json:"mode"`
}

// Search handles POST /api/prompts/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body searchBody
	if !parseBody(w, r, &body) {
		return
	}

	results, err := h.search.Search(r.Context(), &services.SearchRequest{
		UserID: userID,
		Query:  body.Query,
		Limit:  body.Limit,
		Mode:   services.SearchMode(body.Mode),
	})
	if err != nil {
		respondSearchError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"prompts": results})
}

// respondSearchError keeps the search endpoint's codes specific: bad queries
// are INVALID_QUERY, typed failures keep their own codes, and anything else
// becomes SEARCH_FAILED rather than a bare internal error.
func respondSearchError(w http.ResponseWriter, err error) {
	var (
		rankerErr   *domain.RankerError
		upstreamErr *domain.UpstreamError
		configErr   *domain.ConfigError
	)

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error(), "")
	case errors.As(err, &rankerErr), errors.As(err, &upstreamErr), errors.As(err, &configErr):
		handleError(w, err)
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "SEARCH_FAILED",
			"search failed", "Try again shortly.")
	}
}

// Backfill handles POST /api/prompts/backfill. It runs synchronously on the
// request: the caller is an administrative client that wants the report.
func (h *SearchHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	report, err := h.enricher.Backfill(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}
