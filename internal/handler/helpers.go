package handler

import (
	"errors"
	"net/http"

	"promptdeck/internal/domain"
	"promptdeck/internal/httputil"
)

// handleError converts domain errors to coded HTTP responses. Every error
// that can reach a handler has a branch here; anything unrecognized becomes
// an opaque 500.
func handleError(w http.ResponseWriter, err error) {
	var (
		conflictErr *domain.ConflictError
		configErr   *domain.ConfigError
		upstreamErr *domain.UpstreamError
		rankerErr   *domain.RankerError
	)

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), "")
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), "")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Unauthorized", "Sign in and try again.")
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, "CONFLICT", conflictErr.Error(), "")
	case errors.As(err, &configErr):
		httputil.RespondError(w, http.StatusInternalServerError, configErr.Code, configErr.Message, configErr.Hint)
	case errors.As(err, &rankerErr):
		httputil.RespondError(w, http.StatusInternalServerError, rankerErr.Code, rankerErr.Message, rankerErr.Hint)
	case errors.As(err, &upstreamErr):
		respondUpstreamError(w, upstreamErr)
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", "")
	}
}

// respondUpstreamError maps model-provider failures. Auth failures are a
// deployment problem and say so; rate limits tell the caller to retry.
func respondUpstreamError(w http.ResponseWriter, err *domain.UpstreamError) {
	switch err.Kind {
	case domain.UpstreamAuth:
		httputil.RespondError(w, http.StatusInternalServerError, "OPENAI_AUTH_FAILED",
			"the embedding provider rejected this deployment's credentials",
			"Check the OPENAI_API_KEY environment variable.")
	case domain.UpstreamRateLimit:
		httputil.RespondError(w, http.StatusServiceUnavailable, "OPENAI_RATE_LIMITED",
			"the embedding provider is rate limiting requests",
			"Wait a moment and try again.")
	default:
		httputil.RespondError(w, http.StatusBadGateway, "OPENAI_ERROR",
			"the embedding provider returned an error", "Try again shortly.")
	}
}

// requireUserID pulls the authenticated user from the request context. The
// auth middleware guarantees it for /api/ routes; the guard covers handlers
// wired outside that chain by mistake.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Unauthorized", "Sign in and try again.")
		return "", false
	}
	return userID, true
}

// parseBody decodes a JSON request body or writes the INVALID_JSON error.
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", "")
		return false
	}
	return true
}
