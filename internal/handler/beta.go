package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"promptdeck/internal/domain/services"
	"promptdeck/internal/httputil"
	"promptdeck/internal/service"
)

// BetaHandler serves the beta access endpoints.
type BetaHandler struct {
	beta   services.BetaService
	logger *slog.Logger
}

// NewBetaHandler creates a new beta handler
func NewBetaHandler(beta services.BetaService, logger *slog.Logger) *BetaHandler {
	return &BetaHandler{beta: beta, logger: logger}
}

type validateCodeBody struct {
	Code string `json:"code"`
}

// Validate handles POST /api/beta/validate
func (h *BetaHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body validateCodeBody
	if !parseBody(w, r, &body) {
		return
	}

	if err := h.beta.Redeem(r.Context(), userID, body.Code); err != nil {
		respondBetaError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// Status handles GET /api/beta/status
func (h *BetaHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	status, err := h.beta.Status(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, status)
}

// respondBetaError maps code-redemption failures to their specific error
// codes; the frontend shows a different message for each.
func respondBetaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBetaCodeMissing):
		httputil.RespondError(w, http.StatusBadRequest, service.ErrBetaCodeMissing.Code(), err.Error(), "")
	case errors.Is(err, service.ErrBetaCodeInvalid):
		httputil.RespondError(w, http.StatusNotFound, service.ErrBetaCodeInvalid.Code(), err.Error(), "")
	case errors.Is(err, service.ErrBetaCodeUsed):
		httputil.RespondError(w, http.StatusConflict, service.ErrBetaCodeUsed.Code(), err.Error(), "")
	case errors.Is(err, service.ErrBetaCodeExpired):
		httputil.RespondError(w, http.StatusGone, service.ErrBetaCodeExpired.Code(), err.Error(), "")
	default:
		handleError(w, err)
	}
}
