package handler

import (
	"log/slog"
	"net/http"

	"promptdeck/internal/domain/services"
	"promptdeck/internal/httputil"
)

// PromptHandler serves the prompt CRUD endpoints.
type PromptHandler struct {
	prompts services.PromptService
	logger  *slog.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(prompts services.PromptService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{prompts: prompts, logger: logger}
}

type createPromptBody struct {
	Name       string  `json:"name"`
	Content    string  `json:"content"`
	CategoryID *string `json:"category_id"`
}

type updatePromptBody struct {
	Name       string                  `json:"name"`
	Content    string                  `json:"content"`
	CategoryID httputil.OptionalString `json:"category_id"`
}

// Create handles POST /api/prompts
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body createPromptBody
	if !parseBody(w, r, &body) {
		return
	}

	prompt, err := h.prompts.CreatePrompt(r.Context(), &services.CreatePromptRequest{
		UserID:     userID,
		Name:       body.Name,
		Content:    body.Content,
		CategoryID: body.CategoryID,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, prompt)
}

// List handles GET /api/prompts
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	prompts, err := h.prompts.ListPrompts(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompts)
}

// Get handles GET /api/prompts/{id}
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	prompt, err := h.prompts.GetPrompt(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// Update handles PATCH /api/prompts/{id}
func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body updatePromptBody
	if !parseBody(w, r, &body) {
		return
	}

	prompt, err := h.prompts.UpdatePrompt(r.Context(), r.PathValue("id"), &services.UpdatePromptRequest{
		UserID:        userID,
		Name:          body.Name,
		Content:       body.Content,
		CategoryID:    body.CategoryID.Value,
		CategoryIDSet: body.CategoryID.Present,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// Delete handles DELETE /api/prompts/{id}
func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.prompts.DeletePrompt(r.Context(), r.PathValue("id"), userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
