package handler

import (
	"log/slog"
	"net/http"

	"promptdeck/internal/domain/services"
	"promptdeck/internal/httputil"
)

// CategoryHandler serves the category CRUD endpoints.
type CategoryHandler struct {
	categories services.CategoryService
	logger     *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories services.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

type categoryBody struct {
	Name string `json:"name"`
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body categoryBody
	if !parseBody(w, r, &body) {
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), &services.CreateCategoryRequest{
		UserID: userID,
		Name:   body.Name,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, category)
}

// List handles GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	categories, err := h.categories.ListCategories(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, categories)
}

// Update handles PATCH /api/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body categoryBody
	if !parseBody(w, r, &body) {
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), r.PathValue("id"), &services.UpdateCategoryRequest{
		UserID: userID,
		Name:   body.Name,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), r.PathValue("id"), userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
