package repositories

import (
	"context"

	"promptdeck/internal/domain/models"
)

// CategoryRepository persists categories, owner-scoped.
type CategoryRepository interface {
	// Create inserts a category. A duplicate (user_id, name) pair returns
	// *domain.ConflictError.
	Create(ctx context.Context, category *models.Category) error

	// GetByID returns the category or domain.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Category, error)

	// List returns the user's categories ordered by name.
	List(ctx context.Context, userID string) ([]models.Category, error)

	// Update renames a category; duplicates return *domain.ConflictError.
	Update(ctx context.Context, category *models.Category) error

	// Delete removes the category and detaches its prompts
	// (category_id -> NULL) atomically. Affected prompts survive.
	Delete(ctx context.Context, id, userID string) error
}
