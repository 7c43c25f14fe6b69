package services

import (
	"context"

	"promptdeck/internal/domain/models"
)

// CreateCategoryRequest carries category create input.
type CreateCategoryRequest struct {
	UserID string `json:"-"`
	Name   string `json:"name"`
}

// UpdateCategoryRequest carries category rename input.
type UpdateCategoryRequest struct {
	UserID string `json:"-"`
	Name   string `json:"name"`
}

// CategoryService owns category CRUD. Names are unique per owner; deleting a
// category leaves its prompts uncategorized.
type CategoryService interface {
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id, userID string) error
}
