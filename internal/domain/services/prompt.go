package services

import (
	"context"

	"promptdeck/internal/domain/models"
)

// CreatePromptRequest carries validated-on-entry create input.
type CreatePromptRequest struct {
	UserID     string  `json:"-"`
	Name       string  `json:"name"`
	Content    string  `json:"content"`
	CategoryID *string `json:"category_id"`
}

// UpdatePromptRequest carries update input. CategoryIDSet distinguishes
// "field absent" (leave unchanged) from "explicit null" (detach).
type UpdatePromptRequest struct {
	UserID        string
	Name          string
	Content       string
	CategoryID    *string
	CategoryIDSet bool
}

// PromptService owns prompt CRUD plus the best-effort enrichment side effect.
// Enrichment failures never fail the primary write.
type PromptService interface {
	CreatePrompt(ctx context.Context, req *CreatePromptRequest) (*models.Prompt, error)
	GetPrompt(ctx context.Context, id, userID string) (*models.Prompt, error)
	ListPrompts(ctx context.Context, userID string) ([]models.Prompt, error)
	UpdatePrompt(ctx context.Context, id string, req *UpdatePromptRequest) (*models.Prompt, error)
	DeletePrompt(ctx context.Context, id, userID string) error
}
