package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"promptdeck/internal/config"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
	"promptdeck/internal/domain/services"
)

type promptService struct {
	promptRepo   repositories.PromptRepository
	categoryRepo repositories.CategoryRepository
	enricher     services.EnrichmentService
	logger       *slog.Logger
}

// NewPromptService creates a new prompt service
func NewPromptService(
	promptRepo repositories.PromptRepository,
	categoryRepo repositories.CategoryRepository,
	enricher services.EnrichmentService,
	logger *slog.Logger,
) services.PromptService {
	return &promptService{
		promptRepo:   promptRepo,
		categoryRepo: categoryRepo,
		enricher:     enricher,
		logger:       logger,
	}
}

// CreatePrompt validates and stores a new prompt, then schedules enrichment.
func (s *promptService) CreatePrompt(ctx context.Context, req *services.CreatePromptRequest) (*models.Prompt, error) {
	req.Name = sanitizeText(req.Name)
	req.Content = sanitizeText(req.Content)

	if err := s.validateFields(req.Name, req.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for uncategorized prompts
	if req.CategoryID != nil && *req.CategoryID == "" {
		req.CategoryID = nil
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID, req.UserID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	prompt := &models.Prompt{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		Name:       req.Name,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	// Off the request path; failure leaves the embedding NULL and the
	// backfill job picks it up later.
	s.enricher.Schedule(prompt)

	s.logger.Info("prompt created", "prompt_id", prompt.ID, "user_id", prompt.UserID)
	return prompt, nil
}

// GetPrompt returns a single prompt owned by the user.
func (s *promptService) GetPrompt(ctx context.Context, id, userID string) (*models.Prompt, error) {
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.promptRepo.GetByID(ctx, id, userID)
}

// ListPrompts returns all of the user's prompts, newest first.
func (s *promptService) ListPrompts(ctx context.Context, userID string) ([]models.Prompt, error) {
	return s.promptRepo.List(ctx, userID)
}

// UpdatePrompt rewrites a prompt's editable fields and re-enriches it.
func (s *promptService) UpdatePrompt(ctx context.Context, id string, req *services.UpdatePromptRequest) (*models.Prompt, error) {
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	req.Name = sanitizeText(req.Name)
	req.Content = sanitizeText(req.Content)

	if err := s.validateFields(req.Name, req.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.promptRepo.GetByID(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	categoryID := existing.CategoryID
	if req.CategoryIDSet {
		categoryID = req.CategoryID
		if categoryID != nil && *categoryID == "" {
			categoryID = nil
		}
		if categoryID != nil {
			if err := s.checkCategory(ctx, *categoryID, req.UserID); err != nil {
				return nil, err
			}
		}
	}

	updated := &models.Prompt{
		ID:         existing.ID,
		UserID:     existing.UserID,
		Name:       req.Name,
		Content:    req.Content,
		CategoryID: categoryID,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  time.Now().UTC(),
	}

	if err := s.promptRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	// Content changed, so the stored embedding is stale; regenerate.
	s.enricher.Schedule(updated)

	s.logger.Info("prompt updated", "prompt_id", updated.ID, "user_id", updated.UserID)
	return updated, nil
}

// DeletePrompt removes a prompt owned by the user.
func (s *promptService) DeletePrompt(ctx context.Context, id, userID string) error {
	if err := validateID(id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.promptRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("prompt deleted", "prompt_id", id, "user_id", userID)
	return nil
}

func (s *promptService) validateFields(name, content string) error {
	return validation.Errors{
		"name": validation.Validate(name,
			validation.Required,
			validation.Length(1, config.MaxPromptNameLength),
		),
		"content": validation.Validate(content,
			validation.Required,
			validation.Length(1, config.MaxPromptContentLength),
		),
	}.Filter()
}

// checkCategory verifies the referenced category exists and belongs to the
// user. A foreign key would catch nonexistence, but not cross-user
// references, since categories are only unique per owner.
func (s *promptService) checkCategory(ctx context.Context, categoryID, userID string) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: category does not exist", domain.ErrValidation)
		}
		return err
	}
	return nil
}

func validateID(id string) error {
	return validation.Validate(id, validation.Required, validation.Length(1, 64))
}

// sanitizeText trims whitespace and strips control characters that would
// corrupt log lines or embedding inputs. Newlines and tabs survive.
func sanitizeText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(cleaned)
}
