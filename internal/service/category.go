package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"promptdeck/internal/config"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
	"promptdeck/internal/domain/services"
)

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateCategory validates and stores a new category.
func (s *categoryService) CreateCategory(ctx context.Context, req *services.CreateCategoryRequest) (*models.Category, error) {
	req.Name = sanitizeText(req.Name)
	if err := s.validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category := &models.Category{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID, "user_id", category.UserID)
	return category, nil
}

// ListCategories returns the user's categories ordered by name.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	return s.categoryRepo.List(ctx, userID)
}

// UpdateCategory renames a category.
func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *services.UpdateCategoryRequest) (*models.Category, error) {
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	req.Name = sanitizeText(req.Name)
	if err := s.validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.categoryRepo.GetByID(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	if err := s.categoryRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info("category updated", "category_id", id, "user_id", req.UserID)
	return existing, nil
}

// DeleteCategory removes a category and detaches its prompts in one
// transaction, so no prompt ever points at a deleted category.
func (s *categoryService) DeleteCategory(ctx context.Context, id, userID string) error {
	if err := validateID(id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.categoryRepo.Delete(txCtx, id, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}

func (s *categoryService) validateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxCategoryNameLength),
	)
}
