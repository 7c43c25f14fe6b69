package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"promptdeck/internal/config"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/services"
)

func newPromptService(t *testing.T) (services.PromptService, *fakePromptRepo, *fakeCategoryRepo, *fakeEnricher) {
	t.Helper()
	promptRepo := newFakePromptRepo()
	categoryRepo := newFakeCategoryRepo()
	enricher := &fakeEnricher{}
	svc := NewPromptService(promptRepo, categoryRepo, enricher, discardLogger())
	return svc, promptRepo, categoryRepo, enricher
}

func TestCreatePromptValidation(t *testing.T) {
	svc, _, _, _ := newPromptService(t)

	tests := []struct {
		name    string
		req     *services.CreatePromptRequest
		wantErr bool
	}{
		{
			name:    "valid",
			req:     &services.CreatePromptRequest{UserID: "u1", Name: "Blog Outline", Content: "Write an outline for..."},
			wantErr: false,
		},
		{
			name:    "empty name",
			req:     &services.CreatePromptRequest{UserID: "u1", Name: "", Content: "body"},
			wantErr: true,
		},
		{
			name:    "whitespace-only name",
			req:     &services.CreatePromptRequest{UserID: "u1", Name: "   ", Content: "body"},
			wantErr: true,
		},
		{
			name:    "empty content",
			req:     &services.CreatePromptRequest{UserID: "u1", Name: "n", Content: ""},
			wantErr: true,
		},
		{
			name:    "name too long",
			req:     &services.CreatePromptRequest{UserID: "u1", Name: strings.Repeat("a", config.MaxPromptNameLength+1), Content: "body"},
			wantErr: true,
		},
		{
			name:    "content too long",
			req:     &services.CreatePromptRequest{UserID: "u1", Name: "n", Content: strings.Repeat("a", config.MaxPromptContentLength+1)},
			wantErr: true,
		},
		{
			name:    "name at limit",
			req:     &services.CreatePromptRequest{UserID: "u1", Name: strings.Repeat("a", config.MaxPromptNameLength), Content: "body"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePrompt(context.Background(), tt.req)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("CreatePrompt() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("CreatePrompt() error = %v", err)
			}
		})
	}
}

func TestCreatePromptSanitizesInput(t *testing.T) {
	svc, _, _, _ := newPromptService(t)

	prompt, err := svc.CreatePrompt(context.Background(), &services.CreatePromptRequest{
		UserID:  "u1",
		Name:    "  My Prompt\x00  ",
		Content: "line one\nline\ttwo\x1b[31m",
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}
	if prompt.Name != "My Prompt" {
		t.Errorf("Name = %q, want control chars stripped and trimmed", prompt.Name)
	}
	if prompt.Content != "line one\nline\ttwo[31m" {
		t.Errorf("Content = %q, newline and tab must survive", prompt.Content)
	}
}

func TestCreatePromptSchedulesEnrichment(t *testing.T) {
	svc, repo, _, enricher := newPromptService(t)

	prompt, err := svc.CreatePrompt(context.Background(), &services.CreatePromptRequest{
		UserID:  "u1",
		Name:    "Cold Email",
		Content: "Write a cold email to...",
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}
	if enricher.scheduledCount() != 1 {
		t.Errorf("scheduled = %d, want 1", enricher.scheduledCount())
	}

	stored, err := repo.GetByID(context.Background(), prompt.ID, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.HasEmbedding() {
		t.Error("new prompt must start without an embedding")
	}
}

func TestCreatePromptRejectsForeignCategory(t *testing.T) {
	svc, _, categoryRepo, _ := newPromptService(t)

	other := &models.Category{ID: "c1", UserID: "other-user", Name: "Work", CreatedAt: time.Now()}
	if err := categoryRepo.Create(context.Background(), other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	categoryID := "c1"
	_, err := svc.CreatePrompt(context.Background(), &services.CreatePromptRequest{
		UserID:     "u1",
		Name:       "n",
		Content:    "c",
		CategoryID: &categoryID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("CreatePrompt() error = %v, want ErrValidation for another user's category", err)
	}
}

func TestCreatePromptEmptyCategoryMeansUncategorized(t *testing.T) {
	svc, _, _, _ := newPromptService(t)

	empty := ""
	prompt, err := svc.CreatePrompt(context.Background(), &services.CreatePromptRequest{
		UserID:     "u1",
		Name:       "n",
		Content:    "c",
		CategoryID: &empty,
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}
	if prompt.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil", *prompt.CategoryID)
	}
}

func TestUpdatePromptCategorySemantics(t *testing.T) {
	svc, repo, categoryRepo, _ := newPromptService(t)

	category := &models.Category{ID: "c1", UserID: "u1", Name: "Work", CreatedAt: time.Now()}
	if err := categoryRepo.Create(context.Background(), category); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	categoryID := "c1"
	created, err := svc.CreatePrompt(context.Background(), &services.CreatePromptRequest{
		UserID:     "u1",
		Name:       "n",
		Content:    "c",
		CategoryID: &categoryID,
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	// Field absent: category untouched.
	updated, err := svc.UpdatePrompt(context.Background(), created.ID, &services.UpdatePromptRequest{
		UserID:  "u1",
		Name:    "renamed",
		Content: "c2",
	})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if updated.CategoryID == nil || *updated.CategoryID != "c1" {
		t.Errorf("CategoryID = %v, want unchanged c1", updated.CategoryID)
	}

	// Explicit null: detach.
	updated, err = svc.UpdatePrompt(context.Background(), created.ID, &services.UpdatePromptRequest{
		UserID:        "u1",
		Name:          "renamed",
		Content:       "c2",
		CategoryID:    nil,
		CategoryIDSet: true,
	})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if updated.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil after explicit null", *updated.CategoryID)
	}

	stored, err := repo.GetByID(context.Background(), created.ID, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.CategoryID != nil {
		t.Error("detach did not persist")
	}
}

func TestUpdatePromptReschedulesEnrichment(t *testing.T) {
	svc, _, _, enricher := newPromptService(t)

	created, err := svc.CreatePrompt(context.Background(), &services.CreatePromptRequest{
		UserID: "u1", Name: "n", Content: "c",
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	if _, err := svc.UpdatePrompt(context.Background(), created.ID, &services.UpdatePromptRequest{
		UserID: "u1", Name: "n2", Content: "c2",
	}); err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}

	if enricher.scheduledCount() != 2 {
		t.Errorf("scheduled = %d, want 2 (create + update)", enricher.scheduledCount())
	}
}

func TestPromptOwnerScoping(t *testing.T) {
	svc, _, _, _ := newPromptService(t)

	created, err := svc.CreatePrompt(context.Background(), &services.CreatePromptRequest{
		UserID: "u1", Name: "n", Content: "c",
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	if _, err := svc.GetPrompt(context.Background(), created.ID, "u2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetPrompt() as other user error = %v, want ErrNotFound", err)
	}
	if err := svc.DeletePrompt(context.Background(), created.ID, "u2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeletePrompt() as other user error = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetPrompt(context.Background(), created.ID, "u1"); err != nil {
		t.Errorf("GetPrompt() as owner error = %v", err)
	}
}
