package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
	"promptdeck/internal/domain/services"
)

// fakePromptRepo is an in-memory PromptRepository. SimilaritySearch delegates
// to similarityFn when set so each test controls the ranked results, and
// returns no matches otherwise.
type fakePromptRepo struct {
	mu      sync.Mutex
	prompts map[string]*models.Prompt

	similarityFn func(userID string, queryEmbedding []float32, threshold float64, limit int) ([]models.SearchResult, error)
	listErr      error
}

func newFakePromptRepo() *fakePromptRepo {
	return &fakePromptRepo{prompts: map[string]*models.Prompt{}}
}

func (f *fakePromptRepo) Create(ctx context.Context, prompt *models.Prompt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *prompt
	f.prompts[prompt.ID] = &clone
	return nil
}

func (f *fakePromptRepo) GetByID(ctx context.Context, id, userID string) (*models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prompt, ok := f.prompts[id]
	if !ok || prompt.UserID != userID {
		return nil, fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}
	clone := *prompt
	return &clone, nil
}

func (f *fakePromptRepo) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Prompt{}
	for _, prompt := range f.prompts {
		if prompt.UserID == userID {
			out = append(out, *prompt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePromptRepo) Update(ctx context.Context, prompt *models.Prompt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.prompts[prompt.ID]
	if !ok || existing.UserID != prompt.UserID {
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, prompt.ID)
	}
	clone := *prompt
	clone.Embedding = nil
	clone.UseCases = nil
	f.prompts[prompt.ID] = &clone
	return nil
}

func (f *fakePromptRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.prompts[id]
	if !ok || existing.UserID != userID {
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}
	delete(f.prompts, id)
	return nil
}

func (f *fakePromptRepo) StoreEnrichment(ctx context.Context, id, userID string, enrichment *repositories.PromptEnrichment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.prompts[id]
	if !ok || existing.UserID != userID {
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}
	existing.Embedding = enrichment.Embedding
	existing.UseCases = enrichment.UseCases
	return nil
}

func (f *fakePromptRepo) ListMissingEmbeddings(ctx context.Context, userID string, limit int) ([]models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Prompt{}
	for _, prompt := range f.prompts {
		if prompt.UserID == userID && len(prompt.Embedding) == 0 {
			out = append(out, *prompt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePromptRepo) SimilaritySearch(ctx context.Context, userID string, queryEmbedding []float32, threshold float64, limit int) ([]models.SearchResult, error) {
	if f.similarityFn != nil {
		return f.similarityFn(userID, queryEmbedding, threshold, limit)
	}
	return []models.SearchResult{}, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository.
type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*models.Category{}}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.categories {
		if existing.UserID == category.UserID && strings.EqualFold(existing.Name, category.Name) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category %q already exists", category.Name),
				ResourceType: "category",
				ResourceID:   existing.ID,
			}
		}
	}
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id, userID string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[id]
	if !ok || category.UserID != userID {
		return nil, fmt.Errorf("%w: category %s", domain.ErrNotFound, id)
	}
	clone := *category
	return &clone, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context, userID string) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Category{}
	for _, category := range f.categories {
		if category.UserID == userID {
			out = append(out, *category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return fmt.Errorf("%w: category %s", domain.ErrNotFound, category.ID)
	}
	existing.Name = category.Name
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.categories[id]
	if !ok || existing.UserID != userID {
		return fmt.Errorf("%w: category %s", domain.ErrNotFound, id)
	}
	delete(f.categories, id)
	return nil
}

// fakeTxManager runs the function without a real transaction.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.calls++
	return fn(ctx)
}

// fakeBetaRepo is an in-memory BetaCodeRepository.
type fakeBetaRepo struct {
	mu    sync.Mutex
	codes map[string]*models.BetaCode
}

func newFakeBetaRepo() *fakeBetaRepo {
	return &fakeBetaRepo{codes: map[string]*models.BetaCode{}}
}

func (f *fakeBetaRepo) CreateBatch(ctx context.Context, codes []models.BetaCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range codes {
		clone := codes[i]
		f.codes[clone.ID] = &clone
	}
	return nil
}

func (f *fakeBetaRepo) GetByCode(ctx context.Context, code string) (*models.BetaCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.codes {
		if record.Code == code {
			clone := *record
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: beta code", domain.ErrNotFound)
}

func (f *fakeBetaRepo) GetRedeemedBy(ctx context.Context, userID string) (*models.BetaCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.codes {
		if record.UsedBy != nil && *record.UsedBy == userID {
			clone := *record
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: beta code", domain.ErrNotFound)
}

func (f *fakeBetaRepo) Redeem(ctx context.Context, id, userID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.codes[id]
	if !ok {
		return fmt.Errorf("%w: beta code", domain.ErrNotFound)
	}
	if record.IsUsed {
		return fmt.Errorf("%w: beta code already redeemed", domain.ErrConflict)
	}
	record.IsUsed = true
	record.UsedBy = &userID
	record.UsedAt = &at
	return nil
}

// fakeEnricher records scheduled prompts without running anything.
type fakeEnricher struct {
	mu        sync.Mutex
	scheduled []string
}

func (f *fakeEnricher) Schedule(prompt *models.Prompt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, prompt.ID)
}

func (f *fakeEnricher) Backfill(ctx context.Context, userID string) (*services.BackfillReport, error) {
	return &services.BackfillReport{}, nil
}

func (f *fakeEnricher) Close() {}

func (f *fakeEnricher) scheduledCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scheduled)
}
