package repositories

import (
	"context"
	"time"

	"promptdeck/internal/domain/models"
)

// BetaCodeRepository persists beta access codes. Codes are global (not
// owner-scoped) until redeemed, at which point they bind to a user.
type BetaCodeRepository interface {
	// CreateBatch inserts generated codes.
	CreateBatch(ctx context.Context, codes []models.BetaCode) error

	// GetByCode returns the code record or domain.ErrNotFound.
	GetByCode(ctx context.Context, code string) (*models.BetaCode, error)

	// GetRedeemedBy returns the code a user redeemed, or domain.ErrNotFound.
	GetRedeemedBy(ctx context.Context, userID string) (*models.BetaCode, error)

	// Redeem marks a code used by the given user. Returns domain.ErrConflict
	// if another request won the race.
	Redeem(ctx context.Context, id, userID string, at time.Time) error
}
