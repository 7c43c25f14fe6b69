package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"promptdeck/internal/domain"
	"promptdeck/internal/domain/models"
	"promptdeck/internal/domain/repositories"
)

// PostgresBetaCodeRepository implements the BetaCodeRepository interface
type PostgresBetaCodeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewBetaCodeRepository creates a new PostgresBetaCodeRepository
func NewBetaCodeRepository(config *RepositoryConfig) repositories.BetaCodeRepository {
	return &PostgresBetaCodeRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateBatch inserts generated codes.
func (r *PostgresBetaCodeRepository) CreateBatch(ctx context.Context, codes []models.BetaCode) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, code, is_used, expires_at, created_at)
		VALUES ($1, $2, false, $3, $4)
	`, r.tables.BetaCodes)

	executor := GetExecutor(ctx, r.pool)
	for _, code := range codes {
		if _, err := executor.Exec(ctx, query, code.ID, code.Code, code.ExpiresAt, code.CreatedAt); err != nil {
			if IsPgDuplicateError(err) {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("beta code %q already exists", code.Code),
					ResourceType: "beta_code",
					ResourceID:   code.ID,
				}
			}
			return fmt.Errorf("create beta code: %w", err)
		}
	}

	return nil
}

// GetByCode looks up a code by its redeemable string.
func (r *PostgresBetaCodeRepository) GetByCode(ctx context.Context, code string) (*models.BetaCode, error) {
	query := fmt.Sprintf(`
		SELECT id, code, is_used, used_by, used_at, expires_at, created_at
		FROM %s
		WHERE code = $1
	`, r.tables.BetaCodes)

	return r.scanOne(ctx, query, code)
}

// GetRedeemedBy returns the code a user has redeemed, if any.
func (r *PostgresBetaCodeRepository) GetRedeemedBy(ctx context.Context, userID string) (*models.BetaCode, error) {
	query := fmt.Sprintf(`
		SELECT id, code, is_used, used_by, used_at, expires_at, created_at
		FROM %s
		WHERE used_by = $1
	`, r.tables.BetaCodes)

	return r.scanOne(ctx, query, userID)
}

// Redeem marks a code used. The is_used guard in the WHERE clause makes
// concurrent redemption a clean conflict instead of a double spend.
func (r *PostgresBetaCodeRepository) Redeem(ctx context.Context, id, userID string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET is_used = true, used_by = $1, used_at = $2
		WHERE id = $3 AND is_used = false
	`, r.tables.BetaCodes)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, userID, at, id)
	if err != nil {
		return fmt.Errorf("redeem beta code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: beta code already redeemed", domain.ErrConflict)
	}

	return nil
}

func (r *PostgresBetaCodeRepository) scanOne(ctx context.Context, query string, arg any) (*models.BetaCode, error) {
	var code models.BetaCode
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&code.ID,
		&code.Code,
		&code.IsUsed,
		&code.UsedBy,
		&code.UsedAt,
		&code.ExpiresAt,
		&code.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%w: beta code", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get beta code: %w", err)
	}

	return &code, nil
}
