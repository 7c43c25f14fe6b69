package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"promptdeck/internal/domain"
	"promptdeck/internal/domain/repositories"
	"promptdeck/internal/domain/services"
)

// Beta code error codes surfaced through the HTTP layer.
var (
	ErrBetaCodeMissing = &betaError{code: "MISSING_CODE", message: "an access code is required"}
	ErrBetaCodeInvalid = &betaError{code: "INVALID_CODE", message: "this access code is not valid"}
	ErrBetaCodeUsed    = &betaError{code: "CODE_USED", message: "this access code has already been used"}
	ErrBetaCodeExpired = &betaError{code: "CODE_EXPIRED", message: "this access code has expired"}
)

type betaError struct {
	code    string
	message string
}

func (e *betaError) Error() string { return e.message }

// Code returns the machine-readable error code.
func (e *betaError) Code() string { return e.code }

type betaService struct {
	betaRepo repositories.BetaCodeRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewBetaService creates a new beta access service
func NewBetaService(betaRepo repositories.BetaCodeRepository, logger *slog.Logger) services.BetaService {
	return &betaService{
		betaRepo: betaRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Redeem validates and consumes an access code for the user. A user who
// already holds access gets a no-op success regardless of the code supplied,
// so re-submitting the signup form never burns a second code.
func (s *betaService) Redeem(ctx context.Context, userID, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return ErrBetaCodeMissing
	}

	if existing, err := s.betaRepo.GetRedeemedBy(ctx, userID); err == nil && existing != nil {
		return nil
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	record, err := s.betaRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrBetaCodeInvalid
		}
		return err
	}

	if record.IsUsed {
		return ErrBetaCodeUsed
	}
	if record.Expired(s.now()) {
		return ErrBetaCodeExpired
	}

	if err := s.betaRepo.Redeem(ctx, record.ID, userID, s.now()); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Another request consumed the code between read and write.
			return ErrBetaCodeUsed
		}
		return fmt.Errorf("redeem code: %w", err)
	}

	s.logger.Info("beta code redeemed", "user_id", userID)
	return nil
}

// Status reports whether the user has redeemed a code.
func (s *betaService) Status(ctx context.Context, userID string) (*services.BetaStatus, error) {
	record, err := s.betaRepo.GetRedeemedBy(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &services.BetaStatus{HasBetaAccess: false}, nil
		}
		return nil, err
	}

	return &services.BetaStatus{
		HasBetaAccess: true,
		RedeemedAt:    record.UsedAt,
	}, nil
}
