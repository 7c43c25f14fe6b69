package services

import (
	"context"
	"time"
)

// BetaStatus reports whether a user has redeemed a beta code.
type BetaStatus struct {
	HasBetaAccess bool       `json:"hasBetaAccess"`
	RedeemedAt    *time.Time `json:"redeemedAt"`
}

// BetaService redeems single-use beta codes and reports access status.
type BetaService interface {
	// Redeem validates and consumes a code for the user. Redeeming when the
	// user already has access is a no-op success.
	Redeem(ctx context.Context, userID, code string) error

	// Status reports whether the user has beta access.
	Status(ctx context.Context, userID string) (*BetaStatus, error)
}
