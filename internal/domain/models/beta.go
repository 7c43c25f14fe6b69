package models

import "time"

// BetaCode is a single-use access code with an expiry.
type BetaCode struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	IsUsed    bool       `json:"is_used"`
	UsedBy    *string    `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// Expired reports whether the code can no longer be redeemed.
func (b *BetaCode) Expired(now time.Time) bool {
	return b.ExpiresAt.Before(now)
}
