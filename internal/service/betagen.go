package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"promptdeck/internal/domain/models"
)

// betaCodeCharset deliberately omits I, O, 0 and 1: codes get read aloud and
// typed by hand.
const betaCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateBetaCodes produces count fresh codes of the form BETA-XXXX-XXXX
// expiring after validFor.
func GenerateBetaCodes(count int, validFor time.Duration) ([]models.BetaCode, error) {
	now := time.Now().UTC()
	codes := make([]models.BetaCode, 0, count)
	for i := 0; i < count; i++ {
		code, err := randomBetaCode()
		if err != nil {
			return nil, err
		}
		codes = append(codes, models.BetaCode{
			ID:        uuid.NewString(),
			Code:      code,
			ExpiresAt: now.Add(validFor),
			CreatedAt: now,
		})
	}
	return codes, nil
}

func randomBetaCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	for i, b := range buf {
		buf[i] = betaCodeCharset[int(b)%len(betaCodeCharset)]
	}
	return fmt.Sprintf("BETA-%s-%s", buf[:4], buf[4:]), nil
}
