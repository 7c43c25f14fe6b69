package openai

import (
	"errors"

	"promptdeck/internal/domain"

	openaisdk "github.com/openai/openai-go/v3"
)

const serviceName = "openai"

// classifyErr maps SDK errors to typed upstream errors so callers (and
// operators reading error codes) can tell auth failures, rate limits and
// generic outages apart.
func classifyErr(err error) error {
	var apiErr *openaisdk.Error
	if !errors.As(err, &apiErr) {
		return &domain.UpstreamError{
			Service: serviceName,
			Kind:    domain.UpstreamGeneric,
			Err:     err,
		}
	}

	kind := domain.UpstreamGeneric
	switch apiErr.StatusCode {
	case 401, 403:
		kind = domain.UpstreamAuth
	case 429:
		kind = domain.UpstreamRateLimit
	}

	return &domain.UpstreamError{
		Service: serviceName,
		Kind:    kind,
		Status:  apiErr.StatusCode,
		Err:     err,
	}
}
