package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// ConfigError indicates a missing or invalid deployment setting. It is a
// distinct class from upstream failures so operators can tell "our deployment
// is misconfigured" apart from "a third party is down".
type ConfigError struct {
	Code    string // machine-readable, e.g. "CONFIG_MISSING"
	Message string
	Hint    string // remediation hint surfaced to the caller
}

func (e *ConfigError) Error() string { return e.Message }

// NewMissingConfigError reports a required environment variable that is unset.
func NewMissingConfigError(name string) *ConfigError {
	return &ConfigError{
		Code:    "CONFIG_MISSING",
		Message: fmt.Sprintf("missing required environment variable: %s", name),
		Hint:    "Set the variable and restart the server.",
	}
}

// UpstreamKind classifies failures from hosted model providers.
type UpstreamKind string

const (
	UpstreamAuth      UpstreamKind = "auth"
	UpstreamRateLimit UpstreamKind = "rate_limit"
	UpstreamGeneric   UpstreamKind = "generic"
)

// UpstreamError wraps a failure from an external service (embedding or chat
// model). Kind drives the machine-readable code in the HTTP response.
type UpstreamError struct {
	Service string // e.g. "openai"
	Kind    UpstreamKind
	Status  int // upstream HTTP status, 0 if unknown
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed (%s): %v", e.Service, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// RankerError indicates the server-side similarity function is missing or its
// schema drifted. This must never be reported as "no results": an operator has
// to be able to distinguish "nothing matched" from "search is broken".
type RankerError struct {
	Code    string // "MATCH_FUNCTION_MISSING" or "SCHEMA_MISMATCH"
	Message string
	Hint    string
	Err     error
}

func (e *RankerError) Error() string { return e.Message }

func (e *RankerError) Unwrap() error { return e.Err }

// ConflictError carries details about the existing resource on a uniqueness
// violation. Matches ErrConflict under errors.Is().
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
