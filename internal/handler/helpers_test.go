package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"promptdeck/internal/domain"
	"promptdeck/internal/httputil"
)

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("%w: name required", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: prompt abc", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unauthorized",
			err:        domain.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_REQUIRED",
		},
		{
			name:       "conflict",
			err:        &domain.ConflictError{Message: "category exists", ResourceType: "category"},
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "missing config",
			err:        domain.NewMissingConfigError("OPENAI_API_KEY"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "CONFIG_MISSING",
		},
		{
			name: "ranker function missing",
			err: &domain.RankerError{
				Code:    "MATCH_FUNCTION_MISSING",
				Message: "similarity function missing",
				Hint:    "Run the seed command.",
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "MATCH_FUNCTION_MISSING",
		},
		{
			name: "ranker schema mismatch",
			err: &domain.RankerError{
				Code:    "SCHEMA_MISMATCH",
				Message: "match function references a missing column",
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SCHEMA_MISMATCH",
		},
		{
			name:       "upstream auth",
			err:        &domain.UpstreamError{Service: "openai", Kind: domain.UpstreamAuth, Err: errors.New("401")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "OPENAI_AUTH_FAILED",
		},
		{
			name:       "upstream rate limit",
			err:        &domain.UpstreamError{Service: "openai", Kind: domain.UpstreamRateLimit, Err: errors.New("429")},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "OPENAI_RATE_LIMITED",
		},
		{
			name:       "upstream generic",
			err:        &domain.UpstreamError{Service: "openai", Kind: domain.UpstreamGeneric, Err: errors.New("500")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "OPENAI_ERROR",
		},
		{
			name:       "unknown error is opaque",
			err:        errors.New("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body httputil.ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestHandleErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, errors.New("connection to 10.0.0.5:5432 refused"))

	var body httputil.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("error = %q, internals must not leak", body.Error)
	}
}
