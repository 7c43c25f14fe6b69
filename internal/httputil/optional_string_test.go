package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringTriState(t *testing.T) {
	type body struct {
		CategoryID OptionalString `json:"category_id"`
	}

	tests := []struct {
		name        string
		payload     string
		wantPresent bool
		wantValue   *string
	}{
		{
			name:        "absent",
			payload:     `{}`,
			wantPresent: false,
		},
		{
			name:        "explicit null",
			payload:     `{"category_id": null}`,
			wantPresent: true,
			wantValue:   nil,
		},
		{
			name:        "value",
			payload:     `{"category_id": "abc"}`,
			wantPresent: true,
			wantValue:   strPtr("abc"),
		},
		{
			name:        "empty string",
			payload:     `{"category_id": ""}`,
			wantPresent: true,
			wantValue:   strPtr(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			if err := json.Unmarshal([]byte(tt.payload), &b); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if b.CategoryID.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", b.CategoryID.Present, tt.wantPresent)
			}
			switch {
			case tt.wantValue == nil && b.CategoryID.Value != nil:
				t.Errorf("Value = %q, want nil", *b.CategoryID.Value)
			case tt.wantValue != nil && (b.CategoryID.Value == nil || *b.CategoryID.Value != *tt.wantValue):
				t.Errorf("Value = %v, want %q", b.CategoryID.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var o OptionalString
	if err := json.Unmarshal([]byte(`42`), &o); err == nil {
		t.Error("expected error for non-string value")
	}
}

func strPtr(s string) *string { return &s }
