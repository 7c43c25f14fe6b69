package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is size-capped; validation of field values happens downstream in
// the service layer.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// Prompts top out at 10k characters, so 1MB is generous headroom
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
