package postgres

import (
	"fmt"
	"strconv"
	"strings"
)

// VectorLiteral renders an embedding in pgvector's text format, e.g.
// "[0.1,0.2,...]". Values travel as a parameter and are cast with ::vector,
// so no quoting concerns apply.
func VectorLiteral(embedding []float32) string {
	parts := make([]string, 0, len(embedding))
	for _, value := range embedding {
		parts = append(parts, strconv.FormatFloat(float64(value), 'f', -1, 32))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ParseVector parses pgvector's text format back into a float slice.
func ParseVector(literal string) ([]float32, error) {
	trimmed := strings.TrimSpace(literal)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, fmt.Errorf("malformed vector literal")
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
	if inner == "" {
		return []float32{}, nil
	}

	parts := strings.Split(inner, ",")
	out := make([]float32, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("malformed vector element %d: %w", i, err)
		}
		out[i] = float32(value)
	}
	return out, nil
}
