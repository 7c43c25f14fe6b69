package ai

import (
	"context"
	"strings"
)

// EmbeddingDimensions is the vector size produced by the embedding model in
// use. Treat as an opaque constant; the similarity function and the vector
// column are declared with the same size.
const EmbeddingDimensions = 1536

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in one batch,
	// returned in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryExpander rewrites a raw search query into an expanded form carrying
// related terms and intents, so the embedded query matches prompts by
// purpose and not just wording. A failed expansion is not fatal: callers
// fall back to embedding the original query.
type QueryExpander interface {
	ExpandQuery(ctx context.Context, query string) (string, error)
}

// UseCaseGenerator produces a short "when to use this prompt" blurb from a
// prompt's name and content. The text is stored alongside the prompt and
// folded into its embedding input.
type UseCaseGenerator interface {
	GenerateUseCases(ctx context.Context, name, content string) (string, error)
}

// Provider aggregates the AI capabilities for convenient initialization and
// lifecycle management.
type Provider interface {
	Embedder() Embedder
	QueryExpander() QueryExpander
	UseCaseGenerator() UseCaseGenerator
	Close() error
}

// EmbeddingText combines a prompt's fields into the single string that gets
// embedded. Including the generated use-cases text is what makes
// intent-phrased queries ("write a cold email") land on prompts whose
// content never uses those words.
func EmbeddingText(name, content string, useCases *string) string {
	parts := []string{name, content}
	if useCases != nil && strings.TrimSpace(*useCases) != "" {
		parts = append(parts, *useCases)
	}
	return strings.Join(parts, " ")
}
