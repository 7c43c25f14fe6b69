package models

import "time"

// Prompt is a stored prompt owned by exactly one user.
//
// Embedding and UseCases are best-effort enrichment: either may be nil when
// generation failed or has not run yet. A nil embedding degrades to "no
// semantic match", never to an error.
type Prompt struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	CategoryID *string    `json:"category_id"`
	Embedding  []float32  `json:"-"`
	UseCases   *string    `json:"use_cases,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HasEmbedding reports whether the prompt participates in semantic search.
func (p *Prompt) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// SearchResult is a prompt plus its transient similarity score. It exists
// only for the duration of one search response and is never persisted.
type SearchResult struct {
	Prompt

	// Similarity is the raw cosine-style score in [0,1].
	Similarity float64 `json:"similarity"`

	// MatchPercent is the bounded display percentage derived from Similarity.
	// Presentation only; ordering is always by Similarity.
	MatchPercent int `json:"match_percent"`
}
