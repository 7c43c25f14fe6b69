package config

const (
	// MaxPromptNameLength is the maximum length for prompt names.
	// Limited to 100 to fit in PostgreSQL VARCHAR(100) and provide
	// reasonable UX (names should be short and descriptive).
	MaxPromptNameLength = 100

	// MaxPromptContentLength is the maximum length for prompt content.
	// 10k characters comfortably covers multi-paragraph prompts while
	// keeping embedding inputs within model limits.
	MaxPromptContentLength = 10000

	// MaxCategoryNameLength is the maximum length for category names.
	// Categories are labels; 50 characters keeps them label-sized.
	MaxCategoryNameLength = 50

	// MaxSearchLimit caps the match_count a caller may request.
	MaxSearchLimit = 50
)
