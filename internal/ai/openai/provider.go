package openai

import (
	"net/http"
	"time"

	"promptdeck/internal/ai"
	"promptdeck/internal/domain"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultEmbeddingModel = "text-embedding-3-small"
	defaultChatModel      = "gpt-4o-mini"
	defaultTimeout        = 30 * time.Second
)

// Config holds settings for the OpenAI provider.
type Config struct {
	APIKey         string
	EmbeddingModel string
	ChatModel      string
	Timeout        time.Duration
	BaseURL        string       // Optional (tests)
	HTTPClient     *http.Client // Optional (tests)
}

// Provider implements ai.Provider using the official OpenAI SDK.
type Provider struct {
	client         openaisdk.Client
	embeddingModel string
	chatModel      string
}

// NewProvider creates an OpenAI-backed ai.Provider. A missing API key is a
// configuration error, reported as such rather than deferred to the first
// upstream 401.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewMissingConfigError("OPENAI_API_KEY")
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaultEmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = defaultChatModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	// Single attempt per call: failures map to typed errors upstream of us,
	// and the search path has its own fallback behavior.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Provider{
		client:         openaisdk.NewClient(opts...),
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
	}, nil
}

// Embedder returns the embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return &embedder{client: p.client, model: p.embeddingModel}
}

// QueryExpander returns the query expansion service.
func (p *Provider) QueryExpander() ai.QueryExpander {
	return &expander{client: p.client, model: p.chatModel}
}

// UseCaseGenerator returns the use-case generation service.
func (p *Provider) UseCaseGenerator() ai.UseCaseGenerator {
	return &useCaseGenerator{client: p.client, model: p.chatModel}
}

// Close releases provider resources. The SDK client holds no long-lived
// connections beyond the HTTP client's pool, so this is a no-op.
func (p *Provider) Close() error {
	return nil
}
