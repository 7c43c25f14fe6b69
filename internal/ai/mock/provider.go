package mock

import "promptdeck/internal/ai"

// Provider is a test double for ai.Provider bundling the mock capabilities.
type Provider struct {
	MockEmbedder  *Embedder
	MockExpander  *QueryExpander
	MockGenerator *UseCaseGenerator
}

// NewProvider creates a provider with default mock capabilities.
func NewProvider() *Provider {
	return &Provider{
		MockEmbedder:  NewEmbedder(),
		MockExpander:  NewQueryExpander(),
		MockGenerator: NewUseCaseGenerator(),
	}
}

func (p *Provider) Embedder() ai.Embedder                 { return p.MockEmbedder }
func (p *Provider) QueryExpander() ai.QueryExpander       { return p.MockExpander }
func (p *Provider) UseCaseGenerator() ai.UseCaseGenerator { return p.MockGenerator }
func (p *Provider) Close() error                          { return nil }
