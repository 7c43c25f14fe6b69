package mock

import "context"

// QueryExpander is a test double for ai.QueryExpander. By default it echoes
// the query with a fixed suffix so tests can tell expanded from raw input.
type QueryExpander struct {
	ExpandQueryFunc func(ctx context.Context, query string) (string, error)

	callCount int
}

// NewQueryExpander creates a mock expander with default behavior.
func NewQueryExpander() *QueryExpander {
	return &QueryExpander{}
}

func (m *QueryExpander) ExpandQuery(ctx context.Context, query string) (string, error) {
	m.callCount++

	if m.ExpandQueryFunc != nil {
		return m.ExpandQueryFunc(ctx, query)
	}
	return query + ", related terms", nil
}

// CallCount returns the number of calls made.
func (m *QueryExpander) CallCount() int {
	return m.callCount
}

// UseCaseGenerator is a test double for ai.UseCaseGenerator.
type UseCaseGenerator struct {
	GenerateUseCasesFunc func(ctx context.Context, name, content string) (string, error)

	callCount int
}

// NewUseCaseGenerator creates a mock generator with default behavior.
func NewUseCaseGenerator() *UseCaseGenerator {
	return &UseCaseGenerator{}
}

func (m *UseCaseGenerator) GenerateUseCases(ctx context.Context, name, content string) (string, error) {
	m.callCount++

	if m.GenerateUseCasesFunc != nil {
		return m.GenerateUseCasesFunc(ctx, name, content)
	}
	return "use cases for " + name, nil
}

// CallCount returns the number of calls made.
func (m *UseCaseGenerator) CallCount() int {
	return m.callCount
}
