package mock

import "github.com/HarVkr/jiopay-rag-chatbot/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock services and exposes them for behavior injection.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockGenerator
	closed    bool
}

// NewMockProvider creates a provider backed by mock services.
// Note: Returns concrete type so tests can reach the underlying mocks.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		generator: NewMockGenerator(),
	}
}

// Embedder returns the mock embedding service as the ai.Embedder interface.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock generation service as the ai.Generator interface.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// GetMockEmbedder returns the concrete mock for behavior injection.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the concrete mock for behavior injection.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// IsClosed reports whether Close was called.
func (p *MockProvider) IsClosed() bool {
	return p.closed
}
