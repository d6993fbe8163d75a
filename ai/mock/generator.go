package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, returns a canned answer.
	GenerateAnswerFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator that returns a canned answer.
// Note: Returns concrete type to allow test assertions and behavior injection.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateAnswer returns the injected behavior's answer or a canned one.
func (m *MockGenerator) GenerateAnswer(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, prompt)
	}

	return "This is a mock answer.", nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateAnswerFunc = nil
}
