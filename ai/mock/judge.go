package mock

import (
	"context"
	"sync"
)

// MockJudge is a test double for ai.Judge.
// It allows custom behavior injection via function fields.
// Safe for concurrent use, matching the ai.Judge contract.
type MockJudge struct {
	// CompleteFunc is called by Complete if set.
	// If nil, the judge returns an empty JSON array.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	mu        sync.Mutex
	callCount int
	prompts   []string
}

// NewMockJudge creates a mock judge.
// Note: Returns concrete type to allow test assertions.
func NewMockJudge() *MockJudge {
	return &MockJudge{}
}

// Complete records the prompt and returns the injected response.
func (m *MockJudge) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	fn := m.CompleteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}

	return "[]", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockJudge) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns the prompts Complete received, in call order.
func (m *MockJudge) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears recorded calls and injected behavior.
func (m *MockJudge) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
	m.CompleteFunc = nil
}
