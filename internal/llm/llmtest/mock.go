// Package llmtest provides a scriptable llm.Client for tests.
package llmtest

import (
	"context"
	"sync/atomic"

	"github.com/jonathan/hookgen/internal/llm"
)

// MockClient implements llm.Client for testing
type MockClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error

	contentCalls atomic.Int64
	jsonCalls    atomic.Int64
}

var _ llm.Client = (*MockClient)(nil)

func (m *MockClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.contentCalls.Add(1)
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.jsonCalls.Add(1)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{"hooks": []}`, nil
}

func (m *MockClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// ContentCalls returns how many times GenerateContent was called.
func (m *MockClient) ContentCalls() int {
	return int(m.contentCalls.Load())
}

// JSONCalls returns how many times GenerateJSON was called.
func (m *MockClient) JSONCalls() int {
	return int(m.jsonCalls.Load())
}

// Calls returns the total number of generation calls.
func (m *MockClient) Calls() int {
	return m.ContentCalls() + m.JSONCalls()
}
