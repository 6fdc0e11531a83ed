// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/resume-roaster/internal/llm"
)

// Call records the arguments of one GenerateJSON invocation.
type Call struct {
	System string
	Prompt string
	Tier   llm.ModelTier
}

// MockLLMClient is an llm.Client whose behavior is set per test through the Func fields.
// It records every call and is safe for concurrent use.
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc     func(tier llm.ModelTier) string
	CloseFunc        func() error
	ProviderName     llm.Provider

	mu    sync.Mutex
	calls []Call
}

// Reply returns a mock that answers every JSON request with reply.
func Reply(reply string) *MockLLMClient {
	return &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, string, llm.ModelTier) (string, error) {
			return reply, nil
		},
	}
}

// Fail returns a mock whose JSON requests all fail with err.
func Fail(err error) *MockLLMClient {
	return &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, string, llm.ModelTier) (string, error) {
			return "", err
		},
	}
}

func (m *MockLLMClient) record(system, prompt string, tier llm.ModelTier) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{System: system, Prompt: prompt, Tier: tier})
	m.mu.Unlock()
}

// GenerateJSON records the call and delegates to GenerateJSONFunc.
func (m *MockLLMClient) GenerateJSON(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	m.record(system, prompt, tier)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, system, prompt, tier)
	}
	return "{}", nil
}

// GetModel returns "mock-model" unless GetModelFunc is set.
func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

// Provider returns ProviderName, defaulting to OpenAI.
func (m *MockLLMClient) Provider() llm.Provider {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return llm.ProviderOpenAI
}

// Close delegates to CloseFunc.
func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *MockLLMClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many GenerateJSON calls were made.
func (m *MockLLMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

var _ llm.Client = (*MockLLMClient)(nil)
