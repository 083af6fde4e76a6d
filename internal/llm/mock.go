package llm

import "context"

// MockClient is a test double for Client.
type MockClient struct {
	ProviderName string
	GenerateFunc func(ctx context.Context, history []Turn, userMessage string) (*Result, error)
}

func (m *MockClient) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

func (m *MockClient) Generate(ctx context.Context, history []Turn, userMessage string) (*Result, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, history, userMessage)
	}
	return &Result{Text: "mock response"}, nil
}
