package mocks

import (
	"context"
	"sync"

	"promptbench/internal/llm/client"
)

type ChatClientMock struct {
	GenerateFunc func(ctx context.Context, systemPrompt, message string) (string, error)
}

func (m *ChatClientMock) Generate(ctx context.Context, systemPrompt, message string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, message)
	}
	return "", nil
}

// ChatFactoryMock records every Options it is asked to build a client for.
type ChatFactoryMock struct {
	NewClientFunc func(ctx context.Context, opts client.Options) (client.ChatClient, error)

	mu    sync.Mutex
	Calls []client.Options
}

func (m *ChatFactoryMock) NewClient(ctx context.Context, opts client.Options) (client.ChatClient, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, opts)
	m.mu.Unlock()
	if m.NewClientFunc != nil {
		return m.NewClientFunc(ctx, opts)
	}
	return &ChatClientMock{}, nil
}
