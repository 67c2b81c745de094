package client

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"
)

func newGeminiChat(ctx context.Context, opts Options) (chatGenerator, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	temperature := float32(opts.Temperature)
	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      genaiClient,
		Model:       opts.Model,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}
