package client

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
)

func newOpenAIChat(ctx context.Context, opts Options) (chatGenerator, error) {
	temperature := float32(opts.Temperature)
	cfg := &openai.ChatModelConfig{
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		Temperature: &temperature,
	}
	if opts.JSONResponse {
		cfg.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	chat, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return chat, nil
}
