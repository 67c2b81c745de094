package client

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/claude"
)

// anthropicMaxTokens is required by the Messages API.
const anthropicMaxTokens = 4096

// newClaudeChat has no JSON mode; structured output relies on the prompt.
func newClaudeChat(ctx context.Context, opts Options) (chatGenerator, error) {
	temperature := float32(opts.Temperature)
	chat, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		MaxTokens:   anthropicMaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}
