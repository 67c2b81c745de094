package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"promptbench/internal/errs"
	"promptbench/internal/models"
)

// Options parameterizes a single vendor client. Clients are built per request
// from the caller's own API key.
type Options struct {
	Provider     models.Provider
	APIKey       string
	Model        string
	Temperature  float64
	JSONResponse bool
}

// ChatClient sends a system prompt plus one user turn and returns the reply text.
type ChatClient interface {
	Generate(ctx context.Context, systemPrompt, message string) (string, error)
}

// Factory builds ChatClients for a provider.
type Factory interface {
	NewClient(ctx context.Context, opts Options) (ChatClient, error)
}

// chatGenerator is the subset of eino's BaseChatModel used here.
type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

type constructor func(ctx context.Context, opts Options) (chatGenerator, error)

type factory struct {
	constructors map[models.Provider]constructor
}

// NewFactory returns the Factory backed by the eino OpenAI, Claude and Gemini chat models.
func NewFactory() Factory {
	return &factory{
		constructors: map[models.Provider]constructor{
			models.ProviderOpenAI:    newOpenAIChat,
			models.ProviderAnthropic: newClaudeChat,
			models.ProviderGoogle:    newGeminiChat,
		},
	}
}

func (f *factory) NewClient(ctx context.Context, opts Options) (ChatClient, error) {
	build, ok := f.constructors[opts.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownProvider, opts.Provider)
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: no %s api key", errs.ErrMissingCredential, opts.Provider)
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("%w: model is required", errs.ErrInvalidModel)
	}
	chat, err := build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s client: %w", errs.ErrProvider, opts.Provider, err)
	}
	return &LLMClient{provider: opts.Provider, model: opts.Model, chat: chat}, nil
}

// LLMClient adapts an eino chat model to ChatClient.
type LLMClient struct {
	provider models.Provider
	model    string
	chat     chatGenerator
}

func (c *LLMClient) Generate(ctx context.Context, systemPrompt, message string) (string, error) {
	input := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(message),
	}
	out, err := c.chat.Generate(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %w", errs.ErrProvider, c.provider, c.model, err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("%w: %s %s", errs.ErrEmptyResponse, c.provider, c.model)
	}
	return out.Content, nil
}
