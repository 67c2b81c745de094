package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gotomicro/ego/core/elog"
	"github.com/tidwall/gjson"

	"promptbench/internal/assets"
	"promptbench/internal/errs"
	"promptbench/internal/events"
	"promptbench/internal/llm/client"
	"promptbench/internal/metrics"
	"promptbench/internal/models"
)

const (
	DefaultCandidateModel = "gpt-4o-mini-2024-07-18"
	candidateTemperature  = 0.7
	MinCandidateCount     = 1
	MaxCandidateCount     = 10
	candidatePromptName   = "generate_messages"
	outcomeOK             = "ok"
	outcomeEmpty          = "empty"
	outcomeError          = "error"
	outcomeTimeout        = "timeout"
	outcomeCanceled       = "canceled"
)

type GenerateRequest struct {
	Model        string
	Message      string
	SystemPrompt string
	UserID       string
	Temperature  float64
	// JSONResponse asks the provider for a JSON object, where supported.
	JSONResponse bool
}

type CandidateRequest struct {
	Count        int
	SystemPrompt string
	Model        string
	UserID       string
}

type GenerationConfig struct {
	// ProviderTimeout bounds a single provider call. Zero means no limit.
	ProviderTimeout       time.Duration
	DefaultCandidateModel string
}

type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	GenerateCandidates(ctx context.Context, req CandidateRequest) ([]models.CandidateMessage, error)
}

type generationService struct {
	registry ModelRegistry
	creds    CredentialResolver
	factory  client.Factory
	cfg      GenerationConfig
	now      func() time.Time
}

func NewGenerationService(registry ModelRegistry, creds CredentialResolver, factory client.Factory, cfg GenerationConfig) GenerationService {
	if cfg.DefaultCandidateModel == "" {
		cfg.DefaultCandidateModel = DefaultCandidateModel
	}
	return &generationService{
		registry: registry,
		creds:    creds,
		factory:  factory,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	provider, err := s.registry.ResolveProvider(req.Model)
	if err != nil {
		return "", err
	}
	apiKey, err := s.creds.GetDecryptedKey(ctx, req.UserID, provider)
	if err != nil {
		return "", err
	}

	if s.cfg.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ProviderTimeout)
		defer cancel()
	}

	chat, err := s.factory.NewClient(ctx, client.Options{
		Provider:     provider,
		APIKey:       apiKey,
		Model:        req.Model,
		Temperature:  req.Temperature,
		JSONResponse: req.JSONResponse,
	})
	if err != nil {
		return "", err
	}

	start := s.now()
	text, err := chat.Generate(ctx, req.SystemPrompt, req.Message)
	elapsed := s.now().Sub(start)
	outcome := classifyOutcome(ctx, err)
	metrics.ObserveProviderCall(string(provider), req.Model, outcome, elapsed)

	evt := events.NewSuccess("generated response")
	if err != nil {
		evt = events.NewError(err.Error())
	}
	evt.Provider = string(provider)
	evt.Model = req.Model
	evt.Duration = elapsed
	evt.Metadata = map[string]string{"outcome": outcome}
	events.Emit(ctx, events.LLMGenerate, evt)

	if err != nil {
		return "", err
	}
	return text, nil
}

func classifyOutcome(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, errs.ErrEmptyResponse):
		return outcomeEmpty
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return outcomeCanceled
	}
	return outcomeError
}

func (s *generationService) GenerateCandidates(ctx context.Context, req CandidateRequest) ([]models.CandidateMessage, error) {
	var details []string
	if req.Count < MinCandidateCount || req.Count > MaxCandidateCount {
		details = append(details, fmt.Sprintf("count must be between %d and %d", MinCandidateCount, MaxCandidateCount))
	}
	if strings.TrimSpace(req.SystemPrompt) == "" {
		details = append(details, "systemPrompt is required")
	}
	if len(details) > 0 {
		return nil, errs.Invalid(details...)
	}

	modelID := strings.TrimSpace(req.Model)
	if modelID == "" {
		modelID = s.cfg.DefaultCandidateModel
	}

	instruction, err := assets.Prompt(candidatePromptName, map[string]string{"count": strconv.Itoa(req.Count)})
	if err != nil {
		return nil, err
	}

	raw, err := s.Generate(ctx, GenerateRequest{
		Model:        modelID,
		Message:      instruction,
		SystemPrompt: req.SystemPrompt,
		UserID:       req.UserID,
		Temperature:  candidateTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	contents, err := parseCandidates(raw)
	if err != nil {
		elog.DefaultLogger.Error("invalid candidate generation output",
			elog.FieldErr(err),
			elog.String("model", modelID),
			elog.String("requestId", events.RequestFromContext(ctx)),
			elog.String("raw", raw),
		)
		return nil, err
	}
	if len(contents) != req.Count {
		elog.DefaultLogger.Warn("candidate count differs from request",
			elog.Int("requested", req.Count),
			elog.Int("received", len(contents)),
			elog.String("model", modelID),
		)
	}

	now := s.now()
	out := make([]models.CandidateMessage, 0, len(contents))
	for _, content := range contents {
		out = append(out, models.CandidateMessage{
			ID:        uuid.NewString(),
			Content:   content,
			CreatedAt: now,
			Included:  true,
		})
	}
	return out, nil
}

// parseCandidates validates {"messages":[{"content":string}]} and returns the contents.
func parseCandidates(raw string) ([]string, error) {
	body := stripCodeFence(raw)
	if !gjson.Valid(body) {
		return nil, &errs.GenerationFormatError{Raw: raw, Reason: "response is not valid JSON"}
	}
	messages := gjson.Get(body, "messages")
	if !messages.IsArray() {
		return nil, &errs.GenerationFormatError{Raw: raw, Reason: "missing messages array"}
	}
	items := messages.Array()
	contents := make([]string, 0, len(items))
	for i, item := range items {
		content := item.Get("content")
		if !item.IsObject() || content.Type != gjson.String {
			return nil, &errs.GenerationFormatError{Raw: raw, Reason: fmt.Sprintf("messages[%d].content must be a string", i)}
		}
		contents = append(contents, content.String())
	}
	return contents, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
