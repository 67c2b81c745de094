package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	LLMGenerate   = "events:llm:generate"
	LLMCandidates = "events:llm:candidates"
)

// GenerationEvent describes the outcome of one provider call.
type GenerationEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"requestId,omitempty"`
	Provider  string            `json:"provider,omitempty"`
	Model     string            `json:"model,omitempty"`
	Duration  time.Duration     `json:"duration,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const requestContextKey contextKey = "promptbench/events/request"

// WithRequest returns a derived context annotated with the given request id
// so emitters can automatically scope payloads.
func WithRequest(ctx context.Context, requestID string) context.Context {
	if strings.TrimSpace(requestID) == "" {
		return ctx
	}
	return context.WithValue(ctx, requestContextKey, requestID)
}

// RequestFromContext extracts the request id associated with ctx.
func RequestFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestContextKey).(string); ok {
		return v
	}
	return ""
}

func NewEvent(eventType EventType, message string) GenerationEvent {
	return GenerationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewSuccess(message string) GenerationEvent {
	return NewEvent(EventSuccess, message)
}

func NewError(message string) GenerationEvent {
	return NewEvent(EventError, message)
}

func NewWarn(message string) GenerationEvent {
	return NewEvent(EventWarn, message)
}
