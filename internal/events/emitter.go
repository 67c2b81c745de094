package events

import (
	"context"
	"sync"

	"github.com/gotomicro/ego/core/elog"
)

// EmitFunc receives every generation event.
type EmitFunc func(ctx context.Context, name string, evt GenerationEvent)

var (
	emitMu sync.RWMutex
	emit   EmitFunc = logEvent
)

// Emit forwards evt to the installed emitter, filling the request id from ctx.
func Emit(ctx context.Context, name string, evt GenerationEvent) {
	if evt.RequestID == "" {
		evt.RequestID = RequestFromContext(ctx)
	}
	emitMu.RLock()
	f := emit
	emitMu.RUnlock()
	f(ctx, name, evt)
}

// SetCustomEmitter replaces the emitter. nil restores the default elog emitter.
func SetCustomEmitter(f EmitFunc) {
	emitMu.Lock()
	defer emitMu.Unlock()
	if f == nil {
		emit = logEvent
		return
	}
	emit = f
}

func logEvent(ctx context.Context, name string, evt GenerationEvent) {
	fields := []elog.Field{
		elog.String("event", name),
		elog.String("requestId", evt.RequestID),
		elog.String("provider", evt.Provider),
		elog.String("model", evt.Model),
		elog.Any("duration", evt.Duration.String()),
	}
	for k, v := range evt.Metadata {
		fields = append(fields, elog.String(k, v))
	}

	switch evt.Type {
	case EventError:
		elog.DefaultLogger.Error(evt.Message, fields...)
	case EventWarn:
		elog.DefaultLogger.Warn(evt.Message, fields...)
	default:
		elog.DefaultLogger.Info(evt.Message, fields...)
	}
}
