package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"

	"promptbench/internal/errs"
	"promptbench/internal/events"
)

const (
	msgMissingCredential = "no API key is configured for this model's provider; add one under API keys"
	msgProvider          = "the model provider request failed"
	msgInvalidFormat     = "the model returned messages in an unexpected format"
	msgInternal          = "internal server error"
)

type errorResult struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// statusFor maps domain errors to an HTTP status and a client-safe message.
func statusFor(err error) (int, errorResult) {
	var vErr *errs.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, errorResult{Error: errs.ErrValidation.Error(), Details: vErr.Details}
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, errorResult{Error: err.Error()}
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, errorResult{Error: errs.ErrUnauthorized.Error()}
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, errorResult{Error: err.Error()}
	case errors.Is(err, errs.ErrProvider), errors.Is(err, errs.ErrEmptyResponse), errors.Is(err, errs.ErrDecryption):
		return http.StatusInternalServerError, errorResult{Error: msgProvider}
	case errors.Is(err, errs.ErrMissingCredential):
		return http.StatusBadRequest, errorResult{Error: msgMissingCredential}
	case errors.Is(err, errs.ErrInvalidModel), errors.Is(err, errs.ErrUnknownProvider):
		return http.StatusBadRequest, errorResult{Error: err.Error()}
	case errors.Is(err, errs.ErrInvalidGenerationFormat):
		return http.StatusInternalServerError, errorResult{Error: msgInvalidFormat}
	}
	return http.StatusInternalServerError, errorResult{Error: msgInternal}
}

func writeError(c *gin.Context, err error) {
	status, body := statusFor(err)
	fields := []elog.Field{
		elog.FieldErr(err),
		elog.Int("status", status),
		elog.String("method", c.Request.Method),
		elog.String("path", c.Request.URL.Path),
		elog.String("requestId", events.RequestFromContext(c.Request.Context())),
	}
	if status >= http.StatusInternalServerError {
		elog.DefaultLogger.Error("request failed", fields...)
	} else {
		elog.DefaultLogger.Warn("request rejected", fields...)
	}
	c.AbortWithStatusJSON(status, body)
}
