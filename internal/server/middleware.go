package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"

	"promptbench/internal/errs"
	"promptbench/internal/events"
	"promptbench/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	userIDKey       = "userID"
)

// requestID tags the request context with an id, reusing the caller's when present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 64 {
			id = shortuuid.New()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(events.WithRequest(c.Request.Context(), id))
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elog.DefaultLogger.Info("http request",
			elog.String("method", c.Request.Method),
			elog.String("path", c.Request.URL.Path),
			elog.Int("status", c.Writer.Status()),
			elog.Any("latency", time.Since(start).String()),
			elog.String("requestId", events.RequestFromContext(c.Request.Context())),
		)
	}
}

func httpMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		elog.DefaultLogger.Error("panic recovered",
			elog.Any("panic", recovered),
			elog.String("path", c.Request.URL.Path),
			elog.String("requestId", events.RequestFromContext(c.Request.Context())),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResult{Error: msgInternal})
	})
}

// requireAuth accepts a bearer HS256 JWT and stores its subject as the user id.
func requireAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeError(c, errs.ErrUnauthorized)
			return
		}
		userID, err := VerifyToken(key, strings.TrimSpace(raw))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
