package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

type ctxKey string

// RequestIDKey carries the request id through a request's context.
const RequestIDKey ctxKey = "req_id"

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// New builds the application logger. Development (or an empty env) gets
// colored tint output, anything else gets JSON.
func New(env string, w io.Writer) *slog.Logger {
	if env == "development" || env == "" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRequestID returns a child context carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time logs the duration of op when the returned func is deferred.
//
//	defer logger.Time(ctx, "weather.forecast")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		attrs := []any{
			slog.String("req_id", reqID),
			slog.String("op", op),
			slog.Int64("dur_ms", time.Since(start).Milliseconds()),
		}
		if errp != nil && *errp != nil {
			slog.WarnContext(ctx, "operation failed", append(attrs, slog.Any("error", *errp))...)
			return
		}
		slog.DebugContext(ctx, "operation completed", attrs...)
	}
}

// Middleware assigns a request id and logs each completed request.
func Middleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), reqID))

		c.Next()

		attrs := []any{
			slog.String("req_id", reqID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.ErrorContext(c.Request.Context(), "request completed", attrs...)
		case c.Writer.Status() >= 400:
			log.WarnContext(c.Request.Context(), "request completed", attrs...)
		default:
			log.InfoContext(c.Request.Context(), "request completed", attrs...)
		}
	}
}
