package middleware

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	TraceIDKey   contextKey = "trace_id"
)

// ctxHandler is a slog.Handler that stamps every record with the request id,
// user id, and trace id carried in the context, so deep service and repository
// layers log correlated lines without threading fields through.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if uid, ok := ctx.Value(UserIDKey).(uint); ok {
		r.AddAttrs(slog.Any("user_id", uid))
	}
	if tid, ok := ctx.Value(TraceIDKey).(string); ok {
		r.AddAttrs(slog.String("trace_id", tid))
	}
	return h.Handler.Handle(ctx, r)
}

// newBaseHandler picks JSON output for production and text for local work.
func newBaseHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv("APP_ENV") == "production" {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}

func init() {
	Logger = slog.New(&ctxHandler{newBaseHandler()})
}

// localToContext copies a typed Fiber local into the context under key.
func localToContext[T any](c *fiber.Ctx, ctx context.Context, local string, key contextKey) context.Context {
	if v := c.Locals(local); v != nil {
		if typed, ok := v.(T); ok {
			return context.WithValue(ctx, key, typed)
		}
	}
	return ctx
}

// ContextMiddleware lifts request ID, user ID, and trace ID from Fiber locals
// into the request context where ctxHandler can find them. The user ID local
// is set later by the access gate, so handlers that log after auth get it via
// SetUserContext there.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		ctx = localToContext[string](c, ctx, "requestid", RequestIDKey)
		ctx = localToContext[uint](c, ctx, "userID", UserIDKey)
		ctx = localToContext[string](c, ctx, "traceID", TraceIDKey)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger returns a Fiber middleware that logs one line per request
// after the handler chain completes.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get("User-Agent")),
		}

		// InfoContext/ErrorContext so the ctxHandler picks up rid/uid/tid
		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			Logger.ErrorContext(c.UserContext(), "request failed", fields...)
		} else {
			Logger.InfoContext(c.UserContext(), "request processed", fields...)
		}

		return err
	}
}
