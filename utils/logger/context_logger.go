package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type contextKey int

const (
	ctxKeyUserID contextKey = iota
	ctxKeyAccountKey
	ctxKeyOperation
	ctxKeyUpstream
)

// WithUserID attaches the acting user to the context for logging.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// WithAccountKey attaches the target account key (username@domain).
func WithAccountKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKeyAccountKey, key)
}

// WithOperation attaches the domain operation name.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, ctxKeyOperation, op)
}

// WithUpstream attaches the upstream collaborator name.
func WithUpstream(ctx context.Context, upstream string) context.Context {
	return context.WithValue(ctx, ctxKeyUpstream, upstream)
}

// ContextLogger enriches log records with business context carried on the
// request context.
type ContextLogger struct {
	logger *slog.Logger
}

// GlobalContext is the process-wide context logger, set by Init.
var GlobalContext *ContextLogger

// NewContextLogger creates a new context logger.
func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext returns a logger carrying every business attribute present on
// ctx.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger

	if userID, ok := ctx.Value(ctxKeyUserID).(string); ok {
		logger = logger.With("user_id", userID)
	}
	if key, ok := ctx.Value(ctxKeyAccountKey).(string); ok {
		logger = logger.With("mail.account.key", key)
	}
	if op, ok := ctx.Value(ctxKeyOperation).(string); ok {
		logger = logger.With("mail.operation", op)
	}
	if upstream, ok := ctx.Value(ctxKeyUpstream).(string); ok {
		logger = logger.With("mail.upstream", upstream)
	}

	return logger
}

// LogDuration logs an operation's elapsed time in milliseconds.
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, ms int64) {
	cl.WithContext(ctx).InfoContext(ctx, "operation completed",
		"operation", operation,
		"duration_ms", ms)
}

// TraceContextHandler is a slog.Handler that adds trace_id and span_id from
// the active span to every record.
type TraceContextHandler struct {
	inner slog.Handler
}

// NewTraceContextHandler wraps a handler with trace context enrichment.
func NewTraceContextHandler(inner slog.Handler) *TraceContextHandler {
	return &TraceContextHandler{inner: inner}
}

func (h *TraceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *TraceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, r)
}

func (h *TraceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *TraceContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &TraceContextHandler{inner: h.inner.WithGroup(name)}
}
