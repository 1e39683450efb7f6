// Package logger configures the process-wide slog logger: JSON on stdout,
// trace correlation, and an optional OpenTelemetry log bridge.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"
)

// Init installs the default logger for the named service. Every record
// carries the service attribute so the four binaries are distinguishable in
// a shared log stream. With exportOTel set, records are additionally bridged
// to the globally registered OTel logger provider.
func Init(service string, exportOTel bool) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	stdout := NewTraceContextHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	var handler slog.Handler = stdout
	if exportOTel {
		handler = tee{stdout, newBridgeHandler(level)}
	}

	logger := slog.New(handler).With("service", service)
	slog.SetDefault(logger)
	GlobalContext = NewContextLogger(logger)

	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// bridgeHandler forwards slog records to the OTel logger provider so request
// logs land next to the traces they belong to.
type bridgeHandler struct {
	emitter log.Logger
	attrs   []slog.Attr
	groups  []string
	level   slog.Level
}

func newBridgeHandler(level slog.Level) *bridgeHandler {
	return &bridgeHandler{
		emitter: global.GetLoggerProvider().Logger("mailhub/slog-bridge"),
		level:   level,
	}
}

func (h *bridgeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *bridgeHandler) Handle(ctx context.Context, r slog.Record) error {
	var rec log.Record
	rec.SetTimestamp(r.Time)
	rec.SetBody(log.StringValue(r.Message))
	rec.SetSeverity(severityOf(r.Level))
	rec.SetSeverityText(r.Level.String())

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		rec.AddAttributes(
			log.String("trace_id", sc.TraceID().String()),
			log.String("span_id", sc.SpanID().String()),
		)
	}

	for _, attr := range h.attrs {
		rec.AddAttributes(h.convert(attr))
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.AddAttributes(h.convert(a))
		return true
	})

	h.emitter.Emit(ctx, rec)
	return nil
}

func (h *bridgeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *bridgeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// convert renders a slog attribute as an OTel key-value, prefixing open
// group names dot-separated.
func (h *bridgeHandler) convert(a slog.Attr) log.KeyValue {
	key := a.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}

	switch a.Value.Kind() {
	case slog.KindInt64:
		return log.Int64(key, a.Value.Int64())
	case slog.KindFloat64:
		return log.Float64(key, a.Value.Float64())
	case slog.KindBool:
		return log.Bool(key, a.Value.Bool())
	default:
		return log.String(key, a.Value.String())
	}
}

func severityOf(level slog.Level) log.Severity {
	switch {
	case level >= slog.LevelError:
		return log.SeverityError
	case level >= slog.LevelWarn:
		return log.SeverityWarn
	case level >= slog.LevelInfo:
		return log.SeverityInfo
	default:
		return log.SeverityDebug
	}
}

// tee fans every record out to all member handlers. A failing member never
// blocks the others; stdout must keep logging when the collector is down.
type tee []slog.Handler

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(tee, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (t tee) WithGroup(name string) slog.Handler {
	next := make(tee, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}
	return next
}
