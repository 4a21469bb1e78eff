package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSlog wraps a Logger in the standard slog API so callers can depend
// on *slog.Logger while records still flow through the zap core.
func NewSlog(logger *Logger) *slog.Logger {
	if logger == nil {
		logger = Default()
	}
	return slog.New(&slogHandler{logger: logger})
}

type slogHandler struct {
	logger *Logger
	attrs  []zap.Field
	groups []string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Zap().Core().Enabled(zapLevel(level))
}

func (h *slogHandler) Handle(ctx context.Context, record slog.Record) error {
	fields := make([]zap.Field, 0, len(h.attrs)+record.NumAttrs()+2)
	fields = append(fields, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.zapField(attr))
		return true
	})
	fields = append(fields, traceFields(ctx)...)

	if ce := h.logger.Zap().Check(zapLevel(record.Level), record.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		next.attrs = append(next.attrs, next.zapField(attr))
	}
	return next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

func (h *slogHandler) clone() *slogHandler {
	return &slogHandler{
		logger: h.logger,
		attrs:  append([]zap.Field(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

func (h *slogHandler) zapField(attr slog.Attr) zap.Field {
	key := attr.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return zap.Any(key, attr.Value.Resolve().Any())
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
