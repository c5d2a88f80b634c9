// Package logger adapts the structured zap logger to the interface used by
// the git-rollback commands and attaches per-component context fields.
package logger

import (
	"context"
	"maps"
)

// Logger defines the logging interface used throughout the application.
// The zap logger from goLibMyCarrier satisfies it and is wrapped with ZapAdapter.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]any)
	Debug(ctx context.Context, msg string, fields map[string]any)
	Warn(ctx context.Context, msg string, fields map[string]any)
	Error(ctx context.Context, msg string, err error, fields map[string]any)
}

// ZapAdapter forwards to a Logger, adding its base fields to every entry.
type ZapAdapter struct {
	log  Logger
	base map[string]any
}

// NewZapAdapter creates a new ZapAdapter wrapping the given logger.
// A nil logger discards everything.
func NewZapAdapter(log Logger) *ZapAdapter {
	if log == nil {
		log = nop{}
	}
	return &ZapAdapter{log: log}
}

// WithFields returns a logger that adds fields to every entry of log.
func WithFields(log Logger, fields map[string]any) *ZapAdapter {
	return NewZapAdapter(log).With(fields)
}

// Component tags every entry of log with the component name.
func Component(log Logger, name string) *ZapAdapter {
	return WithFields(log, map[string]any{"component": name})
}

// With returns a child adapter whose base fields include fields.
// Fields given at the call site win over base fields.
func (a *ZapAdapter) With(fields map[string]any) *ZapAdapter {
	base := make(map[string]any, len(a.base)+len(fields))
	maps.Copy(base, a.base)
	maps.Copy(base, fields)
	return &ZapAdapter{log: a.log, base: base}
}

// Info logs an info message.
func (a *ZapAdapter) Info(ctx context.Context, msg string, fields map[string]any) {
	a.log.Info(ctx, msg, a.merge(fields))
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(ctx context.Context, msg string, fields map[string]any) {
	a.log.Debug(ctx, msg, a.merge(fields))
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(ctx context.Context, msg string, fields map[string]any) {
	a.log.Warn(ctx, msg, a.merge(fields))
}

// Error logs an error message.
func (a *ZapAdapter) Error(ctx context.Context, msg string, err error, fields map[string]any) {
	a.log.Error(ctx, msg, err, a.merge(fields))
}

func (a *ZapAdapter) merge(fields map[string]any) map[string]any {
	if len(a.base) == 0 {
		return fields
	}
	out := make(map[string]any, len(a.base)+len(fields))
	maps.Copy(out, a.base)
	maps.Copy(out, fields)
	return out
}

type nop struct{}

func (nop) Info(context.Context, string, map[string]any)         {}
func (nop) Debug(context.Context, string, map[string]any)        {}
func (nop) Warn(context.Context, string, map[string]any)         {}
func (nop) Error(context.Context, string, error, map[string]any) {}
