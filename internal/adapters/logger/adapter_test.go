package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	level  string
	msg    string
	err    error
	fields map[string]any
}

// recordingLogger implements Logger and keeps every entry.
type recordingLogger struct {
	entries []entry
}

func (r *recordingLogger) Info(_ context.Context, msg string, fields map[string]any) {
	r.entries = append(r.entries, entry{level: "info", msg: msg, fields: fields})
}

func (r *recordingLogger) Debug(_ context.Context, msg string, fields map[string]any) {
	r.entries = append(r.entries, entry{level: "debug", msg: msg, fields: fields})
}

func (r *recordingLogger) Warn(_ context.Context, msg string, fields map[string]any) {
	r.entries = append(r.entries, entry{level: "warn", msg: msg, fields: fields})
}

func (r *recordingLogger) Error(_ context.Context, msg string, err error, fields map[string]any) {
	r.entries = append(r.entries, entry{level: "error", msg: msg, err: err, fields: fields})
}

func (r *recordingLogger) last(t *testing.T) entry {
	t.Helper()
	require.NotEmpty(t, r.entries)
	return r.entries[len(r.entries)-1]
}

func TestZapAdapter_ForwardsLevels(t *testing.T) {
	rec := &recordingLogger{}
	adapter := NewZapAdapter(rec)
	ctx := context.Background()
	fields := map[string]any{"path": "/repo"}

	adapter.Info(ctx, "info message", fields)
	assert.Equal(t, entry{level: "info", msg: "info message", fields: fields}, rec.last(t))

	adapter.Debug(ctx, "debug message", fields)
	assert.Equal(t, entry{level: "debug", msg: "debug message", fields: fields}, rec.last(t))

	adapter.Warn(ctx, "warn message", fields)
	assert.Equal(t, entry{level: "warn", msg: "warn message", fields: fields}, rec.last(t))

	adapter.Error(ctx, "error message", assert.AnError, fields)
	assert.Equal(t, entry{level: "error", msg: "error message", err: assert.AnError, fields: fields}, rec.last(t))
}

func TestZapAdapter_NilFieldsPassThrough(t *testing.T) {
	rec := &recordingLogger{}

	NewZapAdapter(rec).Info(context.Background(), "no fields", nil)

	assert.Nil(t, rec.last(t).fields)
}

func TestComponent_AddsField(t *testing.T) {
	rec := &recordingLogger{}
	log := Component(rec, "git")

	log.Debug(context.Background(), "ran git command", map[string]any{"args": "status"})
	log.Warn(context.Background(), "HEAD is detached", nil)

	assert.Equal(t, map[string]any{"component": "git", "args": "status"}, rec.entries[0].fields)
	assert.Equal(t, map[string]any{"component": "git"}, rec.entries[1].fields)
}

func TestWith_CallSiteFieldsWin(t *testing.T) {
	rec := &recordingLogger{}
	log := WithFields(rec, map[string]any{"app": "git-rollback", "step": "base"})

	log.Error(context.Background(), "step failed", assert.AnError, map[string]any{"step": "reset"})

	got := rec.last(t)
	assert.Equal(t, "git-rollback", got.fields["app"])
	assert.Equal(t, "reset", got.fields["step"])
}

func TestWith_DoesNotMutateParent(t *testing.T) {
	rec := &recordingLogger{}
	parent := Component(rec, "usecases")
	_ = parent.With(map[string]any{"extra": 1})

	parent.Info(context.Background(), "parent", nil)

	assert.Equal(t, map[string]any{"component": "usecases"}, rec.last(t).fields)
}

func TestNewZapAdapter_NilLoggerDiscards(t *testing.T) {
	adapter := NewZapAdapter(nil)

	assert.NotPanics(t, func() {
		adapter.Info(context.Background(), "dropped", nil)
		adapter.Error(context.Background(), "dropped", assert.AnError, nil)
	})
}
