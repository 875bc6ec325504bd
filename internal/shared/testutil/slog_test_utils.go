package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log call with its attributes flattened.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// BufferedSlogHandler records every log call at every level. Handlers made
// by WithAttrs append to the same buffer as their parent, so component
// loggers built with logger.With stay visible to the test.
type BufferedSlogHandler struct {
	buf   *logBuffer
	attrs []slog.Attr
	t     *testing.T
}

type logBuffer struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewTestLogger returns a logger backed by a fresh BufferedSlogHandler.
// Captured lines are echoed through t.Logf.
func NewTestLogger(t *testing.T) (*slog.Logger, *BufferedSlogHandler) {
	h := &BufferedSlogHandler{buf: &logBuffer{}, t: t}
	return slog.New(h), h
}

func (h *BufferedSlogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	rec := LogRecord{Level: r.Level, Message: r.Message, Attrs: make(map[string]any, len(h.attrs)+r.NumAttrs())}
	for _, a := range h.attrs {
		rec.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.buf.mu.Lock()
	h.buf.records = append(h.buf.records, rec)
	h.buf.mu.Unlock()

	if h.t != nil {
		h.t.Logf("%s %q %v", r.Level, r.Message, rec.Attrs)
	}
	return nil
}

func (h *BufferedSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &BufferedSlogHandler{buf: h.buf, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...), t: h.t}
}

// WithGroup flattens groups; keys are recorded without a prefix.
func (h *BufferedSlogHandler) WithGroup(string) slog.Handler { return h }

// Records returns the captured records matching keep, or all of them when
// keep is nil.
func (h *BufferedSlogHandler) Records(keep func(LogRecord) bool) []LogRecord {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()

	var out []LogRecord
	for _, r := range h.buf.records {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// GetRecordsByLevel returns the records logged at exactly level.
func (h *BufferedSlogHandler) GetRecordsByLevel(level slog.Level) []LogRecord {
	return h.Records(func(r LogRecord) bool { return r.Level == level })
}

// ContainsMessage reports whether any record's message contains message.
func (h *BufferedSlogHandler) ContainsMessage(message string) bool {
	return len(h.Records(func(r LogRecord) bool { return strings.Contains(r.Message, message) })) > 0
}

// ContainsAttr reports whether any record carries key with an equal value.
func (h *BufferedSlogHandler) ContainsAttr(key string, value any) bool {
	return len(h.Records(func(r LogRecord) bool {
		v, ok := r.Attrs[key]
		return ok && v == value
	})) > 0
}

// Count returns the number of captured records.
func (h *BufferedSlogHandler) Count() int {
	return len(h.Records(nil))
}

// AssertLogContains fails t unless a record at level contains message.
func AssertLogContains(t *testing.T, handler *BufferedSlogHandler, level slog.Level, message string) {
	t.Helper()

	records := handler.GetRecordsByLevel(level)
	for _, r := range records {
		if strings.Contains(r.Message, message) {
			return
		}
	}
	msgs := make([]string, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, r.Message)
	}
	t.Errorf("no %s log containing %q; got %q", level, message, msgs)
}

// AssertLogAttr fails t unless some record carries key=expectedValue.
func AssertLogAttr(t *testing.T, handler *BufferedSlogHandler, key string, expectedValue any) {
	t.Helper()

	if !handler.ContainsAttr(key, expectedValue) {
		t.Errorf("no log with %s=%v among %d records", key, expectedValue, handler.Count())
	}
}
