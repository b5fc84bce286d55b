package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders records as single lines for interactive use:
// timestamp, level, optional [component], message, then key=value pairs.
type consoleHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
	groups []string
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &consoleHandler{writer: w, level: lvl}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var pairs []string
	var component string
	collect := func(prefix []string, attr slog.Attr) {
		key := strings.Join(append(append([]string{}, prefix...), attr.Key), ".")
		if key == FieldComponent {
			component = attr.Value.String()
			return
		}
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, formatValue(attr.Value)))
	}
	for _, attr := range h.attrs {
		collect(h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		collect(h.groups, attr)
		return true
	})

	var b strings.Builder
	b.WriteString(timestamp.Format("15:04:05"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%-5s", levelLabel(record.Level)))
	if component != "" {
		b.WriteString(" [" + component + "]")
	}
	b.WriteString(" " + strings.TrimSpace(record.Message))
	for _, pair := range pairs {
		b.WriteString(" " + pair)
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &consoleHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups: h.groups,
	}
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := &consoleHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  h.attrs,
		groups: append(append([]string{}, h.groups...), name),
	}
	return clone
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	s := v.String()
	if strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
