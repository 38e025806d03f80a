// Package handlers provides the slog handlers used by the CLI: a plain
// single-line text handler and a silent one for tests.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
)

// TextHandler renders a record as one plain line: timestamp, level,
// message and space-separated key=value attrs. Attrs bound with With()
// are kept and printed before the record's own.
type TextHandler struct {
	out   *log.Logger
	level slog.Leveler
	attrs []slog.Attr
	group string
}

var _ slog.Handler = (*TextHandler)(nil)

func NewTextHandler(out io.Writer, options *slog.HandlerOptions) *TextHandler {
	level := slog.Leveler(slog.LevelInfo)
	if options != nil && options.Level != nil {
		level = options.Level
	}

	return &TextHandler{
		out:   log.New(out, "", 0),
		level: level,
	}
}

func (h *TextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *TextHandler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{
		r.Time.Format("2006/01/02 15:04:05"),
		r.Level.String(),
		r.Message,
	}

	for _, a := range h.attrs {
		parts = append(parts, h.formatAttr(a))
	}

	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, h.formatAttr(a))

		return true
	})

	h.out.Println(strings.Join(parts, " "))

	return nil
}

func (h *TextHandler) formatAttr(a slog.Attr) string {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	return fmt.Sprintf("%s=%v", key, a.Value.Any())
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &next
}

func (h *TextHandler) WithGroup(name string) slog.Handler {
	next := *h

	if next.group == "" {
		next.group = name
	} else {
		next.group += "." + name
	}

	return &next
}
