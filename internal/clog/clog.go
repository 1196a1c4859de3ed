// Package clog provides a compact colored slog text handler for stderr.
// Stdout carries the MCP stdio transport, so all logging goes to stderr.
package clog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// TextHandler renders records as "15:04:05 LEVEL message key=value".
type TextHandler struct {
	level  slog.Level
	colors bool

	mu    sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

// Option configures a TextHandler.
type Option func(*TextHandler)

// WithLevel sets the minimum level (default info).
func WithLevel(level slog.Level) Option {
	return func(h *TextHandler) { h.level = level }
}

// WithColor toggles ANSI colors (default on).
func WithColor(on bool) Option {
	return func(h *TextHandler) { h.colors = on }
}

// NewTextHandler creates a handler writing to w.
func NewTextHandler(w io.Writer, opts ...Option) *TextHandler {
	h := &TextHandler{
		w:      w,
		level:  slog.LevelInfo,
		colors: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewLogger returns a slog.Logger over a TextHandler.
func NewLogger(w io.Writer, opts ...Option) *slog.Logger {
	return slog.New(NewTextHandler(w, opts...))
}

func (h *TextHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	// Apply the group prefix at capture time so attrs added before a
	// later WithGroup keep their bare keys.
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return nh
}

func (h *TextHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *TextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	if nh.group != "" {
		nh.group += "."
	}
	nh.group += name
	return nh
}

func (h *TextHandler) clone() *TextHandler {
	nh := &TextHandler{
		level:  h.level,
		colors: h.colors,
		w:      h.w,
		group:  h.group,
	}
	nh.attrs = make([]slog.Attr, len(h.attrs))
	copy(nh.attrs, h.attrs)
	return nh
}

func (h *TextHandler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder
	b.WriteString(rec.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(h.levelTag(rec.Level))
	b.WriteByte(' ')
	b.WriteString(rec.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", h.qualify(a.Key), a.Value)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *TextHandler) levelTag(l slog.Level) string {
	tag := strings.ToUpper(l.String())
	if !h.colors {
		return tag
	}
	switch {
	case l >= slog.LevelError:
		return color.RedString(tag)
	case l >= slog.LevelWarn:
		return color.YellowString(tag)
	case l >= slog.LevelInfo:
		return color.GreenString(tag)
	default:
		return color.CyanString(tag)
	}
}
