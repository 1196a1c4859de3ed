package clog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, WithLevel(slog.LevelWarn), WithColor(false))

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "WARN")
}

func TestTextHandler_AttrsRendered(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, WithColor(false))

	logger.Info("tool call", "tool", "create_task", "ok", true)

	out := buf.String()
	assert.Contains(t, out, "tool call")
	assert.Contains(t, out, "tool=create_task")
	assert.Contains(t, out, "ok=true")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTextHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, WithColor(false))
	logger := base.With("component", "session").WithGroup("linear")

	logger.Info("initialized", "team", "Engineering")

	out := buf.String()
	assert.Contains(t, out, "component=session")
	assert.Contains(t, out, "linear.team=Engineering")
}

func TestTextHandler_CloneIsolation(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, WithColor(false))
	derived := base.With("k", "v")

	base.Info("plain")
	require.NotContains(t, buf.String(), "k=v")

	buf.Reset()
	derived.Info("derived")
	assert.Contains(t, buf.String(), "k=v")
}
