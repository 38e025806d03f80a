package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextHandlerKeepsBoundAttrs(t *testing.T) {
	var buf bytes.Buffer

	log := slog.New(NewTextHandler(&buf, nil)).With(slog.String("column", "age"))
	log.Info("column processed", slog.Int("rows", 5))

	line := buf.String()
	require.Contains(t, line, "INFO")
	require.Contains(t, line, "column processed")
	require.Contains(t, line, "column=age")
	require.Contains(t, line, "rows=5")
}

func TestTextHandlerGroupPrefixesKeys(t *testing.T) {
	var buf bytes.Buffer

	log := slog.New(NewTextHandler(&buf, nil)).WithGroup("writer")
	log.Info("batch done", slog.Int("batch_index", 2))

	require.Contains(t, buf.String(), "writer.batch_index=2")
}

func TestTextHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer

	options := &slog.HandlerOptions{Level: slog.LevelWarn}
	log := slog.New(NewTextHandler(&buf, options))
	log.Debug("hidden")
	log.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestDummyLoggerIsSilent(t *testing.T) {
	require.False(t, DummyLogger.Enabled(context.Background(), slog.LevelError))
}
