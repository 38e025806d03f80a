// Package logger wires slog up from the application config.
package logger

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/logger/handlers"
	"github.com/genxdata/genxdata/internal/generator/models"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Setup builds the handler matching the app config and installs it as
// the process default logger.
func Setup(cfg *models.AppConfig, out io.Writer) (*slog.Logger, error) {
	level, ok := levels[cfg.LogLevel]
	if !ok {
		return nil, errors.Errorf("unknown log level: %q", cfg.LogLevel)
	}

	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler

	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(out, options)
	case "text":
		handler = handlers.NewTextHandler(out, options)
	default:
		return nil, errors.Errorf("unknown log format: %q", cfg.LogFormat)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log, nil
}
