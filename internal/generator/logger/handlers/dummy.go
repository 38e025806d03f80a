package handlers

import (
	"context"
	"log/slog"
)

// DummyLogger discards every record. Tests and benchmarks inject it
// where a logger is required but output is unwanted.
var DummyLogger = slog.New(dummyHandler{})

type dummyHandler struct{}

var _ slog.Handler = dummyHandler{}

func (dummyHandler) Enabled(context.Context, slog.Level) bool { return false }

func (dummyHandler) Handle(context.Context, slog.Record) error { return nil }

func (dummyHandler) WithAttrs([]slog.Attr) slog.Handler { return dummyHandler{} }

func (dummyHandler) WithGroup(string) slog.Handler { return dummyHandler{} }
