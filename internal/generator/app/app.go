// Package app owns process lifecycle: signal handling, top level error
// reporting and handing control to the CLI.
package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/genxdata/genxdata/internal/generator/cli/commands"
)

type App struct {
	version string
}

func NewApp(version string) *App {
	if version == "" {
		version = "dev"
	}

	return &App{version: version}
}

func (a *App) Run() {
	ctx, cancelCtx := a.notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	cmd := commands.NewRootCommand(a.version)

	if err := cmd.ExecuteContext(ctx); err != nil {
		cancelCtx(err)
	}

	//nolint:errorlint
	switch err := context.Cause(ctx); err.(type) {
	case nil:
	case *SignalError:
		slog.Warn("genxdata finished due to event", slog.String("event", err.Error()))
	default:
		slog.Error("genxdata finished due error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// notifyContext cancels the context on the first signal and force-exits
// on the second.
func (a *App) notifyContext(
	ctx context.Context,
	signals ...os.Signal,
) (context.Context, context.CancelCauseFunc) {
	osSignalChannel := make(chan os.Signal, 1)
	signal.Notify(osSignalChannel, signals...)

	ctxCause, cancelCtx := context.WithCancelCause(ctx)

	go func() {
		osSignal := <-osSignalChannel
		slog.Info("got os signal, canceling", slog.String("signal", osSignal.String()))
		cancelCtx(NewSignalError(osSignal))

		osSignal = <-osSignalChannel
		slog.Error("got os signal, force exit", slog.String("signal", osSignal.String()))
		os.Exit(1)
	}()

	return ctxCause, cancelCtx
}
