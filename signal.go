package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// forceExit is called on the second signal. Replaced in tests.
var forceExit = func() { os.Exit(1) }

// shutdownContext returns a context that cancels on the first SIGINT/SIGTERM
// and force-exits on the second, so a hung Shutdown can still be escaped.
// The returned stop function releases the signal handler.
func shutdownContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			logger.Info("received signal, stopping gateway",
				slog.String("signal", sig.String()),
			)
			cancel()
		case <-ctx.Done():
			return
		case <-done:
			return
		}

		select {
		case sig := <-sigCh:
			logger.Warn("received second signal, forcing exit",
				slog.String("signal", sig.String()),
			)
			forceExit()
		case <-done:
		}
	}()

	stop := func() {
		select {
		case <-done:
		default:
			close(done)
		}

		cancel()
	}

	return ctx, stop
}
