package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP on the configured address. The returned channel closes
// once SIGINT, SIGTERM or SIGHUP arrives; the listener failing exits.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		defer stop()
		<-sigCtx.Done()

		a.cancel()
		close(done)
		slog.Info("shutdown signal received")
	}()

	return done
}

// Serve runs the HTTP server on l. Tests bind l to a random port.
func (a *App) Serve(l net.Listener) <-chan error {
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		if err := a.httpServer.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	return errc
}

// Stop drains HTTP, waits for the consumers and then closes resources in
// the order of a.closers.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}

	if err := a.goroutine.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "background task failed", "error", err)
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application stopped")
}
