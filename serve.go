package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/n26decoder/gateway/internal/gateway"
)

// readHeaderTimeout bounds how long a client may take to send headers.
const readHeaderTimeout = 10 * time.Second

// errNoStaticDir is returned when no static root is configured and the
// executable's directory was rejected as a default.
var errNoStaticDir = errors.New("static_dir is not set and the executable lives in a Go bin directory; " +
	"set static_dir or pass --static-dir")

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Long: `Serve static files plus the sheet CSV and image proxy endpoints.

Runs until interrupted. The first SIGINT/SIGTERM drains in-flight requests;
a second one exits immediately.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := resolvedCfg
	logger := buildLogger(cfg, os.Stderr)

	if cfg.PIDFile != "" {
		cleanup, err := writePIDFile(cfg.PIDFile)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	static, err := staticHandler(cfg.StaticDir)
	if err != nil {
		return err
	}

	ctx, stop := shutdownContext(cmd.Context(), logger)
	defer stop()

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}

	handler := gateway.NewHandler(gateway.Options{
		Sheets:      svc.sheets,
		Images:      svc.images,
		Static:      static,
		CacheMaxAge: cfg.CacheMaxAge,
		Logger:      logger,
	})

	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Listen, err)
	}

	if !flagQuiet {
		printBanner(cmd.OutOrStdout(), cfg.Listen, cfg.StaticDir, svc.sheets.Names())
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	logger.Info("gateway started",
		slog.String("listen", ln.Addr().String()),
		slog.String("static_dir", cfg.StaticDir),
		slog.String("spreadsheet_id", cfg.SpreadsheetID),
	)

	return serve(ctx, srv, ln, cfg.ShutdownTimeout, logger)
}

// staticHandler serves files from dir for every non-API path.
func staticHandler(dir string) (http.Handler, error) {
	if dir == "" {
		return nil, errNoStaticDir
	}

	return http.FileServer(http.Dir(dir)), nil
}

// serve runs srv on ln until ctx is cancelled, then shuts it down within
// timeout. A clean shutdown returns nil.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down", slog.Duration("timeout", timeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("gateway stopped")

	return nil
}
