package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khanglvm/docsearch/internal/analytics"
	"github.com/khanglvm/docsearch/internal/docs"
	"github.com/khanglvm/docsearch/internal/search"
	"github.com/khanglvm/docsearch/internal/server"
	"github.com/khanglvm/docsearch/internal/version"
)

// NewServeCmd creates the 'serve' command for running the HTTP API.
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the search HTTP server",
		Long: `Start the docsearch HTTP server.

Endpoints:
  GET  /api/search?q=&mode=            grouped search results
  POST /api/search/{searchID}/select   record an opened result
  GET  /api/docs                       sidebar
  GET  /api/docs/{slug}                one document with headings
  GET  /healthz                        liveness
  GET  /metrics                        Prometheus metrics

Send SIGHUP to reload the content directory without restarting.
SIGINT/SIGTERM shut the server down gracefully.`,
		Example: `  docsearch serve
  docsearch serve --port 9000 --dir ./content/docs

  # Reload content after editing
  kill -HUP $(pgrep docsearch)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides http.port)")

	return cmd
}

// runServe wires the indexes, history and HTTP server, then blocks until
// a shutdown signal arrives.
func runServe(cmd *cobra.Command, port int) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck

	if port > 0 {
		a.cfg.HTTP.Port = port
	}
	log := a.logger

	index := search.NewIndex(a.documents, a.cfg.SearchOptions())
	opts := []server.Option{
		server.WithLoader(func(ctx context.Context) ([]docs.Document, error) {
			return docs.Load(ctx, a.cfg.Content.Dir, log)
		}),
	}

	keyword, err := search.NewKeywordIndex(a.documents, log)
	if err != nil {
		log.Warn("Keyword search disabled", zap.Error(err))
	} else {
		defer keyword.Close()
		opts = append(opts, server.WithKeywordIndex(keyword))
	}

	store := openStorage(a.cfg, log)
	defer store.Close()
	tracker := analytics.NewTracker(store, log)
	defer tracker.Stop()
	opts = append(opts, server.WithTracker(tracker))

	if store.Enabled() {
		retention := time.Duration(a.cfg.Storage.RetentionDays) * 24 * time.Hour
		go func() {
			if err := store.Cleanup(retention); err != nil {
				log.Warn("History cleanup failed", zap.Error(err))
			}
		}()
	}

	s := server.New(index, log, opts...)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.HTTP.Port),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	log.Info("Starting HTTP server",
		zap.String("addr", listener.Addr().String()),
		zap.String("version", version.GetVersion()),
		zap.Int("documents", index.Len()),
	)

	shutdownTimeout := time.Duration(a.cfg.HTTP.ShutdownSec) * time.Second
	return serveUntilDone(cmd.Context(), srv, listener, s, sigChan, shutdownTimeout, log)
}

// serveUntilDone serves on listener until ctx ends or a terminating signal
// arrives. SIGHUP reloads content and keeps serving.
func serveUntilDone(
	ctx context.Context,
	srv *http.Server,
	listener net.Listener,
	s *server.Server,
	signals <-chan os.Signal,
	shutdownTimeout time.Duration,
	log *zap.Logger,
) error {
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	for {
		select {
		case err := <-errChan:
			return fmt.Errorf("HTTP server error: %w", err)

		case sig := <-signals:
			if sig == syscall.SIGHUP {
				log.Info("Received SIGHUP, reloading content")
				if err := s.Reload(ctx); err != nil {
					log.Error("Reload failed, keeping current content", zap.Error(err))
				}
				continue
			}
			log.Info("Received shutdown signal", zap.String("signal", sig.String()))
			return shutdown(srv, shutdownTimeout, log)

		case <-ctx.Done():
			return shutdown(srv, shutdownTimeout, log)
		}
	}
}

func shutdown(srv *http.Server, timeout time.Duration, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	log.Info("Server stopped gracefully")
	return nil
}
