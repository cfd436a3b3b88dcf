package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/tales/internal/config"
	httpAdapter "github.com/aretw0/tales/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests may take once serving stops.
const ShutdownTimeout = 5 * time.Second

// NewServeHandler builds the read-only HTTP surface over deps, with a
// Prometheus endpoint backed by its own registry.
func NewServeHandler(cfg config.Config, deps *EngineDeps, logger *slog.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tales_http_requests_total",
		Help: "HTTP requests served, by status code and method.",
	}, []string{"code", "method"})
	reg.MustRegister(requests)

	h := httpAdapter.NewHandler(deps.Catalog, deps.Recorder,
		httpAdapter.WithRecentLimit(cfg.RecentLimit),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpAdapter.WithLogger(logger),
	)
	return promhttp.InstrumentHandlerCounter(requests, h)
}

// Serve exposes the catalog and outcome log over HTTP until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.HTTPAddr, err)
	}
	return ServeListener(ctx, ln, cfg, logger)
}

// ServeListener is Serve over an existing listener, which it closes on return.
func ServeListener(ctx context.Context, ln net.Listener, cfg config.Config, logger *slog.Logger) error {
	deps, err := OpenDeps(ctx, cfg)
	if err != nil {
		ln.Close()
		return fmt.Errorf("failed to open stories: %w", err)
	}
	defer func() {
		if cerr := deps.Close(); cerr != nil {
			logger.Warn("failed to close outcome log", "error", cerr)
		}
	}()

	handler := NewServeHandler(cfg, deps, logger)
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving stories", "addr", ln.Addr().String(), "stories", deps.Catalog.Len())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			return srv.Close()
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
