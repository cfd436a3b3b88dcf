package cli

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/aretw0/tales/internal/config"
	"github.com/aretw0/tales/internal/logging"
	"github.com/aretw0/tales/internal/presentation/tui"
	"github.com/aretw0/tales/pkg/observability"
	"github.com/aretw0/tales/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
)

// RunShell wires the configured catalog and outcome log to a terminal menu
// reading from in and writing to out.
func RunShell(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	logger := logging.ForDebug(cfg.Debug)

	deps, err := OpenDeps(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open stories: %w", err)
	}
	defer func() {
		if cerr := deps.Close(); cerr != nil {
			logger.Warn("failed to close outcome log", "error", cerr)
		}
	}()

	handlerOpts := []runner.TextHandlerOption{}
	if tui.IsTerminal(out) {
		handlerOpts = append(handlerOpts,
			runner.WithRenderer(tui.NewRenderer(tui.Width(out))),
			runner.WithClearScreen(tui.ScreenClearer(out)),
		)
	}
	handler := runner.NewTextHandler(in, out, handlerOpts...)

	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.MetricsAddr, err)
		}
		var reg *prometheus.Registry
		reg, metrics = newEngineMetrics()
		stop := serveMetrics(ln, reg, logger)
		defer stop()
		logger.Info("serving metrics", "addr", ln.Addr().String())
	}

	engine, err := createEngine(cfg, deps, handler, logger, metrics)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	shell := NewShell(engine, handler, out,
		WithRecentLimit(cfg.RecentLimit),
		WithShellLogger(logger),
	)
	return HandleExecutionError(shell.Run(ctx))
}
