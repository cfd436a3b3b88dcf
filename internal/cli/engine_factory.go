package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/tales"
	"github.com/aretw0/tales/internal/config"
	"github.com/aretw0/tales/pkg/adapters/file"
	"github.com/aretw0/tales/pkg/adapters/memory"
	"github.com/aretw0/tales/pkg/adapters/redis"
	"github.com/aretw0/tales/pkg/adapters/sqlite"
	"github.com/aretw0/tales/pkg/catalog"
	"github.com/aretw0/tales/pkg/observability"
	"github.com/aretw0/tales/pkg/ports"
)

// OpenRecorder builds the outcome log selected by cfg.Recorder. The returned
// close function is never nil.
func OpenRecorder(cfg config.Config) (ports.Recorder, func() error, error) {
	nop := func() error { return nil }

	switch cfg.Recorder {
	case config.RecorderFile, "":
		return file.New(cfg.LogPath), nop, nil
	case config.RecorderMemory:
		return memory.NewRecorder(), nop, nil
	case config.RecorderSQLite:
		rec, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nop, err
		}
		return rec, rec.Close, nil
	case config.RecorderRedis:
		rec := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithKey(cfg.RedisKey),
			redis.WithMaxEntries(cfg.RedisMaxEntries),
		)
		return rec, rec.Close, nil
	default:
		return nil, nop, fmt.Errorf("unknown recorder %q", cfg.Recorder)
	}
}

// LoadCatalog returns the built-in stories plus those in cfg.StoriesDir.
func LoadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	return catalog.Load(ctx, catalog.WithDir(cfg.StoriesDir))
}

// EngineDeps are the collaborators shared by the interactive and HTTP surfaces.
type EngineDeps struct {
	Catalog  *catalog.Catalog
	Recorder ports.Recorder
	Close    func() error
}

// OpenDeps loads the catalog and opens the recorder.
func OpenDeps(ctx context.Context, cfg config.Config) (*EngineDeps, error) {
	c, err := LoadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rec, closeFn, err := OpenRecorder(cfg)
	if err != nil {
		return nil, err
	}
	return &EngineDeps{Catalog: c, Recorder: rec, Close: closeFn}, nil
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(cfg config.Config, deps *EngineDeps, presenter ports.Presenter, logger *slog.Logger, metrics *observability.Metrics) (*tales.Engine, error) {
	opts := []tales.Option{
		tales.WithCatalog(deps.Catalog),
		tales.WithRecorder(deps.Recorder),
		tales.WithPresenter(presenter),
		tales.WithLogger(logger),
		tales.WithMaxSteps(cfg.MaxSteps),
	}
	if cfg.Debug {
		opts = append(opts, tales.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	if metrics != nil {
		opts = append(opts, tales.WithMetrics(metrics))
	}
	return tales.New(opts...)
}
