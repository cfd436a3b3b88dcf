package tales

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tales/internal/runtime"
	"github.com/aretw0/tales/pkg/adapters/file"
	"github.com/aretw0/tales/pkg/catalog"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/observability"
	"github.com/aretw0/tales/pkg/ports"
)

// Engine is the high-level entry point for the tales library.
// It pairs a story catalog with a navigator and an outcome log.
type Engine struct {
	catalog   *catalog.Catalog
	recorder  ports.Recorder
	navigator *runtime.Navigator
	presenter ports.Presenter
	hooks     domain.LifecycleHooks
	metrics   *observability.Metrics
	logger    *slog.Logger
	maxSteps  int
	now       func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog sets the stories on offer (default: catalog.Default()).
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithRecorder sets the outcome log (default: a file recorder at file.DefaultPath).
func WithRecorder(r ports.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithPresenter sets where nodes are shown during a traversal.
func WithPresenter(p ports.Presenter) Option {
	return func(e *Engine) {
		e.presenter = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = observability.Chain(e.hooks, hooks)
	}
}

// WithMetrics feeds traversal and outcome-log metrics into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps aborts traversals that make more than steps choices. Zero is unlimited.
func WithMaxSteps(steps int) Option {
	return func(e *Engine) {
		e.maxSteps = steps
	}
}

// WithClock overrides the time source used to stamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		eng.catalog = c
	}
	if eng.recorder == nil {
		eng.recorder = file.New(file.DefaultPath)
	}
	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	hooks := eng.hooks
	if eng.metrics != nil {
		hooks = observability.Chain(hooks, eng.metrics.Hooks())
	}

	navOpts := []runtime.NavigatorOption{
		runtime.WithLifecycleHooks(hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithMaxSteps(eng.maxSteps),
	}
	if eng.presenter != nil {
		navOpts = append(navOpts, runtime.WithPresenter(eng.presenter))
	}
	eng.navigator = runtime.NewNavigator(navOpts...)

	return eng, nil
}

// Catalog returns the stories on offer.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Recorder returns the outcome log.
func (e *Engine) Recorder() ports.Recorder {
	return e.recorder
}

// Play traverses the story at the 1-based catalog position and records the outcome.
//
// When the traversal completes but the log append fails, the returned Outcome
// is still valid and the error is a *domain.PersistenceError.
func (e *Engine) Play(ctx context.Context, index int, player string, chooser ports.Chooser) (domain.Outcome, error) {
	entry, err := e.catalog.At(index)
	if err != nil {
		return domain.Outcome{}, err
	}

	ending, err := e.navigator.TraverseStory(ctx, entry.Name, entry.Graph, chooser)
	if err != nil {
		return domain.Outcome{}, err
	}

	outcome := domain.NewOutcome(player, entry.Name, ending, e.now())
	recErr := e.recorder.Append(ctx, outcome)
	if e.metrics != nil {
		e.metrics.ObserveRecord(recErr)
	}
	if recErr != nil {
		e.logger.Warn("failed to record outcome", "story", entry.Name, "error", recErr)
		var perr *domain.PersistenceError
		if !errors.As(recErr, &perr) {
			recErr = &domain.PersistenceError{Op: "append", Backend: "unknown", Err: recErr}
		}
		return outcome, recErr
	}

	e.logger.Info("outcome recorded", "story", entry.Name, "ending", ending)
	return outcome, nil
}

// History returns the last limit recorded outcomes, oldest first.
func (e *Engine) History(ctx context.Context, limit int) ([]string, error) {
	lines, err := e.recorder.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return lines, nil
}
