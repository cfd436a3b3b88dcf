package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tales/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that emit one structured record per event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTraversalStart: func(ctx context.Context, e *domain.TraversalEvent) {
			logger.InfoContext(ctx, "traversal_start", "run_id", e.RunID, "story", e.Story, "node_id", e.NodeID)
		},
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter", "run_id", e.RunID, "node_id", e.NodeID, "ending", e.Ending)
		},
		OnChoice: func(ctx context.Context, e *domain.ChoiceEvent) {
			logger.DebugContext(ctx, "choice", "run_id", e.RunID, "node_id", e.NodeID, "pick", e.Pick, "target", e.Target)
		},
		OnEnding: func(ctx context.Context, e *domain.TraversalEvent) {
			logger.InfoContext(ctx, "ending", "run_id", e.RunID, "story", e.Story, "node_id", e.NodeID, "steps", e.Steps)
		},
	}
}

// Chain merges hook sets; each callback runs in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnTraversalStart = chain(out.OnTraversalStart, h.OnTraversalStart)
		out.OnNodeEnter = chain(out.OnNodeEnter, h.OnNodeEnter)
		out.OnChoice = chain(out.OnChoice, h.OnChoice)
		out.OnEnding = chain(out.OnEnding, h.OnEnding)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
