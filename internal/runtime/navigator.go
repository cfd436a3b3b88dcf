package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
	"github.com/google/uuid"
)

// Navigator walks a story graph from its start node to an ending.
// It holds no per-traversal state besides the current node id, so a single
// Navigator can run any number of sequential traversals.
type Navigator struct {
	presenter ports.Presenter
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxSteps  int
	now       func() time.Time
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithPresenter sets where nodes are shown before each choice.
func WithPresenter(p ports.Presenter) NavigatorOption {
	return func(n *Navigator) {
		n.presenter = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) NavigatorOption {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) NavigatorOption {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithMaxSteps aborts a traversal after the given number of choices.
// Zero (the default) means unlimited: cycles are valid content.
func WithMaxSteps(steps int) NavigatorOption {
	return func(n *Navigator) {
		n.maxSteps = steps
	}
}

// NewNavigator creates a Navigator with the given options.
func NewNavigator(opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		presenter: nopPresenter{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Traverse walks g and returns the title of the ending the reader reached.
func (n *Navigator) Traverse(ctx context.Context, g *domain.Graph, chooser ports.Chooser) (string, error) {
	return n.TraverseStory(ctx, "", g, chooser)
}

// TraverseStory is Traverse with the story's display name attached to
// presentation, hooks and integrity errors.
//
// The traversal moves InProgress(id) -> InProgress(target) on each valid pick
// and InProgress(id) -> Completed(title) when id is an ending. Integrity
// defects abort the traversal with a *domain.GraphIntegrityError; errors from
// the chooser (e.g. domain.ErrInputExhausted) are returned unchanged.
func (n *Navigator) TraverseStory(ctx context.Context, story string, g *domain.Graph, chooser ports.Chooser) (string, error) {
	if g == nil {
		return "", &domain.GraphIntegrityError{Story: story, Kind: domain.IntegrityMissingStart, Detail: "graph is nil"}
	}
	if chooser == nil {
		return "", fmt.Errorf("traverse %q: chooser is required", story)
	}

	runID := uuid.NewString()
	logger := n.logger.With("run_id", runID)
	if story != "" {
		logger = logger.With("story", story)
	}

	current := g.Start()
	steps := 0
	n.emitTraversal(ctx, n.hooks.OnTraversalStart, domain.EventTraversalStart, runID, story, current, steps)
	logger.Debug("traversal started", "node_id", current)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		node, ok := g.Node(current)
		if !ok {
			logger.Debug("missing node", "node_id", current)
			return "", &domain.GraphIntegrityError{
				Story:  story,
				NodeID: current,
				Kind:   domain.IntegrityMissingNode,
				Detail: "referenced but not defined",
			}
		}

		n.emitNodeEnter(ctx, runID, node)
		if err := n.presenter.Present(ctx, story, node); err != nil {
			return "", fmt.Errorf("failed to present node %s: %w", node.ID, err)
		}

		if node.Ending {
			logger.Debug("traversal completed", "node_id", node.ID, "ending", node.Title, "steps", steps)
			n.emitTraversal(ctx, n.hooks.OnEnding, domain.EventEnding, runID, story, node.ID, steps)
			return node.Title, nil
		}

		if len(node.Options) == 0 {
			return "", &domain.GraphIntegrityError{Story: story, NodeID: node.ID, Kind: domain.IntegrityNoOptions}
		}

		if n.maxSteps > 0 && steps >= n.maxSteps {
			return "", fmt.Errorf("%w: %d choices made without reaching an ending", domain.ErrStepLimit, steps)
		}

		pick, err := chooser.Choose(ctx, 1, len(node.Options))
		if err != nil {
			return "", err
		}
		if pick < 1 || pick > len(node.Options) {
			return "", fmt.Errorf("chooser returned %d outside [1, %d] at node %s", pick, len(node.Options), node.ID)
		}

		target := node.Options[pick-1].Target
		logger.Debug("choice", "node_id", node.ID, "pick", pick, "target", target)
		n.emitChoice(ctx, runID, node.ID, pick, target)

		current = target
		steps++
	}
}

func (n *Navigator) base(t domain.EventType, runID string) domain.EventBase {
	return domain.EventBase{Timestamp: n.now(), Type: t, RunID: runID}
}

func (n *Navigator) emitNodeEnter(ctx context.Context, runID string, node domain.Node) {
	if n.hooks.OnNodeEnter == nil {
		return
	}
	n.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: n.base(domain.EventNodeEnter, runID),
		NodeID:    node.ID,
		Ending:    node.Ending,
	})
}

func (n *Navigator) emitChoice(ctx context.Context, runID, nodeID string, pick int, target string) {
	if n.hooks.OnChoice == nil {
		return
	}
	n.hooks.OnChoice(ctx, &domain.ChoiceEvent{
		EventBase: n.base(domain.EventChoice, runID),
		NodeID:    nodeID,
		Pick:      pick,
		Target:    target,
	})
}

func (n *Navigator) emitTraversal(ctx context.Context, hook func(context.Context, *domain.TraversalEvent), t domain.EventType, runID, story, nodeID string, steps int) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.TraversalEvent{
		EventBase: n.base(t, runID),
		Story:     story,
		NodeID:    nodeID,
		Steps:     steps,
	})
}

type nopPresenter struct{}

func (nopPresenter) Present(context.Context, string, domain.Node) error { return nil }
