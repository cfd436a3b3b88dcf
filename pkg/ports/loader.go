package ports

import (
	"context"

	"github.com/aretw0/tales/pkg/domain"
)

// GraphLoader produces a story graph from a content source.
// This allows the content format (YAML, JSON, Loam markdown) to be decoupled.
type GraphLoader interface {
	// Load reads and constructs the graph. It does not resolve dangling edges;
	// callers run validation when they need the full guarantee.
	Load(ctx context.Context) (*domain.Graph, error)
}
