package ports

import (
	"context"

	"github.com/aretw0/tales/pkg/domain"
)

// Recorder defines the append-only log of completed traversals.
type Recorder interface {
	// Append persists the outcome after every previously appended one.
	// I/O failures are returned as *domain.PersistenceError.
	Append(ctx context.Context, outcome domain.Outcome) error

	// Recent returns up to limit records rendered as text, oldest first.
	// An empty log yields an empty slice and no error.
	Recent(ctx context.Context, limit int) ([]string, error)
}
