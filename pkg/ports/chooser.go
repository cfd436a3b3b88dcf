package ports

import (
	"context"

	"github.com/aretw0/tales/pkg/domain"
)

// Chooser obtains a choice in the inclusive range [min, max] from the reader.
// Implementations recover from invalid input locally and only return an error
// when no choice can be obtained at all (e.g. domain.ErrInputExhausted).
type Chooser interface {
	Choose(ctx context.Context, min, max int) (int, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, min, max int) (int, error)

// Choose calls f(ctx, min, max).
func (f ChooserFunc) Choose(ctx context.Context, min, max int) (int, error) {
	return f(ctx, min, max)
}

// Presenter shows a node to the reader before a choice is requested.
type Presenter interface {
	Present(ctx context.Context, story string, node domain.Node) error
}
