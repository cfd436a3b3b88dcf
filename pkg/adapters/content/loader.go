package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
)

// Loader reads a single story file from a filesystem.
type Loader struct {
	FS   fs.FS
	Path string
}

// New creates a loader for path inside fsys.
func New(fsys fs.FS, path string) *Loader {
	return &Loader{FS: fsys, Path: path}
}

// NewFile creates a loader for a file on the host filesystem.
func NewFile(path string) *Loader {
	return &Loader{Path: path}
}

// Story reads and builds the story.
func (l *Loader) Story(ctx context.Context) (Story, error) {
	if err := ctx.Err(); err != nil {
		return Story{}, err
	}
	var (
		data []byte
		err  error
	)
	if l.FS == nil {
		data, err = os.ReadFile(l.Path)
	} else {
		data, err = fs.ReadFile(l.FS, l.Path)
	}
	if err != nil {
		return Story{}, fmt.Errorf("failed to read story %s: %w", l.Path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Story{}, fmt.Errorf("story %s: %w", l.Path, err)
	}
	return s, nil
}

// Load implements ports.GraphLoader.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	s, err := l.Story(ctx)
	if err != nil {
		return nil, err
	}
	return s.Graph, nil
}

// LoadAll loads every file matching pattern, in lexical path order.
func LoadAll(ctx context.Context, fsys fs.FS, pattern string) ([]Story, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid story pattern %q: %w", pattern, err)
	}

	stories := make([]Story, 0, len(paths))
	for _, p := range paths {
		s, err := New(fsys, p).Story(ctx)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, nil
}

var _ ports.GraphLoader = (*Loader)(nil)
