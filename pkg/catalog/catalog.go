// Package catalog holds the ordered set of stories offered to the reader.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/tales/internal/validator"
	"github.com/aretw0/tales/pkg/adapters/content"
	loamAdapter "github.com/aretw0/tales/pkg/adapters/loam"
	"github.com/aretw0/tales/pkg/domain"
)

//go:embed stories/*.yaml
var embedded embed.FS

// ErrIndexOutOfRange is returned by Get for a position outside 1..Len.
var ErrIndexOutOfRange = errors.New("story index out of range")

// Entry pairs a display name with its graph.
type Entry struct {
	Name  string
	Genre string
	Graph *domain.Graph
}

// Label is the menu form of the entry, e.g. "Dragon Peak (Fantasy)".
func (e Entry) Label() string {
	return content.Story{Name: e.Name, Genre: e.Genre}.Label()
}

// Catalog is an immutable, ordered list of stories.
type Catalog struct {
	entries []Entry
}

// New builds a catalog and fully validates every graph. Construction fails on
// the first defective story.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("story at position %d has no name", len(c.entries)+1)
		}
		if err := validator.ValidateGraph(e.Name, e.Graph); err != nil {
			return nil, err
		}
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// FromStories adapts loaded stories into a catalog.
func FromStories(stories ...content.Story) (*Catalog, error) {
	entries := make([]Entry, 0, len(stories))
	for _, s := range stories {
		entries = append(entries, Entry{Name: s.Name, Genre: s.Genre, Graph: s.Graph})
	}
	return New(entries...)
}

// Default returns the built-in stories: The Lost Cabin, Neon City Run and
// Dragon Peak, in that order.
func Default() (*Catalog, error) {
	return Load(context.Background())
}

// Option configures Load.
type Option func(*options)

type options struct {
	dirs     []string
	builtins bool
}

// WithDir appends the stories found in dir. YAML and JSON files directly in
// dir are story files; each subdirectory is a markdown story opened with Loam.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dirs = append(o.dirs, dir)
		}
	}
}

// WithoutBuiltins drops the embedded stories.
func WithoutBuiltins() Option {
	return func(o *options) {
		o.builtins = false
	}
}

// Load assembles a catalog from the built-in stories followed by every configured directory.
func Load(ctx context.Context, opts ...Option) (*Catalog, error) {
	o := &options{builtins: true}
	for _, opt := range opts {
		opt(o)
	}

	var stories []content.Story
	if o.builtins {
		builtin, err := content.LoadAll(ctx, embedded, "stories/*.yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in stories: %w", err)
		}
		stories = append(stories, builtin...)
	}

	for _, dir := range o.dirs {
		found, err := loadDir(ctx, dir)
		if err != nil {
			return nil, err
		}
		stories = append(stories, found...)
	}

	return FromStories(stories...)
}

func loadDir(ctx context.Context, dir string) ([]content.Story, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read stories dir: %w", err)
	}

	var stories []content.Story
	for _, de := range entries {
		path := filepath.Join(dir, de.Name())
		if de.IsDir() {
			if de.Name()[0] == '.' {
				continue
			}
			loader, err := loamAdapter.Open(path)
			if err != nil {
				return nil, err
			}
			s, err := loader.Story(ctx)
			if err != nil {
				return nil, fmt.Errorf("story dir %s: %w", path, err)
			}
			stories = append(stories, s)
			continue
		}
		switch filepath.Ext(de.Name()) {
		case ".yaml", ".yml", ".json":
			s, err := content.NewFile(path).Story(ctx)
			if err != nil {
				return nil, err
			}
			stories = append(stories, s)
		}
	}
	return stories, nil
}

// List returns the entries in menu order.
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len is the number of stories.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get returns the graph at a 1-based position.
func (c *Catalog) Get(index int) (*domain.Graph, error) {
	e, err := c.At(index)
	if err != nil {
		return nil, err
	}
	return e.Graph, nil
}

// At returns the entry at a 1-based position.
func (c *Catalog) At(index int) (Entry, error) {
	if index < 1 || index > len(c.entries) {
		return Entry{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(c.entries))
	}
	return c.entries[index-1], nil
}
