package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/tales/pkg/adapters/content"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
)

// Loader adapts the Loam library to the GraphLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a strict, read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve story directory: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open story directory %s: %w", dir, err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

// Spec assembles the documents of the repository into a content.StorySpec.
// Nodes are ordered by ID so listings are stable across filesystems.
func (l *Loader) Spec(ctx context.Context) (content.StorySpec, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return content.StorySpec{}, fmt.Errorf("loam list failed: %w", err)
	}

	var (
		spec   content.StorySpec
		header string
	)
	seen := make(map[string]string)

	for _, doc := range docs {
		meta := doc.Data
		if meta.IsHeader() {
			if header != "" {
				return content.StorySpec{}, fmt.Errorf("%w: story header defined in both '%s' and '%s'", content.ErrInvalidContent, header, doc.ID)
			}
			header = doc.ID
			spec.Name, spec.Genre, spec.Start = meta.Story, meta.Genre, meta.Start
			continue
		}

		// Use the ID from metadata if available, otherwise filename ID
		rawID := meta.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existing, ok := seen[id]; ok {
			return content.StorySpec{}, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID

		// List carries metadata only; the body needs a Get.
		full, err := l.Repo.Get(ctx, doc.ID)
		if err != nil {
			return content.StorySpec{}, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
		}

		spec.Nodes = append(spec.Nodes, toNodeSpec(id, meta, full.Content))
	}

	if header == "" {
		return content.StorySpec{}, fmt.Errorf("%w: no document declares a story header", content.ErrInvalidContent)
	}

	slices.SortFunc(spec.Nodes, func(a, b content.NodeSpec) int {
		return strings.Compare(a.ID, b.ID)
	})
	return spec, nil
}

// Story loads and validates the story held by the repository.
func (l *Loader) Story(ctx context.Context) (content.Story, error) {
	spec, err := l.Spec(ctx)
	if err != nil {
		return content.Story{}, err
	}
	return content.Build(spec)
}

// Load implements ports.GraphLoader.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	s, err := l.Story(ctx)
	if err != nil {
		return nil, err
	}
	return s.Graph, nil
}

func toNodeSpec(id string, meta NodeMetadata, body string) content.NodeSpec {
	n := content.NodeSpec{
		ID:          id,
		Title:       meta.Title,
		Description: body,
		Ending:      meta.Ending,
	}
	if n.Title == "" {
		n.Title = id
	}
	for _, o := range meta.Options {
		n.Options = append(n.Options, content.OptionSpec{
			Text:   o.Text,
			To:     trimExtension(o.To),
			ToFull: trimExtension(o.ToFull),
			JumpTo: trimExtension(o.JumpTo),
		})
	}
	return n
}

func trimExtension(id string) string {
	if id == "" {
		return ""
	}
	switch ext := filepath.Ext(id); ext {
	case ".md", ".json", ".yaml", ".yml":
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

var _ ports.GraphLoader = (*Loader)(nil)
