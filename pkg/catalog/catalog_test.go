package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tales/internal/runtime"
	"github.com/aretw0/tales/internal/testutils"
	"github.com/aretw0/tales/pkg/catalog"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Stories(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	labels := make([]string, 0, c.Len())
	for _, e := range c.List() {
		labels = append(labels, e.Label())
	}
	assert.Equal(t, []string{
		"The Lost Cabin (Mystery)",
		"Neon City Run (Sci-Fi)",
		"Dragon Peak (Fantasy)",
	}, labels)
}

func TestDefault_GraphInvariants(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	for _, e := range c.List() {
		t.Run(e.Name, func(t *testing.T) {
			g := e.Graph
			_, ok := g.Node(g.Start())
			assert.True(t, ok, "start node must exist")
			assert.Len(t, g.Endings(), 2)

			for _, n := range g.Nodes() {
				if n.Ending {
					assert.Empty(t, n.Options, n.ID)
					continue
				}
				assert.NotEmpty(t, n.Options, n.ID)
				for _, opt := range n.Options {
					_, ok := g.Node(opt.Target)
					assert.True(t, ok, "%s -> %s", n.ID, opt.Target)
				}
			}
		})
	}
}

func TestDefault_EveryEndingReachableByScript(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	g, err := c.Get(1)
	require.NoError(t, err)

	nav := runtime.NewNavigator()

	ending, err := nav.Traverse(context.Background(), g, testutils.NewScriptedChooser(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "Safe Exit", ending)

	ending, err = nav.Traverse(context.Background(), g, testutils.NewScriptedChooser(2, 2, 1, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, "The Watcher", ending)
}

func TestGet_Bounds(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	for _, i := range []int{0, -1, 4} {
		_, err := c.Get(i)
		assert.ErrorIs(t, err, catalog.ErrIndexOutOfRange)
	}

	e, err := c.At(3)
	require.NoError(t, err)
	assert.Equal(t, "Dragon Peak", e.Name)
}

func TestList_ReturnsCopy(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	list := c.List()
	list[0].Name = "mutated"
	e, _ := c.At(1)
	assert.Equal(t, "The Lost Cabin", e.Name)
}

func TestNew_RejectsDanglingEdge(t *testing.T) {
	b := dsl.New("a")
	b.Add("a").Title("A").Choice("go", "Z9")
	g := b.MustBuild()

	_, err := catalog.New(catalog.Entry{Name: "Broken", Graph: g})
	assert.ErrorIs(t, err, domain.ErrGraphIntegrity)

	_, err = catalog.New(catalog.Entry{Graph: g})
	assert.Error(t, err)
}

func TestLoad_WithDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(`
name: Extra
start: x
nodes:
  - { id: x, title: X, ending: true }
`), 0644))

	md := filepath.Join(dir, "markdown")
	require.NoError(t, os.Mkdir(md, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(md, "story.md"), []byte("---\nstory: Pages\nstart: p\n---"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(md, "p.md"), []byte("---\ntitle: P\nending: true\n---\nThe end."), 0644))

	c, err := catalog.Load(context.Background(), catalog.WithDir(dir))
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	e, err := c.At(4)
	require.NoError(t, err)
	assert.Equal(t, "Extra", e.Name)
	e, err = c.At(5)
	require.NoError(t, err)
	assert.Equal(t, "Pages", e.Name)

	only, err := catalog.Load(context.Background(), catalog.WithDir(dir), catalog.WithoutBuiltins())
	require.NoError(t, err)
	assert.Equal(t, 2, only.Len())
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := catalog.Load(context.Background(), catalog.WithDir(filepath.Join(t.TempDir(), "nope")))
	assert.Error(t, err)
}
