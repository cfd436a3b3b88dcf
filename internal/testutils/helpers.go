package testutils

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// ScriptedChooser replays picks in order and reports domain.ErrInputExhausted
// once they run out, like a reader whose input stream closed.
type ScriptedChooser struct {
	mu     sync.Mutex
	picks  []int
	Bounds [][2]int
}

// NewScriptedChooser creates a chooser that returns picks in order.
func NewScriptedChooser(picks ...int) *ScriptedChooser {
	return &ScriptedChooser{picks: picks}
}

// Choose implements ports.Chooser.
func (s *ScriptedChooser) Choose(ctx context.Context, min, max int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Bounds = append(s.Bounds, [2]int{min, max})
	if len(s.picks) == 0 {
		return 0, domain.ErrInputExhausted
	}
	pick := s.picks[0]
	s.picks = s.picks[1:]
	return pick, nil
}

// Remaining returns how many scripted picks were not consumed.
func (s *ScriptedChooser) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.picks)
}

var _ ports.Chooser = (*ScriptedChooser)(nil)

// RecordingPresenter captures the IDs of presented nodes.
type RecordingPresenter struct {
	Visited []string
	Stories []string
}

// Present implements ports.Presenter.
func (p *RecordingPresenter) Present(ctx context.Context, story string, node domain.Node) error {
	p.Visited = append(p.Visited, node.ID)
	p.Stories = append(p.Stories, story)
	return nil
}

var _ ports.Presenter = (*RecordingPresenter)(nil)
