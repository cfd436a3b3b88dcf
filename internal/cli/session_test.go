package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tales/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunShell_FileRecorder(t *testing.T) {
	cfg := config.Default()
	cfg.LogPath = filepath.Join(t.TempDir(), "adventure_log.txt")

	out := &bytes.Buffer{}
	in := strings.NewReader("Ada\n1\n1\n1\n\n4\n\n5\n")

	require.NoError(t, RunShell(context.Background(), cfg, in, out))

	got := out.String()
	assert.Contains(t, got, "CHOOSE YOUR OWN ADVENTURE")
	assert.Contains(t, got, "=== Past Adventures ===")
	assert.Contains(t, got, "Thanks for playing!")

	data, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], " | Player: Ada | Story: The Lost Cabin | Ending: Safe Exit"))
}

func TestRunShell_ImmediateEOF(t *testing.T) {
	cfg := memoryConfig()
	out := &bytes.Buffer{}

	require.NoError(t, RunShell(context.Background(), cfg, strings.NewReader(""), out))
	assert.Contains(t, out.String(), "Thanks for playing!")
}

func TestRunShell_BadStoriesDir(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoriesDir = filepath.Join(t.TempDir(), "missing")

	err := RunShell(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "failed to open stories")
}
