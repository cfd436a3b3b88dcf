package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tales"
	"github.com/aretw0/tales/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log", "", "")
	cmd.Flags().String("recorder", "", "")
	cmd.Flags().String("stories-dir", "", "")
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().String("addr", "", "")
	cmd.Flags().String("metrics-addr", "", "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("recorder: sqlite\nlog_path: from-file.txt\nrecent_limit: 3\n"), 0o644))
	t.Setenv("TALES_RECENT_LIMIT", "7")

	cfg, err := loadConfig(newTestCommand(t, "--config", file, "--recorder", "memory", "--addr", "127.0.0.1:9000", "--metrics-addr", ":9100"))
	require.NoError(t, err)

	assert.Equal(t, config.RecorderMemory, cfg.Recorder, "flag beats file")
	assert.Equal(t, "from-file.txt", cfg.LogPath, "file beats default")
	assert.Equal(t, 7, cfg.RecentLimit, "env beats file")
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_UnsetFlagsKeepDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_InvalidRecorder(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := loadConfig(newTestCommand(t, "--recorder", "tape"))
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"validate", "graph", "history", "serve", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.True(t, strings.HasPrefix(out.String(), "tales "+tales.Version+" (go"))
}
