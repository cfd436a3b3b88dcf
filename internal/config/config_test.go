package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "adventure_log.txt", cfg.LogPath)
	assert.Equal(t, 10, cfg.RecentLimit)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "log_path: /tmp/x.txt\nrecent_limit: 3\nrecorder: sqlite\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.txt", cfg.LogPath)
	assert.Equal(t, 3, cfg.RecentLimit)
	assert.Equal(t, RecorderSQLite, cfg.Recorder)
	assert.Equal(t, ":8080", cfg.HTTPAddr, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "recent_limit: 3\nrecorder: sqlite\n")
	t.Setenv("TALES_RECENT_LIMIT", "7")
	t.Setenv("TALES_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RecentLimit)
	assert.True(t, cfg.Debug)
	assert.Equal(t, RecorderSQLite, cfg.Recorder)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("stories_dir: extra\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "extra", cfg.StoriesDir)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "recent_limit: [nope"))
	assert.Error(t, err)

	t.Setenv("TALES_MAX_STEPS", "many")
	_, err = Load(writeFile(t, ""))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Recorder = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RecentLimit = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Recorder = RecorderRedis
	cfg.RedisAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Recorder = RecorderMemory
	cfg.LogPath = ""
	assert.NoError(t, cfg.Validate())
}
