// Package config resolves runtime settings from defaults, an optional YAML
// file and TALES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit config path is given and it exists.
const DefaultFile = "tales.yaml"

// Recorder backends.
const (
	RecorderFile   = "file"
	RecorderSQLite = "sqlite"
	RecorderRedis  = "redis"
	RecorderMemory = "memory"
)

// Config controls the player, its outcome log and the HTTP surface.
type Config struct {
	LogPath         string `yaml:"log_path" env:"TALES_LOG_PATH" validate:"required_if=Recorder file"`
	Recorder        string `yaml:"recorder" env:"TALES_RECORDER" validate:"oneof=file sqlite redis memory"`
	SQLitePath      string `yaml:"sqlite_path" env:"TALES_SQLITE_PATH" validate:"required_if=Recorder sqlite"`
	RedisAddr       string `yaml:"redis_addr" env:"TALES_REDIS_ADDR" validate:"required_if=Recorder redis"`
	RedisPassword   string `yaml:"redis_password" env:"TALES_REDIS_PASSWORD"`
	RedisDB         int    `yaml:"redis_db" env:"TALES_REDIS_DB" validate:"gte=0"`
	RedisKey        string `yaml:"redis_key" env:"TALES_REDIS_KEY"`
	RedisMaxEntries int    `yaml:"redis_max_entries" env:"TALES_REDIS_MAX_ENTRIES" validate:"gte=0"`
	RecentLimit     int    `yaml:"recent_limit" env:"TALES_RECENT_LIMIT" validate:"gte=1"`
	StoriesDir      string `yaml:"stories_dir" env:"TALES_STORIES_DIR"`
	Debug           bool   `yaml:"debug" env:"TALES_DEBUG"`
	HTTPAddr        string `yaml:"http_addr" env:"TALES_HTTP_ADDR" validate:"required"`
	MaxSteps        int    `yaml:"max_steps" env:"TALES_MAX_STEPS" validate:"gte=0"`
	// MetricsAddr, when set, serves traversal metrics while the menu runs.
	MetricsAddr     string `yaml:"metrics_addr" env:"TALES_METRICS_ADDR"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogPath:     "adventure_log.txt",
		Recorder:    RecorderFile,
		SQLitePath:  "adventure_log.db",
		RedisAddr:   "localhost:6379",
		RedisKey:    "tales:outcomes",
		RecentLimit: 10,
		HTTPAddr:    ":8080",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load layers defaults, the YAML file at path and the environment.
// An empty path falls back to DefaultFile when present; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints after flags have been applied.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
