package repo

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFile = "config.toml"

// Config stores repository-local settings from .gitlet/config.toml.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Ignore  IgnoreConfig  `toml:"ignore"`
	Signing SigningConfig `toml:"signing"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// IgnoreConfig lists extra ignore globs applied after .gitletignore.
type IgnoreConfig struct {
	Patterns []string `toml:"patterns"`
}

// SigningConfig names an SSH private key used to sign new commits.
type SigningConfig struct {
	Key string `toml:"key"`
}

// DefaultConfig returns the settings written by Init.
func DefaultConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn"},
		Ignore: IgnoreConfig{Patterns: []string{}},
	}
}

// SlogLevel maps the configured level name to a slog.Level. Unknown names
// fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ReadConfig reads .gitlet/config.toml. Missing config returns defaults.
func (r *Repo) ReadConfig() (*Config, error) {
	data, ok, err := r.readMetaFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if !ok {
		return cfg, nil
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("read config: decode: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically writes .gitlet/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := r.writeMetaFile(configFile, buf.Bytes()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
