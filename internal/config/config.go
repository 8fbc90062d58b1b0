package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoggingCfg controls where diagnostics are mirrored.
type LoggingCfg struct {
	File string `yaml:"file"` // Optional log file, appended to alongside stderr
}

// Config holds optional on-disk defaults for a sweep. Every field can be
// overridden from the command line; a missing config file means an empty
// Config, not an error at the CLI layer.
type Config struct {
	DefaultNames   []string   `yaml:"default_names"`   // Target names used when --name is not given
	ProtectedPaths []string   `yaml:"protected_paths"` // Extra paths the deleter must never touch
	HistoryDB      string     `yaml:"history_db"`      // SQLite removal log; empty disables recording
	Strict         bool       `yaml:"strict"`          // Exit non-zero when any removal fails
	Logging        LoggingCfg `yaml:"logging"`
}

var (
	errInvalidPath = errors.New("protected path must be absolute")
	errEmptyName   = errors.New("default_names entries cannot be blank")
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil // empty file is a valid config
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	for _, n := range c.DefaultNames {
		if strings.TrimSpace(n) == "" {
			return errEmptyName
		}
	}

	cleaned := make([]string, 0, len(c.ProtectedPaths))
	for _, p := range c.ProtectedPaths {
		cp := filepath.Clean(p)
		if !filepath.IsAbs(cp) {
			return fmt.Errorf("%w: %s", errInvalidPath, p)
		}
		cleaned = append(cleaned, cp)
	}
	c.ProtectedPaths = cleaned

	return nil
}
