// Package config loads restitch's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log struct {
		Path        string `yaml:"path"`        // empty disables file logging
		Development bool   `yaml:"development"` // readable encoder instead of JSON
	} `yaml:"log"`

	Workspace struct {
		Root                  string `yaml:"root"`
		AllowOutsideWorkspace bool   `yaml:"allow_outside_workspace"`
	} `yaml:"workspace"`

	Parser struct {
		// Extra tag vocabulary merged with the built-in names. The
		// vocabulary is configuration, not runtime data: it is fixed for
		// the lifetime of the process.
		ExtraTools  []string `yaml:"extra_tools"`
		ExtraParams []string `yaml:"extra_params"`
	} `yaml:"parser"`

	Matcher struct {
		// ExactOnly disables the line-trimmed and block-anchor fallbacks.
		ExactOnly bool `yaml:"exact_only"`
	} `yaml:"matcher"`

	Tools ToolsConfig `yaml:"tools"`

	Replay struct {
		ChunkSize int `yaml:"chunk_size"` // bytes fed per step when replaying
		DelayMs   int `yaml:"delay_ms"`   // pacing between steps in timed replay
	} `yaml:"replay"`
}

// ToolsConfig holds per-tool configuration with explicit enable/disable.
type ToolsConfig struct {
	Read    ReadToolConfig    `yaml:"read"`
	Write   WriteToolConfig   `yaml:"write"`
	Replace ReplaceToolConfig `yaml:"replace"`
}

// ReadToolConfig configures the read_file tool.
type ReadToolConfig struct {
	Enabled       bool `yaml:"enabled"`
	MaxFileSizeKB int  `yaml:"max_file_size_kb"`
}

// WriteToolConfig configures the write_to_file tool.
type WriteToolConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ReplaceToolConfig configures the replace_in_file tool.
type ReplaceToolConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Workspace.Root = "."
	cfg.Tools.Read.Enabled = true
	cfg.Tools.Read.MaxFileSizeKB = 1024
	cfg.Tools.Write.Enabled = true
	cfg.Tools.Replace.Enabled = true
	cfg.Replay.ChunkSize = 64
	cfg.Replay.DelayMs = 25
	return cfg
}

// Load reads the config file at path. An empty path tries "restitch.yaml"
// in the working directory and falls back to defaults when it does not
// exist; an explicit path that cannot be read is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = "restitch.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg := DefaultConfig()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants and normalizes the workspace root to an
// absolute path.
func (c *Config) Validate() error {
	if c.Workspace.Root == "" {
		c.Workspace.Root = "."
	}
	root, err := filepath.Abs(c.Workspace.Root)
	if err != nil {
		return fmt.Errorf("resolve workspace root: %w", err)
	}
	c.Workspace.Root = root

	if c.Tools.Read.MaxFileSizeKB <= 0 {
		c.Tools.Read.MaxFileSizeKB = 1024
	}
	if c.Replay.ChunkSize <= 0 {
		c.Replay.ChunkSize = 64
	}
	if c.Replay.DelayMs < 0 {
		c.Replay.DelayMs = 0
	}
	return nil
}
