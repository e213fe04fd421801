// Package config loads the optional TOML pipeline configuration used by the
// driver to pick passes and dump options.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors the pipeline TOML file:
//
//	[pipeline]
//	passes = ["algebraic-identity", "strength-reduction", "multi-instruction"]
//	verify = true
//
//	[dump]
//	before = "*"
//	after = ""
//	func = "main"
type Config struct {
	Pipeline Pipeline `toml:"pipeline"`
	Dump     Dump     `toml:"dump"`
}

type Pipeline struct {
	// Passes overrides the default pass order. Empty means the built-in
	// default order.
	Passes []string `toml:"passes"`

	// Verify enables IR invariant checks around every pass.
	Verify bool `toml:"verify"`
}

type Dump struct {
	Before string `toml:"before"` // pass name or "*"
	After  string `toml:"after"`  // pass name or "*"
	Func   string `toml:"func"`   // restrict dumps to one function
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{}
}

// Load reads and parses a pipeline config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
