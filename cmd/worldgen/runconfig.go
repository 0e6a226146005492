package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/lwd/pkg/phase"
)

// RunConfig is the CLI's own operator-facing configuration: which world
// size to build, what seed to derive sub-step streams from, a ceiling
// on the adaptive batch size, and per-phase parameter overrides. This
// is distinct from blocks.json/biome.json/world.json, which describe
// game data rather than a single run. BatchMax is validated but not
// read by this CLI: it runs sub-steps through ReplayToFlat with no
// adaptive batching.
type RunConfig struct {
	Seed     uint64 `yaml:"seed"`
	WorldSize string `yaml:"worldSize"`
	BatchMax int    `yaml:"batchMax"`

	// Phases lists, in the order they should be registered, the
	// registry name of each phase to run plus its parameter overrides.
	Phases []PhaseConfig `yaml:"phases"`
}

// PhaseConfig names one registered phase.Phase factory and the
// parameter overrides to apply on top of its defaults.
type PhaseConfig struct {
	Name   string      `yaml:"name"`
	Params phase.Params `yaml:"params,omitempty"`
}

// LoadRunConfig reads and validates a YAML run configuration file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing run config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("run config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the run configuration is usable before the pipeline
// is constructed from it.
func (c *RunConfig) Validate() error {
	if c.WorldSize == "" {
		return fmt.Errorf("worldSize must be set")
	}
	if c.BatchMax < 0 {
		return fmt.Errorf("batchMax must be >= 0 (0 means use the default)")
	}
	if len(c.Phases) == 0 {
		return fmt.Errorf("at least one phase must be configured")
	}
	seen := make(map[string]bool, len(c.Phases))
	for i, p := range c.Phases {
		if p.Name == "" {
			return fmt.Errorf("phases[%d]: name must be set", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("phases[%d]: phase %q registered twice in run config", i, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
