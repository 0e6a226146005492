package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRunConfig_Valid(t *testing.T) {
	yaml := `
seed: 42
worldSize: small
batchMax: 16
phases:
  - name: biome_division
    params:
      region_count: 8
      blend_bands: false
`
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadRunConfig(path)
	if err != nil {
		t.Fatalf("LoadRunConfig() error = %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.WorldSize != "small" {
		t.Errorf("WorldSize = %q, want small", cfg.WorldSize)
	}
	if len(cfg.Phases) != 1 || cfg.Phases[0].Name != "biome_division" {
		t.Fatalf("Phases = %+v, want one biome_division entry", cfg.Phases)
	}
	if cfg.Phases[0].Params["region_count"] != 8 {
		t.Errorf("region_count override = %v, want 8", cfg.Phases[0].Params["region_count"])
	}
}

func TestRunConfig_ValidateRejectsMissingWorldSize(t *testing.T) {
	cfg := &RunConfig{Phases: []PhaseConfig{{Name: "biome_division"}}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for missing worldSize")
	}
}

func TestRunConfig_ValidateRejectsNoPhases(t *testing.T) {
	cfg := &RunConfig{WorldSize: "small"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for no phases configured")
	}
}

func TestRunConfig_ValidateRejectsDuplicatePhaseName(t *testing.T) {
	cfg := &RunConfig{
		WorldSize: "small",
		Phases: []PhaseConfig{
			{Name: "biome_division"},
			{Name: "biome_division"},
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for duplicate phase name")
	}
}

func TestRunConfig_ValidateRejectsNegativeBatchMax(t *testing.T) {
	cfg := &RunConfig{
		WorldSize: "small",
		BatchMax:  -1,
		Phases:    []PhaseConfig{{Name: "biome_division"}},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for negative batchMax")
	}
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	if _, err := LoadRunConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadRunConfig() error = nil, want error for missing file")
	}
}
