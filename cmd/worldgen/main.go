// Command worldgen drives the generation pipeline from the command
// line: load game data and a run configuration, register phases,
// execute (optionally resuming from a snapshot), and write a snapshot
// and/or a debug shape-log SVG.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/lwd/pkg/grid"
	"github.com/dshills/lwd/pkg/phase"
	"github.com/dshills/lwd/pkg/pipeline"
	"github.com/dshills/lwd/pkg/shapesvg"
	"github.com/dshills/lwd/pkg/snapshot"

	_ "github.com/dshills/lwd/pkg/biomephase" // self-registers "biome_division"
)

const version = "1.0.0"

var (
	blocksPath   = flag.String("blocks", "", "Path to blocks.json (required)")
	biomesPath   = flag.String("biomes", "", "Path to biome.json (required)")
	worldPath    = flag.String("world", "", "Path to world.json (required)")
	runConfig    = flag.String("run", "", "Path to a YAML run configuration (required unless -load-snapshot is set)")
	loadSnapshot = flag.String("load-snapshot", "", "Path to a .lwd snapshot to resume from, instead of -run")
	saveSnapshot = flag.String("save-snapshot", "", "Path to write a .lwd snapshot after running")
	outputDir    = flag.String("output", ".", "Output directory for debug SVG files")
	toFlag       = flag.Int("to", -1, "Flat sub-step index to run to (-1 = run to completion)")
	svgFlag      = flag.Bool("svg", false, "Write a debug shape-log SVG for every executed sub-step")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	versionF     = flag.Bool("version", false, "Print version and exit")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("worldgen version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printUsage()
		os.Exit(0)
	}
	if *blocksPath == "" || *biomesPath == "" || *worldPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -blocks, -biomes, and -world are all required")
		printUsage()
		os.Exit(1)
	}
	if *runConfig == "" && *loadSnapshot == "" {
		fmt.Fprintln(os.Stderr, "Error: one of -run or -load-snapshot is required")
		printUsage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	blocks, err := grid.LoadBlocksFromFile(*blocksPath)
	if err != nil {
		return fmt.Errorf("loading blocks: %w", err)
	}
	biomes, err := grid.LoadBiomesFromFile(*biomesPath)
	if err != nil {
		return fmt.Errorf("loading biomes: %w", err)
	}
	sizes, layers, err := grid.LoadWorldConfigFromFile(*worldPath)
	if err != nil {
		return fmt.Errorf("loading world config: %w", err)
	}

	var (
		cfg  *RunConfig
		snap *snapshot.WorldSnapshot
	)
	if *loadSnapshot != "" {
		var warnings []string
		snap, warnings, err = snapshot.LoadFromFile(*loadSnapshot)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
		if *runConfig != "" {
			cfg, err = LoadRunConfig(*runConfig)
			if err != nil {
				return err
			}
		} else {
			cfg, err = runConfigFromSnapshot(snap)
			if err != nil {
				return err
			}
		}
	} else {
		cfg, err = LoadRunConfig(*runConfig)
		if err != nil {
			return err
		}
	}

	worldSizeKey := cfg.WorldSize
	size, ok := sizes[worldSizeKey]
	if !ok {
		return fmt.Errorf("world size %q not found in %s", worldSizeKey, *worldPath)
	}
	if size.Width == nil || size.Height == nil {
		return fmt.Errorf("world size %q has no fixed dimensions; only pre-sized entries are supported by this CLI", worldSizeKey)
	}

	profile := &grid.WorldProfile{Width: *size.Width, Height: *size.Height, Layers: layers}
	pl := pipeline.New(cfg.Seed, profile, worldSizeKey, blocks, biomes)

	for _, pc := range cfg.Phases {
		ph, err := phase.Get(pc.Name)
		if err != nil {
			return fmt.Errorf("resolving phase %q: %w", pc.Name, err)
		}
		if len(pc.Params) > 0 {
			if err := ph.SetParams(pc.Params); err != nil {
				return fmt.Errorf("applying params to phase %q: %w", pc.Name, err)
			}
		}
		if err := pl.Register(ph); err != nil {
			return fmt.Errorf("registering phase %q: %w", pc.Name, err)
		}
	}

	if snap != nil {
		if warnings, err := pl.LoadSnapshot(snap); err != nil {
			return fmt.Errorf("applying snapshot: %w", err)
		} else {
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
			}
		}
	}

	target := *toFlag
	if target < 0 {
		target = pl.TotalSubSteps()
	}
	if target > pl.TotalSubSteps() {
		return fmt.Errorf("-to %d exceeds total sub-step count %d", target, pl.TotalSubSteps())
	}

	if *verbose {
		fmt.Printf("Running %d of %d sub-steps (seed=%d, world=%s %dx%d)\n",
			target, pl.TotalSubSteps(), cfg.Seed, worldSizeKey, profile.Width, profile.Height)
	}

	start := time.Now()
	if err := pl.ReplayToFlat(target); err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Completed %d/%d sub-steps in %v\n", pl.ExecutedSubSteps(), pl.TotalSubSteps(), elapsed)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if *saveSnapshot != "" {
		out := pl.CollectSnapshot(time.Now().Unix())
		if err := snapshot.SaveToFile(*saveSnapshot, out); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		if *verbose {
			fmt.Printf("Wrote snapshot to %s\n", *saveSnapshot)
		}
	}

	if *svgFlag {
		if err := writeShapeLogSVGs(pl); err != nil {
			return fmt.Errorf("writing shape-log SVGs: %w", err)
		}
	}

	fmt.Printf("worldgen: executed %d sub-steps (seed=%d) in %v\n", pl.ExecutedSubSteps(), pl.Seed(), elapsed)
	return nil
}

func writeShapeLogSVGs(pl *pipeline.Pipeline) error {
	opts := shapesvg.DefaultOptions(pl.Profile().Width, pl.Profile().Height)
	for step, records := range pl.ShapeLogs() {
		opts.Title = fmt.Sprintf("Sub-step %d", step)
		path := filepath.Join(*outputDir, fmt.Sprintf("shapes_%04d.svg", step))
		if err := shapesvg.RenderToFile(records, path, opts); err != nil {
			return err
		}
		if *verbose {
			fmt.Printf("Wrote %s\n", path)
		}
	}
	return nil
}

// runConfigFromSnapshot builds a minimal RunConfig from a loaded
// snapshot's own recorded algorithms, used when the operator resumes
// from a snapshot without supplying a fresh -run file.
func runConfigFromSnapshot(snap *snapshot.WorldSnapshot) (*RunConfig, error) {
	if snap.WorldSize == "" {
		return nil, fmt.Errorf("snapshot has no world size recorded; supply -run explicitly")
	}
	cfg := &RunConfig{Seed: snap.Seed, WorldSize: snap.WorldSize}
	for _, a := range snap.Algorithms {
		cfg.Phases = append(cfg.Phases, PhaseConfig{Name: a.AlgorithmID, Params: a.Params})
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot-derived run config: %w", err)
	}
	return cfg, nil
}

func printUsage() {
	fmt.Println("worldgen - deterministic 2D world generation CLI")
	fmt.Println()
	fmt.Println("Usage: worldgen -blocks blocks.json -biomes biome.json -world world.json -run run.yaml [options]")
	fmt.Println()
	flag.PrintDefaults()
}
