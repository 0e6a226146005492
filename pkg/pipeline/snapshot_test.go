package pipeline

import (
	"errors"
	"testing"

	"github.com/dshills/lwd/pkg/grid"
	"github.com/dshills/lwd/pkg/snapshot"
)

func TestPipeline_CollectSnapshotCapturesLayersSeedAndParams(t *testing.T) {
	p := New(42, testProfile(), "small", nil, nil)
	ph := newRecordingPhase("a", 2)
	ph.params = map[string]any{"x": 1.0}
	if err := p.Register(ph); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	snap := p.CollectSnapshot(1700000000)
	if snap.Seed != 42 {
		t.Errorf("Seed = %d, want 42", snap.Seed)
	}
	if snap.WorldSize != "small" {
		t.Errorf("WorldSize = %q, want small", snap.WorldSize)
	}
	if len(snap.Layers) != 1 || snap.Layers[0].Key != "all" {
		t.Fatalf("Layers = %+v, want one entry keyed \"all\"", snap.Layers)
	}
	if len(snap.Algorithms) != 1 || snap.Algorithms[0].AlgorithmID != "a" {
		t.Fatalf("Algorithms = %+v, want one entry for phase \"a\"", snap.Algorithms)
	}
}

func TestPipeline_LoadSnapshotRestoresLayersSeedAndParams(t *testing.T) {
	p := New(1, testProfile(), "small", nil, nil)
	ph := newRecordingPhase("a", 2)
	if err := p.Register(ph); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	snap := &snapshot.WorldSnapshot{
		Version:   snapshot.CurrentVersion,
		Seed:      99,
		WorldSize: "small",
		Layers: []snapshot.NamedLayerRange{
			{Key: "sky", StartPercent: 0, EndPercent: 30},
			{Key: "ground", StartPercent: 30, EndPercent: 100},
		},
		Algorithms: []snapshot.AlgorithmSnapshot{
			{AlgorithmID: "a", Params: map[string]any{"y": 2.0}},
		},
	}

	warnings, err := p.LoadSnapshot(snap)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if p.Seed() != 99 {
		t.Errorf("Seed() = %d, want 99", p.Seed())
	}

	wantLayers := []grid.Layer{
		{Key: "sky", StartPercent: 0, EndPercent: 30},
		{Key: "ground", StartPercent: 30, EndPercent: 100},
	}
	gotLayers := p.Layers()
	if len(gotLayers) != len(wantLayers) {
		t.Fatalf("Layers() = %+v, want %+v", gotLayers, wantLayers)
	}
	for i := range wantLayers {
		if gotLayers[i] != wantLayers[i] {
			t.Errorf("Layers()[%d] = %+v, want %+v", i, gotLayers[i], wantLayers[i])
		}
	}

	if ph.GetParams()["y"] != 2.0 {
		t.Errorf("phase params = %+v, want y=2.0", ph.GetParams())
	}
}

func TestPipeline_LoadSnapshotRejectsMalformedLayersWithoutMutating(t *testing.T) {
	p := New(1, testProfile(), "small", nil, nil)
	ph := newRecordingPhase("a", 2)
	if err := p.Register(ph); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	originalLayers := append([]grid.Layer(nil), p.Layers()...)

	snap := &snapshot.WorldSnapshot{
		Version:   snapshot.CurrentVersion,
		Seed:      99,
		WorldSize: "small",
		Layers: []snapshot.NamedLayerRange{
			{Key: "sky", StartPercent: 0, EndPercent: 30},
			{Key: "gap", StartPercent: 50, EndPercent: 100}, // leaves [30,50) uncovered
		},
		Algorithms: []snapshot.AlgorithmSnapshot{
			{AlgorithmID: "a", Params: map[string]any{"y": 2.0}},
		},
	}

	_, err := p.LoadSnapshot(snap)
	if !errors.Is(err, grid.ErrConfigurationInvalid) {
		t.Fatalf("LoadSnapshot(malformed layers) error = %v, want ErrConfigurationInvalid", err)
	}

	if p.Seed() != 1 {
		t.Errorf("Seed() = %d, want unchanged 1 after a rejected snapshot", p.Seed())
	}
	gotLayers := p.Layers()
	if len(gotLayers) != len(originalLayers) {
		t.Fatalf("Layers() = %+v, want unchanged %+v", gotLayers, originalLayers)
	}
	for i := range originalLayers {
		if gotLayers[i] != originalLayers[i] {
			t.Errorf("Layers()[%d] = %+v, want unchanged %+v", i, gotLayers[i], originalLayers[i])
		}
	}
	if ph.GetParams()["y"] != nil {
		t.Errorf("phase params = %+v, want untouched after a rejected snapshot", ph.GetParams())
	}
}

func TestPipeline_LoadSnapshotThenReplayProducesLayerAwareWorld(t *testing.T) {
	p := New(1, testProfile(), "small", nil, nil)
	ph := newRecordingPhase("a", 2)
	if err := p.Register(ph); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	snap := &snapshot.WorldSnapshot{
		Version:   snapshot.CurrentVersion,
		Seed:      7,
		WorldSize: "small",
		Layers: []snapshot.NamedLayerRange{
			{Key: "only", StartPercent: 0, EndPercent: 100},
		},
		Algorithms: []snapshot.AlgorithmSnapshot{{AlgorithmID: "a"}},
	}
	if _, err := p.LoadSnapshot(snap); err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if err := p.ReplayToFlat(p.TotalSubSteps()); err != nil {
		t.Fatalf("ReplayToFlat() error = %v", err)
	}
	if !p.IsComplete() {
		t.Fatal("IsComplete() = false after replaying a snapshot-restored pipeline")
	}
}
