package pipeline

import (
	"fmt"

	"github.com/dshills/lwd/pkg/grid"
	"github.com/dshills/lwd/pkg/snapshot"
)

// CollectSnapshot builds a snapshot.WorldSnapshot from the pipeline's
// current seed, world-size key, layer ranges, and each registered
// phase's parameters, in registration order. timestamp is supplied by
// the caller (the pipeline never reads the clock itself).
func (p *Pipeline) CollectSnapshot(timestamp int64) *snapshot.WorldSnapshot {
	layers := make([]snapshot.NamedLayerRange, len(p.profile.Layers))
	for i, l := range p.profile.Layers {
		layers[i] = snapshot.NamedLayerRange{Key: l.Key, StartPercent: l.StartPercent, EndPercent: l.EndPercent}
	}

	algorithms := make([]snapshot.AlgorithmSnapshot, len(p.phases))
	for i, ph := range p.phases {
		algorithms[i] = snapshot.AlgorithmSnapshot{AlgorithmID: ph.Meta().ID, Params: ph.GetParams()}
	}

	return snapshot.Collect(p.masterSeed, p.worldSizeKey, layers, algorithms, timestamp)
}

// LoadSnapshot applies a loaded snapshot's world profile (layers),
// master seed, and per-phase parameters to this pipeline: snap.AlgorithmID
// is matched against each registered phase's id, order-tolerant. A phase
// present in the pipeline but absent from the snapshot produces a
// warning, not an error; algorithm entries in the snapshot with no
// matching registered phase are ignored. The caller must call
// ReplayToFlat(TotalSubSteps()) afterward to materialize tiles —
// LoadSnapshot only updates profile/seed/parameter state.
//
// snap.Layers is validated before anything is committed: a malformed
// layer set (gaps, overlaps, out-of-range percentages) is rejected and
// leaves masterSeed, profile.Layers, and every phase's params untouched.
func (p *Pipeline) LoadSnapshot(snap *snapshot.WorldSnapshot) (warnings []string, err error) {
	layers := make([]grid.Layer, len(snap.Layers))
	for i, l := range snap.Layers {
		layers[i] = grid.Layer{Key: l.Key, StartPercent: l.StartPercent, EndPercent: l.EndPercent}
	}
	if err := grid.ValidateLayers(layers); err != nil {
		return nil, fmt.Errorf("pipeline: snapshot layers: %w", err)
	}

	p.masterSeed = snap.Seed
	p.profile.Layers = layers

	byID := make(map[string]snapshot.AlgorithmSnapshot, len(snap.Algorithms))
	for _, a := range snap.Algorithms {
		byID[a.AlgorithmID] = a
	}

	for _, ph := range p.phases {
		id := ph.Meta().ID
		entry, ok := byID[id]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("snapshot has no parameters for registered phase %q; keeping current values", id))
			continue
		}
		if err := ph.SetParams(entry.Params); err != nil {
			return warnings, fmt.Errorf("pipeline: applying snapshot params to phase %q: %w", id, err)
		}
	}

	return warnings, nil
}
