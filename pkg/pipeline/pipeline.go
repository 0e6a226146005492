package pipeline

import (
	"fmt"

	"github.com/dshills/lwd/pkg/geometry"
	"github.com/dshills/lwd/pkg/grid"
	"github.com/dshills/lwd/pkg/phase"
	"github.com/dshills/lwd/pkg/rng"
)

// StepState describes one sub-step's static name and whether it lies
// before the pipeline's current flat index (executed, in the current
// replay).
type StepState struct {
	Name string
	Done bool
}

// PhaseInfo is the cached, per-phase description PhaseInfoList returns.
type PhaseInfo struct {
	ID             string
	Name           string
	StartFlatIndex int
	EndFlatIndex   int // exclusive
	Steps          []StepState
}

// PhaseParamSnapshot pairs a registered phase's id with its current
// parameter values, in registration order — the shape pkg/snapshot
// collects for WorldSnapshot.Algorithms.
type PhaseParamSnapshot struct {
	AlgorithmID string
	Params      phase.Params
}

// Pipeline is the ordered registry of phases plus the flat sub-step
// cursor, master seed, World/BiomeMap/shared state, and per-sub-step
// shape logs.
type Pipeline struct {
	masterSeed   uint64
	worldSizeKey string

	world   *grid.World
	profile *grid.WorldProfile
	blocks  []grid.Block
	biomes  []grid.Biome

	biomeMap *grid.BiomeMap
	shared   map[string]any

	phases            []phase.Phase
	perPhaseStepCount []int
	totalSteps        int
	flatIndex         int

	shapeLogs map[int][]geometry.ShapeRecord

	phaseInfoCache []PhaseInfo
	phaseInfoDirty bool
}

// New constructs an empty Pipeline bound to one world size. Phases are
// added afterward via Register, before any Step*/Replay* call.
func New(seed uint64, profile *grid.WorldProfile, worldSizeKey string, blocks []grid.Block, biomes []grid.Biome) *Pipeline {
	return &Pipeline{
		masterSeed:   seed,
		worldSizeKey: worldSizeKey,
		world:        grid.NewWorld(profile.Width, profile.Height),
		profile:      profile,
		blocks:       blocks,
		biomes:       biomes,
		shared:       make(map[string]any),
		shapeLogs:    make(map[int][]geometry.ShapeRecord),
		phaseInfoDirty: true,
	}
}

// Register appends phase p, recording its sub-step count and marking
// the phase-info cache dirty. Must be called before any Step*/Replay*
// call that would touch p.
func (p *Pipeline) Register(ph phase.Phase) error {
	id := ph.Meta().ID
	for _, existing := range p.phases {
		if existing.Meta().ID == id {
			return fmt.Errorf("%w: %q", ErrDuplicatePhaseID, id)
		}
	}
	steps := len(ph.Meta().Steps)
	p.phases = append(p.phases, ph)
	p.perPhaseStepCount = append(p.perPhaseStepCount, steps)
	p.totalSteps += steps
	p.phaseInfoDirty = true
	return nil
}

// locate maps a flat sub-step index to its (phaseIndex, stepIndex) via
// prefix sum over perPhaseStepCount.
func (p *Pipeline) locate(flat int) (phaseIndex, stepIndex int) {
	cursor := 0
	for i, count := range p.perPhaseStepCount {
		if flat < cursor+count {
			return i, flat - cursor
		}
		cursor += count
	}
	return len(p.phases), 0
}

// phaseStartFlat returns the flat index at which phaseIndex's first
// sub-step begins.
func (p *Pipeline) phaseStartFlat(phaseIndex int) int {
	cursor := 0
	for i := 0; i < phaseIndex; i++ {
		cursor += p.perPhaseStepCount[i]
	}
	return cursor
}

// IsComplete reports whether every registered sub-step has executed.
func (p *Pipeline) IsComplete() bool { return p.flatIndex == p.totalSteps }

// TotalSubSteps returns the sum of every registered phase's sub-step
// count.
func (p *Pipeline) TotalSubSteps() int { return p.totalSteps }

// ExecutedSubSteps returns the current flat index.
func (p *Pipeline) ExecutedSubSteps() int { return p.flatIndex }

// Seed returns the master seed.
func (p *Pipeline) Seed() uint64 { return p.masterSeed }

// SetSeed writes a new master seed. The pipeline does not auto-replay;
// the caller decides whether and when to call ReplayToFlat.
func (p *Pipeline) SetSeed(seed uint64) { p.masterSeed = seed }

// WorldSizeKey returns the named world size this pipeline was
// constructed with.
func (p *Pipeline) WorldSizeKey() string { return p.worldSizeKey }

// Layers returns the profile's ordered layer list.
func (p *Pipeline) Layers() []grid.Layer { return p.profile.Layers }

// World returns the pipeline-owned tile grid.
func (p *Pipeline) World() *grid.World { return p.world }

// BiomeMap returns the pipeline-owned biome grid, or nil if no sub-step
// has created one yet.
func (p *Pipeline) BiomeMap() *grid.BiomeMap { return p.biomeMap }

// Profile returns the world profile this pipeline was constructed with.
func (p *Pipeline) Profile() *grid.WorldProfile { return p.profile }

// CurrentPhaseIndex returns the phase index the current flat index
// falls within (or len(phases) if complete).
func (p *Pipeline) CurrentPhaseIndex() int {
	phaseIndex, _ := p.locate(p.flatIndex)
	return phaseIndex
}

// CurrentSubIndex returns the sub-step index within the current phase
// the flat index falls within.
func (p *Pipeline) CurrentSubIndex() int {
	_, stepIndex := p.locate(p.flatIndex)
	return stepIndex
}

// ShapeLogs returns the accumulated shape log for every executed
// sub-step, keyed by flat index.
func (p *Pipeline) ShapeLogs() map[int][]geometry.ShapeRecord { return p.shapeLogs }

// PhaseSnapshots returns each registered phase's id and current
// parameters, in registration order.
func (p *Pipeline) PhaseSnapshots() []PhaseParamSnapshot {
	out := make([]PhaseParamSnapshot, len(p.phases))
	for i, ph := range p.phases {
		out[i] = PhaseParamSnapshot{AlgorithmID: ph.Meta().ID, Params: ph.GetParams()}
	}
	return out
}

// StepForwardSub executes exactly one sub-step. On success flatIndex
// advances by 1; on algorithm failure flatIndex is unchanged and the
// error is an *AlgorithmFailureError.
func (p *Pipeline) StepForwardSub() error {
	if p.IsComplete() {
		return ErrAlreadyComplete
	}

	phaseIndex, stepIndex := p.locate(p.flatIndex)
	ph := p.phases[phaseIndex]

	seed := rng.DeriveStepSeed(p.masterSeed, uint32(p.flatIndex), p.profile.Width, p.profile.Height)
	stream := rng.NewStream(seed)

	var log []geometry.ShapeRecord
	ctx := phase.NewRuntimeContext(p.world, p.profile, p.blocks, p.biomes, stream, p.biomeMap, p.shared, &log)

	if err := ph.Execute(stepIndex, ctx); err != nil {
		return &AlgorithmFailureError{PhaseID: ph.Meta().ID, StepIndex: stepIndex, FlatIndex: p.flatIndex, Err: err}
	}

	p.biomeMap = ctx.BiomeMap
	p.shapeLogs[p.flatIndex] = log
	p.flatIndex++
	p.phaseInfoDirty = true
	return nil
}

// StepBackwardSub rewinds by exactly one sub-step via full replay. A
// no-op at flatIndex == 0.
func (p *Pipeline) StepBackwardSub() error {
	if p.flatIndex == 0 {
		return nil
	}
	return p.ReplayToFlat(p.flatIndex - 1)
}

// StepForwardPhase advances to the start of the next phase (or to
// completion, if already in the last phase), executing sub-steps one at
// a time until the boundary is reached.
func (p *Pipeline) StepForwardPhase() error {
	phaseIndex, _ := p.locate(p.flatIndex)
	var target int
	if phaseIndex >= len(p.phases) {
		target = p.totalSteps
	} else {
		target = p.phaseStartFlat(phaseIndex) + p.perPhaseStepCount[phaseIndex]
	}

	for p.flatIndex < target {
		if err := p.StepForwardSub(); err != nil {
			return err
		}
	}
	return nil
}

// StepBackwardPhase rewinds to a phase-start boundary: the current
// phase's start if not already on one, otherwise the previous phase's
// start. A no-op at flatIndex == 0.
func (p *Pipeline) StepBackwardPhase() error {
	if p.flatIndex == 0 {
		return nil
	}

	phaseIndex, stepIndex := p.locate(p.flatIndex)
	var target int
	if stepIndex != 0 {
		target = p.phaseStartFlat(phaseIndex)
	} else if phaseIndex > 0 {
		target = p.phaseStartFlat(phaseIndex - 1)
	} else {
		target = 0
	}
	return p.ReplayToFlat(target)
}

// ReplayToFlat resets World, BiomeMap, and shared state, resets every
// phase, then re-executes forward sub-steps until flatIndex == target
// or a step fails (in which case it halts at the pre-failure index and
// surfaces the failure).
func (p *Pipeline) ReplayToFlat(target int) error {
	if target > p.totalSteps {
		return fmt.Errorf("%w: target %d exceeds total steps %d", ErrOutOfRangeTarget, target, p.totalSteps)
	}

	p.world.Reset()
	p.biomeMap = nil
	p.shared = make(map[string]any)
	p.shapeLogs = make(map[int][]geometry.ShapeRecord)
	for _, ph := range p.phases {
		ph.OnReset()
	}
	p.flatIndex = 0
	p.phaseInfoDirty = true

	for p.flatIndex < target {
		if err := p.StepForwardSub(); err != nil {
			return err
		}
	}
	return nil
}

// PhaseInfoList returns a cached per-phase description with per-step
// completion states, rebuilt only when the registry or cursor has
// changed since the last call.
func (p *Pipeline) PhaseInfoList() []PhaseInfo {
	if !p.phaseInfoDirty {
		return p.phaseInfoCache
	}

	infos := make([]PhaseInfo, len(p.phases))
	cursor := 0
	for i, ph := range p.phases {
		meta := ph.Meta()
		steps := make([]StepState, len(meta.Steps))
		for s, step := range meta.Steps {
			steps[s] = StepState{Name: step.Name, Done: cursor+s < p.flatIndex}
		}
		infos[i] = PhaseInfo{
			ID:             meta.ID,
			Name:           meta.Name,
			StartFlatIndex: cursor,
			EndFlatIndex:   cursor + len(meta.Steps),
			Steps:          steps,
		}
		cursor += len(meta.Steps)
	}

	p.phaseInfoCache = infos
	p.phaseInfoDirty = false
	return infos
}
