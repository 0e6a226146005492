package phase

import "fmt"

// Phase is the algorithm contract a generation phase implements.
//
// Contract:
//   - Meta's Steps length must not change across the phase's lifetime.
//   - Execute must use only ctx.RNG for randomness, never an outside
//     source, so that identical (master seed, flat index) reproduces
//     identical results.
//   - SetParams must validate the full candidate set before mutating any
//     field — on rejection the phase's prior parameter state is
//     untouched.
//   - OnReset clears phase-internal caches only; parameter values
//     configured via SetParams survive a reset.
type Phase interface {
	Meta() PhaseMeta
	Execute(stepIndex int, ctx *RuntimeContext) error
	GetParams() Params
	SetParams(Params) error
	OnReset()
}

// Registry holds named phase factories so a host (CLI, editor) can
// construct phases by name without importing every implementation
// package directly.
var registry = make(map[string]func() Phase)

// Register adds a phase factory under name. Panics on duplicate
// registration, since two phases racing for the same name is always a
// wiring bug caught at init time, not a runtime condition to recover
// from.
func Register(name string, factory func() Phase) {
	if factory == nil {
		panic(fmt.Sprintf("phase: Register factory for %q is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("phase: Register called twice for %q", name))
	}
	registry[name] = factory
}

// Get constructs a new Phase instance from its registered factory.
func Get(name string) (Phase, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("phase: %q not registered", name)
	}
	return factory(), nil
}

// Names returns every registered phase name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
