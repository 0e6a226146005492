// Package pipeline schedules an ordered registry of phase.Phase
// algorithms over a flat sub-step index. It supports single-sub-step
// forward/backward stepping, phase-granular jumps, full replay to any
// target index, and incremental execution paced by an adaptive
// batch-size controller.
//
// Scheduling is single-threaded and cooperative: sub-steps observe
// strict program order, and a sub-step is an indivisible unit from the
// scheduler's point of view — the only suspension points are between
// sub-steps, never inside one. Exact reverse-traversal is implemented
// by replaying from the zero state rather than journaling undo data:
// the pipeline clears World, BiomeMap, and the shared store, resets
// every phase, and re-executes forward to the target index.
package pipeline
