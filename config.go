package a68

import (
	"log/slog"

	"github.com/a68core/a68/coerce"
	"github.com/a68core/a68/eval"
)

// Config is the interpreter instance's option struct (spec.md §6 "the
// core's contract"; SPEC_FULL.md AMBIENT STACK "Configuration"), shaped
// like the teacher's dirty.FlushMode/link.LinkOptions option structs: a
// plain value type with a functional-defaults constructor rather than a
// builder, loaded from flags in cmd/a68run and optionally from a .env
// file the way termfx-morfx loads developer-run defaults.
type Config struct {
	// HeapSlots is runtime/heap.Heap's total slot capacity.
	HeapSlots int
	// FrameDepth is runtime/frame.Stack's byte/slot capacity.
	FrameDepth int
	// ExprSlots is runtime/frame.ExprStack's slot capacity.
	ExprSlots int
	// GCEvery triggers a checkpoint collection every N heap allocations;
	// 0 disables automatic checkpoints (spec.md §4.4 "preemptive
	// checkpoints").
	GCEvery int
	// Deflex selects the default deflexing policy operand coercion uses
	// (spec.md §4.2 "Deflex policy").
	Deflex coerce.Deflex
	// Log receives structured diagnostics from the evaluator and
	// collector; nil defaults to a discarding logger.
	Log *slog.Logger
}

// DefaultConfig returns the interpreter's out-of-the-box sizing, generous
// enough for every spec.md §8 scenario and the test suite without tuning.
func DefaultConfig() Config {
	return Config{
		HeapSlots:  1 << 16,
		FrameDepth: 1024,
		ExprSlots:  1 << 14,
		GCEvery:    4096,
		Deflex:     coerce.SafeDeflexing,
	}
}

func (c Config) toEvalOptions() eval.Options {
	return eval.Options{
		HeapSlots:  c.HeapSlots,
		FrameDepth: c.FrameDepth,
		ExprSlots:  c.ExprSlots,
		GCEvery:    c.GCEvery,
		Deflex:     c.Deflex,
		Log:        c.Log,
	}
}

// WithLog returns a copy of c logging to l (JSON or text handler, the
// caller's choice — see cmd/a68run's --verbose wiring).
func (c Config) WithLog(l *slog.Logger) Config {
	c.Log = l
	return c
}
