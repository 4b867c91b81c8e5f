// Package a68 wires L1-L6 (mode, coerce, scope, runtime, eval, ops) plus
// the standard environment and diagnostic list into one interpreter
// instance (spec.md §9 "Global interpreter state": "make the instance an
// explicit context passed through evaluation so multiple interpreters can
// run in the same process"). Everything below this package is a library;
// this package and cmd/a68run are the only things that assume there is
// exactly one program to run.
package a68

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/eval"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/runtime/gc"
	"github.com/a68core/a68/scope"
)

// Interpreter is one running instance: an Evaluator (which itself owns
// the mode table, standard environment, frame/expression stacks, heap and
// collector) plus the static diagnostic list a front end's check pass
// would have populated before ever calling Run (spec.md §7 "Propagation
// policy": "evaluation is attempted only if static error count is
// zero").
type Interpreter struct {
	*eval.Evaluator
	Diagnostics *diag.List
}

// New builds an Interpreter from cfg, pre-loading the standard
// environment's builtins into its level-0 frame exactly as spec.md §4.4
// "Frame entry runs the table's initialisation list" describes for the
// outermost range.
func New(cfg Config) *Interpreter {
	return &Interpreter{
		Evaluator:   eval.New(cfg.toEvalOptions()),
		Diagnostics: &diag.List{},
	}
}

// GlobalTable is the standard environment's own symbol table, the parent
// every top-level program range's scope.Table is built against.
func (it *Interpreter) GlobalTable() *scope.Table { return it.Env.Table }

// Modes is the mode table every standard, LONG-family, and user-declared
// mode in this instance is interned into.
func (it *Interpreter) Modes() *mode.Table { return it.Evaluator.Modes }

// Run type-checks nothing itself (that is §4.1/§4.2/§4.3's job, already
// done by the time a *ast.Tree reaches here — see SPEC_FULL.md §6) and
// simply evaluates tree's root, refusing to run at all if static
// diagnostics were already recorded (spec.md §7).
func (it *Interpreter) Run(tree *ast.Tree) (any, error) {
	if it.Diagnostics.Errors() {
		return nil, it.Diagnostics.All()[0]
	}
	return it.Evaluator.Run(tree)
}

// SweepHeap runs one explicit mark-compact collection (spec.md §4.4
// "triggered ... by an explicit sweep heap call"; SPEC_FULL.md §4.4, the
// same call cmd/a68run's `gc sweep` subcommand reaches; the standard
// environment has no `sweep heap` primitive).
func (it *Interpreter) SweepHeap() gc.Stats {
	return it.GC.Collect(it.Frames, it.Expr)
}

// HeapStats reports the heap's current occupancy without forcing a
// collection, for cmd/a68run's `gc stats` subcommand.
type HeapStats struct {
	Used     int
	Capacity int
}

func (it *Interpreter) HeapStats() HeapStats {
	return HeapStats{Used: it.Heap.Used(), Capacity: it.Heap.Capacity()}
}
