// Package verify implements the testable universal properties spec.md §8
// states for the GC and the dynamic-scope guard: "after any collection,
// every reachable handle remains live and every unreachable one is
// freed" (GC completeness, invariant I6) and "for every successful
// assignment N <- V, scope(V) >= scope(N)" (scope soundness, invariant
// I3). It is grounded on the teacher's hive/verify package's shape — a
// set of composable validators returning a typed error, with an
// AllInvariants-style entry point a test or a CLI check subcommand calls
// once — but the checks themselves are new, since hive/verify validates
// REGF/HBIN byte layout rather than a live heap and frame stack.
//
// The reachability walk here deliberately does not reuse runtime/gc's
// colour phase: that phase mutates Handle.Status bits and is meant to
// run once per collection inside the allocator mutex. verify is a
// passive diagnostic a test can call at any point without disturbing
// the heap the program under test is still using, so it keeps its own
// visited set instead.
package verify

import (
	"fmt"

	"github.com/a68core/a68/runtime/frame"
	"github.com/a68core/a68/runtime/heap"
)

// Error reports which invariant a verify check found violated.
type Error struct {
	Invariant string
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Invariant, e.Message)
}

// Reachable walks every GC root (stack's live frames' Locals, expr's live
// slots) and returns the set of handles reachable from them, following
// exactly the same value shapes runtime/gc.colourValue does: heap.Ref,
// heap.Colourer implementations (RowDesc, PROC/FORMAT environments), and
// plain []any for STRUCT payloads.
func Reachable(stack *frame.Stack, expr *frame.ExprStack) map[*heap.Handle]bool {
	seen := make(map[*heap.Handle]bool)
	mark := func(h *heap.Handle) { markReachable(h, seen) }

	for f := stack.Top(); f != nil; f = f.Dynamic {
		for _, v := range f.Locals {
			walkValue(v, mark)
		}
	}
	for _, v := range expr.All() {
		walkValue(v, mark)
	}
	return seen
}

func markReachable(h *heap.Handle, seen map[*heap.Handle]bool) {
	if h == nil || seen[h] {
		return
	}
	seen[h] = true
	for _, v := range h.Data {
		walkValue(v, func(sub *heap.Handle) { markReachable(sub, seen) })
	}
}

func walkValue(v any, mark func(*heap.Handle)) {
	switch val := v.(type) {
	case heap.Ref:
		val.ColourRefs(mark)
	case *heap.RowDesc:
		val.ColourRefs(mark)
	case heap.Colourer:
		val.ColourRefs(mark)
	case []any:
		for _, sub := range val {
			walkValue(sub, mark)
		}
	}
}

// GCComplete checks invariant I6 against h's current handle table: every
// handle this independent walk finds reachable from stack/expr must still
// be live in h, and every handle h reports live must be reachable from
// stack/expr. The first direction catches a collector that freed
// something still in use; the second catches one that left garbage
// behind. Call this right after runtime/gc.Collector.Collect to assert
// the collection that just ran was exact.
func GCComplete(stack *frame.Stack, expr *frame.ExprStack, h *heap.Heap) error {
	reachable := Reachable(stack, expr)

	for handle := range reachable {
		if !handle.Live() {
			return &Error{Invariant: "I6 GC completeness",
				Message: "a handle reachable from a live frame or the expression stack was freed"}
		}
	}
	for _, handle := range h.Table() {
		if handle.Live() && !reachable[handle] {
			return &Error{Invariant: "I6 GC completeness",
				Message: "a live handle is unreachable from every frame and the expression stack"}
		}
	}
	return nil
}

// scopeSound mirrors eval's own assignment-time guard (eval/scope_guard.go
// scopeSound): under this port's scope numbering (0 = outermost,
// increasing with nesting depth) a value is safe to hold at holderLevel
// exactly when its own declaring scope is no deeper.
func scopeSound(valueScope, holderLevel int) bool { return valueScope <= holderLevel }

// ScopeSound walks every live frame in stack and checks invariant I3 on
// every heap.Ref it finds directly in that frame's Locals: the ref's
// Scope must not be deeper than the frame's own Level. This is a
// redundant, after-the-fact sweep over what eval's checkAssignScope
// already enforces at every individual assignment and return — useful as
// a whole-program test assertion that no write path was missed, not as a
// replacement for the live guard.
func ScopeSound(stack *frame.Stack) error {
	for f := stack.Top(); f != nil; f = f.Dynamic {
		for _, v := range f.Locals {
			ref, ok := v.(heap.Ref)
			if !ok || ref.IsNil() {
				continue
			}
			if !scopeSound(ref.Scope, f.Level) {
				return &Error{Invariant: "I3 scope soundness",
					Message: fmt.Sprintf("a name scoped to level %d is held in a frame at level %d", ref.Scope, f.Level)}
			}
		}
	}
	return nil
}

// AllInvariants runs every check this package offers in one call,
// returning the first violation (hive/verify.AllInvariants's short-
// circuiting convention).
func AllInvariants(stack *frame.Stack, expr *frame.ExprStack, h *heap.Heap) error {
	if err := GCComplete(stack, expr, h); err != nil {
		return err
	}
	if err := ScopeSound(stack); err != nil {
		return err
	}
	return nil
}
