package frame

import "github.com/a68core/a68/mode"

// ExprStack is the expression stack (spec.md §4.4 "Expression stack"): a
// separate stack from the frame stack, pushed/popped per unit evaluation,
// holding temporaries and procedure arguments. Each slot carries the mode
// it was pushed under, known statically at every push site — Design Notes
// §9 adopts this so runtime/gc can scan the expression stack directly as
// a GC root, instead of the C design's anonymous protect-from-sweep tags.
type ExprStack struct {
	slots []any
	modes []*mode.Mode
}

// NewExprStack creates an expression stack with room for capacity slots
// before it grows (growth is unbounded; capacity only pre-sizes).
func NewExprStack(capacity int) *ExprStack {
	return &ExprStack{
		slots: make([]any, 0, capacity),
		modes: make([]*mode.Mode, 0, capacity),
	}
}

// Push places v on top of the stack under mode m.
func (e *ExprStack) Push(v any, m *mode.Mode) {
	e.slots = append(e.slots, v)
	e.modes = append(e.modes, m)
}

// Pop removes and returns the top slot.
func (e *ExprStack) Pop() any {
	n := len(e.slots) - 1
	v := e.slots[n]
	e.slots = e.slots[:n]
	e.modes = e.modes[:n]
	return v
}

// Top returns the top slot without removing it.
func (e *ExprStack) Top() any { return e.slots[len(e.slots)-1] }

// Mark returns the current stack depth, for the voidening/clause-exit
// snapshot spec.md §4.4 describes ("the stack pointer snapshot at clause
// entry is the voidening point").
func (e *ExprStack) Mark() int { return len(e.slots) }

// Reset truncates the stack back to a previously taken Mark (spec.md §4.4
// "a semicolon resets the stack pointer to that snapshot"; invariant I5
// is exactly this: the pointer at clause exit differs from entry by
// precisely the yielded mode's width).
func (e *ExprStack) Reset(mark int) {
	e.slots = e.slots[:mark]
	e.modes = e.modes[:mark]
}

// Slots returns the live slot values from mark to the current top, for
// runtime/gc's root scan.
func (e *ExprStack) Slots(mark int) []any {
	return e.slots[mark:]
}

// ModeAt returns the static mode the slot at absolute index i was pushed
// under.
func (e *ExprStack) ModeAt(i int) *mode.Mode { return e.modes[i] }

// All returns every currently live slot, for a full GC root scan.
func (e *ExprStack) All() []any { return e.slots }
