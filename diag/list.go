package diag

import "sort"

// List accumulates static diagnostics (spec.md §7 "Propagation policy":
// static errors accumulate in a diagnostic list; none is fatal
// individually, and evaluation is attempted only if the count is zero).
//
// Not safe for concurrent use; each compilation owns one List.
type List struct {
	items []*Error
}

// Add records a diagnostic. Runtime-fatal kinds should never reach here —
// use Raise (fatal.go) for those — but Add does not itself enforce that so
// tests can exercise the accounting in isolation.
func (l *List) Add(e *Error) {
	l.items = append(l.items, e)
}

// Errors reports whether any diagnostic was recorded.
func (l *List) Errors() bool {
	return len(l.items) > 0
}

// Count returns the number of recorded diagnostics.
func (l *List) Count() int {
	return len(l.items)
}

// All returns the recorded diagnostics ordered by source line, ties broken
// by insertion order (stable sort).
func (l *List) All() []*Error {
	out := make([]*Error, len(l.items))
	copy(out, l.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Reset clears the list for reuse across compilations.
func (l *List) Reset() {
	l.items = l.items[:0]
}
