package diag

import "fmt"

// TraceEntry is one frame of a runtime-fatal traceback: the source line a
// live frame was executing and a short human label for it (spec.md §7,
// "a stack traceback derived from the live frame chain").
type TraceEntry struct {
	Line  int
	Label string
}

// FatalError is a runtime-fatal diagnostic (spec.md §7 "Runtime, fatal"):
// nil dereference, bounds violation, scope violation, overflow, and so on.
// It is carried by panic/recover rather than a C-style longjmp, per Design
// Notes §9 "Longjump-based control flow" — idiomatic Go substitutes a typed
// panic value for the C exit-label jump, caught exactly once at the top of
// the interpreter's Run method.
type FatalError struct {
	*Error
	Trace []TraceEntry
}

func (f *FatalError) Error() string {
	if f.Error == nil {
		return "<nil fatal>"
	}
	return f.Error.Error()
}

func (f *FatalError) Unwrap() error { return f.Error }

// Raise panics with a FatalError of the given kind. Every call site named
// in spec.md §7's "Runtime, fatal via longjump" list uses this instead of
// returning an error, so that a panic anywhere on the call stack unwinds
// straight to the interpreter's Run recover without every intermediate
// frame needing to check and re-propagate an error return.
func Raise(kind Kind, line int, detail string) {
	panic(&FatalError{Error: New(kind, line, detail)})
}

// RaiseWrap is Raise but attaches cause as the wrapped error.
func RaiseWrap(kind Kind, line int, detail string, cause error) {
	panic(&FatalError{Error: Wrap(kind, line, detail, cause)})
}

// PushTrace appends a frame to f's traceback. The evaluator calls this
// while the panic is unwinding through each frame's defer, building the
// traceback from the raise site outward without needing to reconstruct it
// from the (possibly already unwound) frame stack at the recover site.
func (f *FatalError) PushTrace(line int, label string) *FatalError {
	f.Trace = append(f.Trace, TraceEntry{Line: line, Label: label})
	return f
}

// Recover converts a recovered panic value into a *FatalError, or returns
// (nil, false) if r did not originate from Raise — in which case the
// caller should re-panic, since Recover must never silently swallow a
// genuine programmer error (e.g. a nil-pointer bug in the evaluator
// itself).
func Recover(r any) (*FatalError, bool) {
	if r == nil {
		return nil, false
	}
	fe, ok := r.(*FatalError)
	return fe, ok
}

// Traceback renders f's recorded trace, innermost frame first, for
// cmd/a68run's diagnostic output.
func (f *FatalError) Traceback() string {
	s := f.Error.Error()
	for _, t := range f.Trace {
		s += fmt.Sprintf("\n  at line %d: %s", t.Line, t.Label)
	}
	return s
}
