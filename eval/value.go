package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/ops"
	"github.com/a68core/a68/runtime/frame"
	"github.com/a68core/a68/runtime/heap"
)

// ProcKind distinguishes the three shapes a procedure value can take
// (spec.md §3 "Procedure value: discriminated union of {standard-env
// primitive pointer, user routine node, skip default}").
type ProcKind int

const (
	PrimitiveProc ProcKind = iota
	UserProc
	SkipProc
)

// ProcVal is a procedure value. A PrimitiveProc wraps one of stdenv's
// ops.Fn builtins (kept at the ops.Fn layer so stdenv and eval never
// import each other's value types). A UserProc closes over the defining RoutineText node
// and the static-link frame active at the point the routine text was
// evaluated (spec.md §4.5 "Routine text": "captures the current frame as
// its static environment").
type ProcVal struct {
	Kind      ProcKind
	Mode      *mode.Mode
	Primitive ops.Fn
	Node      *ast.Node
	Env       *frame.Frame
	Locale    *Locale
}

// Locale is a partial-parametrisation record (spec.md §4.5 "Call":
// "partial parametrisation produces a new PROC value closing over the
// filled arguments"). Filled[i] true means Args[i] holds a bound
// argument; false means the slot is still open, to be supplied by a
// later call.
type Locale struct {
	Args   []any
	Filled []bool
}

// ColourRefs implements heap.Colourer: a procedure value's environment
// frame chain is not itself heap-resident (frame.Stack owns it and is
// scanned directly as a GC root — see runtime/gc.Collector.colour), but a
// locale's bound arguments may themselves hold Refs and must be walked
// (spec.md §4.4 colour phase: "follows PROC environment pointers and
// their locale handles").
func (p *ProcVal) ColourRefs(mark func(*heap.Handle)) {
	if p.Locale == nil {
		return
	}
	for i, filled := range p.Locale.Filled {
		if filled {
			colourNested(p.Locale.Args[i], mark)
		}
	}
}

// FormatVal is a FORMAT value: a format-text node plus the static
// environment it closed over, mirrored on ProcVal's shape since formats
// share the same "captured frame" semantics (spec.md §3 "Format value").
// Full format-text interpretation (picture strings, insertion) is out of
// scope (spec.md §1 "Non-goals"); FormatVal exists so FORMAT-mode values
// round-trip through assignment and UNION membership correctly.
type FormatVal struct {
	Node *ast.Node
	Env  *frame.Frame
}

func (f *FormatVal) ColourRefs(func(*heap.Handle)) {}

// UnionVal is an active UNION value: the variant mode actually stored and
// its payload (spec.md §3 "Union value: tagged with the actual variant
// mode stored"). Conformity (united-case) matching switches on Variant;
// assignment and the coercion layer's Uniting node construct one of
// these whenever a value crosses into a wider UNION mode.
type UnionVal struct {
	Variant *mode.Mode
	Value   any
}

// ColourRefs implements heap.Colourer: a union's payload may itself
// contain a Ref, RowDesc, or nested Colourer (spec.md §4.4 "descends into
// ... UNION variants").
func (u *UnionVal) ColourRefs(mark func(*heap.Handle)) {
	colourNested(u.Value, mark)
}

// FieldRef is a name that addresses one field of a STRUCT value rather
// than a whole heap slot (spec.md §4.5 "Selection": "selecting a field of
// a name yields a name for that field, not a copy"). A STRUCT value
// occupies exactly one expression-stack/heap slot as a boxed []any in pack
// order (see DESIGN.md "Struct storage: boxed slice, not flattened
// fields"), so FieldRef reuses Go's slice aliasing instead of extending
// heap.Ref with a field index: Fields is the same backing array the
// struct's own heap.Ref.Get() would return, and Index is the pack
// position within it. This keeps heap.Ref's shape (and every existing
// literal built from it) untouched.
type FieldRef struct {
	Fields []any
	Index  int
	Scope  int
}

func (f FieldRef) IsNil() bool { return f.Fields == nil }
func (f FieldRef) Get() any    { return f.Fields[f.Index] }
func (f FieldRef) Set(v any)   { f.Fields[f.Index] = v }

// ColourRefs walks the one field this name addresses, not the whole
// struct — a sibling field reached independently (e.g. a different
// FieldRef, or the struct's own heap.Ref) roots the rest.
func (f FieldRef) ColourRefs(mark func(*heap.Handle)) {
	if !f.IsNil() {
		colourNested(f.Fields[f.Index], mark)
	}
}

// colourNested is runtime/gc's colourValue dispatch, duplicated here at
// the narrow single point eval must reach back across the layer boundary
// runtime/gc cannot cross itself (runtime/gc cannot import eval without
// an import cycle, since eval already imports runtime/gc).
func colourNested(v any, mark func(*heap.Handle)) {
	switch val := v.(type) {
	case heap.Ref:
		val.ColourRefs(mark)
	case *heap.RowDesc:
		val.ColourRefs(mark)
	case heap.Colourer:
		val.ColourRefs(mark)
	case []any:
		for _, sub := range val {
			colourNested(sub, mark)
		}
	}
}
