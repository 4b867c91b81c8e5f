package heap

import "github.com/a68core/a68/mode"

// Status holds the handle state bits spec.md §3 names: ALLOCATED, COLOUR,
// NO_SWEEP, COOKIE.
type Status uint8

const (
	// StatusAllocated marks a handle as currently live (on the live list,
	// not the free list).
	StatusAllocated Status = 1 << iota
	// StatusColour is set by runtime/gc's mark phase when a handle is
	// reached from a live root (invariant I6).
	StatusColour
	// StatusNoSweep protects a handle from being freed even if uncoloured
	// — string constants and pinned intermediate stowed values (Design
	// Notes §9 "Manual protect-from-sweep"; this repo scans the
	// expression stack as roots instead, but NoSweep remains available
	// for values the standard environment must never collect).
	StatusNoSweep
	// StatusCookie is set on a handle while the collector's colour phase
	// is descending through it, and cleared on return, to cut cycles
	// during the reachability walk (spec.md §4.4 "Cycles are cut with a
	// per-handle COOKIE bit").
	StatusCookie
)

// Handle is a heap allocation descriptor (spec.md §3 "Handle"): an offset
// into the heap's logical address space, a size in slots, the mode of its
// contents, status bits, and doubly-linked list pointers into whichever
// list (free or live) currently owns it.
type Handle struct {
	Offset int
	Size   int
	Mode   *mode.Mode
	Status Status

	// Data holds the handle's contents, one entry per slot. Interpreted
	// per Mode by eval: a ROW handle's Data is the flat element array, a
	// STRUCT handle's Data is the field values in pack order, a STRING
	// handle's Data is one rune per slot.
	Data []any

	prev, next *Handle
	inFree     bool
	heapIdx    int // position within the free min-heap; -1 when not free
}

// Colourer is implemented by any composite value that can itself hold
// further Refs — eval.ProcVal (environment/locale), eval.UnionVal (active
// variant) — so runtime/gc can walk an arbitrary stack slot or handle
// entry without importing eval (spec.md §4.4 colour phase: "follows REF
// into referents ... follows PROC environment pointers and their locale
// handles").
type Colourer interface {
	ColourRefs(mark func(*Handle))
}

// Live reports whether h is currently allocated (on the live list).
func (h *Handle) Live() bool { return h.Status&StatusAllocated != 0 }

// Coloured reports whether h's COLOUR bit is set (invariant I6).
func (h *Handle) Coloured() bool { return h.Status&StatusColour != 0 }

// SetColour sets or clears h's COLOUR bit.
func (h *Handle) SetColour(v bool) {
	if v {
		h.Status |= StatusColour
	} else {
		h.Status &^= StatusColour
	}
}

// Pin sets h's NO_SWEEP bit, protecting it from collection regardless of
// reachability.
func (h *Handle) Pin() { h.Status |= StatusNoSweep }

// Ref is a two-word value (spec.md §3 "Reference (REF)"): a handle pointer
// plus an intra-handle slot offset, a distinguished NIL, and a scope tag
// bounding the referent's lifetime (the static-link level the value may be
// safely passed into, invariant I3).
type Ref struct {
	Handle *Handle
	Offset int
	Scope  int
}

// NilRef returns the distinguished NIL reference at the given scope.
func NilRef(scope int) Ref { return Ref{Scope: scope} }

// IsNil reports whether r is the NIL reference.
func (r Ref) IsNil() bool { return r.Handle == nil }

// Get reads the slot r addresses.
func (r Ref) Get() any {
	if r.IsNil() {
		return nil
	}
	return r.Handle.Data[r.Offset]
}

// Set writes v into the slot r addresses.
func (r Ref) Set(v any) {
	r.Handle.Data[r.Offset] = v
}

// ColourRefs implements Colourer: a Ref colours its own handle.
func (r Ref) ColourRefs(mark func(*Handle)) {
	if !r.IsNil() {
		mark(r.Handle)
	}
}

// RowTuple is one dimension's bound/stride bookkeeping (spec.md §3 "Row
// descriptor"): lower and upper bound, span (stride), and shift (the
// offset correction a trimmer introduces so the new lower bound maps back
// to the same flat index).
type RowTuple struct {
	Lwb, Upb int
	Span     int
	Shift    int
}

// RowDesc is a row (array) descriptor (spec.md §3 "Row descriptor"): the
// handle holding the flat element array, the element mode/size, a slice
// offset and field offset (for SELECTION from a multiple row, see
// mode.Mode.MultipleMode), and one RowTuple per dimension.
type RowDesc struct {
	Handle      *Handle
	ElemMode    *mode.Mode
	ElemSize    int
	SliceOffset int
	FieldOffset int
	Dims        []RowTuple
}

// ColourRefs implements Colourer: a row descriptor colours its backing
// handle; the handle's own Data entries are coloured by the walk that
// reaches this RowDesc, not recursively from here (runtime/gc recurses
// into handle Data itself once the handle is marked).
func (d *RowDesc) ColourRefs(mark func(*Handle)) {
	if d.Handle != nil {
		mark(d.Handle)
	}
}

// FlatIndex computes the element offset for per-dimension indices ks
// (spec.md §4.5 "Slice": "combined as Σ span_i·k_i − shift_i"). Bounds
// checking is the caller's job (eval.Slice raises KindIndexOutOfBounds).
func (d *RowDesc) FlatIndex(ks []int) int {
	offset := d.SliceOffset
	for i, k := range ks {
		t := d.Dims[i]
		offset += t.Span*k - t.Shift
	}
	return offset
}
