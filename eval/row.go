package eval

import (
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/runtime/heap"
)

// newRow1D builds a one-dimensional row value over elems (spec.md §3
// "Row descriptor"), lower bound fixed at 1 as algol68g's own
// constructed-literal rows are. Every *display* this evaluator itself
// builds (a collateral-clause unit list, a BITS/BYTES-to-row widening, a
// single-element rowing) is genuinely one-dimensional by construction — a
// display is a flat list of units, never a nested bound specification —
// so this helper's shape is grounded, not a scope limitation (see
// DESIGN.md "Row dimensionality"). Indexing, trimming, and deep-copying a
// row of any rank is handled generically over heap.RowDesc.Dims by
// eval/slice.go and newRowND below; only the *display literal* path stays
// rank-1.
func (ev *Evaluator) newRow1D(elemMode *mode.Mode, elems []any, line int) *heap.RowDesc {
	return ev.newRowND(elemMode, []heap.RowTuple{{Lwb: 1, Upb: len(elems)}}, elems, line)
}

// newRowND builds a row value of any rank over a flat, row-major element
// array (spec.md §3 "Row descriptor": "one tuple per dimension"), given
// only each dimension's (Lwb, Upb) pair — Span and Shift are derived here
// the way mode.computeWidth derives a composite's byte size from its
// parts, last dimension varying fastest. Used directly by newRow1D (rank
// 1) and by copyRow (any rank, to preserve a deep-copied row's original
// shape — see DESIGN.md "Row dimensionality").
func (ev *Evaluator) newRowND(elemMode *mode.Mode, bounds []heap.RowTuple, elems []any, line int) *heap.RowDesc {
	h, err := ev.Heap.Alloc(len(elems))
	if err != nil {
		ev.GC.Collect(ev.Frames, ev.Expr)
		h, err = ev.Heap.Alloc(len(elems))
		if err != nil {
			diag.Raise(diag.KindHeapExhausted, line, "row allocation failed after collection")
		}
	}
	h.Mode = elemMode
	copy(h.Data, elems)
	ev.checkpoint()

	dims := make([]heap.RowTuple, len(bounds))
	span := 1
	for i := len(bounds) - 1; i >= 0; i-- {
		lwb, upb := bounds[i].Lwb, bounds[i].Upb
		dims[i] = heap.RowTuple{Lwb: lwb, Upb: upb, Span: span, Shift: span * lwb}
		n := upb - lwb + 1
		if n < 0 {
			n = 0
		}
		span *= n
	}
	return &heap.RowDesc{Handle: h, ElemMode: elemMode, ElemSize: 1, Dims: dims}
}
