package eval

import (
	"fmt"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/runtime/heap"
)

// evalSlice indexes or trims a row of any rank (spec.md §4.5 "Slice").
// A Slice node's children are the row-valued operand followed by exactly
// one subscript per dimension of row.Dims, in order; each subscript is
// either a plain unit (a full index into that dimension) or a Trimmer
// (a narrowed bound on that dimension). If every subscript is a plain
// unit, the indices combine via heap.RowDesc.FlatIndex's `Σ span_i·k_i −
// shift_i` into a single element name (spec.md §4.5: "combined ... into
// an element offset"); if any subscript is a Trimmer, the result is a new
// row descriptor over the same backing storage (see evalTrim).
func (ev *Evaluator) evalSlice(n *ast.Node) (any, error) {
	arrNode := n.FirstChild

	av, err := ev.Eval(arrNode)
	if err != nil {
		return nil, err
	}
	row, ok := av.(*heap.RowDesc)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "slice of a non-row value")
	}

	var subs []*ast.Node
	for c := arrNode.NextSibling; c != nil; c = c.NextSibling {
		subs = append(subs, c)
	}
	if len(subs) != len(row.Dims) {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine,
			fmt.Sprintf("%d subscript(s) for a %d-dimensional row", len(subs), len(row.Dims)))
	}

	for _, s := range subs {
		if s.Attrib == ast.Trimmer {
			return ev.evalTrim(row, subs, n.SourceLine)
		}
	}
	return ev.evalFullIndex(row, subs, n.SourceLine)
}

// evalFullIndex is evalSlice's all-unit case: every subscript is a plain
// index, one per dimension, bounds-checked against its own dimension's
// tuple (spec.md §8 "Slice bounds": "each index k_i satisfies lwb_i ≤ k_i
// ≤ upb_i") and combined into a single element name.
//
// A row's elements always live in a handle of their own (every row this
// evaluator constructs — newRowND, or a deep copy via copyRow — is a
// freestanding heap allocation, never storage aliased in place inside a
// LOC variable's own slot), so indexing always yields a sound name
// regardless of whether the row itself was declared LOC or HEAP — the
// element storage's own scope is the unconditional HEAP scope 0 (see
// DESIGN.md "Row element scope").
func (ev *Evaluator) evalFullIndex(row *heap.RowDesc, subs []*ast.Node, line int) (any, error) {
	ks := make([]int, len(subs))
	for i, s := range subs {
		idx, err := ev.evalIndex(s, line)
		if err != nil {
			return nil, err
		}
		dim := row.Dims[i]
		if idx < dim.Lwb || idx > dim.Upb {
			diag.Raise(diag.KindIndexOutOfBounds, line,
				fmt.Sprintf("index %d outside bounds [%d:%d] in dimension %d", idx, dim.Lwb, dim.Upb, i+1))
		}
		ks[i] = idx
	}
	return heap.Ref{Handle: row.Handle, Offset: row.FlatIndex(ks), Scope: 0}, nil
}

// evalTrim is evalSlice's case with at least one Trimmer subscript. A
// dimension whose subscript is a plain unit is *collapsed*: that index's
// contribution folds into the result's SliceOffset and the dimension
// itself drops out of the new descriptor's Dims (spec.md §4.5 "Slice":
// mixing units and trimmers in one indexer reduces rank by the number of
// plain units). A dimension whose subscript is a Trimmer is narrowed by
// evalTrimmer but otherwise kept.
func (ev *Evaluator) evalTrim(row *heap.RowDesc, subs []*ast.Node, line int) (any, error) {
	newDims := make([]heap.RowTuple, 0, len(row.Dims))
	offset := row.SliceOffset
	for i, s := range subs {
		dim := row.Dims[i]
		if s.Attrib == ast.Trimmer {
			nd, err := ev.evalTrimmer(dim, s, line)
			if err != nil {
				return nil, err
			}
			newDims = append(newDims, nd)
			continue
		}
		idx, err := ev.evalIndex(s, line)
		if err != nil {
			return nil, err
		}
		if idx < dim.Lwb || idx > dim.Upb {
			diag.Raise(diag.KindIndexOutOfBounds, line,
				fmt.Sprintf("index %d outside bounds [%d:%d] in dimension %d", idx, dim.Lwb, dim.Upb, i+1))
		}
		offset += dim.Span*idx - dim.Shift
	}
	return &heap.RowDesc{
		Handle:      row.Handle,
		ElemMode:    row.ElemMode,
		ElemSize:    row.ElemSize,
		SliceOffset: offset,
		FieldOffset: row.FieldOffset,
		Dims:        newDims,
	}, nil
}

// evalIndex evaluates a plain-unit subscript to a MEEK INT (spec.md §4.5
// "Slice": "each is evaluated as MEEK INT").
func (ev *Evaluator) evalIndex(s *ast.Node, line int) (int, error) {
	iv, err := ev.Eval(s)
	if err != nil {
		return 0, err
	}
	idx, ok := iv.(int64)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, line, "row index is not INT")
	}
	return int(idx), nil
}

// evalTrimmer narrows one dimension's bounds (spec.md §4.5 "Trimming"). A
// trimmer node's children are, in fixed order and each individually
// optional (nil meaning the bound defaults): a lower bound, an upper
// bound, and a revised lower bound. An omitted lower/upper bound defaults
// to dim's own current bound on that side; an omitted revised lower
// bound defaults to the (possibly supplied) lower bound itself — see
// DESIGN.md "Trimmer revised-lower-bound default", an Open Question
// original_source/ left unresolved for the omitted case.
func (ev *Evaluator) evalTrimmer(dim heap.RowTuple, n *ast.Node, line int) (heap.RowTuple, error) {
	lwb, upb := dim.Lwb, dim.Upb

	lowerNode := n.FirstChild
	var upperNode, revisedNode *ast.Node
	if lowerNode != nil {
		upperNode = lowerNode.NextSibling
	}
	if upperNode != nil {
		revisedNode = upperNode.NextSibling
	}

	if lowerNode != nil {
		v, err := ev.Eval(lowerNode)
		if err != nil {
			return heap.RowTuple{}, err
		}
		lwb = int(v.(int64))
	}
	if upperNode != nil {
		v, err := ev.Eval(upperNode)
		if err != nil {
			return heap.RowTuple{}, err
		}
		upb = int(v.(int64))
	}
	revised := lwb
	if revisedNode != nil {
		v, err := ev.Eval(revisedNode)
		if err != nil {
			return heap.RowTuple{}, err
		}
		revised = int(v.(int64))
	}

	if lwb < dim.Lwb || upb > dim.Upb || lwb > upb+1 {
		diag.Raise(diag.KindTrimmerBoundsMismatch, line,
			fmt.Sprintf("trim [%d:%d] outside bounds [%d:%d]", lwb, upb, dim.Lwb, dim.Upb))
	}

	return heap.RowTuple{
		Lwb:   revised,
		Upb:   revised + (upb - lwb),
		Span:  dim.Span,
		Shift: dim.Shift + dim.Span*(revised-lwb),
	}, nil
}
