package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/runtime/heap"
)

// evalAssignation writes a value into a name and yields the name itself
// (spec.md §4.5 "Assignation": "the assignation's own value is the name,
// not the assigned value, so `i := j := 5` chains"). The name side is
// evaluated directly to a heap.Ref — the coercion tree never dereferences
// an assignation's left operand (SOFT context stops short of that).
func (ev *Evaluator) evalAssignation(n *ast.Node) (any, error) {
	nameNode := n.FirstChild
	valueNode := nameNode.NextSibling

	nv, err := ev.Eval(nameNode)
	if err != nil {
		return nil, err
	}
	ref, ok := nv.(settable)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "assignation target is not a name")
	}
	if ref.IsNil() {
		diag.Raise(diag.KindNilDereference, n.SourceLine, "assignment through NIL")
	}

	val, err := ev.Eval(valueNode)
	if err != nil {
		return nil, err
	}
	val = ev.deepCopyIfStowed(val, modeOf(valueNode), n.SourceLine)
	checkAssignScope(val, assignScopeOf(nv), n.SourceLine)
	ref.Set(val)
	return nv, nil
}

// settable is the narrow shape an assignation's name side needs: both
// heap.Ref (a whole slot) and FieldRef (one struct field within a slot)
// satisfy it, so assigning through a selection works the same way
// assigning through a generator does.
type settable interface {
	IsNil() bool
	Get() any
	Set(v any)
}

// assignScopeOf extracts the scope tag the dynamic-scope guard checks
// against, for whichever settable shape the name side evaluated to.
func assignScopeOf(nv any) int {
	switch v := nv.(type) {
	case heap.Ref:
		return v.Scope
	case FieldRef:
		return v.Scope
	default:
		return 0
	}
}

// deepCopyIfStowed implements needsDeepCopy (spec.md §4.5 "Assignation":
// "a STRUCT or ROW value is copied field-by-field / element-by-element on
// assignment, never aliased; REF, PROC, UNION, and every scalar standard
// mode assign by plain value or reference copy"). UNION recurses into its
// active payload, since a UNION variant may itself be stowed.
func (ev *Evaluator) deepCopyIfStowed(v any, m *mode.Mode, line int) any {
	if m == nil {
		return v
	}
	switch m.Canonical().Kind {
	case mode.Struct:
		fields, ok := v.([]any)
		if !ok {
			return v
		}
		out := make([]any, len(fields))
		for i, f := range fields {
			fm := m.Canonical().FieldPack[i].Mode
			out[i] = ev.deepCopyIfStowed(f, fm, line)
		}
		return out
	case mode.Row, mode.Flex:
		row, ok := v.(*heap.RowDesc)
		if !ok {
			return v
		}
		return ev.copyRow(row, line)
	case mode.Union:
		uv, ok := v.(*UnionVal)
		if !ok {
			return v
		}
		return &UnionVal{Variant: uv.Variant, Value: ev.deepCopyIfStowed(uv.Value, uv.Variant, line)}
	default:
		return v
	}
}

// copyRow allocates a fresh handle and copies row's elements in row-major
// order across every dimension (spec.md §4.5 "Assignation": "arrays are
// fully copied"), recursing for nested stowed element modes and
// preserving row's own shape via newRowND rather than flattening it to
// rank 1 (see DESIGN.md "Row dimensionality").
func (ev *Evaluator) copyRow(row *heap.RowDesc, line int) *heap.RowDesc {
	total := 1
	for _, d := range row.Dims {
		n := d.Upb - d.Lwb + 1
		if n < 0 {
			n = 0
		}
		total *= n
	}
	elems := make([]any, total)
	ks := make([]int, len(row.Dims))
	for i, d := range row.Dims {
		ks[i] = d.Lwb
	}
	for flat := 0; flat < total; flat++ {
		idx := row.FlatIndex(ks)
		elems[flat] = ev.deepCopyIfStowed(row.Handle.Data[idx], row.ElemMode, line)
		for d := len(ks) - 1; d >= 0; d-- {
			ks[d]++
			if ks[d] <= row.Dims[d].Upb {
				break
			}
			ks[d] = row.Dims[d].Lwb
		}
	}
	return ev.newRowND(row.ElemMode, row.Dims, elems, line)
}
