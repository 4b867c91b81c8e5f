package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/runtime/heap"
)

// evalSelection picks one field out of a STRUCT value or name (spec.md
// §4.5 "Selection"). n.Symbol carries the field name; n.FirstChild is the
// struct-valued or struct-naming operand — its a priori mode, not n's own
// resolved mode, decides which pack to search, since a REF STRUCT operand
// is selected from without an intervening dereference (SOFT context, same
// as Assignation's name side).
//
// Selecting from a plain STRUCT value yields the field's value directly.
// Selecting from a name (REF STRUCT) yields a FieldRef: a name for that
// one field, addressing the same backing []any the struct's own heap.Ref
// would return (see DESIGN.md "Struct storage: boxed slice, not
// flattened fields"), so `s.x := v` and further selection/assignment
// through the result work without copying the struct out and back in.
func (ev *Evaluator) evalSelection(n *ast.Node) (any, error) {
	operand := n.FirstChild
	v, err := ev.Eval(operand)
	if err != nil {
		return nil, err
	}

	operandMode := modeOf(operand).Canonical()
	if operandMode.Kind == mode.Ref {
		ref, ok := v.(heap.Ref)
		if !ok {
			diag.Raise(diag.KindInvalidArgument, n.SourceLine, "selection from a malformed name")
		}
		if ref.IsNil() {
			diag.Raise(diag.KindNilDereference, n.SourceLine, "selection through NIL")
		}
		structMode := operandMode.Sub.Canonical()
		idx, _, ok := structMode.FieldIndex(n.Symbol)
		if !ok {
			diag.Raise(diag.KindInvalidArgument, n.SourceLine, "no such field: "+n.Symbol)
		}
		fields, ok := ref.Get().([]any)
		if !ok {
			diag.Raise(diag.KindUninitialised, n.SourceLine, "selection from an uninitialised struct name")
		}
		return FieldRef{Fields: fields, Index: idx, Scope: ref.Scope}, nil
	}

	fields, ok := v.([]any)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "selection from a non-struct value")
	}
	idx, _, ok := operandMode.FieldIndex(n.Symbol)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "no such field: "+n.Symbol)
	}
	return fields[idx], nil
}
