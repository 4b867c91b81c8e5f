package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/runtime/heap"
)

// evalAndFunction and evalOrFunction short-circuit (spec.md §4.5
// "AND-FUNCTION / OR-FUNCTION": "the right operand is only evaluated if
// the left does not already decide the result").
func (ev *Evaluator) evalAndFunction(n *ast.Node) (any, error) {
	left, err := ev.Eval(n.FirstChild)
	if err != nil {
		return nil, err
	}
	if !left.(bool) {
		return false, nil
	}
	right, err := ev.Eval(n.FirstChild.NextSibling)
	if err != nil {
		return nil, err
	}
	return right.(bool), nil
}

func (ev *Evaluator) evalOrFunction(n *ast.Node) (any, error) {
	left, err := ev.Eval(n.FirstChild)
	if err != nil {
		return nil, err
	}
	if left.(bool) {
		return true, nil
	}
	right, err := ev.Eval(n.FirstChild.NextSibling)
	if err != nil {
		return nil, err
	}
	return right.(bool), nil
}

// evalIdentityRelation compares two names for identity, `IS`/`ISNT`
// (spec.md §4.5 "Identity relation": "two names are identical iff they
// address the same handle and offset, or both are NIL"). n.Symbol is "IS"
// or "ISNT".
func (ev *Evaluator) evalIdentityRelation(n *ast.Node) (any, error) {
	lv, err := ev.Eval(n.FirstChild)
	if err != nil {
		return nil, err
	}
	rv, err := ev.Eval(n.FirstChild.NextSibling)
	if err != nil {
		return nil, err
	}
	lr, lok := lv.(heap.Ref)
	rr, rok := rv.(heap.Ref)
	same := false
	switch {
	case lok && rok:
		same = (lr.IsNil() && rr.IsNil()) || (lr.Handle == rr.Handle && lr.Offset == rr.Offset)
	default:
		same = false
	}
	if n.Symbol == "ISNT" {
		return !same, nil
	}
	return same, nil
}

// evalAssertion raises KindAssertionFalse if the asserted boolean unit
// evaluates to false (spec.md §4.5 "Assertion").
func (ev *Evaluator) evalAssertion(n *ast.Node) (any, error) {
	v, err := ev.Eval(n.FirstChild)
	if err != nil {
		return nil, err
	}
	if !v.(bool) {
		diag.Raise(diag.KindAssertionFalse, n.SourceLine, "")
	}
	return nil, nil
}
