package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/coerce"
	"github.com/a68core/a68/mode"
)

// evalSerialClause runs a sequence of units and declarations, yielding the
// last one's value (spec.md §4.5 "Serial clause"; invariant I5 governs
// the expression-stack discipline around it). A Label child is executed
// by running its own wrapped unit in place.
//
// A GOTO targeting one of this clause's own labels (jump.go) resumes
// execution from that label rather than unwinding further: each attempt
// runs in its own recover scope (runSerialClauseOnce) so a resumed run
// can itself be jumped out of and back into again, however many times the
// program bounces between labels in the same range.
func (ev *Evaluator) evalSerialClause(n *ast.Node) (any, error) {
	start := n.FirstChild
	for {
		result, err, js := ev.runSerialClauseOnce(start)
		if js == nil {
			return result, err
		}
		if js.target != n {
			panic(*js)
		}
		target := findLabelChild(n, js.label)
		if target == nil {
			panic(*js)
		}
		start = target
	}
}

// runSerialClauseOnce runs n's children from start to the end of the
// list, recovering a jumpSignal instead of letting it propagate so
// evalSerialClause's loop can decide whether this clause owns the
// target label before re-panicking it.
func (ev *Evaluator) runSerialClauseOnce(start *ast.Node) (result any, err error, js *jumpSignal) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(jumpSignal)
			if !ok {
				panic(r)
			}
			js = &sig
		}
	}()
	for c := start; c != nil; c = c.NextSibling {
		result, err = ev.Eval(c)
		if err != nil {
			return nil, err, nil
		}
	}
	return result, err, nil
}

// evalClosedClause opens a new frame if the clause owns declarations,
// runs its single serial-clause child, and closes the frame again
// (spec.md §4.4 "declarations within a clause ... a new frame"; this port
// always opens a new frame rather than widening in place).
func (ev *Evaluator) evalClosedClause(n *ast.Node) (any, error) {
	table := scopeTable(n)
	if _, opened := ev.openBlockFrame(n, table); opened {
		defer ev.Frames.Pop()
	}
	return ev.Eval(n.FirstChild)
}

// evalCollateralClause assembles a display into a STRUCT ([]any, pack
// order) or a one-dimensional ROW, according to the clause's own
// annotated mode (spec.md §4.5 "Collateral clause"). Components are taken
// as evaluated; no balancing is done here. Each component is held on the expression stack while its siblings
// evaluate, so a collection triggered mid-display cannot reclaim an
// earlier component that only a Go local would otherwise be rooting.
func (ev *Evaluator) evalCollateralClause(n *ast.Node) (any, error) {
	m := modeOf(n).Canonical()
	mark := ev.Expr.Mark()
	var elems []any
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		v, err := ev.Eval(c)
		if err != nil {
			return nil, err
		}
		ev.Expr.Push(v, modeOf(c))
		elems = append(elems, v)
	}
	defer ev.Expr.Reset(mark)

	switch m.Kind {
	case mode.Struct:
		return elems, nil
	case mode.Row, mode.Flex:
		elemMode := m.Sub
		if m.Kind == mode.Flex {
			elemMode = m.Sub
		}
		return ev.newRow1D(elemMode, elems, n.SourceLine), nil
	default:
		if len(elems) > 0 {
			return elems[0], nil
		}
		return nil, nil
	}
}

// balanceCollateral picks a result mode for a branch series through
// coerce.Balance, with its tie-breaking rule (prefer FLEX over non-FLEX).
// Nothing in eval calls it: the conditional, case and collateral clauses
// do not balance their branches at run time.
func balanceCollateral(t *mode.Table, branches []*mode.Mode) (*mode.Mode, bool) {
	res := coerce.Balance(t, branches, coerce.AliasDeflexing)
	return res.Mode, res.OK
}
