package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/ops"
	"github.com/a68core/a68/scope"
)

// evalFormula evaluates a dyadic operator application (spec.md §4.5
// "Formula"). L2 has already verified, via coerce.ResolveOperator's full
// retry ladder, that some overload exists for the operands' a priori
// modes and spliced whatever FIRM coercions were needed — so by the time
// eval runs, the two operand values' resolved modes match one overload's
// declared operand modes exactly, and a plain exact-match lookup suffices.
func (ev *Evaluator) evalFormula(n *ast.Node) (any, error) {
	left := n.FirstChild
	right := left.NextSibling
	lv, err := ev.Eval(left)
	if err != nil {
		return nil, err
	}
	rv, err := ev.Eval(right)
	if err != nil {
		return nil, err
	}
	fn := ev.resolveOperator(scopeTable(n), n.Symbol, []*mode.Mode{modeOf(left), modeOf(right)}, n.SourceLine)
	return fn(n.SourceLine, []any{lv, rv})
}

// evalMonadicFormula is evalFormula's one-operand counterpart.
func (ev *Evaluator) evalMonadicFormula(n *ast.Node) (any, error) {
	operand := n.FirstChild
	v, err := ev.Eval(operand)
	if err != nil {
		return nil, err
	}
	fn := ev.resolveOperator(scopeTable(n), n.Symbol, []*mode.Mode{modeOf(operand)}, n.SourceLine)
	return fn(n.SourceLine, []any{v})
}

// resolveOperator looks symbol up in the lexical scope chain's
// user-declared operators first, then the standard environment's
// operator table (spec.md §4.2 "Operator resolution": "searches symbol
// tables outward then the standard environment").
func (ev *Evaluator) resolveOperator(table *scope.Table, symbol string, operands []*mode.Mode, line int) ops.Fn {
	if table != nil {
		for _, candidate := range table.LookupOperators(symbol) {
			if operandsMatch(candidate.Mode.FieldPack, operands) {
				pv, _ := ev.frameAt(candidate.Level).Locals[candidate.Offset].(*ProcVal)
				if pv != nil {
					return func(line int, args []any) (any, error) { return ev.callProc(pv, args, line) }
				}
			}
		}
	}
	if fn, ok := ev.Env.Operators.Resolve(symbol, operands); ok {
		return fn
	}
	diag.Raise(diag.KindUndeclaredOperator, line, symbol)
	return nil
}

func operandsMatch(pack mode.Pack, operands []*mode.Mode) bool {
	if len(pack) != len(operands) {
		return false
	}
	for i, f := range pack {
		if f.Mode.Canonical() != operands[i].Canonical() {
			return false
		}
	}
	return true
}
