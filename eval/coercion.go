package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/bigint"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/mode"
)

// evalDereferencing follows a name to its referent (spec.md §4.2
// "Dereferencing"), raising KindNilDereference on the distinguished NIL
// reference (spec.md §7 "Runtime, fatal").
func (ev *Evaluator) evalDereferencing(n *ast.Node) (any, error) {
	v, err := ev.Eval(n.Sub)
	if err != nil {
		return nil, err
	}
	ref, ok := v.(refLike)
	if !ok {
		diag.Raise(diag.KindNilDereference, n.SourceLine, "dereference of a non-name value")
	}
	if ref.IsNil() {
		diag.Raise(diag.KindNilDereference, n.SourceLine, "dereference of NIL")
	}
	return ref.Get(), nil
}

// refLike avoids importing runtime/heap.Ref by name in the dereferencing
// hot path's type assertion (heap.Ref already satisfies this trivially);
// kept narrow so this file reads like the coercion-step document it
// mirrors rather than a heap-internals file.
type refLike interface {
	IsNil() bool
	Get() any
}

// evalDeproceduring calls a zero-parameter procedure to yield its result
// mode's value (spec.md §4.2 "Deproceduring").
func (ev *Evaluator) evalDeproceduring(n *ast.Node) (any, error) {
	v, err := ev.Eval(n.Sub)
	if err != nil {
		return nil, err
	}
	pv, ok := v.(*ProcVal)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "deproceduring of a non-procedure value")
	}
	return ev.callProc(pv, nil, n.SourceLine)
}

// evalWidening converts a numeric value one step up the widening lattice
// coerce.Widens already verified reachable (spec.md §4.2 "Widening"). Only
// the single-step conversions coerce/widen_table.go's widensDirect can
// ever produce reach here, since coerce.Insert splices one Widening node
// per step.
func (ev *Evaluator) evalWidening(n *ast.Node) (any, error) {
	v, err := ev.Eval(n.Sub)
	if err != nil {
		return nil, err
	}
	target := modeOf(n)
	return widenValue(v, modeOf(n.Sub), target, ev, n.SourceLine), nil
}

func widenValue(v any, from, target *mode.Mode, ev *Evaluator, line int) any {
	switch x := v.(type) {
	case int64:
		switch target.Kind {
		case mode.Real:
			return float64(x)
		case mode.Int:
			return bigint.Default.FromInt64(digitsFor(target), x)
		}
	case float64:
		if target.Kind == mode.Real {
			return bigint.Default.FromFloat64(digitsFor(target), x)
		}
	case *bigint.Int:
		switch target.Kind {
		case mode.Int:
			// LONG INT → LONG LONG INT: same value, a higher declared
			// precision ceiling (checkRange reads Digits, not the
			// underlying big.Int's actual bit width).
			cloned := x.Neg().Neg()
			cloned.Digits = digitsFor(target)
			return cloned
		case mode.Real:
			return x.Float()
		}
	case *bigint.Real:
		if target.Kind == mode.Real {
			cloned := x.Neg().Neg()
			cloned.Digits = digitsFor(target)
			return cloned
		}
	case uint64:
		if target.Kind == mode.Row {
			bits := make([]any, 64)
			for i := 0; i < 64; i++ {
				bits[63-i] = (x>>uint(i))&1 != 0
			}
			boolM := target.Sub
			return ev.newRow1D(boolM, bits, line)
		}
	case []byte:
		if target.Kind == mode.Row {
			chars := make([]any, len(x))
			for i, b := range x {
				chars[i] = rune(b)
			}
			return ev.newRow1D(target.Sub, chars, line)
		}
	case complex128:
		return x // LONG/LONG LONG COMPLEX keeps the complex128 value as is.
	}
	return v
}

func digitsFor(m *mode.Mode) int {
	if m.Lengths >= 2 {
		return bigint.LongLongDigits
	}
	return bigint.LongDigits
}

// evalRowing lifts a scalar (or a fixed-size row one dimension lower)
// into a one-more-dimensional row (spec.md §4.2 "Rowing"): a singleton
// one-element row for a scalar source.
func (ev *Evaluator) evalRowing(n *ast.Node) (any, error) {
	v, err := ev.Eval(n.Sub)
	if err != nil {
		return nil, err
	}
	target := modeOf(n)
	elemMode := target.Sub
	if target.Kind == mode.Flex {
		elemMode = target.Sub
	}
	row := elemMode
	if row.Kind == mode.Row || row.Kind == mode.Flex {
		row = row.Sub
	}
	return ev.newRow1D(row, []any{v}, n.SourceLine), nil
}

// evalUniting wraps a value in its UNION variant tag (spec.md §4.2
// "Uniting"). If the source is already a UnionVal (a nested UNION being
// widened into a wider one), its existing tag is preserved.
func (ev *Evaluator) evalUniting(n *ast.Node) (any, error) {
	v, err := ev.Eval(n.Sub)
	if err != nil {
		return nil, err
	}
	if uv, ok := v.(*UnionVal); ok {
		return uv, nil
	}
	return &UnionVal{Variant: modeOf(n.Sub), Value: v}, nil
}

// evalVoiding evaluates its subject purely for effect and yields nothing
// (spec.md §4.2 "Voiding"; invariant I5: the expression-stack pointer at
// clause exit differs from entry by precisely the yielded mode's width —
// VOID's width is zero, so voiding a unit must leave the stack exactly
// where it started).
func (ev *Evaluator) evalVoiding(n *ast.Node) (any, error) {
	mark := ev.Expr.Mark()
	_, err := ev.Eval(n.Sub)
	ev.Expr.Reset(mark)
	return nil, err
}
