package ops

import (
	"github.com/a68core/a68/bigint"
	"github.com/a68core/a68/mode"
)

// Fn is the uniform call shape every standard-environment operator is
// exposed through once coerce.ResolveOperator has already matched operand
// modes (spec.md §3 Tag "standard-env procedure flag"; spec.md §6 "a
// pre-built standard environment whose identifiers and operators hold
// function pointers"). Operand coercion (FIRM, per spec.md §4.2) has
// already happened by the time eval calls Fn — it only ever receives
// already-coerced Go values in operand order.
type Fn func(line int, args []any) (any, error)

// Entry is one operator overload: its declared operand modes (for
// coerce.Lookup to match against) and result mode (for the coercion
// engine to annotate the call site), plus the Fn eval invokes.
type Entry struct {
	Operands []*mode.Mode
	Result   *mode.Mode
	Fn       Fn
}

// Table is the standard environment's operator overload set: symbol to
// every overload declared for it (spec.md §3 "operators (overload set)").
type Table map[string][]Entry

func adapt1[A any](fn func(A) A) Fn {
	return func(_ int, args []any) (any, error) { return fn(args[0].(A)), nil }
}

func adaptLine1[A any](fn func(int, A) A) Fn {
	return func(line int, args []any) (any, error) { return fn(line, args[0].(A)), nil }
}

func adapt2[A any](fn func(A, A) A) Fn {
	return func(_ int, args []any) (any, error) { return fn(args[0].(A), args[1].(A)), nil }
}

func adaptLine2[A any](fn func(int, A, A) A) Fn {
	return func(line int, args []any) (any, error) { return fn(line, args[0].(A), args[1].(A)), nil }
}

func adaptCmp[A any](fn func(A, A) bool) Fn {
	return func(_ int, args []any) (any, error) { return fn(args[0].(A), args[1].(A)), nil }
}

// Register builds the standard operator table over t's standard modes
// (spec.md §4.6, every kind named in the component design). Identifiers
// (procedures like sqrt, sin) are registered separately by stdenv since
// they are tags, not operators — see stdenv.Build.
func Register(t *mode.Table) Table {
	tab := Table{}
	add := func(sym string, e Entry) { tab[sym] = append(tab[sym], e) }

	i, r, b, c, bits, boolM := t.MustStandard("INT"), t.MustStandard("REAL"), t.MustStandard("BYTES"), t.MustStandard("CHAR"), t.MustStandard("BITS"), t.MustStandard("BOOL")
	cplx := t.MustStandard("COMPLEX")
	str := t.Flex(t.Row(1, c))

	registerInt(add, t, i)
	registerReal(add, t, r)
	registerBoolChar(add, t, boolM, c, i)
	registerBits(add, t, bits, boolM)
	registerStringBytes(add, t, str, b)
	registerComplex(add, t, cplx, r)
	registerLong(add, t)

	return tab
}

func registerInt(add func(string, Entry), t *mode.Table, i *mode.Mode) {
	add("+", Entry{[]*mode.Mode{i, i}, i, adaptLine2(IntAdd)})
	add("-", Entry{[]*mode.Mode{i, i}, i, adaptLine2(IntSub)})
	add("*", Entry{[]*mode.Mode{i, i}, i, adaptLine2(IntMul)})
	add("/", Entry{[]*mode.Mode{i, i}, i, adaptLine2(IntDiv)})
	add("%", Entry{[]*mode.Mode{i, i}, i, adaptLine2(IntDiv)})
	add("MOD", Entry{[]*mode.Mode{i, i}, i, adaptLine2(IntMod)})
	add("**", Entry{[]*mode.Mode{i, i}, i, adaptLine2(IntPow)})
	add("-", Entry{[]*mode.Mode{i}, i, adaptLine1(IntNeg)})
	add("ABS", Entry{[]*mode.Mode{i}, i, adaptLine1(IntAbs)})
	add("SIGN", Entry{[]*mode.Mode{i}, i, func(_ int, args []any) (any, error) { return IntSign(args[0].(int64)), nil }})
	add("ODD", Entry{[]*mode.Mode{i}, t.MustStandard("BOOL"), func(_ int, args []any) (any, error) { return IntOdd(args[0].(int64)), nil }})
	add("=", Entry{[]*mode.Mode{i, i}, t.MustStandard("BOOL"), adaptCmp(func(a, b int64) bool { return a == b })})
	add("/=", Entry{[]*mode.Mode{i, i}, t.MustStandard("BOOL"), adaptCmp(func(a, b int64) bool { return a != b })})
	add("<", Entry{[]*mode.Mode{i, i}, t.MustStandard("BOOL"), adaptCmp(func(a, b int64) bool { return a < b })})
	add("<=", Entry{[]*mode.Mode{i, i}, t.MustStandard("BOOL"), adaptCmp(func(a, b int64) bool { return a <= b })})
	add(">", Entry{[]*mode.Mode{i, i}, t.MustStandard("BOOL"), adaptCmp(func(a, b int64) bool { return a > b })})
	add(">=", Entry{[]*mode.Mode{i, i}, t.MustStandard("BOOL"), adaptCmp(func(a, b int64) bool { return a >= b })})
}

func registerReal(add func(string, Entry), t *mode.Table, r *mode.Mode) {
	add("+", Entry{[]*mode.Mode{r, r}, r, adaptLine2(RealAdd)})
	add("-", Entry{[]*mode.Mode{r, r}, r, adaptLine2(RealSub)})
	add("*", Entry{[]*mode.Mode{r, r}, r, adaptLine2(RealMul)})
	add("/", Entry{[]*mode.Mode{r, r}, r, adaptLine2(RealDiv)})
	add("**", Entry{[]*mode.Mode{r, t.MustStandard("INT")}, r, func(line int, args []any) (any, error) {
		return RealPow(line, args[0].(float64), args[1].(int64)), nil
	}})
	add("-", Entry{[]*mode.Mode{r}, r, func(_ int, args []any) (any, error) { return RealNeg(args[0].(float64)), nil }})
	add("ABS", Entry{[]*mode.Mode{r}, r, func(_ int, args []any) (any, error) { return RealAbs(args[0].(float64)), nil }})
	add("SIGN", Entry{[]*mode.Mode{r}, t.MustStandard("INT"), func(_ int, args []any) (any, error) { return RealSign(args[0].(float64)), nil }})
	boolM := t.MustStandard("BOOL")
	add("=", Entry{[]*mode.Mode{r, r}, boolM, adaptCmp(func(a, b float64) bool { return a == b })})
	add("/=", Entry{[]*mode.Mode{r, r}, boolM, adaptCmp(func(a, b float64) bool { return a != b })})
	add("<", Entry{[]*mode.Mode{r, r}, boolM, adaptCmp(func(a, b float64) bool { return a < b })})
	add("<=", Entry{[]*mode.Mode{r, r}, boolM, adaptCmp(func(a, b float64) bool { return a <= b })})
	add(">", Entry{[]*mode.Mode{r, r}, boolM, adaptCmp(func(a, b float64) bool { return a > b })})
	add(">=", Entry{[]*mode.Mode{r, r}, boolM, adaptCmp(func(a, b float64) bool { return a >= b })})
}

func registerBoolChar(add func(string, Entry), t *mode.Table, boolM, c, i *mode.Mode) {
	add("AND", Entry{[]*mode.Mode{boolM, boolM}, boolM, adapt2(BoolAnd)})
	add("OR", Entry{[]*mode.Mode{boolM, boolM}, boolM, adapt2(BoolOr)})
	add("NOT", Entry{[]*mode.Mode{boolM}, boolM, adapt1(BoolNot)})
	add("=", Entry{[]*mode.Mode{boolM, boolM}, boolM, adaptCmp(BoolEq)})
	add("/=", Entry{[]*mode.Mode{boolM, boolM}, boolM, adaptCmp(BoolNe)})

	add("=", Entry{[]*mode.Mode{c, c}, boolM, adaptCmp(CharEq)})
	add("/=", Entry{[]*mode.Mode{c, c}, boolM, adaptCmp(CharNe)})
	add("<", Entry{[]*mode.Mode{c, c}, boolM, adaptCmp(CharLt)})
	add("<=", Entry{[]*mode.Mode{c, c}, boolM, adaptCmp(CharLe)})
	add(">", Entry{[]*mode.Mode{c, c}, boolM, adaptCmp(CharGt)})
	add(">=", Entry{[]*mode.Mode{c, c}, boolM, adaptCmp(CharGe)})
	add("ABS", Entry{[]*mode.Mode{c}, i, func(_ int, args []any) (any, error) { return CharAbs(args[0].(rune)), nil }})
	add("REPR", Entry{[]*mode.Mode{i}, c, func(_ int, args []any) (any, error) { return IntRepr(args[0].(int64)), nil }})
}

func registerBits(add func(string, Entry), t *mode.Table, bits, boolM *mode.Mode) {
	add("AND", Entry{[]*mode.Mode{bits, bits}, bits, adapt2(BitsAnd)})
	add("OR", Entry{[]*mode.Mode{bits, bits}, bits, adapt2(BitsOr)})
	add("XOR", Entry{[]*mode.Mode{bits, bits}, bits, adapt2(BitsXor)})
	add("NOT", Entry{[]*mode.Mode{bits}, bits, adapt1(BitsNot)})
	add("=", Entry{[]*mode.Mode{bits, bits}, boolM, adaptCmp(BitsEq)})
	add("/=", Entry{[]*mode.Mode{bits, bits}, boolM, adaptCmp(BitsNe)})
	i := t.MustStandard("INT")
	add("SHL", Entry{[]*mode.Mode{bits, i}, bits, func(line int, args []any) (any, error) {
		return BitsShl(line, args[0].(uint64), args[1].(int64)), nil
	}})
	add("SHR", Entry{[]*mode.Mode{bits, i}, bits, func(line int, args []any) (any, error) {
		return BitsShr(line, args[0].(uint64), args[1].(int64)), nil
	}})
}

func registerStringBytes(add func(string, Entry), t *mode.Table, str, b *mode.Mode) {
	boolM := t.MustStandard("BOOL")
	add("+", Entry{[]*mode.Mode{str, str}, str, adapt2(StringConcat)})
	add("=", Entry{[]*mode.Mode{str, str}, boolM, adaptCmp(StringEq)})
	add("/=", Entry{[]*mode.Mode{str, str}, boolM, adaptCmp(StringNe)})
	add("<", Entry{[]*mode.Mode{str, str}, boolM, adaptCmp(StringLt)})
	add("<=", Entry{[]*mode.Mode{str, str}, boolM, adaptCmp(StringLe)})
	add(">", Entry{[]*mode.Mode{str, str}, boolM, adaptCmp(StringGt)})
	add(">=", Entry{[]*mode.Mode{str, str}, boolM, adaptCmp(StringGe)})

	add("+", Entry{[]*mode.Mode{b, b}, b, adapt2(BytesConcat)})
	add("=", Entry{[]*mode.Mode{b, b}, boolM, adaptCmp(BytesEq)})
}

func registerComplex(add func(string, Entry), t *mode.Table, cplx, r *mode.Mode) {
	boolM := t.MustStandard("BOOL")
	add("+", Entry{[]*mode.Mode{cplx, cplx}, cplx, adapt2(ComplexAdd)})
	add("-", Entry{[]*mode.Mode{cplx, cplx}, cplx, adapt2(ComplexSub)})
	add("*", Entry{[]*mode.Mode{cplx, cplx}, cplx, adapt2(ComplexMul)})
	add("/", Entry{[]*mode.Mode{cplx, cplx}, cplx, adaptLine2(ComplexDiv)})
	add("-", Entry{[]*mode.Mode{cplx}, cplx, adapt1(ComplexNeg)})
	add("=", Entry{[]*mode.Mode{cplx, cplx}, boolM, adaptCmp(ComplexEq)})
	add("/=", Entry{[]*mode.Mode{cplx, cplx}, boolM, adaptCmp(ComplexNe)})
	add("RE", Entry{[]*mode.Mode{cplx}, r, func(_ int, args []any) (any, error) { return ComplexRe(args[0].(complex128)), nil }})
	add("IM", Entry{[]*mode.Mode{cplx}, r, func(_ int, args []any) (any, error) { return ComplexIm(args[0].(complex128)), nil }})
	add("ABS", Entry{[]*mode.Mode{cplx}, r, func(_ int, args []any) (any, error) { return ComplexAbs(args[0].(complex128)), nil }})
	add("CONJ", Entry{[]*mode.Mode{cplx}, cplx, func(_ int, args []any) (any, error) { return ComplexConj(args[0].(complex128)), nil }})
}

func registerLong(add func(string, Entry), t *mode.Table) {
	li, lli := t.MustStandard("LONG INT"), t.MustStandard("LONG LONG INT")
	lr, llr := t.MustStandard("LONG REAL"), t.MustStandard("LONG LONG REAL")
	for _, im := range []*mode.Mode{li, lli} {
		m := im
		add("+", Entry{[]*mode.Mode{m, m}, m, func(line int, args []any) (any, error) { return LongAdd(line, args[0].(*bigint.Int), args[1].(*bigint.Int)), nil }})
		add("-", Entry{[]*mode.Mode{m, m}, m, func(line int, args []any) (any, error) { return LongSub(line, args[0].(*bigint.Int), args[1].(*bigint.Int)), nil }})
		add("*", Entry{[]*mode.Mode{m, m}, m, func(line int, args []any) (any, error) { return LongMul(line, args[0].(*bigint.Int), args[1].(*bigint.Int)), nil }})
		add("/", Entry{[]*mode.Mode{m, m}, m, func(line int, args []any) (any, error) { return LongDiv(line, args[0].(*bigint.Int), args[1].(*bigint.Int)), nil }})
		add("MOD", Entry{[]*mode.Mode{m, m}, m, func(line int, args []any) (any, error) { return LongMod(line, args[0].(*bigint.Int), args[1].(*bigint.Int)), nil }})
	}
	for _, rm := range []*mode.Mode{lr, llr} {
		m := rm
		add("+", Entry{[]*mode.Mode{m, m}, m, func(_ int, args []any) (any, error) { return LongAddReal(args[0].(*bigint.Real), args[1].(*bigint.Real)), nil }})
		add("-", Entry{[]*mode.Mode{m, m}, m, func(_ int, args []any) (any, error) { return LongSubReal(args[0].(*bigint.Real), args[1].(*bigint.Real)), nil }})
		add("*", Entry{[]*mode.Mode{m, m}, m, func(_ int, args []any) (any, error) { return LongMulReal(args[0].(*bigint.Real), args[1].(*bigint.Real)), nil }})
		add("/", Entry{[]*mode.Mode{m, m}, m, func(line int, args []any) (any, error) { return LongDivReal(line, args[0].(*bigint.Real), args[1].(*bigint.Real)), nil }})
	}
}

// Lookup matches coerce.Lookup's signature (an exact-arity, exact-mode
// match over this table, spec.md §4.2 "Operator resolution"): an entry
// qualifies only if every operand mode is identical to the call's.
func (tab Table) Lookup(symbol string, operands []*mode.Mode) (*mode.Mode, bool) {
	for _, e := range tab[symbol] {
		if len(e.Operands) != len(operands) {
			continue
		}
		match := true
		for i, om := range e.Operands {
			if om.Canonical() != operands[i].Canonical() {
				match = false
				break
			}
		}
		if match {
			return e.Result, true
		}
	}
	return nil, false
}

// Resolve returns the Fn for symbol with exactly these operand modes, for
// eval's Formula/MonadicFormula propagators once coerce.ResolveOperator
// has already picked the candidate.
func (tab Table) Resolve(symbol string, operands []*mode.Mode) (Fn, bool) {
	for _, e := range tab[symbol] {
		if len(e.Operands) != len(operands) {
			continue
		}
		match := true
		for i, om := range e.Operands {
			if om.Canonical() != operands[i].Canonical() {
				match = false
				break
			}
		}
		if match {
			return e.Fn, true
		}
	}
	return nil, false
}
