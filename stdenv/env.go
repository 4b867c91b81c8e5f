package stdenv

import (
	"fmt"
	"math"

	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/ops"
	"github.com/a68core/a68/scope"
)

// Builtin is one standard-environment identifier: its Tag (for scope
// lookup) and either a constant value or a builtin procedure body. eval
// reads this list once at interpreter startup to populate level-0 frame
// Locals (spec.md §4.4 "Frame entry runs the table's initialisation
// list").
type Builtin struct {
	Tag   *scope.Tag
	Const any
	Proc  ops.Fn
}

// Env is the complete pre-built standard environment (spec.md §6): the
// mode table every standard and LONG-family mode lives in, the outermost
// scope.Table identifiers/operators resolve against, the operator
// overload set, and the ordered list of builtins to preload.
type Env struct {
	Modes     *mode.Table
	Table     *scope.Table
	Operators ops.Table
	Builtins  []Builtin

	// PrintArg is the UNION mode `print`'s single parameter is declared
	// with, exported so eval's call-site coercion can unite an INT/REAL/
	// BOOL/CHAR/STRING argument into it (spec.md §6 "SIMPLIN / SIMPLOUT
	// ... pseudo-modes").
	PrintArg *mode.Mode
}

// Build constructs the standard environment (spec.md §6 "a pre-built
// standard environment whose identifiers and operators hold function
// pointers").
func Build() *Env {
	t := mode.NewTable()
	sc := scope.NewTable(nil)
	operators := ops.Register(t)

	env := &Env{Modes: t, Table: sc, Operators: operators}

	i := t.MustStandard("INT")
	r := t.MustStandard("REAL")
	boolM := t.MustStandard("BOOL")
	c := t.MustStandard("CHAR")
	str := t.Flex(t.Row(1, c))
	voidM := t.MustStandard("VOID")

	env.declareConst(sc, "pi", r, math.Pi)
	env.declareConst(sc, "max int", i, int64(math.MaxInt64))
	env.declareConst(sc, "max real", r, math.MaxFloat64)

	env.declareProc(sc, "sqrt", t.Proc(mode.Pack{{Mode: r}}, r), func(line int, args []any) (any, error) {
		return ops.RealSqrt(line, args[0].(float64)), nil
	})
	env.declareProc(sc, "sin", t.Proc(mode.Pack{{Mode: r}}, r), func(_ int, args []any) (any, error) {
		return ops.RealSin(args[0].(float64)), nil
	})
	env.declareProc(sc, "cos", t.Proc(mode.Pack{{Mode: r}}, r), func(_ int, args []any) (any, error) {
		return ops.RealCos(args[0].(float64)), nil
	})
	env.declareProc(sc, "exp", t.Proc(mode.Pack{{Mode: r}}, r), func(_ int, args []any) (any, error) {
		return ops.RealExp(args[0].(float64)), nil
	})
	env.declareProc(sc, "ln", t.Proc(mode.Pack{{Mode: r}}, r), func(line int, args []any) (any, error) {
		return ops.RealLn(line, args[0].(float64)), nil
	})

	printArg := t.Union(mode.Pack{{Mode: i}, {Mode: r}, {Mode: boolM}, {Mode: c}, {Mode: str}})
	env.PrintArg = printArg
	env.declareProc(sc, "print", t.Proc(mode.Pack{{Mode: printArg}}, voidM), printFn)
	env.declareProc(sc, "print nl", t.Proc(nil, voidM), func(_ int, _ []any) (any, error) {
		fmt.Println()
		return nil, nil
	})

	return env
}

func (e *Env) declareConst(sc *scope.Table, name string, m *mode.Mode, v any) {
	tag := sc.Declare(name, m)
	tag.Global = true
	e.Builtins = append(e.Builtins, Builtin{Tag: tag, Const: v})
}

func (e *Env) declareProc(sc *scope.Table, name string, m *mode.Mode, fn ops.Fn) {
	tag := sc.Declare(name, m)
	tag.Global = true
	e.Builtins = append(e.Builtins, Builtin{Tag: tag, Proc: fn})
}

// printFn formats a united INT/REAL/BOOL/CHAR/STRING value the way
// algol68g's transput does for un-formatted output: fixed-width,
// sign-prefixed for numerics (spec.md §8 scenario 1: `print(i)` → prints
// `         +7`).
func printFn(_ int, args []any) (any, error) {
	switch v := args[0].(type) {
	case int64:
		fmt.Print(FormatInt(v))
	case float64:
		fmt.Print(FormatReal(v))
	case bool:
		if v {
			fmt.Print("T")
		} else {
			fmt.Print("F")
		}
	case rune:
		fmt.Print(string(v))
	case string:
		fmt.Print(v)
	default:
		fmt.Print(v)
	}
	return nil, nil
}

// FormatInt renders an INT the way the standard environment's default
// (un-formatted) output does: an 11-character field, sign always shown
// (spec.md §8's scenarios all show this exact width, e.g. "         +7").
func FormatInt(v int64) string { return fmt.Sprintf("%+11d", v) }

// FormatReal renders a REAL in algol68g's default scientific notation.
func FormatReal(v float64) string { return fmt.Sprintf("%+24.15e", v) }
