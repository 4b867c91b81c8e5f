package bigint

import (
	"math/big"

	"github.com/a68core/a68/diag"
)

// Digits is the precision (in decimal digits) a LONG or LONG LONG value
// was declared with (spec.md §3 "Standard modes ... length-parameterised
// families"). Plain LONG and LONG LONG precisions are fixed standards;
// anything finer is a "precision not implemented" recoverable diagnostic
// (spec.md §7), downgraded per DowngradePrecision below.
const (
	LongDigits     = 30
	LongLongDigits = 60
	// MaxSupportedDigits is the best precision this collaborator actually
	// carries; a request above it is clamped with a recoverable warning
	// rather than rejected outright (original_source/standard.c's
	// downgrade rule, recovered in SPEC_FULL.md's "Supplemented Features").
	MaxSupportedDigits = 120
)

// Collaborator is the core's contract with the arbitrary-precision
// library (spec.md §6): construct an Int/Real at a given precision and
// convert from the machine int64/float64. Packing to and from fixed-width
// BITS words is done by the package functions PackBits and StackBits, not
// through this interface; the package provides no transcendental
// functions for LONG/LONG LONG REAL.
type Collaborator interface {
	StackInt(digits int) *Int
	StackReal(digits int) *Real
	FromInt64(digits int, v int64) *Int
	FromFloat64(digits int, v float64) *Real
}

// Int is a LONG/LONG LONG INT value (`stack_mp`-style handle, spec.md §6).
type Int struct {
	Digits int
	v      *big.Int
}

// Real is a LONG/LONG LONG REAL value.
type Real struct {
	Digits int
	v      *big.Float
}

type collaborator struct{}

// Default is the math/big-backed Collaborator every LONG/LONG LONG
// operator in ops/long.go dispatches through.
var Default Collaborator = collaborator{}

func (collaborator) StackInt(digits int) *Int   { return &Int{Digits: digits, v: new(big.Int)} }
func (collaborator) StackReal(digits int) *Real { return &Real{Digits: digits, v: new(big.Float).SetPrec(precBits(digits))} }

func (c collaborator) FromInt64(digits int, v int64) *Int {
	i := c.StackInt(digits)
	i.v.SetInt64(v)
	return i
}

func (c collaborator) FromFloat64(digits int, v float64) *Real {
	r := c.StackReal(digits)
	r.v.SetFloat64(v)
	return r
}

func precBits(digits int) uint {
	// ~3.32 bits per decimal digit, rounded up, matching the standard
	// library's own SetPrec convention.
	return uint(digits)*332/100 + 8
}

// DowngradePrecision clamps a requested digit count to
// MaxSupportedDigits, returning whether a downgrade occurred so the
// caller can raise the recoverable KindPrecisionNotImplemented diagnostic
// (spec.md §7; original_source/standard.c's clamp-to-max rule).
func DowngradePrecision(requested int) (actual int, downgraded bool) {
	if requested > MaxSupportedDigits {
		return MaxSupportedDigits, true
	}
	return requested, false
}

// Add, Sub, Mul, Div implement the Int arithmetic LONG/LONG LONG INT
// operators dispatch through (ops/long.go), each range-checked against
// the mode's declared precision per spec.md §4.6 "LONG and LONG LONG
// variants ... perform range checks for integral results against the
// mode's declared precision".
func (a *Int) Add(line int, b *Int) *Int { return a.binop(line, b, (*big.Int).Add) }
func (a *Int) Sub(line int, b *Int) *Int { return a.binop(line, b, (*big.Int).Sub) }
func (a *Int) Mul(line int, b *Int) *Int { return a.binop(line, b, (*big.Int).Mul) }

func (a *Int) Div(line int, b *Int) *Int {
	if b.v.Sign() == 0 {
		diag.Raise(diag.KindDivisionByZero, line, "LONG INT / by zero")
	}
	return a.binop(line, b, (*big.Int).Quo)
}

func (a *Int) Mod(line int, b *Int) *Int {
	if b.v.Sign() == 0 {
		diag.Raise(diag.KindDivisionByZero, line, "LONG INT MOD by zero")
	}
	r := a.binop(line, b, (*big.Int).Mod)
	return r
}

func (a *Int) binop(line int, b *Int, fn func(z, x, y *big.Int) *big.Int) *Int {
	digits := a.Digits
	if b.Digits > digits {
		digits = b.Digits
	}
	out := &Int{Digits: digits, v: new(big.Int)}
	fn(out.v, a.v, b.v)
	out.checkRange(line)
	return out
}

// checkRange raises KindPrecisionOutOfRange if the result's decimal digit
// count exceeds its mode's declared precision (spec.md §7).
func (a *Int) checkRange(line int) {
	digits := len(new(big.Int).Abs(a.v).Text(10))
	if digits > a.Digits {
		diag.Raise(diag.KindPrecisionOutOfRange, line, "LONG INT result exceeds declared precision")
	}
}

func (a *Int) Neg() *Int { return &Int{Digits: a.Digits, v: new(big.Int).Neg(a.v)} }
func (a *Int) Cmp(b *Int) int { return a.v.Cmp(b.v) }
func (a *Int) Int64() int64   { return a.v.Int64() }
func (a *Int) String() string { return a.v.String() }
func (a *Int) Float() *Real   { return &Real{Digits: a.Digits, v: new(big.Float).SetPrec(precBits(a.Digits)).SetInt(a.v)} }

func (a *Real) Add(b *Real) *Real { return a.binop(b, (*big.Float).Add) }
func (a *Real) Sub(b *Real) *Real { return a.binop(b, (*big.Float).Sub) }
func (a *Real) Mul(b *Real) *Real { return a.binop(b, (*big.Float).Mul) }

func (a *Real) Div(line int, b *Real) *Real {
	if b.v.Sign() == 0 {
		diag.Raise(diag.KindDivisionByZero, line, "LONG REAL / by zero")
	}
	return a.binop(b, (*big.Float).Quo)
}

func (a *Real) binop(b *Real, fn func(z, x, y *big.Float) *big.Float) *Real {
	digits := a.Digits
	if b.Digits > digits {
		digits = b.Digits
	}
	out := &Real{Digits: digits, v: new(big.Float).SetPrec(precBits(digits))}
	fn(out.v, a.v, b.v)
	return out
}

func (a *Real) Neg() *Real   { return &Real{Digits: a.Digits, v: new(big.Float).Neg(a.v)} }
func (a *Real) Cmp(b *Real) int { return a.v.Cmp(b.v) }
func (a *Real) Float64() float64 { f, _ := a.v.Float64(); return f }
func (a *Real) String() string   { return a.v.Text('g', a.Digits) }

// PackBits exposes a *Int as a flat array of fixed-width words (spec.md
// §6 "pack_mp_bits"), most-significant word first.
func PackBits(a *Int, wordBits int) []uint64 {
	bitlen := a.v.BitLen()
	words := (bitlen + wordBits - 1) / wordBits
	if words == 0 {
		words = 1
	}
	out := make([]uint64, words)
	abs := new(big.Int).Abs(a.v)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(wordBits))
	mask.Sub(mask, big.NewInt(1))
	tmp := new(big.Int)
	for i := words - 1; i >= 0; i-- {
		tmp.And(abs, mask)
		out[i] = tmp.Uint64()
		abs.Rsh(abs, uint(wordBits))
	}
	return out
}

// StackBits rebuilds an *Int from a flat word array (spec.md §6
// "stack_mp_bits"), the inverse of PackBits.
func StackBits(digits int, words []uint64, wordBits int) *Int {
	v := new(big.Int)
	for _, w := range words {
		v.Lsh(v, uint(wordBits))
		v.Or(v, new(big.Int).SetUint64(w))
	}
	return &Int{Digits: digits, v: v}
}
