package ops

import (
	"github.com/a68core/a68/bigint"
	"github.com/a68core/a68/diag"
)

// LongAdd, LongSub, LongMul, LongDiv, LongMod dispatch LONG/LONG LONG INT
// arithmetic to the bigint collaborator (spec.md §4.6 "LONG and LONG LONG
// variants dispatch to the arbitrary-precision collaborator").
func LongAdd(line int, a, b *bigint.Int) *bigint.Int { return a.Add(line, b) }
func LongSub(line int, a, b *bigint.Int) *bigint.Int { return a.Sub(line, b) }
func LongMul(line int, a, b *bigint.Int) *bigint.Int { return a.Mul(line, b) }
func LongDiv(line int, a, b *bigint.Int) *bigint.Int { return a.Div(line, b) }
func LongMod(line int, a, b *bigint.Int) *bigint.Int { return a.Mod(line, b) }
func LongNeg(a *bigint.Int) *bigint.Int              { return a.Neg() }

func LongAddReal(a, b *bigint.Real) *bigint.Real { return a.Add(b) }
func LongSubReal(a, b *bigint.Real) *bigint.Real { return a.Sub(b) }
func LongMulReal(a, b *bigint.Real) *bigint.Real { return a.Mul(b) }
func LongDivReal(line int, a, b *bigint.Real) *bigint.Real { return a.Div(line, b) }

// LongDigitsFor returns the declared precision for a LONG-family mode
// whose Lengths field is 1 (LONG) or 2 (LONG LONG), downgrading and
// raising a recoverable KindPrecisionNotImplemented diagnostic if the
// caller asked for more than this collaborator supports (spec.md §7;
// SPEC_FULL.md "Precision-downgrade warning path").
func LongDigitsFor(lengths int, requested int, diagnostics *diag.List, line int) int {
	base := bigint.LongDigits
	if lengths >= 2 {
		base = bigint.LongLongDigits
	}
	if requested > base {
		requested = base
	}
	actual, downgraded := bigint.DowngradePrecision(requested)
	if downgraded {
		diagnostics.Add(diag.New(diag.KindPrecisionNotImplemented, line, "precision clamped to supported maximum"))
	}
	return actual
}
