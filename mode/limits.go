package mode

import "math"

// Precision limits for the plain (non-LONG) standard numeric modes
// (spec.md §4.1 "Standard mode limits"). LONG and LONG LONG precision is
// arbitrary and delegated to bigint.Collaborator rather than represented
// here as a fixed constant (see SPEC_FULL.md "SUPPLEMENTED FEATURES —
// precision tables").
const (
	IntMax  = math.MaxInt64
	IntMin  = math.MinInt64
	RealMax = math.MaxFloat64
	RealMin = -math.MaxFloat64
	// RealSmall is the smallest positive REAL distinguishable from zero,
	// mirroring Algol 68's small_real_t runtime constant.
	RealSmall = 2.2250738585072014e-308
	BitsWidth = 64
)

// DigitsFor reports how many decimal digits of precision a numeric mode of
// the given Kind/Lengths combination carries, for formatted output and for
// stdenv's bits/real width environment enquiries. Plain precision is a
// fixed constant; LONG and LONG LONG precision come from the bigint
// collaborator actually configured for the run, so this only answers for
// Lengths == 0.
func DigitsFor(k Kind) int {
	switch k {
	case Int:
		return 18
	case Real:
		return 15
	default:
		return 0
	}
}
