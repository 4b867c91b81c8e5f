package ops

import (
	"math"

	"github.com/a68core/a68/diag"
)

// testRealRepresentation flushes a REAL result through the exceptional-
// value guard spec.md §4.6 names (`TEST_REAL_REPRESENTATION`): NaN or
// infinite results are a runtime-fatal arithmetic exception rather than
// silently propagating IEEE-754 sentinels through the program.
func testRealRepresentation(line int, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		diag.Raise(diag.KindArithmeticException, line, "real arithmetic exception")
	}
	return v
}

func RealAdd(line int, a, b float64) float64 { return testRealRepresentation(line, a+b) }
func RealSub(line int, a, b float64) float64 { return testRealRepresentation(line, a-b) }
func RealMul(line int, a, b float64) float64 { return testRealRepresentation(line, a*b) }

func RealDiv(line int, a, b float64) float64 {
	if b == 0 {
		diag.Raise(diag.KindDivisionByZero, line, "REAL / by zero")
	}
	return testRealRepresentation(line, a/b)
}

func RealNeg(a float64) float64  { return -a }
func RealAbs(a float64) float64  { return math.Abs(a) }
func RealSign(a float64) int64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

func RealPow(line int, base float64, exp int64) float64 {
	return testRealRepresentation(line, math.Pow(base, float64(exp)))
}

func RealSqrt(line int, a float64) float64 {
	if a < 0 {
		diag.Raise(diag.KindArithmeticException, line, "sqrt of negative REAL")
	}
	return testRealRepresentation(line, math.Sqrt(a))
}

func RealSin(a float64) float64  { return math.Sin(a) }
func RealCos(a float64) float64  { return math.Cos(a) }
func RealExp(a float64) float64  { return math.Exp(a) }
func RealLn(line int, a float64) float64 {
	if a <= 0 {
		diag.Raise(diag.KindArithmeticException, line, "ln of non-positive REAL")
	}
	return testRealRepresentation(line, math.Log(a))
}
