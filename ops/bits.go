package ops

import (
	"math/bits"

	"github.com/a68core/a68/diag"
)

// MaxBits is the plain BITS width (spec.md §4.6 "BITS shifts validated
// for positive directions against MAX_BITS"); LONG/LONG LONG BITS use
// the bigint collaborator instead (see ops/long.go).
const MaxBits = 32

func BitsAnd(a, b uint64) uint64 { return a & b }
func BitsOr(a, b uint64) uint64  { return a | b }
func BitsXor(a, b uint64) uint64 { return a ^ b }
func BitsNot(a uint64) uint64    { return ^a & (1<<MaxBits - 1) }
func BitsEq(a, b uint64) bool    { return a == b }
func BitsNe(a, b uint64) bool    { return a != b }

func BitsShl(line int, a uint64, n int64) uint64 {
	if n < 0 || n > MaxBits {
		diag.Raise(diag.KindInvalidArgument, line, "BITS shift out of range")
	}
	return (a << uint(n)) & (1<<MaxBits - 1)
}

func BitsShr(line int, a uint64, n int64) uint64 {
	if n < 0 || n > MaxBits {
		diag.Raise(diag.KindInvalidArgument, line, "BITS shift out of range")
	}
	return a >> uint(n)
}

// BitsElem reads bit i (0-based from the most significant bit, matching
// Algol 68's ELEM indexing of a BITS value as a row of BOOL).
func BitsElem(line int, a uint64, i int64) bool {
	if i < 0 || i >= MaxBits {
		diag.Raise(diag.KindIndexOutOfBounds, line, "BITS ELEM index out of bounds")
	}
	return a&(1<<uint(MaxBits-1-i)) != 0
}

func BitsOnes(a uint64) int64 { return int64(bits.OnesCount64(a)) }
