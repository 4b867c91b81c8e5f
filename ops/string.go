package ops

import "strings"

// STRING and BYTES operators (spec.md §4.6 "STRING/BYTES: concatenation
// allocates a new row whose size is the sum of inputs").
//
// Values are carried as plain Go strings rather than heap.RowDesc-backed
// CHAR rows: a STRING denoter's value semantics (compare, concatenate) do
// not depend on where its storage lives, and eval has no conversion from
// a STRING value to a heap.RowDesc, so a STRING named by a REF is stored
// as the Go string itself. This mirrors FORCE_DEFLEXING's "values can be
// interchanged between FLEX and non-FLEX rows" rule: a bare STRING value
// never needs handle indirection until something takes its name.
func StringConcat(a, b string) string { return a + b }
func StringEq(a, b string) bool       { return a == b }
func StringNe(a, b string) bool       { return a != b }
func StringLt(a, b string) bool       { return a < b }
func StringLe(a, b string) bool       { return a <= b }
func StringGt(a, b string) bool       { return a > b }
func StringGe(a, b string) bool       { return a >= b }

func BytesConcat(a, b string) string { return a + b }
func BytesEq(a, b string) bool       { return a == b }

// StringRepeat implements the `n * STRING` replicator some dialects of
// the standard environment provide (not in the base report, but a direct
// analogue of `n * CHAR`).
func StringRepeat(n int64, s string) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, int(n))
}
