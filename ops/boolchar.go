package ops

// BOOL and CHAR operators (spec.md §4.6 "CHAR, BOOL, BITS: totally ordered
// lexicographic/bitwise operations").

func BoolAnd(a, b bool) bool { return a && b }
func BoolOr(a, b bool) bool  { return a || b }
func BoolNot(a bool) bool    { return !a }
func BoolEq(a, b bool) bool  { return a == b }
func BoolNe(a, b bool) bool  { return a != b }

func CharEq(a, b rune) bool { return a == b }
func CharNe(a, b rune) bool { return a != b }
func CharLt(a, b rune) bool { return a < b }
func CharLe(a, b rune) bool { return a <= b }
func CharGt(a, b rune) bool { return a > b }
func CharGe(a, b rune) bool { return a >= b }

// CharAbs is Algol 68's `ABS` applied to CHAR, yielding its ordinal
// (INT); IntRepr is `REPR` applied to INT, yielding the CHAR it names
// back.
func CharAbs(a rune) int64 { return int64(a) }
func IntRepr(a int64) rune { return rune(a) }
