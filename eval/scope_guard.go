package eval

import (
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/runtime/heap"
)

// scopeSound reports whether a value whose storage is confined no
// shallower than valueScope may be written into a target whose own
// storage lives at targetScope (spec.md §8's testable property "for every
// successful assignment N ← V, scope(V) ≥ scope(N)").
//
// This port numbers scope by lexical nesting depth, 0 = outermost/
// standard-environment level, increasing with block nesting — the
// opposite direction from reading "scope" as a persistence rank. Under
// that numbering the spec's relation reads as: a value's declaring depth
// must not be deeper (numerically greater) than the target's, i.e.
// valueScope <= targetScope. A HEAP-allocated value's scope is always 0
// (it outlives every frame), so it is always sound to store anywhere; a
// LOC value's scope is its declaring frame's level, so it can only be
// stored into a target at the same level or deeper, never into an
// enclosing (shallower) one.
func scopeSound(valueScope, targetScope int) bool { return valueScope <= targetScope }

// checkAssignScope raises KindScopeViolation if v carries a scope tag, or
// contains one, unsound to store at targetScope (spec.md §4.4's guard:
// "for REFs check the referent's scope ... for PROCs check the captured
// environment ... for UNIONs check the active variant; for STRUCTs check
// each field with a REF ... for partial locales check each 'filled'
// slot"). heap.Ref and FieldRef are checked directly; *ProcVal recurses
// into both its captured environment and every filled locale argument;
// *FormatVal is checked directly; *UnionVal recurses into its active
// payload; a STRUCT value (this port's boxed []any, see DESIGN.md "Struct
// storage: boxed slice, not flattened fields") recurses into every field
// in pack order. A row's own elements are never walked here: every row
// this evaluator constructs is copied field-by-field through
// deepCopyIfStowed before checkAssignScope ever sees it, and a copied
// row's elements were scope-checked at the point each was itself bound,
// not re-checked on every subsequent assignment of the row as a whole.
func checkAssignScope(v any, targetScope int, line int) {
	switch val := v.(type) {
	case heap.Ref:
		if val.IsNil() {
			return
		}
		if !scopeSound(val.Scope, targetScope) {
			diag.Raise(diag.KindScopeViolation, line, "name escapes its declaring frame")
		}
	case FieldRef:
		if val.IsNil() {
			return
		}
		if !scopeSound(val.Scope, targetScope) {
			diag.Raise(diag.KindScopeViolation, line, "field name escapes its declaring frame")
		}
	case *ProcVal:
		if val.Env != nil && !scopeSound(val.Env.Level, targetScope) {
			diag.Raise(diag.KindScopeViolation, line, "procedure closure escapes its declaring frame")
		}
		if val.Locale != nil {
			for i, filled := range val.Locale.Filled {
				if filled {
					checkAssignScope(val.Locale.Args[i], targetScope, line)
				}
			}
		}
	case *FormatVal:
		if val.Env != nil && !scopeSound(val.Env.Level, targetScope) {
			diag.Raise(diag.KindScopeViolation, line, "format closure escapes its declaring frame")
		}
	case *UnionVal:
		checkAssignScope(val.Value, targetScope, line)
	case []any:
		for _, field := range val {
			checkAssignScope(field, targetScope, line)
		}
	}
}
