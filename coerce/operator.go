package coerce

import "github.com/a68core/a68/mode"

// Lookup searches symbol tables outward then the standard environment for
// an operator named symbol taking exactly these operand modes, returning
// the result mode on an exact match (spec.md §4.2 "Operator resolution").
// It is injected so this package never needs to know how scope
// represents symbol tables.
type Lookup func(symbol string, operands []*mode.Mode) (result *mode.Mode, ok bool)

// ResolveOperator runs the retry ladder spec.md §4.2 describes: exact
// match first; on failure, for dyadic operators, synthesise a united
// operand mode via balancing and retry under ALIAS_DEFLEXING; if that
// still fails, depref both operands once and retry the balanced search.
// Operand coercions throughout are FIRM, but the ladder itself only
// decides which modes to *look up* — whether the found operator's
// declared operand modes are actually FIRM-reachable from the call's
// operands is the caller's job once a candidate is found.
func ResolveOperator(t *mode.Table, lookup Lookup, symbol string, operands []*mode.Mode) (*mode.Mode, bool) {
	if m, ok := lookup(symbol, operands); ok {
		return m, true
	}
	if m, ok := balancedRetry(t, lookup, symbol, operands); ok {
		return m, true
	}
	if len(operands) != 2 {
		return nil, false
	}
	depreffed := make([]*mode.Mode, 2)
	anyDeprefed := false
	for i, o := range operands {
		if next, ok := depreffedOnce(o); ok {
			depreffed[i] = next
			anyDeprefed = true
		} else {
			depreffed[i] = o
		}
	}
	if !anyDeprefed {
		return nil, false
	}
	if m, ok := lookup(symbol, depreffed); ok {
		return m, true
	}
	return balancedRetry(t, lookup, symbol, depreffed)
}

func balancedRetry(t *mode.Table, lookup Lookup, symbol string, operands []*mode.Mode) (*mode.Mode, bool) {
	if len(operands) != 2 {
		return nil, false
	}
	balanced := Balance(t, operands, AliasDeflexing)
	if !balanced.OK {
		return nil, false
	}
	return lookup(symbol, []*mode.Mode{balanced.Mode, balanced.Mode})
}
