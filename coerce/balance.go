package coerce

import "github.com/a68core/a68/mode"

// BalanceResult reports the chosen mode for a series of branch modes and
// how many deprefs it took to reach it, so the tree can be annotated
// uniformly (spec.md §4.2 "Balancing").
type BalanceResult struct {
	Mode    *mode.Mode
	Deprefs int
	OK      bool
}

// Balance picks, from branches, the mode every other member is
// STRONG-coercible to (spec.md §4.2 "the result mode is chosen to be the
// mode in the series to which every other member is STRONG-coercible").
// Ties prefer FLEX over non-FLEX. eval.balanceCollateral wraps it, though
// nothing in eval calls that wrapper.
func Balance(t *mode.Table, branches []*mode.Mode, deflex Deflex) BalanceResult {
	var candidates []*mode.Mode
	for _, cand := range branches {
		if cand == nil || cand.Canonical().Kind == mode.Hip {
			continue
		}
		candidates = append(candidates, cand)
	}
	if len(candidates) == 0 {
		return BalanceResult{OK: false}
	}

	for deprefs := 0; ; deprefs++ {
		depreffed := make([]*mode.Mode, len(candidates))
		for i, c := range candidates {
			depreffed[i] = deprefN(c, deprefs)
		}
		if best, ok := firstUniversallyCoercible(t, depreffed, deflex); ok {
			return BalanceResult{Mode: best, Deprefs: deprefs, OK: true}
		}
		if !anyDeprefable(candidates, deprefs+1) {
			return BalanceResult{OK: false}
		}
	}
}

func deprefN(m *mode.Mode, n int) *mode.Mode {
	cur := m
	for i := 0; i < n; i++ {
		next, ok := depreffedOnce(cur)
		if !ok {
			return cur
		}
		cur = next
	}
	return cur
}

func anyDeprefable(candidates []*mode.Mode, n int) bool {
	for _, c := range candidates {
		if _, ok := depreffedOnce(deprefN(c, n-1)); ok {
			return true
		}
	}
	return false
}

// firstUniversallyCoercible finds a member of candidates to which every
// other candidate STRONG-coerces, preferring a FLEX member over a
// non-FLEX one when both qualify (spec.md "Ties prefer FLEX over non-FLEX").
func firstUniversallyCoercible(t *mode.Table, candidates []*mode.Mode, deflex Deflex) (*mode.Mode, bool) {
	var best *mode.Mode
	for _, target := range candidates {
		ok := true
		for _, other := range candidates {
			if other.Canonical() == target.Canonical() {
				continue
			}
			if !Coercible(t, other, target, Strong, deflex) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if best == nil {
			best = target
			continue
		}
		if target.Canonical().Kind == mode.Flex && best.Canonical().Kind != mode.Flex {
			best = target
		}
	}
	return best, best != nil
}
