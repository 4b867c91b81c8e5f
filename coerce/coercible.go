package coerce

import "github.com/a68core/a68/mode"

// depreffedOnce strips one REF layer, or one empty-pack PROC layer,
// mirroring original_source/coercion.c's depref_once.
func depreffedOnce(m *mode.Mode) (*mode.Mode, bool) {
	cm := m.Canonical()
	switch {
	case cm.Kind == mode.Ref:
		return cm.Sub.Canonical(), true
	case cm.Kind == mode.Proc && len(cm.FieldPack) == 0:
		return cm.Sub.Canonical(), true
	default:
		return nil, false
	}
}

// derow strips every ROW/FLEX layer down to the innermost non-row mode,
// for STRONG context's unitable-under-rowing check.
func derow(m *mode.Mode) *mode.Mode {
	cm := m.Canonical()
	for cm.Kind == mode.Row || cm.Kind == mode.Flex {
		cm = cm.Sub.Canonical()
	}
	return cm
}

// rowsType reports whether m is itself ROW/FLEX, or a UNION all of whose
// variants are (spec.md §4.2 "ROWS" pseudo-mode, matching whether_rows_type).
func rowsType(m *mode.Mode) bool {
	cm := m.Canonical()
	switch cm.Kind {
	case mode.Row, mode.Flex:
		return true
	case mode.Union:
		for _, f := range cm.FieldPack {
			if !rowsType(f.Mode) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func softlyCoercible(p, q *mode.Mode) bool {
	cp, cq := p.Canonical(), q.Canonical()
	if cp == cq {
		return true
	}
	if cp.Kind == mode.Proc && len(cp.FieldPack) == 0 {
		return softlyCoercible(cp.Sub, cq)
	}
	return false
}

func weaklyCoercible(p, q *mode.Mode) bool {
	cp, cq := p.Canonical(), q.Canonical()
	if cp == cq {
		return true
	}
	if next, ok := depreffedOnce(cp); ok {
		return weaklyCoercible(next, cq)
	}
	return false
}

func meeklyCoercible(p, q *mode.Mode) bool {
	cp, cq := p.Canonical(), q.Canonical()
	if cp == cq {
		return true
	}
	if next, ok := depreffedOnce(cp); ok {
		return meeklyCoercible(next, cq)
	}
	return false
}

func firmlyCoercible(t *mode.Table, p, q *mode.Mode, deflex Deflex) bool {
	cp, cq := p.Canonical(), q.Canonical()
	if cp == cq {
		return true
	}
	if rows, ok := t.Standard("ROWS"); ok && cq == rows && rowsType(cp) {
		return true
	}
	if Unitable(cp, cq, deflex) {
		return true
	}
	if next, ok := depreffedOnce(cp); ok {
		return firmlyCoercible(t, next, cq, deflex)
	}
	return false
}

func stronglyCoercible(t *mode.Table, p, q *mode.Mode, deflex Deflex) bool {
	cp, cq := p.Canonical(), q.Canonical()
	if cp == cq {
		return true
	}
	if cq.Kind == mode.Void {
		return true
	}
	if rows, ok := t.Standard("ROWS"); ok && cq == rows && rowsType(cp) {
		return true
	}
	if Unitable(cp, derow(cq), deflex) {
		return true
	}
	if _, ok := refRowElement(t, cq); ok && StrongName(t, cp, cq) {
		return true
	}
	if cq.Kind == mode.Row && StrongSlice(t, cp, cq) {
		return true
	}
	if cq.Kind == mode.Flex && StrongSlice(t, cp, cq) {
		return true
	}
	if Widens(t, cp, cq) {
		return true
	}
	if next, ok := depreffedOnce(cp); ok {
		return stronglyCoercible(t, next, cq, deflex)
	}
	return false
}

func basicCoercions(t *mode.Table, p, q *mode.Mode, strength Context, deflex Deflex) bool {
	if p.Canonical() == q.Canonical() {
		return true
	}
	switch strength {
	case Soft:
		return softlyCoercible(p, q)
	case Weak:
		return weaklyCoercible(p, q)
	case Meek:
		return meeklyCoercible(p, q)
	case Firm:
		return firmlyCoercible(t, p, q, deflex)
	case Strong:
		return stronglyCoercible(t, p, q, deflex)
	default:
		return false
	}
}

// Coercible reports whether p can be coerced to q in the given strength
// and deflex context (spec.md §4.2 "coercible(P, Q, strength, deflex)").
// An ill-formed mode on either side is accepted unconditionally, matching
// whether_coercible's "don't cascade diagnostics from an already-reported
// mode error".
func Coercible(t *mode.Table, p, q *mode.Mode, strength Context, deflex Deflex) bool {
	cp, cq := p.Canonical(), q.Canonical()
	if !cp.WellFormed() || !cq.WellFormed() {
		return true
	}
	if cp == cq {
		return true
	}
	if cp.Kind == mode.Hip {
		return true
	}
	if cp.Kind == mode.Stowed {
		return CoercibleStowed(t, cp, cq, strength, deflex)
	}
	if cp.Kind == mode.Series {
		return CoercibleSeries(t, cp, cq, strength, deflex)
	}
	if vacuum, ok := t.Standard("VACUUM"); ok && cp == vacuum && isRowDeflexed(cq) {
		return true
	}
	if basicCoercions(t, cp, cq, strength, deflex) {
		return true
	}
	switch deflex {
	case ForceDeflexing:
		return basicCoercions(t, cp.DeflexMode(t), cq.DeflexMode(t), strength, ForceDeflexing)
	case AliasDeflexing:
		if !cp.HasRef() {
			return basicCoercions(t, cp.DeflexMode(t), cq, strength, AliasDeflexing)
		}
		return Coercible(t, cp, cq, strength, SafeDeflexing)
	case SafeDeflexing:
		if !cp.HasRef() && !cq.HasRef() {
			return Coercible(t, cp, cq, strength, ForceDeflexing)
		}
		return basicCoercions(t, cp, cq, strength, SafeDeflexing)
	default:
		return false
	}
}

// isRowDeflexed reports whether q, with any outer FLEX stripped, is a ROW.
func isRowDeflexed(q *mode.Mode) bool {
	cq := q.Canonical()
	if cq.Kind == mode.Flex {
		cq = cq.Sub.Canonical()
	}
	return cq.Kind == mode.Row
}
