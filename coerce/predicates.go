package coerce

import "github.com/a68core/a68/mode"

// Deprefable reports whether m is a REF T or a PROC with an empty
// parameter pack returning T (spec.md §4.2 "deprefable(M)") — the shapes
// SOFT/WEAK/MEEK dereferencing and deproceduring strip one layer of.
func Deprefable(m *mode.Mode) bool {
	cm := m.Canonical()
	if cm.Kind == mode.Ref {
		return true
	}
	return cm.Kind == mode.Proc && len(cm.FieldPack) == 0
}

// Unitable reports whether m fits into union u at context ctx (spec.md
// §4.2 "unitable(M, U, ctx)"): either m is (up to deflexing at ctx) one
// of u's variants, or m is itself a union every variant of which is a
// variant of u.
func Unitable(m, u *mode.Mode, ctx Deflex) bool {
	cu := u.Canonical()
	if cu.Kind != mode.Union {
		return false
	}
	cm := m.Canonical()
	if cm.Kind == mode.Union {
		for _, f := range cm.FieldPack {
			if !Unitable(f.Mode, cu, ctx) {
				return false
			}
		}
		return len(cm.FieldPack) > 0
	}
	for _, f := range cu.FieldPack {
		if variantMatches(cm, f.Mode.Canonical(), ctx) {
			return true
		}
	}
	return false
}

func variantMatches(m, variant *mode.Mode, ctx Deflex) bool {
	if m.Canonical() == variant.Canonical() {
		return true
	}
	switch ctx {
	case ForceDeflexing:
		return flexEquivalent(m, variant, true)
	case AliasDeflexing:
		return !m.HasRef() && flexEquivalent(m, variant, false)
	case SafeDeflexing:
		return flexEquivalent(m, variant, false)
	default:
		return false
	}
}

// flexEquivalent reports whether m and variant are the same mode once any
// FLEX wrapper is stripped from either side (requireBoth demands both
// sides actually carry a FLEX to begin with, matching FORCE_DEFLEXING's
// "equates FLEX []A and []A outright").
func flexEquivalent(m, variant *mode.Mode, requireBoth bool) bool {
	cm, cv := m.Canonical(), variant.Canonical()
	mFlex, vFlex := cm.Kind == mode.Flex, cv.Kind == mode.Flex
	if requireBoth && !(mFlex || vFlex) {
		return false
	}
	base := cm
	if mFlex {
		base = cm.Sub.Canonical()
	}
	other := cv
	if vFlex {
		other = cv.Sub.Canonical()
	}
	return base == other
}

// refRowElement returns the element mode of the row that q names, if q is
// REF (possibly FLEX) ROW, i.e. the mode original_source/coercion.c calls
// q->name one recursive step at a time; our flattened row representation
// (single ROW node carrying Dimension directly rather than a chain of
// per-dimension nodes) reaches it in one step instead of walking
// dimensions one at a time.
func refRowElement(t *mode.Table, q *mode.Mode) (*mode.Mode, bool) {
	cq := q.Canonical()
	if cq.Kind != mode.Ref {
		return nil, false
	}
	row := cq.Sub.Canonical().DeflexMode(t)
	if row.Kind != mode.Row {
		return nil, false
	}
	return row.Sub.Canonical(), true
}

// StrongName mirrors whether_strong_name: q is a REF ROW and either p
// equals q, or p strong-names the mode one dimension further in
// (spec.md §4.2 "strong_name(P, Q)").
func StrongName(t *mode.Table, p, q *mode.Mode) bool {
	if p.Canonical() == q.Canonical() {
		return true
	}
	elem, ok := refRowElement(t, q)
	if !ok {
		return false
	}
	return StrongName(t, p, t.Ref(elem))
}

// StrongSlice mirrors whether_strong_slice (spec.md §4.2
// "strong_slice(P, Q)"): P = Q, or P widens to Q, or Q has a slice and P
// strong-slices the sliced mode, or Q is FLEX and P strong-slices its
// sub, or Q is REF ROW and P strong-names Q.
func StrongSlice(t *mode.Table, p, q *mode.Mode) bool {
	cp, cq := p.Canonical(), q.Canonical()
	if cp == cq || Widens(t, cp, cq) {
		return true
	}
	if cq.Kind == mode.Row {
		return StrongSlice(t, p, cq.SliceMode(t))
	}
	if cq.Kind == mode.Flex {
		return StrongSlice(t, p, cq.DeflexMode(t))
	}
	if _, ok := refRowElement(t, cq); ok {
		return StrongName(t, p, cq)
	}
	return false
}
