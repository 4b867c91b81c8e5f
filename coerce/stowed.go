package coerce

import "github.com/a68core/a68/mode"

// CoercibleStowed handles a STOWED source mode (spec.md §4.2 "Stowed
// series"): the fields of a display or struct literal are coercible to a
// target en masse iff each component is coercible individually to the
// target's corresponding part, and only at STRONG — a stowed value never
// has an a priori mode of its own weaker than STRONG.
func CoercibleStowed(t *mode.Table, p, q *mode.Mode, strength Context, deflex Deflex) bool {
	if strength != Strong {
		return false
	}
	if q.Canonical().Kind == mode.Void {
		return true
	}
	switch q.Canonical().Kind {
	case mode.Flex:
		slice := q.Canonical().Sub.Canonical().SliceMode(t)
		for _, f := range p.FieldPack {
			if !Coercible(t, f.Mode, slice, strength, deflex) {
				return false
			}
		}
		return true
	case mode.Row:
		slice := q.Canonical().SliceMode(t)
		for _, f := range p.FieldPack {
			if !Coercible(t, f.Mode, slice, strength, deflex) {
				return false
			}
		}
		return true
	case mode.Proc, mode.Struct:
		cq := q.Canonical()
		if p.Dimension != cq.Dimension {
			return false
		}
		for i, f := range p.FieldPack {
			if !Coercible(t, f.Mode, cq.FieldPack[i].Mode, strength, deflex) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CoercibleSeries handles a SERIES source mode (the branches of a
// conditional or case clause before balancing has chosen a result): every
// branch must be individually coercible to q at STRONG.
func CoercibleSeries(t *mode.Table, p, q *mode.Mode, strength Context, deflex Deflex) bool {
	if strength != Strong {
		return false
	}
	for _, f := range p.FieldPack {
		if f.Mode == nil {
			continue
		}
		if !Coercible(t, f.Mode, q, strength, deflex) {
			return false
		}
	}
	return true
}
