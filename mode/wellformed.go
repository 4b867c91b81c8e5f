package mode

// Well-formedness (spec.md §4.1 "Ill-formed modes", Design Notes' "yin and
// yang" two-colour mark): a mode is ill-formed if it contains itself
// without first crossing a REF, ROW, or PROC — i.e. it would need infinite
// storage laid out flat. MODE A = STRUCT(INT x, A y) is ill-formed; MODE A
// = STRUCT(INT x, REF A y) is fine, because the cycle is broken by an
// indirection.
//
// Only STRUCT and UNION nesting is size-carrying, so only those edges are
// followed for this check: a REF's referent, a ROW/FLEX's element, and a
// PROC's parameters/result are never flattened into their container's
// storage, so whether they are themselves well-formed is irrelevant to
// whether the container is — that is checked independently, the next time
// something asks for their own WellFormed().
//
// yin marks a mode open on the current direct-nesting path (this call has
// not returned yet); re-entering a yin-marked mode through another
// STRUCT/UNION edge means the size recursion never bottoms out.
func (m *Mode) ensureWellFormed() {
	cm := m.Canonical()
	if cm.wellFormedSet {
		return
	}
	walkWellFormed(cm, map[*Mode]bool{})
}

func walkWellFormed(m *Mode, yin map[*Mode]bool) bool {
	cm := m.Canonical()
	if cm.wellFormedSet {
		return cm.wellFormed
	}
	if yin[cm] {
		return false
	}
	yin[cm] = true
	ok := true
	switch cm.Kind {
	case Struct, Union:
		for _, f := range cm.FieldPack {
			if !walkWellFormed(f.Mode, yin) {
				ok = false
			}
		}
	default:
		// REF, ROW, FLEX, PROC, and every primitive/indicant-without-body
		// carry no direct size dependency on cm, so nothing further to
		// check here; an unbound indicant (Sub and FieldPack both nil) is
		// simply not yet checkable and defaults to well-formed until Bind
		// resets wellFormedSet and this runs again.
	}
	delete(yin, cm)
	cm.wellFormed = ok
	cm.wellFormedSet = true
	return ok
}
