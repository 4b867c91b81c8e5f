package mode

// Table is the global append-only list of interned modes for one
// compilation (spec.md §3 "Modes live in a global list"). It owns the
// standard primitives and every mode built from a declarer.
type Table struct {
	all       []*Mode
	standards map[string]*Mode
}

// NewTable pre-interns the standard modes (spec.md §4.1 "Standard modes
// are pre-interned").
func NewTable() *Table {
	t := &Table{standards: make(map[string]*Mode)}
	for _, k := range []Kind{Int, Real, Bool, Char, Bits, Bytes, Format, File, Void, ErrorKind, Undefined, Hip, Complex, Vacuum, Rows} {
		m := t.intern(&Mode{Kind: k})
		t.standards[m.String()] = m
	}
	// LONG and LONG LONG families over INT, REAL, BITS, COMPLEX.
	for _, k := range []Kind{Int, Real, Bits, Complex} {
		for lengths := 1; lengths <= 2; lengths++ {
			m := t.intern(&Mode{Kind: k, Lengths: lengths})
			t.standards[m.String()] = m
		}
	}
	return t
}

func (t *Table) intern(m *Mode) *Mode {
	computeWidth(m)
	t.all = append(t.all, m)
	return m
}

// Standard looks up a pre-interned primitive or LONG family member by name,
// e.g. "INT" or "LONG LONG REAL".
func (t *Table) Standard(name string) (*Mode, bool) {
	m, ok := t.standards[name]
	return m, ok
}

// MustStandard panics if name is not a pre-interned standard mode; it is a
// convenience for the evaluator's operator tables, which only ever name
// standard modes.
func (t *Table) MustStandard(name string) *Mode {
	m, ok := t.Standard(name)
	if !ok {
		panic("mode: no standard mode named " + name)
	}
	return m
}

// Ref interns REF sub.
func (t *Table) Ref(sub *Mode) *Mode {
	return t.intern(&Mode{Kind: Ref, Sub: sub})
}

// Flex interns FLEX sub.
func (t *Table) Flex(sub *Mode) *Mode {
	return t.intern(&Mode{Kind: Flex, Sub: sub})
}

// Row interns a dim-dimensional ROW of sub. Bounds are never stored in the
// mode (spec.md §4.1 "Row bounds are not stored in the mode; only
// dimension is").
func (t *Table) Row(dim int, sub *Mode) *Mode {
	return t.intern(&Mode{Kind: Row, Dimension: dim, Sub: sub})
}

// Struct interns STRUCT(pack).
func (t *Table) Struct(pack Pack) *Mode {
	return t.intern(&Mode{Kind: Struct, FieldPack: pack, Dimension: len(pack)})
}

// Proc interns PROC(params) result.
func (t *Table) Proc(params Pack, result *Mode) *Mode {
	if result == nil {
		result, _ = t.Standard("VOID")
	}
	return t.intern(&Mode{Kind: Proc, FieldPack: params, Sub: result})
}

// Union interns UNION(variants) after normalising to a fixpoint (spec.md
// §4.1 "Union normalisation"); see union.go.
func (t *Table) Union(variants Pack) *Mode {
	normalised := normaliseUnion(variants)
	return t.intern(&Mode{Kind: Union, FieldPack: normalised, Dimension: len(normalised)})
}

// Indicant allocates a placeholder mode for a MODE declaration's name. Its
// Sub is nil until Bind is called once the RHS mode is constructed — the
// pointer identity is stable from allocation, which is what lets mutually
// recursive MODE clusters (MODE A = STRUCT(REF B y), B = STRUCT(REF A z))
// refer to each other before either RHS finishes building.
func (t *Table) Indicant(name string) *Mode {
	return t.intern(&Mode{Kind: Undefined, Name: name})
}

// Bind fills in indicant's referent once its RHS mode is known. It does not
// intern a new mode: indicant keeps its identity so every reference
// constructed before Bind still points at the right mode after.
func (indicant *Mode) Bind(referent *Mode) {
	indicant.Kind = referent.Kind
	indicant.Lengths = referent.Lengths
	indicant.Dimension = referent.Dimension
	indicant.Sub = referent.Sub
	indicant.FieldPack = referent.FieldPack
	indicant.flagsComputed = false
	indicant.wellFormedSet = false
	computeWidth(indicant)
}

// All returns every interned mode, for iteration during canonicalisation.
func (t *Table) All() []*Mode { return t.all }

// computeWidth fills in m.width (see Mode.Width) at construction time.
// Unlike the recursive HasRef/HasFlex/HasRows flags, width does not need a
// cycle guard: every composite is bounded by REF or PROC before it can
// recur into an indicant whose Sub isn't bound yet, and both REF and PROC
// have a fixed width regardless of their referent/result.
func computeWidth(m *Mode) {
	switch m.Kind {
	case Complex:
		m.width = 2 * (m.Lengths + 1)
	case Struct:
		w := 0
		for _, f := range m.FieldPack {
			w += f.Mode.Width()
		}
		m.width = w
	case Union:
		max := 0
		for _, f := range m.FieldPack {
			if w := f.Mode.Width(); w > max {
				max = w
			}
		}
		m.width = max + 1 // +1 for the active-variant tag
	case Void:
		m.width = 0
	default:
		// INT/REAL/BOOL/CHAR/BITS/BYTES/FORMAT/FILE/REF/PROC/ROW/FLEX/
		// HIP/ERROR/UNDEFINED all occupy one expression-stack slot: the
		// composites among them (ROW descriptors, PROC closures) are
		// boxed handles, not inline byte blocks (see DESIGN.md).
		m.width = 1
	}
}

func (m *Mode) ensureFlags() {
	if m.flagsComputed {
		return
	}
	computeFlagsRec(m, map[*Mode]bool{})
}

func computeFlagsRec(m *Mode, visiting map[*Mode]bool) (hasRef, hasFlex, hasRows bool) {
	cm := m.Canonical()
	if cm.flagsComputed {
		return cm.hasRef, cm.hasFlex, cm.hasRows
	}
	if visiting[cm] {
		// Cutting a cycle here is safe: a well-formed recursive mode must
		// cross REF or STRUCT before returning to cm, and that crossing
		// constructor already contributed its own flag bit on the way in.
		return false, false, false
	}
	visiting[cm] = true
	switch cm.Kind {
	case Ref:
		hasRef = true
		if cm.Sub != nil {
			_, f, r := computeFlagsRec(cm.Sub, visiting)
			hasFlex, hasRows = f, r
		}
	case Flex:
		hasFlex = true
		if cm.Sub != nil {
			hr, _, r := computeFlagsRec(cm.Sub, visiting)
			hasRef, hasRows = hr, r
		}
	case Row:
		hasRows = true
		if cm.Sub != nil {
			hr, f, _ := computeFlagsRec(cm.Sub, visiting)
			hasRef, hasFlex = hr, f
		}
	case Struct, Union, Proc:
		for _, fld := range cm.FieldPack {
			hr, f, r := computeFlagsRec(fld.Mode, visiting)
			hasRef = hasRef || hr
			hasFlex = hasFlex || f
			hasRows = hasRows || r
		}
		if cm.Kind == Proc && cm.Sub != nil {
			hr, f, r := computeFlagsRec(cm.Sub, visiting)
			hasRef = hasRef || hr
			hasFlex = hasFlex || f
			hasRows = hasRows || r
		}
	}
	delete(visiting, cm)
	cm.hasRef, cm.hasFlex, cm.hasRows = hasRef, hasFlex, hasRows
	return
}
