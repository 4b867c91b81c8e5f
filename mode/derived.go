package mode

// Derived modes (spec.md §4.1 "Derived modes"): REF-of, ROW-of-n-more,
// deflexed, trimmed, and sliced variants that the coercion and evaluator
// layers ask for repeatedly during a single compilation. Each is computed
// once per (m, parameter) and cached on m, since the request pattern is
// highly repetitive (every dereference of the same variable re-asks for
// the same name mode).

// NameMode returns REF m, interning it in t on first request.
func (m *Mode) NameMode(t *Table) *Mode {
	cm := m.Canonical()
	if cm.nameMode == nil {
		cm.nameMode = t.Ref(cm)
	}
	return cm.nameMode
}

// MultipleMode returns a dim-dimensional ROW of m, interning it in t on
// first request for that dimension.
func (m *Mode) MultipleMode(t *Table, dim int) *Mode {
	cm := m.Canonical()
	if cm.multipleMode == nil {
		cm.multipleMode = make(map[int]*Mode)
	}
	if existing, ok := cm.multipleMode[dim]; ok {
		return existing
	}
	row := t.Row(dim, cm)
	cm.multipleMode[dim] = row
	return row
}

// DeflexMode strips one FLEX layer (spec.md §4.2 "Deflexing"): for FLEX T
// it is the plain ROW T underneath; for every other kind it is m itself,
// since only a FLEX mode has flexibility to strip.
func (m *Mode) DeflexMode(t *Table) *Mode {
	cm := m.Canonical()
	if cm.computedDefl {
		return cm.deflexMode
	}
	if cm.Kind == Flex {
		cm.deflexMode = cm.Sub.Canonical()
	} else {
		cm.deflexMode = cm
	}
	cm.computedDefl = true
	return cm.deflexMode
}

// SliceMode returns the mode of indexing m with a full set of subscripts
// (spec.md §4.5 "Slice"): for a ROW/FLEX mode this is the element mode;
// for anything else m is not sliceable and SliceMode returns m unchanged,
// leaving the caller (coerce.Slice) to raise the diagnostic.
func (m *Mode) SliceMode(t *Table) *Mode {
	cm := m.Canonical()
	if cm.sliceModeV != nil {
		return cm.sliceModeV
	}
	switch cm.Kind {
	case Row:
		cm.sliceModeV = cm.Sub.Canonical()
	case Flex:
		cm.sliceModeV = cm.DeflexMode(t).SliceMode(t)
	default:
		cm.sliceModeV = cm
	}
	return cm.sliceModeV
}

// FieldIndex looks up name in m's STRUCT pack, returning its pack position
// and field mode (spec.md §4.5 "Selection": "the field name picks out one
// pack position; the selection's mode is that field's declared mode").
// The second return mirrors that field's Mode directly rather than
// requiring the caller to re-index FieldPack itself.
func (m *Mode) FieldIndex(name string) (int, *Mode, bool) {
	cm := m.Canonical()
	if cm.Kind != Struct {
		return 0, nil, false
	}
	for i, f := range cm.FieldPack {
		if f.Name == name {
			return i, f.Mode, true
		}
	}
	return 0, nil, false
}

// TrimMode returns the mode of a partial-subscript slice (fewer
// subscripts than dimensions, or a trimmer in place of a subscript):
// dimensionality is unchanged, since a trim narrows bounds without
// reducing rank (spec.md §4.5 "Trimming preserves dimension").
func (m *Mode) TrimMode(t *Table) *Mode {
	cm := m.Canonical()
	if cm.trimModeV != nil {
		return cm.trimModeV
	}
	switch cm.Kind {
	case Flex:
		cm.trimModeV = t.Flex(cm.Sub.Canonical().TrimMode(t))
	default:
		cm.trimModeV = cm
	}
	return cm.trimModeV
}
