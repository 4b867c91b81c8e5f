package mode

// normaliseUnion reduces a UNION's declared variant list to the fixpoint
// described by spec.md §4.1 "Union normalisation": flatten nested unions,
// then repeatedly absorb and contract until no rule applies.
//
//   - flatten: UNION(UNION(A, B), C) = UNION(A, B, C).
//   - absorb: a variant that is itself firm-related to another (one derefs
//     to the other through zero or more REF layers) collapses into the
//     broader one.
//   - contract: duplicate canonical variants collapse to one.
//
// This lives in mode, not coerce, because it only needs the narrow
// structural VariantOf predicate below — not the full coercion context
// lattice — which keeps mode from depending on coerce (coerce imports
// mode, so the reverse import would be a cycle).
func normaliseUnion(variants Pack) Pack {
	flat := flattenUnion(variants)

	// Contract: drop duplicates by canonical identity, preserving first
	// occurrence order (stable for diagnostics).
	seen := make(map[*Mode]bool, len(flat))
	contracted := make(Pack, 0, len(flat))
	for _, f := range flat {
		c := f.Mode.Canonical()
		if seen[c] {
			continue
		}
		seen[c] = true
		contracted = append(contracted, f)
	}

	// Absorb: drop a variant that VariantOf's a different surviving variant
	// (i.e. is reachable from it by zero or more REF dereferences), since a
	// union containing T and REF T only ever needs the broader member at
	// the FIRM coercion context.
	absorbed := make(Pack, 0, len(contracted))
	for i, f := range contracted {
		subsumed := false
		for j, g := range contracted {
			if i == j {
				continue
			}
			if f.Mode.Canonical() != g.Mode.Canonical() && VariantOf(f.Mode, g.Mode) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			absorbed = append(absorbed, f)
		}
	}
	return absorbed
}

func flattenUnion(variants Pack) Pack {
	out := make(Pack, 0, len(variants))
	for _, f := range variants {
		if f.Mode.Canonical().Kind == Union {
			out = append(out, flattenUnion(f.Mode.Canonical().FieldPack)...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// VariantOf reports whether narrow is reachable from broad by stripping
// zero or more leading REF layers from broad — the purely structural
// relation union normalisation and STRONG-context unwrapping both need,
// without reference to the full coercion context lattice (spec.md §4.2
// "Unitable — FIRM coercion to a union member").
func VariantOf(narrow, broad *Mode) bool {
	cur := broad.Canonical()
	target := narrow.Canonical()
	for {
		if cur == target {
			return true
		}
		if cur.Kind != Ref {
			return false
		}
		cur = cur.Sub.Canonical()
	}
}
