package coerce

import "github.com/a68core/a68/mode"

// Widens reports whether p widens to q, directly or transitively, via the
// closed finite table over numeric (and numeric-adjacent) standards
// (spec.md §4.2 "widens(P → Q)"). The table is recovered in full from
// original_source/coercion.c rather than just the handful of examples
// spec.md calls out: INT→REAL, INT→LONG INT, LONG INT→LONG LONG INT or
// LONG REAL, REAL→LONG REAL, BITS→ROW BOOL, BYTES→ROW CHAR, and
// COMPLEX→LONG COMPLEX (and their LONG/LONG LONG escalations).
//
// Widening is transitive via a widens_to fixpoint: t is needed to
// construct the ROW BOOL / ROW CHAR targets on demand, since those are
// not themselves pre-interned standards.
func Widens(t *mode.Table, p, q *mode.Mode) bool {
	target := q.Canonical()
	visited := map[*mode.Mode]bool{}
	queue := []*mode.Mode{p.Canonical()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			return true
		}
		// ROW BOOL / ROW CHAR are built on demand, so they are never the
		// caller's own pointer; compare a ROW step structurally.
		if cur.Kind == mode.Row && target.Kind == mode.Row && cur.Dimension == target.Dimension && cur.Sub.Canonical() == target.Sub.Canonical() {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		queue = append(queue, widensDirect(t, cur)...)
	}
	return false
}

// widensDirect returns the set of modes cur widens to in a single step.
func widensDirect(t *mode.Table, cur *mode.Mode) []*mode.Mode {
	var out []*mode.Mode
	switch cur.Kind {
	case mode.Int:
		// INT → REAL at the same length, and INT → next LONG level.
		out = append(out, lengthed(t, mode.Real, cur.Lengths))
		if next, ok := nextLength(t, mode.Int, cur.Lengths); ok {
			out = append(out, next)
		}
	case mode.Real:
		if next, ok := nextLength(t, mode.Real, cur.Lengths); ok {
			out = append(out, next)
		}
	case mode.Bits:
		out = append(out, t.Row(1, t.MustStandard("BOOL")))
		if next, ok := nextLength(t, mode.Bits, cur.Lengths); ok {
			out = append(out, next)
		}
	case mode.Bytes:
		out = append(out, t.Row(1, t.MustStandard("CHAR")))
	case mode.Complex:
		if next, ok := nextLength(t, mode.Complex, cur.Lengths); ok {
			out = append(out, next)
		}
	}
	return out
}

func lengthed(t *mode.Table, k mode.Kind, lengths int) *mode.Mode {
	name := lengthName(k, lengths)
	m, ok := t.Standard(name)
	if !ok {
		panic("coerce: no standard mode " + name)
	}
	return m
}

func nextLength(t *mode.Table, k mode.Kind, lengths int) (*mode.Mode, bool) {
	if lengths >= 2 {
		return nil, false
	}
	return lengthed(t, k, lengths+1), true
}

func lengthName(k mode.Kind, lengths int) string {
	prefix := ""
	for i := 0; i < lengths; i++ {
		prefix += "LONG "
	}
	return prefix + k.String()
}
