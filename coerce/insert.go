package coerce

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/mode"
)

// primaryComorf reports whether attrib is one of the "primary COMORF"
// categories spec.md §4.2 names for VOIDING's dereference-then-deprocedure
// policy: selection, slice, call, formula, identifier, routine-text.
func primaryComorf(attrib ast.Attrib) bool {
	switch attrib {
	case ast.Selection, ast.Slice, ast.Call, ast.Formula, ast.MonadicFormula, ast.Identifier, ast.RoutineText:
		return true
	default:
		return false
	}
}

// Insert splices coercion nodes around n — VOIDING alone when target is
// VOID, otherwise DEREFERENCING/DEPROCEDURING first, then UNITING,
// WIDENING and ROWING, in that order of preference — chaining them until
// target is reached, preserving invariant I4 (spec.md §4.2 "Coercion
// insertion"). source is n's a priori mode before any coercion; the
// caller must already know (e.g. via Coercible) that source reaches
// target in this context — Insert does not itself re-derive coercibility,
// it only walks the same algorithm far enough to pick concrete coercion
// steps.
//
// originalAttrib is n's attribute before any wrapping, needed to choose
// the VOIDING policy.
func Insert(t *mode.Table, n *ast.Node, source, target *mode.Mode, strength Context, deflex Deflex, originalAttrib ast.Attrib) *ast.Node {
	cur := n
	curMode := source

	for curMode.Canonical() != target.Canonical() {
		if target.Canonical().Kind == mode.Void {
			cur = insertVoiding(t, cur, curMode, originalAttrib)
			curMode, _ = t.Standard("VOID")
			continue
		}
		if next, wrapped, ok := tryDepref(t, cur, curMode); ok {
			cur, curMode = wrapped, next
			continue
		}
		if Unitable(curMode, target, deflex) {
			cur = wrapMode(cur, ast.Uniting, target)
			curMode = target
			continue
		}
		if next, ok := widensDirectTo(t, curMode, target); ok {
			cur = wrapMode(cur, ast.Widening, next)
			curMode = next
			continue
		}
		if target.Canonical().Kind == mode.Row && Coercible(t, curMode, target.Canonical().SliceMode(t), strength, deflex) {
			cur = wrapMode(cur, ast.Rowing, target)
			curMode = target
			continue
		}
		// No further single coercion narrows the gap; stop here rather
		// than loop forever. The caller is expected to have verified
		// coercibility first, so reaching this means Insert's simplified
		// step selection missed a case — leave the tree as far coerced as
		// it got rather than corrupt it further.
		break
	}
	return cur
}

func tryDepref(t *mode.Table, n *ast.Node, curMode *mode.Mode) (*mode.Mode, *ast.Node, bool) {
	cm := curMode.Canonical()
	if cm.Kind == mode.Ref {
		return cm.Sub.Canonical(), wrapMode(n, ast.Dereferencing, cm.Sub.Canonical()), true
	}
	if cm.Kind == mode.Proc && len(cm.FieldPack) == 0 {
		return cm.Sub.Canonical(), wrapMode(n, ast.Deproceduring, cm.Sub.Canonical()), true
	}
	return nil, nil, false
}

func widensDirectTo(t *mode.Table, curMode, target *mode.Mode) (*mode.Mode, bool) {
	for _, next := range widensDirect(t, curMode.Canonical()) {
		if next.Canonical() == target.Canonical() || Widens(t, next, target) {
			return next, true
		}
	}
	return nil, false
}

func insertVoiding(t *mode.Table, n *ast.Node, curMode *mode.Mode, originalAttrib ast.Attrib) *ast.Node {
	cur := n
	if primaryComorf(originalAttrib) {
		for {
			next, wrapped, ok := tryDepref(t, cur, curMode)
			if !ok {
				break
			}
			cur, curMode = wrapped, next
		}
	}
	voidMode, _ := t.Standard("VOID")
	return wrapMode(cur, ast.Voiding, voidMode)
}

// wrapMode splices a coercion node of the given attribute above n and
// tags it with its resulting mode.
func wrapMode(n *ast.Node, attrib ast.Attrib, result *mode.Mode) *ast.Node {
	wrapped := n.Wrap(attrib)
	wrapped.Mode = result
	return wrapped
}
