package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/eval"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/runtime/heap"
)

// TestEvalAssignationChecksStructFieldScope exercises spec.md §4.4's
// dynamic-scope guard's STRUCT case (spec.md §4.4: "for STRUCTs check
// each field with a REF"): a STRUCT value whose one field is a REF
// allocated at a deeper, shorter-lived scope than the assignment's target
// must be rejected even though the STRUCT itself carries no scope tag of
// its own — this port's STRUCT representation is a boxed []any (DESIGN.md
// "Struct storage: boxed slice, not flattened fields"), so the guard must
// recurse into it field by field.
func TestEvalAssignationChecksStructFieldScope(t *testing.T) {
	ev := newTestEvaluator(t)
	intMode := ev.Modes.MustStandard("INT")
	refIntMode := ev.Modes.Ref(intMode)
	structMode := ev.Modes.Struct(mode.Pack{{Name: "p", Mode: refIntMode}})
	refStructMode := ev.Modes.Ref(structMode)

	targetHandle, err := ev.Heap.Alloc(1)
	require.NoError(t, err)
	targetRef := heap.Ref{Handle: targetHandle, Scope: 0}
	nameNode := &ast.Node{Attrib: ast.Denoter, Const: targetRef, Mode: refStructMode}

	fieldHandle, err := ev.Heap.Alloc(1)
	require.NoError(t, err)
	deepRef := heap.Ref{Handle: fieldHandle, Scope: 5}
	valueNode := &ast.Node{Attrib: ast.Denoter, Const: []any{deepRef}, Mode: structMode}
	nameNode.NextSibling = valueNode

	assign := &ast.Node{Attrib: ast.Assignation, FirstChild: nameNode}

	require.Panics(t, func() {
		_, _ = ev.Eval(assign)
	})
}

// TestEvalAssignationChecksStructFieldScopeSound is the accepting
// counterpart: a field REF at the same (or shallower) scope as the
// target is sound and the assignment succeeds.
func TestEvalAssignationChecksStructFieldScopeSound(t *testing.T) {
	ev := newTestEvaluator(t)
	intMode := ev.Modes.MustStandard("INT")
	refIntMode := ev.Modes.Ref(intMode)
	structMode := ev.Modes.Struct(mode.Pack{{Name: "p", Mode: refIntMode}})
	refStructMode := ev.Modes.Ref(structMode)

	targetHandle, err := ev.Heap.Alloc(1)
	require.NoError(t, err)
	targetRef := heap.Ref{Handle: targetHandle, Scope: 5}
	nameNode := &ast.Node{Attrib: ast.Denoter, Const: targetRef, Mode: refStructMode}

	fieldHandle, err := ev.Heap.Alloc(1)
	require.NoError(t, err)
	soundRef := heap.Ref{Handle: fieldHandle, Scope: 0}
	valueNode := &ast.Node{Attrib: ast.Denoter, Const: []any{soundRef}, Mode: structMode}
	nameNode.NextSibling = valueNode

	assign := &ast.Node{Attrib: ast.Assignation, FirstChild: nameNode}

	_, err = ev.Eval(assign)
	require.NoError(t, err)
}

// TestEvalAssignationChecksProcLocaleArgScope exercises spec.md §4.4's
// dynamic-scope guard's partial-locale case (spec.md §4.4: "for partial
// locales check each 'filled' slot"): a curried procedure whose bound
// argument is itself a REF allocated at a deeper scope than the
// assignment's target must be rejected even though the PROC value's own
// captured environment is sound.
func TestEvalAssignationChecksProcLocaleArgScope(t *testing.T) {
	ev := newTestEvaluator(t)
	intMode := ev.Modes.MustStandard("INT")
	refIntMode := ev.Modes.Ref(intMode)
	procMode := ev.Modes.Proc(mode.Pack{{Name: "p", Mode: refIntMode}}, intMode)
	refProcMode := ev.Modes.Ref(procMode)

	targetHandle, err := ev.Heap.Alloc(1)
	require.NoError(t, err)
	targetRef := heap.Ref{Handle: targetHandle, Scope: 0}
	nameNode := &ast.Node{Attrib: ast.Denoter, Const: targetRef, Mode: refProcMode}

	fieldHandle, err := ev.Heap.Alloc(1)
	require.NoError(t, err)
	deepRef := heap.Ref{Handle: fieldHandle, Scope: 5}
	pv := &eval.ProcVal{
		Kind:   eval.UserProc,
		Mode:   procMode,
		Locale: &eval.Locale{Args: []any{deepRef}, Filled: []bool{true}},
	}
	valueNode := &ast.Node{Attrib: ast.Denoter, Const: pv, Mode: procMode}
	nameNode.NextSibling = valueNode

	assign := &ast.Node{Attrib: ast.Assignation, FirstChild: nameNode}

	require.Panics(t, func() {
		_, _ = ev.Eval(assign)
	})
}
