package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/eval"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/runtime/heap"
)

func TestEvalSelectionThroughRefYieldsFieldRef(t *testing.T) {
	ev := newTestEvaluator(t)
	intMode := ev.Modes.MustStandard("INT")
	structMode := ev.Modes.Struct(mode.Pack{{Name: "x", Mode: intMode}})
	refMode := ev.Modes.Ref(structMode)

	h, err := ev.Heap.Alloc(1)
	require.NoError(t, err)
	h.Data[0] = []any{int64(7)}
	ref := heap.Ref{Handle: h, Scope: 0}

	operand := &ast.Node{Attrib: ast.Denoter, Const: ref, Mode: refMode}
	sel := &ast.Node{Attrib: ast.Selection, Symbol: "x", FirstChild: operand}

	v, err := ev.Eval(sel)
	require.NoError(t, err)
	fr, ok := v.(eval.FieldRef)
	require.True(t, ok)
	require.Equal(t, int64(7), fr.Get())

	fr.Set(int64(9))
	require.Equal(t, int64(9), h.Data[0].([]any)[0])
}

func TestEvalSelectionFromPlainStructValue(t *testing.T) {
	ev := newTestEvaluator(t)
	intMode := ev.Modes.MustStandard("INT")
	structMode := ev.Modes.Struct(mode.Pack{{Name: "x", Mode: intMode}, {Name: "y", Mode: intMode}})

	operand := &ast.Node{Attrib: ast.Denoter, Const: []any{int64(3), int64(4)}, Mode: structMode}
	sel := &ast.Node{Attrib: ast.Selection, Symbol: "y", FirstChild: operand}

	v, err := ev.Eval(sel)
	require.NoError(t, err)
	require.Equal(t, int64(4), v)
}
