package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/scope"
)

// TestEvalSerialClauseResumesAtJumpTarget builds a serial clause
//
//	L: SKIP; GOTO L leads nowhere useful on its own, so instead this
//
// builds: GOTO L; L: SKIP; 42 — the GOTO fires once, lands back on its own
// clause's label, and execution falls through to the final unit.
func TestEvalSerialClauseResumesAtJumpTarget(t *testing.T) {
	ev := newTestEvaluator(t)

	tg := &scope.Tag{Name: "L", IsLabel: true}
	jumpNode := &ast.Node{Attrib: ast.Jump, Tag: tg}
	labelNode := &ast.Node{Attrib: ast.Label, Symbol: "L", FirstChild: &ast.Node{Attrib: ast.Skip}}
	tail := intLit(42)

	serial := &ast.Node{Attrib: ast.SerialClause}
	serial.FirstChild = chain(jumpNode, labelNode, tail)
	tg.BindLabel(serial)

	v, err := ev.Eval(serial)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestEvalJumpToUnresolvedLabelEscapesAsFatal(t *testing.T) {
	ev := newTestEvaluator(t)
	tg := &scope.Tag{Name: "ELSEWHERE", IsLabel: true}
	other := &ast.Node{Attrib: ast.SerialClause}
	tg.BindLabel(other) // bound to a clause that never runs here

	jumpNode := &ast.Node{Attrib: ast.Jump, Tag: tg}
	serial := &ast.Node{Attrib: ast.SerialClause, FirstChild: jumpNode}

	require.Panics(t, func() {
		_, _ = ev.Eval(serial)
	})
}
