package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/coerce"
	"github.com/a68core/a68/mode"
)

func TestInsertDereferencesToMeekTarget(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	refInt := tbl.Ref(i)

	id := &ast.Node{Attrib: ast.Identifier, Symbol: "x"}
	id.Mode = refInt

	top := coerce.Insert(tbl, id, refInt, i, coerce.Meek, coerce.SafeDeflexing, ast.Identifier)

	require.Equal(t, ast.Dereferencing, top.Attrib)
	require.Same(t, id, top.Sub)
	require.Equal(t, i.ModeName(), top.Mode.ModeName())
}

func TestInsertWidensIntToReal(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	lit := &ast.Node{Attrib: ast.Denoter, Symbol: "1"}
	lit.Mode = i

	top := coerce.Insert(tbl, lit, i, r, coerce.Strong, coerce.SafeDeflexing, ast.Denoter)

	require.Equal(t, ast.Widening, top.Attrib)
	require.Equal(t, r.ModeName(), top.Mode.ModeName())
}

func TestInsertVoidsPrimaryComorfAfterDereferencing(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	refInt := tbl.Ref(i)
	void, _ := tbl.Standard("VOID")

	call := &ast.Node{Attrib: ast.Call, Symbol: "f"}
	call.Mode = refInt

	top := coerce.Insert(tbl, call, refInt, void, coerce.Strong, coerce.SafeDeflexing, ast.Call)

	require.Equal(t, ast.Voiding, top.Attrib)
	require.Equal(t, ast.Dereferencing, top.Sub.Attrib)
	require.Same(t, call, top.Sub.Sub)
}
