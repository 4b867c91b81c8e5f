package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/coerce"
	"github.com/a68core/a68/mode"
)

func TestContextOrdering(t *testing.T) {
	require.True(t, coerce.Strong.AtLeast(coerce.Firm))
	require.False(t, coerce.Soft.AtLeast(coerce.Weak))
}

func TestDeprefable(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	require.True(t, coerce.Deprefable(tbl.Ref(i)))
	require.True(t, coerce.Deprefable(tbl.Proc(nil, i)))
	require.False(t, coerce.Deprefable(i))
}

func TestWidensIntToRealAndLong(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")
	li := tbl.MustStandard("LONG INT")
	lli := tbl.MustStandard("LONG LONG INT")

	require.True(t, coerce.Widens(tbl, i, r))
	require.True(t, coerce.Widens(tbl, i, li))
	require.True(t, coerce.Widens(tbl, i, lli))
	require.False(t, coerce.Widens(tbl, r, i))
}

func TestWidensBitsToRowBool(t *testing.T) {
	tbl := mode.NewTable()
	bits := tbl.MustStandard("BITS")
	boolM := tbl.MustStandard("BOOL")
	rowBool := tbl.Row(1, boolM)

	require.True(t, coerce.Widens(tbl, bits, rowBool))
}

func TestCoercibleMeekDereferences(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	refInt := tbl.Ref(i)

	require.True(t, coerce.Coercible(tbl, refInt, i, coerce.Meek, coerce.SafeDeflexing))
	require.False(t, coerce.Coercible(tbl, i, refInt, coerce.Meek, coerce.SafeDeflexing))
}

func TestCoercibleFirmUnites(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")
	u := tbl.Union(mode.Pack{{Mode: i}, {Mode: r}})

	require.True(t, coerce.Coercible(tbl, i, u, coerce.Firm, coerce.SafeDeflexing))
}

func TestCoercibleStrongVoidsAnything(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	void, _ := tbl.Standard("VOID")

	require.True(t, coerce.Coercible(tbl, i, void, coerce.Strong, coerce.SafeDeflexing))
}

func TestCoercibleStrongWidens(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	require.True(t, coerce.Coercible(tbl, i, r, coerce.Strong, coerce.SafeDeflexing))
}

func TestCoercibleRejectsUnrelatedModes(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	b := tbl.MustStandard("BOOL")

	require.False(t, coerce.Coercible(tbl, i, b, coerce.Strong, coerce.SafeDeflexing))
}

func TestUnitableRejectsNonUnionTarget(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	require.False(t, coerce.Unitable(i, r, coerce.SafeDeflexing))
}

func TestBalancePicksCommonlyCoercibleMode(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	res := coerce.Balance(tbl, []*mode.Mode{i, r}, coerce.SafeDeflexing)
	require.True(t, res.OK)
	require.Equal(t, r.Canonical(), res.Mode.Canonical())
}

func TestBalanceSkipsHip(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	hip, _ := tbl.Standard("HIP")

	res := coerce.Balance(tbl, []*mode.Mode{hip, i}, coerce.SafeDeflexing)
	require.True(t, res.OK)
	require.Equal(t, i.Canonical(), res.Mode.Canonical())
}

func TestResolveOperatorExactMatch(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	lookup := func(symbol string, operands []*mode.Mode) (*mode.Mode, bool) {
		if symbol == "+" && len(operands) == 2 && operands[0] == i && operands[1] == i {
			return i, true
		}
		return nil, false
	}
	m, ok := coerce.ResolveOperator(tbl, lookup, "+", []*mode.Mode{i, i})
	require.True(t, ok)
	require.Equal(t, i, m)

	_ = r
}

func TestResolveOperatorFallsBackToBalancedRetry(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	lookup := func(symbol string, operands []*mode.Mode) (*mode.Mode, bool) {
		if symbol == "+" && len(operands) == 2 && operands[0].Canonical() == r.Canonical() && operands[1].Canonical() == r.Canonical() {
			return r, true
		}
		return nil, false
	}
	m, ok := coerce.ResolveOperator(tbl, lookup, "+", []*mode.Mode{i, r})
	require.True(t, ok)
	require.Equal(t, r, m)
}

func TestResolveOperatorNoMatch(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	b := tbl.MustStandard("BOOL")

	lookup := func(symbol string, operands []*mode.Mode) (*mode.Mode, bool) { return nil, false }
	_, ok := coerce.ResolveOperator(tbl, lookup, "+", []*mode.Mode{i, b})
	require.False(t, ok)
}
