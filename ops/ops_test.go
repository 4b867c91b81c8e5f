package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/ops"
)

func TestIntArithmetic(t *testing.T) {
	require.Equal(t, int64(7), ops.IntAdd(0, 3, 4))
	require.Equal(t, int64(5), ops.IntSub(0, 8, 3))
	require.Equal(t, int64(20), ops.IntMul(0, 4, 5))
	require.Equal(t, int64(3), ops.IntDiv(0, 7, 2))
	require.Equal(t, int64(1), ops.IntMod(0, 7, 2))
	require.Equal(t, int64(1), ops.IntMod(0, -7, 2))
}

func TestIntOverflowPanics(t *testing.T) {
	require.Panics(t, func() { ops.IntAdd(0, 1<<62, 1<<62) })
}

func TestComplexSmithDivision(t *testing.T) {
	got := ops.ComplexDiv(0, complex(1, 2), complex(3, 4))
	want := complex(1, 2) / complex(3, 4)
	require.InDelta(t, real(want), real(got), 1e-9)
	require.InDelta(t, imag(want), imag(got), 1e-9)
}

func TestComplexIsRealComparesValue(t *testing.T) {
	require.True(t, ops.ComplexIsReal(complex(3, 0)))
	require.False(t, ops.ComplexIsReal(complex(3, 0.0001)))
}

func TestRegisterTableResolvesIntAdd(t *testing.T) {
	tbl := mode.NewTable()
	tab := ops.Register(tbl)
	i := tbl.MustStandard("INT")
	fn, ok := tab.Resolve("+", []*mode.Mode{i, i})
	require.True(t, ok)
	result, err := fn(0, []any{int64(3), int64(4)})
	require.NoError(t, err)
	require.Equal(t, int64(7), result)
}
