package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/runtime/heap"
)

func TestAllocFreeReuse(t *testing.T) {
	h := heap.New(16)
	a, err := h.Alloc(4)
	require.NoError(t, err)
	require.Equal(t, 4, h.Used())

	h.Free(a)
	require.Equal(t, 0, h.Used())

	b, err := h.Alloc(4)
	require.NoError(t, err)
	require.Equal(t, 4, h.Used())
	require.NotNil(t, b)
}

func TestAllocExhaustion(t *testing.T) {
	h := heap.New(4)
	_, err := h.Alloc(4)
	require.NoError(t, err)
	_, err = h.Alloc(1)
	require.ErrorIs(t, err, heap.ErrHeapExhausted)
}

func TestRefNilAndSet(t *testing.T) {
	n := heap.NilRef(0)
	require.True(t, n.IsNil())

	h := heap.New(8)
	hd, err := h.Alloc(1)
	require.NoError(t, err)
	r := heap.Ref{Handle: hd, Scope: 0}
	require.False(t, r.IsNil())
	r.Set(int64(42))
	require.Equal(t, int64(42), r.Get())
}

func TestRowDescFlatIndex(t *testing.T) {
	h := heap.New(8)
	hd, err := h.Alloc(6)
	require.NoError(t, err)
	d := &heap.RowDesc{
		Handle: hd,
		Dims:   []heap.RowTuple{{Lwb: 1, Upb: 3, Span: 2, Shift: 2}, {Lwb: 1, Upb: 2, Span: 1, Shift: 1}},
	}
	// index (1,1) should map to flat offset 0.
	require.Equal(t, 0, d.FlatIndex([]int{1, 1}))
}
