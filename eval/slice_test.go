package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/eval"
	"github.com/a68core/a68/runtime/heap"
)

func TestEvalSliceIndexesARow(t *testing.T) {
	ev := newTestEvaluator(t)
	h, err := ev.Heap.Alloc(3)
	require.NoError(t, err)
	h.Data[0], h.Data[1], h.Data[2] = int64(10), int64(20), int64(30)

	row := &heap.RowDesc{
		Handle: h,
		Dims:   []heap.RowTuple{{Lwb: 1, Upb: 3, Span: 1, Shift: 1}},
	}
	rowOperand := &ast.Node{Attrib: ast.Denoter, Const: row}
	idx := intLit(2)
	rowOperand.NextSibling = idx
	sliceNode := &ast.Node{Attrib: ast.Slice, FirstChild: rowOperand}

	v, err := ev.Eval(sliceNode)
	require.NoError(t, err)
	ref, ok := v.(heap.Ref)
	require.True(t, ok)
	require.Equal(t, int64(20), ref.Get())
}

func TestEvalSliceIndexOutOfBoundsIsFatal(t *testing.T) {
	ev := newTestEvaluator(t)
	h, err := ev.Heap.Alloc(3)
	require.NoError(t, err)

	row := &heap.RowDesc{
		Handle: h,
		Dims:   []heap.RowTuple{{Lwb: 1, Upb: 3, Span: 1, Shift: 1}},
	}
	rowOperand := &ast.Node{Attrib: ast.Denoter, Const: row}
	idx := intLit(9)
	rowOperand.NextSibling = idx
	sliceNode := &ast.Node{Attrib: ast.Slice, FirstChild: rowOperand}

	require.Panics(t, func() {
		_, _ = ev.Eval(sliceNode)
	})
}

func TestEvalSliceTrimsBoundsAndSharesBackingStorage(t *testing.T) {
	ev := newTestEvaluator(t)
	h, err := ev.Heap.Alloc(5)
	require.NoError(t, err)
	for i := range h.Data {
		h.Data[i] = int64(i)
	}

	row := &heap.RowDesc{
		Handle: h,
		Dims:   []heap.RowTuple{{Lwb: 1, Upb: 5, Span: 1, Shift: 1}},
	}
	rowOperand := &ast.Node{Attrib: ast.Denoter, Const: row}
	lower := intLit(2)
	upper := intLit(4)
	lower.NextSibling = upper
	trimmer := &ast.Node{Attrib: ast.Trimmer, FirstChild: lower}
	rowOperand.NextSibling = trimmer
	sliceNode := &ast.Node{Attrib: ast.Slice, FirstChild: rowOperand}

	v, err := ev.Eval(sliceNode)
	require.NoError(t, err)
	trimmed, ok := v.(*heap.RowDesc)
	require.True(t, ok)
	require.Equal(t, 2, trimmed.Dims[0].Lwb)
	require.Equal(t, 4, trimmed.Dims[0].Upb)
	require.Same(t, h, trimmed.Handle)
	require.Equal(t, row.FlatIndex([]int{2}), trimmed.FlatIndex([]int{2}))
}

// buildMatrix builds a row-major 3x3 INT row (rows 1:3, columns 1:3),
// element [i][j] = i*10+j, the same two-dimensional shape spec.md §8's
// scenario 4 generalises to ("[1:3] INT xs"; this is its [1:3,1:3] INT
// analogue).
func buildMatrix(t *testing.T, ev *eval.Evaluator) *heap.RowDesc {
	t.Helper()
	h, err := ev.Heap.Alloc(9)
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			h.Data[(i-1)*3+(j-1)] = int64(i*10 + j)
		}
	}
	return &heap.RowDesc{
		Handle: h,
		Dims: []heap.RowTuple{
			{Lwb: 1, Upb: 3, Span: 3, Shift: 3},
			{Lwb: 1, Upb: 3, Span: 1, Shift: 1},
		},
	}
}

func TestEvalSliceIndexesATwoDimensionalRow(t *testing.T) {
	ev := newTestEvaluator(t)
	row := buildMatrix(t, ev)

	rowOperand := &ast.Node{Attrib: ast.Denoter, Const: row}
	i, j := intLit(2), intLit(3)
	rowOperand.NextSibling = i
	i.NextSibling = j
	sliceNode := &ast.Node{Attrib: ast.Slice, FirstChild: rowOperand}

	v, err := ev.Eval(sliceNode)
	require.NoError(t, err)
	ref, ok := v.(heap.Ref)
	require.True(t, ok)
	require.Equal(t, int64(23), ref.Get())
}

func TestEvalSliceTwoDimensionalOutOfBoundsIsFatal(t *testing.T) {
	ev := newTestEvaluator(t)
	row := buildMatrix(t, ev)

	rowOperand := &ast.Node{Attrib: ast.Denoter, Const: row}
	i, j := intLit(1), intLit(9)
	rowOperand.NextSibling = i
	i.NextSibling = j
	sliceNode := &ast.Node{Attrib: ast.Slice, FirstChild: rowOperand}

	require.Panics(t, func() {
		_, _ = ev.Eval(sliceNode)
	})
}

// TestEvalSliceMixedIndexAndTrimmerCollapsesOneDimension trims the
// column dimension to [2:3] while indexing row 2 outright, yielding a
// rank-1 row over the same backing storage (spec.md §4.5 "Slice").
func TestEvalSliceMixedIndexAndTrimmerCollapsesOneDimension(t *testing.T) {
	ev := newTestEvaluator(t)
	row := buildMatrix(t, ev)

	rowOperand := &ast.Node{Attrib: ast.Denoter, Const: row}
	rowIndex := intLit(2)
	lower, upper := intLit(2), intLit(3)
	lower.NextSibling = upper
	colTrim := &ast.Node{Attrib: ast.Trimmer, FirstChild: lower}
	rowOperand.NextSibling = rowIndex
	rowIndex.NextSibling = colTrim
	sliceNode := &ast.Node{Attrib: ast.Slice, FirstChild: rowOperand}

	v, err := ev.Eval(sliceNode)
	require.NoError(t, err)
	sliced, ok := v.(*heap.RowDesc)
	require.True(t, ok)
	require.Len(t, sliced.Dims, 1)
	require.Equal(t, 2, sliced.Dims[0].Lwb)
	require.Equal(t, 3, sliced.Dims[0].Upb)
	require.Equal(t, int64(22), heap.Ref{Handle: sliced.Handle, Offset: sliced.FlatIndex([]int{2})}.Get())
	require.Equal(t, int64(23), heap.Ref{Handle: sliced.Handle, Offset: sliced.FlatIndex([]int{3})}.Get())
}
