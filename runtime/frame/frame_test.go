package frame_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/runtime/frame"
)

func TestPushPopDepth(t *testing.T) {
	s := frame.NewStack(4)
	require.Equal(t, 0, s.Depth())
	f, ok := s.Push(nil, 0, nil, 2)
	require.True(t, ok)
	require.Equal(t, 1, s.Depth())
	require.Len(t, f.Locals, 2)
	s.Pop()
	require.Equal(t, 0, s.Depth())
}

func TestPushRefusesBeyondMaxDepth(t *testing.T) {
	s := frame.NewStack(1)
	_, ok := s.Push(nil, 0, nil, 1)
	require.True(t, ok)
	_, ok = s.Push(nil, 0, nil, 1)
	require.False(t, ok)
}

func TestStaticAtWalksLexicalChain(t *testing.T) {
	s := frame.NewStack(4)
	outer, _ := s.Push(nil, 0, nil, 1)
	inner, _ := s.Push(outer, 1, nil, 1)
	require.Equal(t, outer, inner.StaticAt(1))
}

func TestUnwindToFindsOwningFrame(t *testing.T) {
	s := frame.NewStack(4)
	target := ast.New(ast.SerialClause, "")
	owner, _ := s.Push(nil, 0, target, 1)
	leaf, _ := s.Push(owner, 1, ast.New(ast.Unknown, ""), 1)

	require.Equal(t, owner, leaf.UnwindTo(target))
	require.Nil(t, leaf.UnwindTo(ast.New(ast.SerialClause, "other")))
}

func TestExprStackMarkReset(t *testing.T) {
	e := frame.NewExprStack(4)
	e.Push(int64(1), nil)
	mark := e.Mark()
	e.Push(int64(2), nil)
	e.Push(int64(3), nil)
	e.Reset(mark)
	require.Equal(t, mark, e.Mark())
	require.Equal(t, int64(1), e.Top())
}
