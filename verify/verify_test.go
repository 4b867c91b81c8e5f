package verify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/runtime/frame"
	"github.com/a68core/a68/runtime/heap"
	"github.com/a68core/a68/verify"
)

func TestGCCompleteHoldsOverLiveReference(t *testing.T) {
	h := heap.New(16)
	handle, err := h.Alloc(1)
	require.NoError(t, err)
	handle.Data[0] = int64(42)

	stack := frame.NewStack(4)
	f, ok := stack.Push(nil, 0, nil, 1)
	require.True(t, ok)
	f.Locals[0] = heap.Ref{Handle: handle, Scope: 0}

	expr := frame.NewExprStack(4)

	require.NoError(t, verify.GCComplete(stack, expr, h))
	require.NoError(t, verify.ScopeSound(stack))
}

func TestGCCompleteFailsWhenLiveHandleUnreachable(t *testing.T) {
	h := heap.New(16)
	_, err := h.Alloc(1) // allocated but never stored anywhere reachable
	require.NoError(t, err)

	stack := frame.NewStack(4)
	_, ok := stack.Push(nil, 0, nil, 0)
	require.True(t, ok)
	expr := frame.NewExprStack(4)

	err = verify.GCComplete(stack, expr, h)
	require.Error(t, err)
}

func TestScopeSoundFailsWhenNameEscapesDeclaringFrame(t *testing.T) {
	h := heap.New(16)
	handle, err := h.Alloc(1)
	require.NoError(t, err)

	stack := frame.NewStack(4)
	f, ok := stack.Push(nil, 1, nil, 1)
	require.True(t, ok)
	// A name declared at the deeper level 2 stored in a level-1 frame:
	// scope 2 > holder level 1, unsound.
	f.Locals[0] = heap.Ref{Handle: handle, Scope: 2}

	err = verify.ScopeSound(stack)
	require.Error(t, err)
}

func TestAllInvariantsShortCircuitsOnFirstViolation(t *testing.T) {
	h := heap.New(16)
	_, err := h.Alloc(1)
	require.NoError(t, err)
	stack := frame.NewStack(4)
	_, ok := stack.Push(nil, 0, nil, 0)
	require.True(t, ok)
	expr := frame.NewExprStack(4)

	err = verify.AllInvariants(stack, expr, h)
	require.Error(t, err)
}
