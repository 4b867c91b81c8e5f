package gc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/runtime/frame"
	"github.com/a68core/a68/runtime/gc"
	"github.com/a68core/a68/runtime/heap"
)

// TestCollectFreesUnreachable exercises the GC-completeness property
// (spec.md §8): after a collection, every live frame's reachable handle
// survives and every unreachable handle is freed.
func TestCollectFreesUnreachable(t *testing.T) {
	h := heap.New(64)
	reachable, err := h.Alloc(2)
	require.NoError(t, err)
	unreachable, err := h.Alloc(2)
	require.NoError(t, err)

	stack := frame.NewStack(8)
	f, ok := stack.Push(nil, 0, nil, 1)
	require.True(t, ok)
	f.Locals[0] = heap.Ref{Handle: reachable, Scope: 0}

	expr := frame.NewExprStack(4)

	c := gc.New(h, nil)
	stats := c.Collect(stack, expr)

	require.True(t, reachable.Live())
	require.True(t, reachable.Coloured())
	require.False(t, unreachable.Live())
	require.Equal(t, 1, stats.Freed)
	require.Equal(t, 1, stats.Live)
}

// TestCollectHonoursNoSweep pins a handle so it survives collection even
// when unreachable (spec.md §4.4 "NO_SWEEP bit honours protected
// temporaries and string constants").
func TestCollectHonoursNoSweep(t *testing.T) {
	h := heap.New(64)
	pinned, err := h.Alloc(1)
	require.NoError(t, err)
	pinned.Pin()

	stack := frame.NewStack(4)
	expr := frame.NewExprStack(4)

	c := gc.New(h, nil)
	c.Collect(stack, expr)

	require.True(t, pinned.Live())
}

// TestCollectFollowsChainThroughHandles verifies a Ref stored inside
// another handle's Data (e.g. a STRUCT field holding a REF) is followed
// transitively, matching the colour phase's "descends into STRUCT ...
// variants" contract.
func TestCollectFollowsChainThroughHandles(t *testing.T) {
	h := heap.New(64)
	leaf, err := h.Alloc(1)
	require.NoError(t, err)
	container, err := h.Alloc(1)
	require.NoError(t, err)
	container.Data[0] = heap.Ref{Handle: leaf}

	stack := frame.NewStack(4)
	f, ok := stack.Push(nil, 0, nil, 1)
	require.True(t, ok)
	f.Locals[0] = heap.Ref{Handle: container}

	expr := frame.NewExprStack(4)
	c := gc.New(h, nil)
	c.Collect(stack, expr)

	require.True(t, leaf.Live())
	require.True(t, container.Live())
}
