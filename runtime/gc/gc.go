package gc

import (
	"log/slog"

	"github.com/a68core/a68/runtime/frame"
	"github.com/a68core/a68/runtime/heap"
)

// Collector runs the three-phase mark-compact collection spec.md §4.4
// describes: Colour, Free, Compact.
type Collector struct {
	heap *heap.Heap
	log  *slog.Logger
}

// New creates a Collector over h. log defaults to a discarding logger if
// nil (ambient-stack convention, see a68.Init).
func New(h *heap.Heap, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Collector{heap: h, log: log}
}

// Stats reports what a collection did, for cmd/a68run's `gc` subcommands
// and callers of the interpreter's SweepHeap.
type Stats struct {
	Coloured int
	Freed    int
	Live     int
}

// Collect runs one full colour/free/compact pass. stack and expr are the
// GC roots: every live frame's Locals and every slot currently on the
// expression stack between 0 and its current top (spec.md §4.4 "Phase 1
// — Colour"). Collect holds the heap's allocator mutex for its entire
// duration (spec.md §5 "the interpreter serialises heap allocation and
// collection with a global mutex").
func (c *Collector) Collect(stack *frame.Stack, expr *frame.ExprStack) Stats {
	c.heap.Lock()
	defer c.heap.Unlock()

	c.log.Debug("gc: colour phase starting")
	c.colour(stack, expr)
	c.log.Debug("gc: free phase starting")
	freed := c.free()
	c.log.Debug("gc: compact phase starting")
	live := c.compact()

	coloured := 0
	for _, h := range c.heap.Table() {
		if h.Coloured() {
			coloured++
		}
	}
	stats := Stats{Coloured: coloured, Freed: freed, Live: live}
	c.log.Debug("gc: collection complete", "coloured", stats.Coloured, "freed", stats.Freed, "live", stats.Live)
	return stats
}

// colour walks every live frame (spec.md §4.4 Phase 1) then the live
// expression-stack slots, marking every reachable handle. Cycles are cut
// with the per-handle COOKIE bit (invariant I6, spec.md §4.4 "Cycles are
// cut with a per-handle COOKIE bit set during descent and cleared on
// return").
func (c *Collector) colour(stack *frame.Stack, expr *frame.ExprStack) {
	for _, h := range c.heap.Table() {
		h.SetColour(false)
	}
	mark := func(h *heap.Handle) { c.markHandle(h) }

	for f := stack.Top(); f != nil; f = f.Dynamic {
		for _, v := range f.Locals {
			colourValue(v, mark)
		}
	}
	for _, v := range expr.All() {
		colourValue(v, mark)
	}
}

// markHandle colours h (if not already) and recurses into its own Data,
// which may itself contain further Refs or Colourer values (e.g. a
// STRUCT handle holding a field that is itself a REF, or a ROW of REF).
func (c *Collector) markHandle(h *heap.Handle) {
	if h == nil || h.Coloured() || h.Status&heap.StatusCookie != 0 {
		return
	}
	h.Status |= heap.StatusCookie
	h.SetColour(true)
	mark := func(sub *heap.Handle) { c.markHandle(sub) }
	for _, v := range h.Data {
		colourValue(v, mark)
	}
	h.Status &^= heap.StatusCookie
}

// colourValue dispatches a single stack/handle slot value to mark,
// descending into REFs and anything implementing heap.Colourer (PROC
// environments/locales, UNION active variants — spec.md §4.4 "follows REF
// into referents ... descends into STRUCT and UNION variants ... follows
// PROC environment pointers and their locale handles").
func colourValue(v any, mark func(*heap.Handle)) {
	switch val := v.(type) {
	case heap.Ref:
		val.ColourRefs(mark)
	case *heap.RowDesc:
		val.ColourRefs(mark)
	case heap.Colourer:
		val.ColourRefs(mark)
	case []any:
		for _, sub := range val {
			colourValue(sub, mark)
		}
	}
}

// free unlinks uncoloured, unpinned handles into the heap's free list
// (spec.md §4.4 "Phase 2 — Free": "NO_SWEEP bit honours protected
// temporaries and string constants").
func (c *Collector) free() int {
	freed := 0
	for _, h := range c.heap.Table() {
		if !h.Live() {
			continue
		}
		if h.Coloured() || h.Status&heap.StatusNoSweep != 0 {
			continue
		}
		c.heap.Free(h)
		freed++
	}
	return freed
}

// compact renumbers every remaining live handle's Offset in live-list
// order (spec.md §4.4 "Phase 3 — Compact": "move each live block to the
// next free position, updating handle offsets in place"). Storage itself
// is per-handle (DESIGN.md "Byte size vs. slot width"), so compaction here
// defragments the logical address space the handle table represents
// rather than physically memmove-ing bytes.
func (c *Collector) compact() int {
	offset := 0
	live := c.heap.LiveHandles()
	for _, h := range live {
		h.Offset = offset
		offset += h.Size
	}
	return len(live)
}
