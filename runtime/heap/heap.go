package heap

import (
	"container/heap"
	"fmt"
	"sync"
)

// freeHeap is a min-heap of free handles ordered by Size, giving O(log n)
// best-fit allocation — the same shape as the teacher's FastAllocator
// segregated free lists, collapsed to a single size-ordered heap since
// this arena's allocation sizes are small and dominated by STRUCT/ROW
// widths rather than page-aligned cell classes.
type freeHeap []*Handle

func (f freeHeap) Len() int            { return len(f) }
func (f freeHeap) Less(i, j int) bool  { return f[i].Size < f[j].Size }
func (f freeHeap) Swap(i, j int)       { f[i], f[j] = f[j], f[i]; f[i].heapIdx, f[j].heapIdx = i, j }
func (f *freeHeap) Push(x any)         { h := x.(*Handle); h.heapIdx = len(*f); *f = append(*f, h) }
func (f *freeHeap) Pop() any {
	old := *f
	n := len(old)
	h := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return h
}

// Heap is the handle-indirected heap segment (spec.md §4.4 "Heap and
// handle table"): a pre-sized handle table, a free list (here a min-heap
// for best-fit), and a live list threaded through Handle.prev/next.
//
// mu is the allocator mutex spec.md §5 calls up_garbage_sema/
// down_garbage_sema: it brackets every operation that holds raw pointers
// into the heap, so a concurrent PAR-clause allocation can never race a
// collection (runtime/gc.Collector.Collect takes the same mutex).
type Heap struct {
	mu       sync.Mutex
	capacity int // total slots available before growth is refused
	used     int
	table     []*Handle
	free      freeHeap
	liveHead  *Handle
}

// New creates a heap with the given slot capacity.
func New(capacity int) *Heap {
	h := &Heap{capacity: capacity}
	heap.Init(&h.free)
	return h
}

// Lock/Unlock expose the allocator mutex to runtime/gc.Collector, which
// must hold it for the entire colour/free/compact sequence (spec.md §4.4
// "Re-entrancy is blocked by a semaphore").
func (h *Heap) Lock()   { h.mu.Lock() }
func (h *Heap) Unlock() { h.mu.Unlock() }

// Used reports the number of slots currently allocated to live handles.
func (h *Heap) Used() int { return h.used }

// Capacity reports the heap's total slot capacity.
func (h *Heap) Capacity() int { return h.capacity }

// Table returns every handle ever allocated (live or free), for
// runtime/gc's sweep and compact phases.
func (h *Heap) Table() []*Handle { return h.table }

// Alloc allocates size slots for contents of the given mode, pulling a
// best-fit block from the free list or, failing that, growing the table
// if capacity allows (spec.md §4.4 "allocation pulls from a free list").
// ErrHeapExhausted signals the caller (eval's generator and variable
// declaration then collect and retry once) that a collection is needed first.
func (h *Heap) Alloc(size int) (*Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocLocked(size)
}

func (h *Heap) allocLocked(size int) (*Handle, error) {
	if found := h.bestFit(size); found != nil {
		h.detachFree(found)
		h.makeLive(found, size)
		return found, nil
	}
	if h.used+size > h.capacity {
		return nil, ErrHeapExhausted
	}
	nh := &Handle{Offset: h.used, Size: size, Data: make([]any, size), heapIdx: -1}
	h.table = append(h.table, nh)
	h.makeLive(nh, size)
	return nh, nil
}

// bestFit pops the smallest free handle at least size slots, splitting off
// any remainder back onto the free list.
func (h *Heap) bestFit(size int) *Handle {
	var candidate *Handle
	var leftover []*Handle
	for h.free.Len() > 0 {
		cand := heap.Pop(&h.free).(*Handle)
		if cand.Size >= size {
			candidate = cand
			break
		}
		leftover = append(leftover, cand)
	}
	for _, l := range leftover {
		heap.Push(&h.free, l)
	}
	if candidate == nil {
		return nil
	}
	if candidate.Size > size {
		remainder := &Handle{Offset: candidate.Offset + size, Size: candidate.Size - size, Data: make([]any, candidate.Size-size), heapIdx: -1}
		h.table = append(h.table, remainder)
		heap.Push(&h.free, remainder)
		candidate.Size = size
		candidate.Data = candidate.Data[:size]
	}
	return candidate
}

func (h *Heap) detachFree(n *Handle) { n.inFree = false }

func (h *Heap) makeLive(n *Handle, size int) {
	n.Size = size
	if n.Data == nil || len(n.Data) != size {
		n.Data = make([]any, size)
	}
	n.Status = StatusAllocated
	n.next = h.liveHead
	if h.liveHead != nil {
		h.liveHead.prev = n
	}
	n.prev = nil
	h.liveHead = n
	h.used += size
}

// Free returns h's slots to the free list (spec.md §4.4's sweep phase
// calls this for every unreachable, unpinned handle). Free does not take
// the allocator mutex itself: runtime/gc's sweep calls it while Collect
// already holds that mutex (see Lock), so a direct caller outside a
// collection must hold the lock or have the heap to itself.
func (hp *Heap) Free(h *Handle) {
	hp.freeLocked(h)
}

func (hp *Heap) freeLocked(h *Handle) {
	if !h.Live() {
		return
	}
	if h.prev != nil {
		h.prev.next = h.next
	} else {
		hp.liveHead = h.next
	}
	if h.next != nil {
		h.next.prev = h.prev
	}
	h.prev, h.next = nil, nil
	h.Status = 0
	hp.used -= h.Size
	for i := range h.Data {
		h.Data[i] = nil
	}
	h.inFree = true
	heap.Push(&hp.free, h)
}

// LiveHandles returns every handle currently on the live list.
func (h *Heap) LiveHandles() []*Handle {
	var out []*Handle
	for cur := h.liveHead; cur != nil; cur = cur.next {
		out = append(out, cur)
	}
	return out
}

// ErrHeapExhausted is returned by Alloc when no free block fits and the
// arena has no remaining capacity (spec.md §7 "heap exhausted after
// collection").
var ErrHeapExhausted = fmt.Errorf("heap: exhausted")
