// Package heap implements the handle-indirected heap segment of spec.md
// §4.4: a pre-sized handle table over a compactible arena, from which all
// stowed data (rows, strings, structs containing rows, closures with
// locales) is allocated. User code never addresses a Handle directly —
// only through a Ref — so the mark-compact collector in runtime/gc can
// move live blocks and rewrite handle offsets without invalidating any
// value reachable from the tree or the stacks.
//
// Grounded on the teacher's hive/alloc.FastAllocator: a segregated
// free-list allocator keyed by size class, using container/heap for
// O(log n) best-fit within a class (SPEC_FULL.md "DOMAIN STACK"). The hive
// allocator manages byte cells in a file-backed segment; this package
// manages slot-counted cells in an in-process arena — same shape, no
// persisted state (spec.md §6 "Persisted state: None").
package heap
