// Package gc implements the mark-compact collector of spec.md §4.4: colour
// every handle reachable from a live frame or the expression stack, free
// the unreachable unpinned handles, and compact the survivors.
//
// Grounded on the teacher's hive/walker traversal core (a root-driven,
// cycle-guarded recursive walk over a linked structure) adapted from
// walking registry key/value cells to walking REF/STRUCT/UNION/ROW/PROC
// value graphs rooted in the frame and expression stacks.
package gc
