// Package frame implements the two runtime stacks of spec.md §4.4: a
// segmented frame stack (static/dynamic links, fixed-layout frame bodies
// addressed by the scope resolver's (level, offset) pairs) and a separate
// expression stack for temporaries and procedure arguments.
//
// Both are modelled as Go slices rather than raw byte segments (DESIGN.md
// "Byte size vs. slot width"): a frame's Locals and the expression stack's
// slots hold `any`, interpreted per the static mode the scope resolver or
// coercion engine already attached to the addressing node — the same
// "alignment is natural for each primitive, composite values pushed as
// contiguous blocks" contract spec.md describes, just slot-counted instead
// of byte-counted.
package frame
