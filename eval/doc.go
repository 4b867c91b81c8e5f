// Package eval implements L5 of the core: the recursive tree walk over an
// ast.Tree already annotated by mode/coerce/scope (spec.md §4.5). Every
// node is dispatched through one generic switch on each visit; there is no
// per-node propagator specialisation.
//
// eval is the one layer that ties every lower layer together: it reads
// mode.Mode off ast.Node.Mode, invokes coerce's coercion-node actions,
// addresses runtime/frame.Stack and runtime/frame.ExprStack through
// scope.Tag's (level, offset), allocates and dereferences through
// runtime/heap, triggers runtime/gc at checkpoints, and calls ops.Fn
// primitives resolved through coerce.ResolveOperator against the
// standard environment stdenv.Build returns.
//
// Scope resolution (L3) is assumed already complete by the time eval
// walks a tree: every ast.Node's Table/Tag/Level/Offset fields are filled
// in, exactly as spec.md's data-flow description has L3 run before L5.
// eval's job is purely to execute, not to resolve bindings.
package eval
