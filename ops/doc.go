// Package ops implements L6 of the core: the primitive operator set over
// INT, REAL, BOOL, CHAR, BITS, BYTES, COMPLEX, ROW, STRING, and the
// LONG/LONG LONG families (spec.md §4.6). Each primitive is a plain Go
// function from popped operand values to a result value plus error; eval's
// Formula/MonadicFormula propagators invoke these directly once
// coerce.ResolveOperator has picked a candidate and the operands have been
// coerced to its declared modes.
//
// ops never imports eval: the boundary matches mode staying independent
// of ast — a primitive is a function of plain values, not of
// tree nodes, so the evaluator is the only layer that connects the two.
package ops
