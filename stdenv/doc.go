// Package stdenv builds the pre-built standard environment spec.md §6
// names: the outermost symbol table's identifiers and operators, each
// bound to a Go function pointer (spec.md §3 Tag "standard-env procedure
// flag"). a68.Interpreter wires this table in as the parent of the user
// program's top-level scope.Table, exactly as spec.md §6 describes: "a
// top symbol table chain" whose outermost member is the standard
// environment.
//
// The minimal `print` procedure here is not a transput implementation —
// formatted I/O is an out-of-scope collaborator (spec.md §1) — it exists
// only so the evaluator has some way to observe a value, matching the
// concrete scenario vocabulary spec.md §8 tests against ("prints
// `         +7`"). Its parameter is a UNION the same shape as the
// report's SIMPLOUT pseudo-mode (spec.md §6), so calling it exercises the
// coercion engine's real uniting path rather than a hand-rolled printf
// shim.
package stdenv
