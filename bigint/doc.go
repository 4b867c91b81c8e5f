// Package bigint models the arbitrary-precision collaborator spec.md §6
// names: fixed stack-allocation helpers, conversions to/from double and
// int, and the bits-packing vocabulary (`stack_mp_bits`, `pack_mp_bits`)
// exposing big integers as flat arrays of fixed-width words. It has no
// transcendental functions. The core only needs the call contract — this
// package backs it with Go's math/big rather than reimplementing
// arbitrary-precision arithmetic, since no example in the retrieval pack
// ships its own bignum library and math/big is the ecosystem's answer.
package bigint
