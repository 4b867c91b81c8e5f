// Package coerce implements L2 of the core: the coercion context lattice
// and the predicates and tree-rewriting operations that decide whether an
// expression's a priori mode can reach a position's a posteriori mode
// (spec.md §4.2).
//
// coerce depends on mode (for *mode.Mode) and ast (for tree splicing via
// Node.Wrap) but never on scope or eval — operator-table lookup is
// injected as a function value (see ResolveOperator) so the retry-ladder
// logic here stays independent of how symbol tables are represented.
package coerce

// Context is a point on the coercion strength lattice (spec.md §4.2
// "Context lattice"): SOFT < WEAK < MEEK < FIRM < STRONG, each strength
// permitting every coercion the weaker ones permit.
type Context int

const (
	Soft Context = iota
	Weak
	Meek
	Firm
	Strong
)

func (c Context) String() string {
	switch c {
	case Soft:
		return "SOFT"
	case Weak:
		return "WEAK"
	case Meek:
		return "MEEK"
	case Firm:
		return "FIRM"
	case Strong:
		return "STRONG"
	default:
		return "CONTEXT?"
	}
}

// AtLeast reports whether c is as strong as, or stronger than, other.
func (c Context) AtLeast(other Context) bool { return c >= other }
