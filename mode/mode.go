// Package mode implements L1 of the core: construction, interning, and
// normalisation of the lattice of Algol 68 types ("modes"), spec.md §4.1.
//
// mode deliberately does not import ast: the coercion, scope, and evaluator
// layers read declarer nodes off an ast.Tree and call into mode's
// constructors, not the other way around — the same direction the teacher
// keeps between pkg/ast and pkg/types (ast depends on the value-type
// vocabulary, not vice versa). ast.Node.Mode is typed as the ast.ModeRef
// interface precisely so *Mode can satisfy it without mode importing ast.
package mode

import "fmt"

// Kind is the syntactic category a Mode was built from (spec.md §3 "Mode
// (MOID)").
type Kind int

const (
	// Primitive standards.
	Int Kind = iota
	Real
	Bool
	Char
	Bits
	Bytes
	Format
	File
	Void
	ErrorKind
	Undefined
	Hip
	Complex

	// REF T, PROC (args) result, ROW T, FLEX T, STRUCT (field…), UNION (variant…).
	Ref
	Proc
	Row
	Flex
	Struct
	Union

	// Pseudo-modes for internal bookkeeping.
	Series
	Stowed
	Vacuum
	Rows
)

var kindNames = map[Kind]string{
	Int: "INT", Real: "REAL", Bool: "BOOL", Char: "CHAR", Bits: "BITS",
	Bytes: "BYTES", Format: "FORMAT", File: "FILE", Void: "VOID",
	ErrorKind: "ERROR", Undefined: "UNDEFINED", Hip: "HIP", Complex: "COMPLEX",
	Ref: "REF", Proc: "PROC", Row: "ROW", Flex: "FLEX", Struct: "STRUCT",
	Union: "UNION", Series: "SERIES", Stowed: "STOWED", Vacuum: "VACUUM",
	Rows: "ROWS",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "KIND?"
}

// PackField is one (mode, optional field name, defining node) triple.
// Order is significant for STRUCT and PROC packs; for UNION only the set
// matters but order is preserved for diagnostics (spec.md §3 "Pack").
type PackField struct {
	Mode  *Mode
	Name  string // field name for STRUCT, parameter name (may be empty) for PROC
	Line  int    // source line of the defining declarer, for diagnostics
}

// Pack is an ordered list of fields or parameters.
type Pack []PackField

// Mode is the canonical representative of a type. Two modes are
// structurally equivalent iff their canonical pointers match (invariant I1).
type Mode struct {
	Kind Kind

	// Length-parameterised families count LONG qualifiers: 0 = plain,
	// 1 = LONG, 2 = LONG LONG. Only meaningful for Int/Real/Bits/Complex.
	Lengths int

	Dimension int    // row rank / field count
	Sub       *Mode  // element mode (REF/FLEX/ROW), or procedure result (PROC)
	FieldPack Pack   // STRUCT fields, UNION variants, or PROC parameters
	Name      string // INDICANT's declared name, empty otherwise

	// equivalentOf implements union-find style collapsing (Design Notes
	// §9 "Cyclic mode graphs without raw cycles"): Canonical() follows
	// this chain to the representative.
	equivalentOf *Mode

	// Flags, computed lazily on first query and memoised (spec.md §3
	// "Mode (MOID)").
	hasRef        bool
	hasFlex       bool
	hasRows       bool
	wellFormed    bool
	width         int // expression-stack slot width (see Width)
	flagsComputed bool
	wellFormedSet bool

	// Lazily memoised derived modes (spec.md §4.1 "Derived modes").
	nameMode     *Mode
	multipleMode map[int]*Mode
	deflexMode   *Mode
	trimModeV    *Mode
	sliceModeV   *Mode
	computedDefl bool
}

// ModeName implements ast.ModeRef.
func (m *Mode) ModeName() string { return m.String() }

// Canonical follows the equivalence chain (invariant I1) and returns the
// single representative for m's equivalence class.
func (m *Mode) Canonical() *Mode {
	cur := m
	for cur.equivalentOf != nil {
		cur = cur.equivalentOf
	}
	return cur
}

// HasRef, HasFlex, HasRows, WellFormed expose the construction-time flags
// (spec.md §3). They lazily compute and memoise on first call, so they may
// be called before or after indicant RHS modes are bound.
func (m *Mode) HasRef() bool {
	m.Canonical().ensureFlags()
	return m.Canonical().hasRef
}
func (m *Mode) HasFlex() bool {
	m.Canonical().ensureFlags()
	return m.Canonical().hasFlex
}
func (m *Mode) HasRows() bool {
	m.Canonical().ensureFlags()
	return m.Canonical().hasRows
}
func (m *Mode) WellFormed() bool {
	m.Canonical().ensureWellFormed()
	return m.Canonical().wellFormed
}
func (m *Mode) IsIndicant() bool { return m.Name != "" }

// Width is the number of expression-stack slots a value of this mode
// occupies (spec.md §4.4's "alignment is natural for each primitive;
// composite values pushed as contiguous blocks", adapted to a slice-of-
// Value stack instead of a raw byte segment — see DESIGN.md). It is
// computed once at construction and is stable thereafter.
func (m *Mode) Width() int { return m.Canonical().width }

// String renders m for diagnostics, e.g. "REF STRUCT (INT x, REF BOOL y)".
func (m *Mode) String() string {
	if m == nil {
		return "<nil mode>"
	}
	prefix := ""
	for i := 0; i < m.Lengths; i++ {
		prefix += "LONG "
	}
	switch m.Kind {
	case Ref:
		return "REF " + m.Sub.String()
	case Flex:
		return "FLEX " + m.Sub.String()
	case Row:
		dims := "["
		for i := 1; i < m.Dimension; i++ {
			dims += ", "
		}
		return dims + "] " + m.Sub.String()
	case Proc:
		args := "("
		for i, f := range m.FieldPack {
			if i > 0 {
				args += ", "
			}
			args += f.Mode.String()
		}
		args += ")"
		if m.Sub == nil || m.Sub.Kind == Void {
			return "PROC " + args
		}
		return "PROC " + args + " " + m.Sub.String()
	case Struct:
		s := "STRUCT ("
		for i, f := range m.FieldPack {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%s %s", f.Mode.String(), f.Name)
		}
		return s + ")"
	case Union:
		s := "UNION ("
		for i, f := range m.FieldPack {
			if i > 0 {
				s += ", "
			}
			s += f.Mode.String()
		}
		return s + ")"
	default:
		if m.Name != "" {
			return m.Name
		}
		return prefix + m.Kind.String()
	}
}
