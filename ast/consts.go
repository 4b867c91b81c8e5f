// Package ast defines the tree vertex shared by every layer of the core:
// mode construction reads declarers off it, the coercion engine splices new
// nodes into it, the scope resolver annotates it, and the evaluator walks it.
//
// The front end builds the tree once; the core only ever mutates annotation
// fields on existing nodes (mode pointers, scope levels) or splices coercion wrappers around a node (see coerce.Insert). It never
// reshapes the tree in any other way.
package ast

// Attrib is one of the closed alphabet of syntactic categories a Node can
// carry. Only the categories the core actually dispatches on are named here;
// the front end may use a larger alphabet for its own bookkeeping, but the
// evaluator rejects any attribute it does not dispatch on with a
// KindInvalidArgument "unhandled construct" fatal diagnostic.
type Attrib int

const (
	Unknown Attrib = iota

	// Denoters and leaves.
	Denoter
	Identifier
	OperatorRef
	Indicant
	Nihil
	Skip

	// Declarations.
	IdentityDeclaration
	VariableDeclaration
	ModeDeclaration
	OperatorDeclaration
	ProcedureDeclaration

	// Declarers (mode syntax).
	DeclarerRef
	DeclarerFlex
	DeclarerRow
	DeclarerStruct
	DeclarerUnion
	DeclarerProc
	DeclarerIndicant

	// Units.
	Assignation
	IdentityRelation
	RoutineText
	Call
	Slice
	Trimmer
	Selection
	Generator
	Cast
	Formula
	MonadicFormula
	Jump
	Assertion
	AndFunction
	OrFunction

	// Enclosed clauses.
	ClosedClause
	CollateralClause
	ConditionalClause
	IntegerCaseClause
	UnitedCaseClause
	LoopClause
	ParallelClause
	EnquiryClause
	SerialClause

	// Coercion nodes spliced in by the coercion engine (invariant I4).
	Dereferencing
	Deproceduring
	Widening
	Rowing
	Uniting
	Voiding

	// Labels.
	Label
)

// String renders an Attrib for diagnostics and test failure messages.
func (a Attrib) String() string {
	if s, ok := attribNames[a]; ok {
		return s
	}
	return "UNKNOWN-ATTRIB"
}

var attribNames = map[Attrib]string{
	Unknown:              "UNKNOWN",
	Denoter:               "DENOTER",
	Identifier:            "IDENTIFIER",
	OperatorRef:           "OPERATOR",
	Indicant:              "INDICANT",
	Nihil:                 "NIHIL",
	Skip:                  "SKIP",
	IdentityDeclaration:   "IDENTITY-DECLARATION",
	VariableDeclaration:   "VARIABLE-DECLARATION",
	ModeDeclaration:       "MODE-DECLARATION",
	OperatorDeclaration:   "OPERATOR-DECLARATION",
	ProcedureDeclaration:  "PROCEDURE-DECLARATION",
	DeclarerRef:           "REF-DECLARER",
	DeclarerFlex:          "FLEX-DECLARER",
	DeclarerRow:           "ROW-DECLARER",
	DeclarerStruct:        "STRUCT-DECLARER",
	DeclarerUnion:         "UNION-DECLARER",
	DeclarerProc:          "PROC-DECLARER",
	DeclarerIndicant:      "INDICANT-DECLARER",
	Assignation:           "ASSIGNATION",
	IdentityRelation:      "IDENTITY-RELATION",
	RoutineText:           "ROUTINE-TEXT",
	Call:                  "CALL",
	Slice:                 "SLICE",
	Trimmer:               "TRIMMER",
	Selection:             "SELECTION",
	Generator:             "GENERATOR",
	Cast:                  "CAST",
	Formula:               "FORMULA",
	MonadicFormula:        "MONADIC-FORMULA",
	Jump:                  "JUMP",
	Assertion:             "ASSERTION",
	AndFunction:           "AND-FUNCTION",
	OrFunction:            "OR-FUNCTION",
	ClosedClause:          "CLOSED-CLAUSE",
	CollateralClause:      "COLLATERAL-CLAUSE",
	ConditionalClause:     "CONDITIONAL-CLAUSE",
	IntegerCaseClause:     "INTEGER-CASE-CLAUSE",
	UnitedCaseClause:      "UNITED-CASE-CLAUSE",
	LoopClause:            "LOOP-CLAUSE",
	ParallelClause:        "PARALLEL-CLAUSE",
	EnquiryClause:         "ENQUIRY-CLAUSE",
	SerialClause:          "SERIAL-CLAUSE",
	Dereferencing:         "DEREFERENCING",
	Deproceduring:         "DEPROCEDURING",
	Widening:              "WIDENING",
	Rowing:                "ROWING",
	Uniting:               "UNITING",
	Voiding:               "VOIDING",
	Label:                 "LABEL",
}

// IsCoercion reports whether a is one of the categories the coercion
// inserter splices into the tree (invariant I4).
func (a Attrib) IsCoercion() bool {
	switch a {
	case Dereferencing, Deproceduring, Widening, Rowing, Uniting, Voiding:
		return true
	default:
		return false
	}
}
