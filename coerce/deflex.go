package coerce

// Deflex is one of the four deflexing policies threaded through
// coercibility (spec.md §4.2 "Deflex policy"): the rule separating "values
// can be interchanged between FLEX and non-FLEX rows" (true for plain
// values) from "names cannot" (a REF FLEX[] is not a REF[]).
type Deflex int

const (
	// ForceDeflexing equates FLEX []A and []A outright, used when matching
	// a union variant's declared mode against itself.
	ForceDeflexing Deflex = iota
	// AliasDeflexing permits the relaxation one-way only if the source
	// mode carries no REF anywhere in its structure.
	AliasDeflexing
	// SafeDeflexing permits the relaxation only for pure (non-name)
	// target positions — operand coercion during formula resolution.
	SafeDeflexing
	// NoDeflexing forbids the relaxation; used for REF-to-REF matching.
	NoDeflexing
)

func (d Deflex) String() string {
	switch d {
	case ForceDeflexing:
		return "FORCE_DEFLEXING"
	case AliasDeflexing:
		return "ALIAS_DEFLEXING"
	case SafeDeflexing:
		return "SAFE_DEFLEXING"
	case NoDeflexing:
		return "NO_DEFLEXING"
	default:
		return "DEFLEX?"
	}
}
