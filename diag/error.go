// Package diag implements the typed-error and diagnostic-list design from
// spec.md §7: static errors accumulate and never abort individually,
// runtime errors are either recoverable diagnostics or fatal transfers to
// the top-level interpreter handler.
//
// The Error/Kind split is grounded directly on the teacher's
// pkg/types.Error/ErrKind pattern (a Kind so callers can branch on intent
// instead of matching message text, with an optional wrapped cause).
package diag

import "fmt"

// Kind classifies a diagnostic so callers can branch on intent rather than
// message text. Static kinds are accumulated in a List and never
// individually fatal; Runtime kinds abort the current evaluation the moment
// they are raised (see Raise in fatal.go).
type Kind int

const (
	// Static kinds (spec.md §7 "Static").
	KindCannotCoerce Kind = iota
	KindCyclicMode
	KindIllFormedMode
	KindUndeclaredIndicant
	KindUndeclaredIdentifier
	KindUndeclaredOperator
	KindAmbiguousSpecifier
	KindInvalidDimension
	KindNotUnitedMode

	// Runtime, recoverable as diagnostics (spec.md §7).
	KindPrecisionNotImplemented
	KindValueVoided

	// Runtime, fatal via transfer to the interpreter's exit label
	// (spec.md §7 "Runtime, fatal").
	KindNilDereference
	KindUninitialised
	KindIndexOutOfBounds
	KindTrimmerBoundsMismatch
	KindScopeViolation
	KindOverflow
	KindDivisionByZero
	KindArithmeticException
	KindInvalidArgument
	KindHeapExhausted
	KindJumpAcrossThreads
	KindThreadCancelled
	KindAssertionFalse
	KindPrecisionOutOfRange
)

var kindNames = map[Kind]string{
	KindCannotCoerce:            "cannot coerce",
	KindCyclicMode:              "cyclic mode",
	KindIllFormedMode:           "ill-formed mode",
	KindUndeclaredIndicant:      "indicant not declared in range",
	KindUndeclaredIdentifier:    "identifier not declared in range",
	KindUndeclaredOperator:      "operator has not been declared in this range",
	KindAmbiguousSpecifier:      "ambiguous mode in specifier",
	KindInvalidDimension:        "invalid dimension in declarer",
	KindNotUnitedMode:           "is not a united mode",
	KindPrecisionNotImplemented: "precision not implemented",
	KindValueVoided:             "value voided",
	KindNilDereference:          "nil name dereference",
	KindUninitialised:           "value is uninitialised",
	KindIndexOutOfBounds:        "index out of bounds",
	KindTrimmerBoundsMismatch:   "bounds mismatch in trimmer",
	KindScopeViolation:          "scope violation",
	KindOverflow:                "integer or real overflow",
	KindDivisionByZero:          "division by zero",
	KindArithmeticException:     "arithmetic exception",
	KindInvalidArgument:         "invalid argument to primitive",
	KindHeapExhausted:           "heap exhausted after collection",
	KindJumpAcrossThreads:       "label jump across threads",
	KindThreadCancelled:         "thread cancelled by a parallel clause zap",
	KindAssertionFalse:          "assertion false",
	KindPrecisionOutOfRange:     "precision implementation out of range on storage",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown diagnostic"
}

// Fatal reports whether a diagnostic of this Kind must abort evaluation
// immediately (spec.md §7 "Runtime, fatal") rather than merely being
// recorded (static kinds, or the two recoverable runtime kinds).
func (k Kind) Fatal() bool {
	switch k {
	case KindCannotCoerce, KindCyclicMode, KindIllFormedMode, KindUndeclaredIndicant,
		KindUndeclaredIdentifier, KindUndeclaredOperator, KindAmbiguousSpecifier,
		KindInvalidDimension, KindNotUnitedMode,
		KindPrecisionNotImplemented, KindValueVoided:
		return false
	default:
		return true
	}
}

// Error is a typed diagnostic with an optional underlying cause and the
// source line it is tied to.
type Error struct {
	Kind   Kind
	Msg    string
	Line   int
	Detail string // mode or value involved, when applicable (spec.md §7)
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Kind.String()
	if e.Msg != "" {
		msg = e.Msg
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind with the detail string already
// formatted (spec.md §7, "the mode or value involved when applicable").
func New(kind Kind, line int, detail string) *Error {
	return &Error{Kind: kind, Line: line, Detail: detail}
}

// Wrap builds an Error of the given kind carrying cause as its Unwrap
// target, following the teacher's fmt.Errorf("...: %w", err) convention.
func Wrap(kind Kind, line int, detail string, cause error) *Error {
	return &Error{Kind: kind, Line: line, Detail: detail, Err: cause}
}
