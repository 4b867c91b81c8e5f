package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
)

// evalCall evaluates a procedure call (spec.md §4.5 "Call"). An argument
// unit whose attribute is ast.Skip marks an omitted parameter, producing
// a partially parametrised PROC value (a locale) instead of invoking the
// procedure — spec.md §4.5 "partial parametrisation produces a new PROC
// value closing over the filled arguments". Currying only one level deep
// is supported (a locale built here cannot itself be re-curried); see
// DESIGN.md "Partial parametrisation depth".
func (ev *Evaluator) evalCall(n *ast.Node) (any, error) {
	primary, err := ev.Eval(n.FirstChild)
	if err != nil {
		return nil, err
	}
	pv, ok := primary.(*ProcVal)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "call of a non-procedure value")
	}

	paramModes := pv.Mode.FieldPack
	args := make([]any, 0, len(paramModes))
	filled := make([]bool, 0, len(paramModes))
	anyOmitted := false
	for c := n.FirstChild.NextSibling; c != nil; c = c.NextSibling {
		if c.Attrib == ast.Skip {
			args = append(args, nil)
			filled = append(filled, false)
			anyOmitted = true
			continue
		}
		v, err := ev.Eval(c)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		filled = append(filled, true)
	}

	if anyOmitted {
		return &ProcVal{
			Kind:      pv.Kind,
			Mode:      pv.Mode,
			Primitive: pv.Primitive,
			Node:      pv.Node,
			Env:       pv.Env,
			Locale:    &Locale{Args: args, Filled: filled},
		}, nil
	}

	return ev.callProc(pv, args, n.SourceLine)
}

// callProc invokes pv with args, merging in any already-bound locale
// slots in declaration order (spec.md §4.5 "Call": a curried procedure
// finally invoked supplies the remaining positions in order).
func (ev *Evaluator) callProc(pv *ProcVal, args []any, line int) (any, error) {
	fullArgs := args
	if pv.Locale != nil {
		merged := make([]any, len(pv.Locale.Filled))
		ai := 0
		for i, wasFilled := range pv.Locale.Filled {
			if wasFilled {
				merged[i] = pv.Locale.Args[i]
			} else {
				if ai >= len(args) {
					diag.Raise(diag.KindInvalidArgument, line, "too few arguments to fill a curried procedure")
				}
				merged[i] = args[ai]
				ai++
			}
		}
		fullArgs = merged
	}

	switch pv.Kind {
	case PrimitiveProc:
		return pv.Primitive(line, fullArgs)
	case SkipProc:
		return nil, nil
	default:
		return ev.invokeUserProc(pv, fullArgs, line)
	}
}

// invokeUserProc pushes a fresh frame statically linked to the routine
// text's captured environment (spec.md §4.4 "Procedure call always pushes
// a new frame"; spec.md §4.5 "Routine text": the closure's static parent
// is the frame active when the text was evaluated, not the caller).
func (ev *Evaluator) invokeUserProc(pv *ProcVal, args []any, line int) (any, error) {
	ev.checkZap(line)
	table := scopeTable(pv.Node)
	f, ok := ev.Frames.Push(pv.Env, table.Level(), pv.Node, table.Increment())
	if !ok {
		diag.Raise(diag.KindHeapExhausted, line, "frame stack exhausted on procedure call")
	}
	for i, field := range pv.Mode.FieldPack {
		if field.Name == "" {
			continue
		}
		paramTag, found := table.Lookup(field.Name)
		if !found {
			continue
		}
		f.Locals[paramTag.Offset] = args[i]
	}
	defer ev.Frames.Pop()
	return ev.Eval(pv.Node.FirstChild)
}
