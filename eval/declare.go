package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/runtime/heap"
)

// evalIdentityDeclaration binds the declared tag to its initialising
// unit's value, once, in the currently executing frame (spec.md §4.5
// "Identity declaration: binds a value directly, no name is created").
func (ev *Evaluator) evalIdentityDeclaration(n *ast.Node) (any, error) {
	tg := tag(n)
	v, err := ev.Eval(n.FirstChild)
	if err != nil {
		return nil, err
	}
	ev.frameAt(tg.Level).Locals[tg.Offset] = v
	return nil, nil
}

// evalVariableDeclaration allocates a LOC name for the declared tag
// (spec.md §4.5 "Variable declaration: a generator runs implicitly,
// producing a name"), then assigns the optional initialiser into it.
func (ev *Evaluator) evalVariableDeclaration(n *ast.Node) (any, error) {
	tg := tag(n)
	elemMode := tg.Mode.Sub // tag.Mode is REF T

	h, err := ev.Heap.Alloc(elemMode.Width())
	if err != nil {
		ev.GC.Collect(ev.Frames, ev.Expr)
		h, err = ev.Heap.Alloc(elemMode.Width())
		if err != nil {
			diag.Raise(diag.KindHeapExhausted, n.SourceLine, "variable-declaration allocation failed after collection")
		}
	}
	h.Mode = elemMode
	ev.checkpoint()

	scopeLevel := tg.Level
	ref := heap.Ref{Handle: h, Scope: scopeLevel}

	if n.FirstChild != nil {
		v, err := ev.Eval(n.FirstChild)
		if err != nil {
			return nil, err
		}
		checkAssignScope(v, scopeLevel, n.SourceLine)
		ref.Set(v)
	}
	ev.frameAt(tg.Level).Locals[tg.Offset] = ref
	return nil, nil
}

// evalProcedureDeclaration and evalOperatorDeclaration both bind a
// RoutineText's closure to their tag; they are identical once the tag is
// resolved, operators are just procedures whose tag lives in the table's
// operator map instead of its identifier map (spec.md §4.3 "Tag").
func (ev *Evaluator) evalProcedureDeclaration(n *ast.Node) (any, error) {
	return ev.bindRoutine(n)
}

func (ev *Evaluator) evalOperatorDeclaration(n *ast.Node) (any, error) {
	return ev.bindRoutine(n)
}

func (ev *Evaluator) bindRoutine(n *ast.Node) (any, error) {
	tg := tag(n)
	v, err := ev.Eval(n.FirstChild)
	if err != nil {
		return nil, err
	}
	ev.frameAt(tg.Level).Locals[tg.Offset] = v
	return nil, nil
}

// evalRoutineText builds a user ProcVal closing over the currently
// executing frame as its static environment (spec.md §4.5 "Routine
// text").
func (ev *Evaluator) evalRoutineText(n *ast.Node) (any, error) {
	return &ProcVal{
		Kind: UserProc,
		Mode: modeOf(n),
		Node: n,
		Env:  ev.Frames.Top(),
	}, nil
}
