package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
)

// evalConditionalClause runs an IF/ELIF/ELSE chain (spec.md §4.5
// "Conditional clause"). Its children are fixed in order: an enquiry
// clause, a then-branch, and an optional else-branch. ELIF is represented
// by nesting: the else-branch of one ConditionalClause node is itself
// another ConditionalClause node, so the chain is walked by ordinary
// recursion through Eval rather than a flattened list.
func (ev *Evaluator) evalConditionalClause(n *ast.Node) (any, error) {
	enquiry := n.FirstChild
	thenBranch := enquiry.NextSibling
	elseBranch := thenBranch.NextSibling

	cv, err := ev.Eval(enquiry)
	if err != nil {
		return nil, err
	}
	cond, ok := cv.(bool)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "conditional enquiry is not BOOL")
	}
	if cond {
		return ev.Eval(thenBranch)
	}
	if elseBranch != nil {
		return ev.Eval(elseBranch)
	}
	return nil, nil
}

// evalIntegerCaseClause runs a CASE/IN/OUT clause selecting by an INT
// enquiry's 1-based position (spec.md §4.5 "Case clause", the integer
// form). Children after the enquiry are the case units in order; one may
// be marked as the out (else) unit via Symbol == "out" — a wiring
// convention this port uses in place of a distinct OUT attribute, since
// there is no front end to assign one.
func (ev *Evaluator) evalIntegerCaseClause(n *ast.Node) (any, error) {
	enquiry := n.FirstChild
	iv, err := ev.Eval(enquiry)
	if err != nil {
		return nil, err
	}
	idx, ok := iv.(int64)
	if !ok {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "case enquiry is not INT")
	}

	var out *ast.Node
	pos := int64(0)
	for c := enquiry.NextSibling; c != nil; c = c.NextSibling {
		if c.Symbol == "out" {
			out = c
			continue
		}
		pos++
		if pos == idx {
			return ev.Eval(c)
		}
	}
	if out != nil {
		return ev.Eval(out)
	}
	diag.Raise(diag.KindInvalidArgument, n.SourceLine, "case index out of range and no out clause")
	return nil, nil
}

// evalUnitedCaseClause runs a conformity CASE clause, matching the
// enquiry's active UNION variant against each branch's declared
// specifier mode (spec.md §4.5 "Case clause", the conformity form). Each
// non-out branch's own Mode is the specifier to match; if the branch also
// carries a Tag (a specified identifier, e.g. "(INT i): ..."), the
// narrowed value is bound into the branch's frame slot before it runs.
func (ev *Evaluator) evalUnitedCaseClause(n *ast.Node) (any, error) {
	enquiry := n.FirstChild
	cv, err := ev.Eval(enquiry)
	if err != nil {
		return nil, err
	}
	uv, ok := cv.(*UnionVal)
	if !ok {
		diag.Raise(diag.KindNotUnitedMode, n.SourceLine, "conformity-case enquiry is not a UNION value")
	}

	var out *ast.Node
	for c := enquiry.NextSibling; c != nil; c = c.NextSibling {
		if c.Symbol == "out" {
			out = c
			continue
		}
		specifier := modeOf(c)
		if specifier != nil && specifier.Canonical() == uv.Variant.Canonical() {
			return ev.bindCaseBranch(c, uv.Value)
		}
	}
	if out != nil {
		return ev.bindCaseBranch(out, nil)
	}
	diag.Raise(diag.KindNotUnitedMode, n.SourceLine, "no conformity-case branch matches the active variant")
	return nil, nil
}

// bindCaseBranch binds narrowed into branch's own frame slot, if it
// declares one, before evaluating its body — matching readTag's own
// level/offset addressing so a specified identifier behaves like any
// other declaration.
func (ev *Evaluator) bindCaseBranch(branch *ast.Node, narrowed any) (any, error) {
	if branch.Tag != nil {
		ev.frameAt(branch.Level).Locals[branch.Offset] = narrowed
	}
	return ev.Eval(branch.FirstChild)
}

// evalLoopClause runs a FOR/FROM/BY/TO/WHILE/DO/UNTIL loop (spec.md §4.5
// "Loop clause"). Its children are found by role rather than fixed
// position (Symbol in {"FROM","BY","TO","WHILE","DO","UNTIL"}, each but DO
// optional) since any prefix clause may be omitted independently. UNTIL
// is evaluated after each execution of the DO body and ends the loop when
// it yields TRUE. An
// index variable, if the loop declares one, is n's own Tag/Level/Offset,
// mirroring the same node-level binding convention bindCaseBranch uses.
//
// The loop's own table, if it owns declarations (almost always true when
// there is an index variable), backs a single frame reinitialised every
// iteration (spec.md §4.5 "on each iteration the frame is reinitialised
// ... so that local declarations do not accumulate") rather than a fresh
// frame per iteration — cheaper, and the observable semantics are
// identical since nothing outlives one iteration's frame.
func (ev *Evaluator) evalLoopClause(n *ast.Node) (any, error) {
	var fromNode, byNode, toNode, whileNode, doNode, untilNode *ast.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Symbol {
		case "UNTIL":
			untilNode = c
		case "FROM":
			fromNode = c
		case "BY":
			byNode = c
		case "TO":
			toNode = c
		case "WHILE":
			whileNode = c
		case "DO":
			doNode = c
		}
	}
	if doNode == nil {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "loop clause has no DO body")
	}

	from := int64(1)
	if fromNode != nil {
		v, err := ev.Eval(fromNode)
		if err != nil {
			return nil, err
		}
		from = v.(int64)
	}
	step := int64(1)
	if byNode != nil {
		v, err := ev.Eval(byNode)
		if err != nil {
			return nil, err
		}
		step = v.(int64)
	}
	if step == 0 {
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "loop BY increment is zero")
	}
	hasTo := toNode != nil
	var to int64
	if hasTo {
		v, err := ev.Eval(toNode)
		if err != nil {
			return nil, err
		}
		to = v.(int64)
	}

	table := scopeTable(n)
	bodyFrame, opened := ev.openBlockFrame(n, table)
	if opened {
		defer ev.Frames.Pop()
	}
	hasIndex := n.Tag != nil

	var result any
	for i := from; ; i += step {
		if hasTo {
			if step > 0 && i > to {
				break
			}
			if step < 0 && i < to {
				break
			}
		}
		if opened {
			bodyFrame.Reinit()
		}
		if hasIndex {
			ev.frameAt(n.Level).Locals[n.Offset] = i
		}
		ev.checkZap(n.SourceLine)
		if whileNode != nil {
			wv, err := ev.Eval(whileNode)
			if err != nil {
				return nil, err
			}
			cond, _ := wv.(bool)
			if !cond {
				break
			}
		}
		v, err := ev.Eval(doNode)
		if err != nil {
			return nil, err
		}
		result = v
		if untilNode != nil {
			uv, err := ev.Eval(untilNode)
			if err != nil {
				return nil, err
			}
			if stop, _ := uv.(bool); stop {
				break
			}
		}
	}
	return result, nil
}
