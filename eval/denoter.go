package eval

import "github.com/a68core/a68/ast"

// evalDenoter returns a literal's memoised value (spec.md §3 "Const:
// memoised constant value for denoters"). The front end is responsible
// for parsing the literal's text into the right Go representation once;
// eval never re-parses Symbol.
func (ev *Evaluator) evalDenoter(n *ast.Node) (any, error) {
	return n.Const, nil
}

// evalIdentifier and evalOperatorRef both read a bound tag's value out of
// the frame it was declared in, addressed by the lexical level/offset the
// scope resolver already cached on the node (spec.md §4.3 "the evaluator
// walks static links level − current times").
func (ev *Evaluator) evalIdentifier(n *ast.Node) (any, error) {
	return ev.readTag(n)
}

func (ev *Evaluator) evalOperatorRef(n *ast.Node) (any, error) {
	return ev.readTag(n)
}

func (ev *Evaluator) readTag(n *ast.Node) (any, error) {
	tg := tag(n)
	if tg.Global {
		return ev.global.Locals[tg.Offset], nil
	}
	return ev.frameAt(n.Level).Locals[n.Offset], nil
}
