package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
)

// jumpSignal is eval's private control-transfer panic for GOTO (spec.md
// §4.3 "a GOTO becomes a frame-unwinding jump that identifies the target
// frame"). Unwinding via an ordinary Go panic means every intervening
// defer ev.Frames.Pop() call along the way fires for free as the panic
// propagates, keeping the frame stack consistent without evalJump or its
// recoverer needing to pop anything explicitly (Design Notes §9 "Longjmp
// → panic/recover"): runtime/frame.Frame.UnwindTo and JumpTarget anticipate
// a Node-walking variant of this same mechanism, superseded here by
// comparing directly against the label's own bound serial-clause node
// (see DESIGN.md "Jump target identity: Tag.Node vs. frame walking").
//
// target is the serial clause node the label was declared against
// (Tag.Node, bound by Tag.BindLabel); only that clause's own
// evalSerialClause recognises and recovers it, so a jump whose owning
// clause has already exited (its Go call frame unwound past without a
// match, including across a PAR thread boundary) keeps propagating until
// Evaluator.Run converts it to KindJumpAcrossThreads.
type jumpSignal struct {
	label  string
	target *ast.Node
}

// evalJump raises a jumpSignal for the label n names (spec.md §4.3
// "Jump"). n's own Tag is the label's scope.Tag, resolved the same way
// any other identifier reference is.
func (ev *Evaluator) evalJump(n *ast.Node) (any, error) {
	tg := tag(n)
	if tg == nil || tg.Node == nil {
		diag.Raise(diag.KindUndeclaredIdentifier, n.SourceLine, "jump to an unresolved label: "+n.Symbol)
	}
	panic(jumpSignal{label: tg.Name, target: tg.Node})
}

// findLabelChild searches n's immediate children for a Label node naming
// label. It does not recurse into nested clause bodies: a label declared
// inside one of those lives in its own serial clause's child list and is
// found by that serial clause's own recover instead, never by an
// enclosing one reaching in.
func findLabelChild(n *ast.Node, label string) *ast.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Attrib == ast.Label && c.Symbol == label {
			return c
		}
	}
	return nil
}
