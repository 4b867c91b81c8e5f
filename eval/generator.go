package eval

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/runtime/heap"
)

// evalGenerator allocates a new name (spec.md §4.5 "Generator": "LOC
// allocates within the current frame's scope; HEAP allocates with
// unbounded scope"). Both allocate from the same runtime/heap arena in
// this port and differ only in
// the Scope tag stamped on the resulting Ref, which is what the dynamic-
// scope guard actually enforces.
func (ev *Evaluator) evalGenerator(n *ast.Node) (any, error) {
	refMode := modeOf(n)
	elemMode := refMode.Sub
	h, err := ev.Heap.Alloc(elemMode.Width())
	if err != nil {
		ev.GC.Collect(ev.Frames, ev.Expr)
		h, err = ev.Heap.Alloc(elemMode.Width())
		if err != nil {
			diag.Raise(diag.KindHeapExhausted, n.SourceLine, "generator allocation failed after collection")
		}
	}
	h.Mode = elemMode
	ev.checkpoint()

	scopeLevel := 0
	if n.Symbol == "LOC" {
		if f := ev.Frames.Top(); f != nil {
			scopeLevel = f.Level
		}
	}
	return heap.Ref{Handle: h, Scope: scopeLevel}, nil
}
