package eval

import (
	"context"
	"sync"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/mode"
)

// parBranchResult carries one PAR unit's outcome back to the joining
// goroutine — its value/error pair, or a recovered panic to re-raise once
// every branch has been joined (spec.md §5 "Parallel clause": "a
// fatal error in one unit aborts the whole collateral set").
type parBranchResult struct {
	value any
	err   error
	fatal any // a recovered panic value (FatalError or jumpSignal), re-panicked after join
}

// evalParallelClause runs each of n's unit children as its own goroutine
// (spec.md §4.5 "Parallel clause": "each unit runs as its own thread,
// sharing the program's heap but not its stack"). A fatal error or an
// unresolved jump in any branch cancels ctx, which every other branch's
// own checkZap calls (invokeUserProc, loop iterations) cooperatively
// observe at their next checkpoint (spec.md §5 "Cancellation"); the first
// such failure is what evalParallelClause itself returns once every
// goroutine has been joined.
//
// Only the branches' own live frames are visible to a GC collection
// triggered from any one of them (see fork's doc comment): this port
// disables automatic collection inside a PAR clause's branches entirely
// rather than build a multi-stack collector, accepting a bounded amount of
// extra retained garbage for the clause's duration (see DESIGN.md
// "PAR-clause GC-root visibility across threads").
func (ev *Evaluator) evalParallelClause(n *ast.Node) (any, error) {
	var units []*ast.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		units = append(units, c)
	}

	ctx, cancel := context.WithCancel(ev.ctx)
	defer cancel()

	results := make([]parBranchResult, len(units))
	var wg sync.WaitGroup
	wg.Add(len(units))
	for i, unit := range units {
		branch := ev.fork(ctx)
		go func(i int, unit *ast.Node, branch *Evaluator) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i].fatal = r
					cancel()
				}
			}()
			v, err := branch.Eval(unit)
			if err != nil {
				cancel()
			}
			results[i].value = v
			results[i].err = err
		}(i, unit, branch)
	}
	wg.Wait()

	for _, r := range results {
		if r.fatal != nil {
			panic(r.fatal)
		}
	}
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
	}

	m := modeOf(n).Canonical()
	if m.Kind == mode.Void {
		return nil, nil
	}
	elems := make([]any, len(results))
	for i, r := range results {
		elems[i] = r.value
	}
	return elems, nil
}
