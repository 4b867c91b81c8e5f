package eval

import (
	"context"
	"log/slog"

	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/coerce"
	"github.com/a68core/a68/diag"
	"github.com/a68core/a68/mode"
	"github.com/a68core/a68/runtime/frame"
	"github.com/a68core/a68/runtime/gc"
	"github.com/a68core/a68/runtime/heap"
	"github.com/a68core/a68/scope"
	"github.com/a68core/a68/stdenv"
)

// Evaluator is L5's tree walker: the single place every lower layer's
// types meet (spec.md §4.5). It implements ast.Evaluator so a propagator
// stored in ast.Node.Action can call back into it without eval's
// concrete type leaking into ast.
type Evaluator struct {
	Modes  *mode.Table
	Env    *stdenv.Env
	Frames *frame.Stack
	Expr   *frame.ExprStack
	Heap   *heap.Heap
	GC     *gc.Collector
	Log    *slog.Logger
	Deflex coerce.Deflex

	// gcEvery triggers a checkpoint collection every N heap allocations
	// made by generators, variable declarations and row construction (spec.md §4.4 "a checkpoint policy decides when to
	// collect automatically, typically heap pressure or allocation
	// count"); 0 disables automatic collection.
	gcEvery  int
	allocCnt int

	global *frame.Frame

	// ctx carries a PAR branch's own cancellation (spec.md §5
	// "Cancellation": a zap propagates to every subordinate thread via
	// context cancellation). The root Evaluator's ctx is
	// context.Background(); only fork sets a cancellable child context.
	ctx context.Context

	// frameDepth and exprCap are the stack capacities a forked branch
	// evaluator's own private Frames/Expr stacks are built with — each
	// PAR branch needs its own pair (see evalParallelClause), sized the
	// same as the root's.
	frameDepth int
	exprCap    int
}

// Options configures a new Evaluator (spec.md §6 "interpreter options").
type Options struct {
	HeapSlots   int
	FrameDepth  int
	ExprSlots   int
	GCEvery     int
	Deflex      coerce.Deflex
	Log         *slog.Logger
}

// New builds an Evaluator with a freshly populated level-0 frame holding
// the standard environment's builtins (spec.md §4.4 "Frame entry runs the
// table's initialisation list", applied once at startup for the global
// frame).
func New(opts Options) *Evaluator {
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	env := stdenv.Build()
	h := heap.New(opts.HeapSlots)
	ev := &Evaluator{
		Modes:      env.Modes,
		Env:        env,
		Frames:     frame.NewStack(opts.FrameDepth),
		Expr:       frame.NewExprStack(opts.ExprSlots),
		Heap:       h,
		GC:         gc.New(h, opts.Log),
		Log:        opts.Log,
		Deflex:     opts.Deflex,
		gcEvery:    opts.GCEvery,
		ctx:        context.Background(),
		frameDepth: opts.FrameDepth,
		exprCap:    opts.ExprSlots,
	}
	global, ok := ev.Frames.Push(nil, 0, nil, env.Table.Increment())
	if !ok {
		panic("eval: could not open the standard environment's frame")
	}
	ev.global = global
	for _, b := range env.Builtins {
		if b.Proc != nil {
			global.Locals[b.Tag.Offset] = &ProcVal{Kind: PrimitiveProc, Mode: b.Tag.Mode, Primitive: b.Proc}
		} else {
			global.Locals[b.Tag.Offset] = b.Const
		}
	}
	return ev
}

// Run evaluates tree's root, recovering exactly one *diag.FatalError at
// the boundary (spec.md §7 "caught exactly once at the top of the
// interpreter's Run method"). Any other recovered value is a programmer
// error and is re-panicked, per diag.Recover's contract.
func (ev *Evaluator) Run(tree *ast.Tree) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if sig, ok := r.(jumpSignal); ok {
				err = &diag.FatalError{Error: diag.New(diag.KindJumpAcrossThreads, tree.Root.SourceLine,
					"jump to label "+sig.label+" whose owning clause has already exited")}
				return
			}
			if fe, ok := diag.Recover(r); ok {
				err = fe
				return
			}
			panic(r)
		}
	}()
	result, err = ev.Eval(tree.Root)
	return result, err
}

// EvalGeneric implements ast.Evaluator: the fallback dispatch a cached
// Propagator's Run method can call back into for a sub-node it does not
// specialise itself.
func (ev *Evaluator) EvalGeneric(n *ast.Node) (any, error) {
	return ev.evalDispatch(n)
}

// Eval is the evaluator's single entry point for any tree node: it runs
// n.Action when one is set and otherwise falls back to evalDispatch.
// Nothing in eval sets an Action, so every visit to every node goes
// through evalDispatch; no propagator is cached after a first visit.
func (ev *Evaluator) Eval(n *ast.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	if n.Action != nil {
		return n.Action.Run(ev, n)
	}
	return ev.evalDispatch(n)
}

// evalDispatch is the generic switch over every construct spec.md §4.5
// names. Every construct, formulas included, is dispatched here on each
// visit; there is no specialised quick path for dyadic formulas.
func (ev *Evaluator) evalDispatch(n *ast.Node) (any, error) {
	switch n.Attrib {
	case ast.Denoter:
		return ev.evalDenoter(n)
	case ast.Identifier:
		return ev.evalIdentifier(n)
	case ast.OperatorRef:
		return ev.evalOperatorRef(n)
	case ast.Nihil:
		return heap.NilRef(0), nil
	case ast.Skip:
		return nil, nil

	case ast.IdentityDeclaration:
		return ev.evalIdentityDeclaration(n)
	case ast.VariableDeclaration:
		return ev.evalVariableDeclaration(n)
	case ast.ProcedureDeclaration:
		return ev.evalProcedureDeclaration(n)
	case ast.OperatorDeclaration:
		return ev.evalOperatorDeclaration(n)
	case ast.ModeDeclaration:
		return nil, nil // modes are fully resolved by L1/L2; nothing to execute

	case ast.Assignation:
		return ev.evalAssignation(n)
	case ast.IdentityRelation:
		return ev.evalIdentityRelation(n)
	case ast.RoutineText:
		return ev.evalRoutineText(n)
	case ast.Call:
		return ev.evalCall(n)
	case ast.Slice:
		return ev.evalSlice(n)
	case ast.Selection:
		return ev.evalSelection(n)
	case ast.Generator:
		return ev.evalGenerator(n)
	case ast.Cast:
		return ev.Eval(n.FirstChild)
	case ast.Formula:
		return ev.evalFormula(n)
	case ast.MonadicFormula:
		return ev.evalMonadicFormula(n)
	case ast.Jump:
		return ev.evalJump(n)
	case ast.Assertion:
		return ev.evalAssertion(n)
	case ast.AndFunction:
		return ev.evalAndFunction(n)
	case ast.OrFunction:
		return ev.evalOrFunction(n)

	case ast.ClosedClause:
		return ev.evalClosedClause(n)
	case ast.CollateralClause:
		return ev.evalCollateralClause(n)
	case ast.ConditionalClause:
		return ev.evalConditionalClause(n)
	case ast.IntegerCaseClause:
		return ev.evalIntegerCaseClause(n)
	case ast.UnitedCaseClause:
		return ev.evalUnitedCaseClause(n)
	case ast.LoopClause:
		return ev.evalLoopClause(n)
	case ast.ParallelClause:
		return ev.evalParallelClause(n)
	case ast.EnquiryClause, ast.SerialClause:
		return ev.evalSerialClause(n)

	case ast.Dereferencing:
		return ev.evalDereferencing(n)
	case ast.Deproceduring:
		return ev.evalDeproceduring(n)
	case ast.Widening:
		return ev.evalWidening(n)
	case ast.Rowing:
		return ev.evalRowing(n)
	case ast.Uniting:
		return ev.evalUniting(n)
	case ast.Voiding:
		return ev.evalVoiding(n)

	case ast.Label:
		return ev.Eval(n.FirstChild)

	default:
		diag.Raise(diag.KindInvalidArgument, n.SourceLine, "unhandled construct "+n.Attrib.String())
		return nil, nil
	}
}

// checkpoint runs a GC collection if the allocation-count checkpoint
// policy fires (spec.md §4.4). Called after every successful heap
// allocation (see generator.go).
func (ev *Evaluator) checkpoint() {
	if ev.gcEvery <= 0 {
		return
	}
	ev.allocCnt++
	if ev.allocCnt >= ev.gcEvery {
		ev.allocCnt = 0
		ev.GC.Collect(ev.Frames, ev.Expr)
	}
}

// fork builds a branch evaluator for one PAR clause unit (spec.md §4.5
// "Parallel clause": "each unit runs as its own thread, sharing the
// program's heap but not its stack"). The branch gets its own Frames/Expr
// pair seeded on the parent's current frame (frame.NewStackFrom, so static
// links still resolve outward into frames live when the PAR clause
// started) and ctx as its cancellation source, but shares every other
// field — Heap, GC, Modes, Env are all safe for concurrent access already
// (heap.Heap's own mutex; gc.Collector is only ever driven from
// checkpoint, which the branch disables, see evalParallelClause).
func (ev *Evaluator) fork(ctx context.Context) *Evaluator {
	branch := *ev
	branch.ctx = ctx
	branch.Frames = frame.NewStackFrom(ev.Frames.Top(), ev.frameDepth)
	branch.Expr = frame.NewExprStack(ev.exprCap)
	branch.gcEvery = 0
	branch.allocCnt = 0
	return &branch
}

// checkZap raises KindThreadCancelled if ctx has been cancelled (spec.md
// §5 "Cancellation": "a zap aborts every subordinate thread at its next
// cooperative checkpoint"). Called at loop iterations and procedure
// invocations, the two checkpoints spec.md names explicitly.
func (ev *Evaluator) checkZap(line int) {
	select {
	case <-ev.ctx.Done():
		diag.Raise(diag.KindThreadCancelled, line, "")
	default:
	}
}

// frameAt resolves the frame a node's Level/Tag addresses, by walking
// static links outward from the currently executing frame (spec.md §4.3
// "the evaluator walks static links level − current times").
func (ev *Evaluator) frameAt(level int) *frame.Frame {
	cur := ev.Frames.Top()
	if cur == nil {
		return ev.global
	}
	if level == 0 {
		return ev.global
	}
	up := cur.Level - level
	if up <= 0 {
		return cur
	}
	return cur.StaticAt(up)
}

// openBlockFrame opens a new frame for any enclosed clause/declaration
// block that owns declarations, statically linked to the current frame
// (a block that owns declarations always gets a new frame; the current
// frame is never widened in place). It returns (nil, false) if table is nil or
// has no declarations, meaning the caller should keep executing in the
// current frame.
func (ev *Evaluator) openBlockFrame(node *ast.Node, table *scope.Table) (*frame.Frame, bool) {
	if table == nil || table.Increment() == 0 {
		return nil, false
	}
	parent := ev.Frames.Top()
	f, ok := ev.Frames.Push(parent, table.Level(), node, table.Increment())
	if !ok {
		diag.Raise(diag.KindHeapExhausted, node.SourceLine, "frame stack exhausted")
	}
	return f, true
}

// scopeTable asserts n.Table down to its concrete type; every Node's
// Table is populated by the scope resolver with a *scope.Table (see
// ast.ScopeRef), so this assertion is total over any tree eval walks.
func scopeTable(n *ast.Node) *scope.Table {
	if n == nil || n.Table == nil {
		return nil
	}
	return n.Table.(*scope.Table)
}

func tag(n *ast.Node) *scope.Tag {
	if n == nil || n.Tag == nil {
		return nil
	}
	return n.Tag.(*scope.Tag)
}

func modeOf(n *ast.Node) *mode.Mode {
	if n == nil || n.Mode == nil {
		return nil
	}
	return n.Mode.(*mode.Mode)
}
