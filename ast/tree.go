package ast

// ModeRef is implemented by mode.Mode. ast stays independent of the mode
// package (which in turn needs to read declarer nodes off the tree); the
// interface breaks what would otherwise be an import cycle, the same way
// go/ast stays independent of go/types.
type ModeRef interface {
	ModeName() string
}

// TagRef is implemented by scope.Tag, for the same reason as ModeRef.
type TagRef interface {
	TagName() string
}

// ScopeRef is implemented by scope.Table, for the same reason as ModeRef.
type ScopeRef interface {
	Level() int
}

// Propagator is a per-node evaluation shortcut stored in Node.Action. A
// Node's Action starts nil (generic dispatch); eval.Evaluator.Eval runs a
// non-nil Action instead of its generic dispatch. Nothing in the core sets
// Action, so every node is evaluated through generic dispatch.
type Propagator interface {
	Run(ev Evaluator, n *Node) (any, error)
}

// Evaluator is the minimal surface eval.Evaluator exposes back to a
// Propagator, again to avoid ast importing eval.
type Evaluator interface {
	EvalGeneric(n *Node) (any, error)
}

// Node is a tree vertex. The front end builds Nodes once; the core mutates
// only the annotation fields below (Mode, Tag, Level, Offset, Sort,
// NeedDNS, Action, Const, SeqNext) and splices coercion wrappers with Sub/
// Attrib set per invariant I4 — it never otherwise reshapes the tree.
type Node struct {
	Attrib Attrib
	Symbol string // interned source text (identifier name, operator glyph, denoter literal)

	Parent      *Node
	FirstChild  *Node
	NextSibling *Node
	Sub         *Node // the node a coercion/annotation wraps (invariant I4)

	// Owning scope. Filled by the scope resolver (L3).
	Table ScopeRef
	Tag   TagRef

	// Mode annotation. Filled by L1/L2.
	Mode ModeRef

	// Coercion-engine scratch fields (L2).
	Sort    string // context sort under which this node was last checked (SOFT/WEAK/MEEK/FIRM/STRONG)
	NeedDNS bool   // true if evaluating this node requires a dynamic-scope check

	// Evaluator scratch fields (L5).
	Action  Propagator // cached propagator; nil means "use generic dispatch"
	Level   int        // lexical level of the frame this node addresses from
	Offset  int        // frame offset, valid when Tag is a local identifier/operator
	Const   any        // memoised constant value for denoters, nil otherwise
	SeqNext *Node      // "next in linear sequence" shortcut discovered on first evaluation

	// SourceLine is a 1-based line number for diagnostics; the scanner
	// (out of core scope) is the sole producer.
	SourceLine int
}

// Children returns n's children in order. It allocates; hot paths should
// walk FirstChild/NextSibling directly.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// AppendChild appends child as n's last child in O(children) time. The
// front end uses this while building the tree; the core never calls it
// (coerce.Insert splices coercion wrappers with Wrap).
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	if n.FirstChild == nil {
		n.FirstChild = child
		return
	}
	last := n.FirstChild
	for last.NextSibling != nil {
		last = last.NextSibling
	}
	last.NextSibling = child
}

// Wrap splices a new coercion node of the given attribute between n and its
// parent: parent's child pointer (or sibling link) now names the wrapper,
// and the wrapper's Sub names n. Per invariant I4, callers must also set
// the wrapper's Mode to the coercion step's target mode.
func (n *Node) Wrap(attrib Attrib) *Node {
	wrapper := &Node{
		Attrib:      attrib,
		Sub:         n,
		Parent:      n.Parent,
		NextSibling: n.NextSibling,
		Table:       n.Table,
		SourceLine:  n.SourceLine,
	}
	if p := n.Parent; p != nil {
		if p.FirstChild == n {
			p.FirstChild = wrapper
		} else {
			prev := p.FirstChild
			for prev != nil && prev.NextSibling != n {
				prev = prev.NextSibling
			}
			if prev != nil {
				prev.NextSibling = wrapper
			}
		}
	}
	n.Parent = wrapper
	n.NextSibling = nil
	return wrapper
}

// Innermost follows Sub through every coercion wrapper and returns the
// original, uncoerced node.
func (n *Node) Innermost() *Node {
	cur := n
	for cur.Attrib.IsCoercion() && cur.Sub != nil {
		cur = cur.Sub
	}
	return cur
}

// Tree is the complete parse of one program.
type Tree struct {
	Root *Node
	// TopTable is the program's outermost symbol table, whose parent is
	// the standard environment's table (spec.md §6, "a top symbol table
	// chain").
	TopTable ScopeRef
}
