package ast

// New returns a bare Node of the given attribute and symbol. It is the
// building block front ends and tests use to assemble a Tree; the core
// itself only ever calls Wrap to extend a tree that already exists.
func New(attrib Attrib, symbol string) *Node {
	return &Node{Attrib: attrib, Symbol: symbol}
}

// NewWithChildren returns a Node of the given attribute with the supplied
// children already appended in order.
func NewWithChildren(attrib Attrib, symbol string, children ...*Node) *Node {
	n := New(attrib, symbol)
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Walk calls visit for n and every descendant, pre-order, following
// FirstChild/NextSibling. visit returning false stops the walk below n
// without aborting sibling traversal.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}
