package scope

import (
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/mode"
)

// Tag is a bound identifier, operator, or label (spec.md §4.3). It
// implements ast.TagRef so ast.Node.Tag can hold one without ast
// importing scope.
type Tag struct {
	Name  string
	Mode  *mode.Mode
	Level int
	// Offset is the tag's slot offset within Owner's frame, valid for
	// identifier/operator tags; labels carry no offset of their own,
	// they are resolved to the serial clause node they were declared
	// against (see Owner.DeclareLabel and BindLabel).
	Offset int
	Owner  *Table

	IsOperator bool
	IsLabel    bool

	// Node is the serial clause a label tag resolves to, bound by
	// BindLabel once that node exists (spec.md §4.3 "Labels are resolved
	// to their enclosing serial clause"). nil for every non-label tag.
	Node *ast.Node

	// Global is true for tags declared in the standard environment
	// (spec.md §6); these never participate in dynamic-scope checks,
	// they outlive every frame.
	Global bool
}

// TagName implements ast.TagRef.
func (t *Tag) TagName() string { return t.Name }

// BindLabel completes DeclareLabel's two-step binding: a label's tag is
// allocated before its enclosing serial clause's node is necessarily
// built, so the node is attached separately once it is.
func (t *Tag) BindLabel(n *ast.Node) { t.Node = n }
