// Package scope implements L3 of the core: static lexical-level/offset
// addressing, label-to-serial-clause binding, captured-environment
// computation, and the dynamic-scope tag checks that back assignment,
// procedure call, and clause yield (spec.md §4.3).
//
// scope depends on mode (a Tag needs its declared mode) and ast (it reads
// and annotates the tree) but never on eval or runtime — "scope
// violation" is reported as a *diag.Error the evaluator decides how to
// raise, not a panic scope triggers itself.
package scope

import "github.com/a68core/a68/mode"

// Table is one lexical level's symbol table (spec.md §4.3 "owning lexical
// level"), grounded on the teacher's directory/subkey-list bookkeeping
// pattern (a parent-linked collection keyed by name, walked outward on a
// miss) adapted from hive symbol lookups to a flat map per level.
type Table struct {
	level     int
	parent    *Table
	tags      map[string]*Tag
	operators map[string][]*Tag // multiple operators may share a symbol, disambiguated by operand modes
	labels    map[string]*Tag

	// increment is the frame-size growth this table's own declarations
	// contribute, in expression-stack slots (spec.md §4.4 "the table's
	// increment").
	increment int
}

// NewTable creates a table one level deeper than parent (or level 0 if
// parent is nil, the standard environment's table).
func NewTable(parent *Table) *Table {
	level := 0
	if parent != nil {
		level = parent.level + 1
	}
	return &Table{
		level:     level,
		parent:    parent,
		tags:      make(map[string]*Tag),
		operators: make(map[string][]*Tag),
		labels:    make(map[string]*Tag),
	}
}

// Level implements ast.ScopeRef.
func (t *Table) Level() int { return t.level }

// Parent returns the statically enclosing table, or nil for the outermost.
func (t *Table) Parent() *Table { return t.parent }

// Declare adds an identifier or identity tag at the next free offset in
// this table and returns it.
func (t *Table) Declare(name string, m *mode.Mode) *Tag {
	tag := &Tag{Name: name, Mode: m, Level: t.level, Offset: t.increment, Owner: t}
	t.tags[name] = tag
	t.increment += m.Width()
	return tag
}

// DeclareOperator adds an operator tag; multiple operators may share a
// symbol (resolved by operand modes at use sites, see coerce.Lookup).
func (t *Table) DeclareOperator(symbol string, m *mode.Mode) *Tag {
	tag := &Tag{Name: symbol, Mode: m, Level: t.level, Offset: t.increment, Owner: t, IsOperator: true}
	t.operators[symbol] = append(t.operators[symbol], tag)
	t.increment += m.Width()
	return tag
}

// DeclareLabel binds name to the serial clause this table belongs to
// (spec.md §4.3 "Labels are resolved to their enclosing serial clause").
func (t *Table) DeclareLabel(name string) *Tag {
	tag := &Tag{Name: name, Level: t.level, Owner: t, IsLabel: true}
	t.labels[name] = tag
	return tag
}

// Lookup walks this table then its statically enclosing chain for an
// identifier or identity tag named name.
func (t *Table) Lookup(name string) (*Tag, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if tag, ok := cur.tags[name]; ok {
			return tag, true
		}
	}
	return nil, false
}

// LookupOperators walks this table then its statically enclosing chain
// and returns every operator tag declared under symbol at the innermost
// level that declares any — operators do not accumulate overloads across
// levels, the innermost declaring level shadows outer ones entirely.
func (t *Table) LookupOperators(symbol string) []*Tag {
	for cur := t; cur != nil; cur = cur.parent {
		if tags, ok := cur.operators[symbol]; ok {
			return tags
		}
	}
	return nil
}

// LookupLabel walks this table then its statically enclosing chain for a
// label named name.
func (t *Table) LookupLabel(name string) (*Tag, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if tag, ok := cur.labels[name]; ok {
			return tag, true
		}
	}
	return nil, false
}

// Increment is the frame-size growth this table's own declarations
// contribute (spec.md §4.4).
func (t *Table) Increment() int { return t.increment }
