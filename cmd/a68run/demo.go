package main

import (
	"fmt"

	"github.com/a68core/a68"
	"github.com/a68core/a68/ast"
	"github.com/a68core/a68/scope"
)

// demo builds one hand-assembled program tree against a freshly created
// interpreter's standard environment. There is no scanner/refinement
// preprocessor in this module's scope (spec.md §1 "Out of scope:
// scanner... "), so a68run's `run`/`check` subcommands select a named
// demonstration program instead of parsing source text from the file
// argument — the same trees the root package's own end-to-end tests
// build by hand against eval's exact addressing rules.
type demo struct {
	name string
	doc  string
	tree func(it *a68.Interpreter) *ast.Tree
}

var demos = map[string]demo{
	"sum": {
		name: "sum",
		doc:  "declares x = 6, y = 7, prints x * y",
		tree: buildSumDemo,
	},
	"loop": {
		name: "loop",
		doc:  "sums 1..5 in a FOR loop and prints the total",
		tree: buildLoopDemo,
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	return names
}

func denoter(v any) *ast.Node { return &ast.Node{Attrib: ast.Denoter, Const: v} }

func chain(nodes ...*ast.Node) *ast.Node {
	for i := 0; i+1 < len(nodes); i++ {
		nodes[i].NextSibling = nodes[i+1]
	}
	return nodes[0]
}

func identifierNode(tg *scope.Tag) *ast.Node {
	return &ast.Node{Attrib: ast.Identifier, Tag: tg, Mode: tg.Mode, Level: tg.Level, Offset: tg.Offset}
}

func callPrint(it *a68.Interpreter, table *scope.Table, arg *ast.Node) *ast.Node {
	printTag, ok := it.GlobalTable().Lookup("print")
	if !ok {
		panic("standard environment has no print identifier")
	}
	return &ast.Node{
		Attrib:     ast.Call,
		Table:      table,
		FirstChild: chain(identifierNode(printTag), arg),
	}
}

// buildSumDemo is spec.md §8 scenario 1 in miniature: two identity
// declarations and a dyadic formula whose value is printed.
func buildSumDemo(it *a68.Interpreter) *ast.Tree {
	table := scope.NewTable(it.GlobalTable())
	intMode := it.Modes().MustStandard("INT")

	xTag := table.Declare("x", intMode)
	yTag := table.Declare("y", intMode)

	xDecl := &ast.Node{Attrib: ast.IdentityDeclaration, Tag: xTag, Table: table, FirstChild: denoter(int64(6))}
	yDecl := &ast.Node{Attrib: ast.IdentityDeclaration, Tag: yTag, Table: table, FirstChild: denoter(int64(7))}

	product := &ast.Node{
		Attrib:     ast.Formula,
		Symbol:     "*",
		Table:      table,
		FirstChild: chain(identifierNode(xTag), identifierNode(yTag)),
	}

	serial := &ast.Node{Attrib: ast.SerialClause, Table: table, FirstChild: chain(xDecl, yDecl, callPrint(it, table, product))}
	closed := &ast.Node{Attrib: ast.ClosedClause, Table: table, FirstChild: serial}

	return &ast.Tree{Root: closed, TopTable: table}
}

// buildLoopDemo exercises a variable declaration, a LoopClause, and
// assignment in the same program (spec.md §8 scenario 2's shape, adapted
// to a running total rather than a single assignment).
func buildLoopDemo(it *a68.Interpreter) *ast.Tree {
	table := scope.NewTable(it.GlobalTable())
	intMode := it.Modes().MustStandard("INT")
	refInt := it.Modes().Ref(intMode)

	totalTag := table.Declare("total", refInt)

	totalDecl := &ast.Node{Attrib: ast.VariableDeclaration, Tag: totalTag, Table: table, FirstChild: denoter(int64(0))}

	loopTable := scope.NewTable(table)
	ixTag := loopTable.Declare("i", intMode)

	addToTotal := &ast.Node{
		Attrib: ast.Assignation,
		Symbol: "DO",
		Table:  loopTable,
		FirstChild: chain(
			identifierNode(totalTag),
			&ast.Node{
				Attrib: ast.Formula, Symbol: "+", Table: loopTable,
				FirstChild: chain(
					&ast.Node{Attrib: ast.Dereferencing, Sub: identifierNode(totalTag), Mode: intMode},
					identifierNode(ixTag),
				),
			},
		),
	}

	fromNode := denoter(int64(1))
	fromNode.Symbol = "FROM"
	toNode := denoter(int64(5))
	toNode.Symbol = "TO"
	byNode := denoter(int64(1))
	byNode.Symbol = "BY"

	loop := &ast.Node{
		Attrib:     ast.LoopClause,
		Table:      loopTable,
		Tag:        ixTag,
		Level:      ixTag.Level,
		Offset:     ixTag.Offset,
		FirstChild: chain(fromNode, byNode, toNode, addToTotal),
	}

	printTotal := callPrint(it, table, &ast.Node{Attrib: ast.Dereferencing, Sub: identifierNode(totalTag)})

	serial := &ast.Node{Attrib: ast.SerialClause, Table: table, FirstChild: chain(totalDecl, loop, printTotal)}
	closed := &ast.Node{Attrib: ast.ClosedClause, Table: table, FirstChild: serial}

	return &ast.Tree{Root: closed, TopTable: table}
}

func lookupDemo(name string) (demo, error) {
	d, ok := demos[name]
	if !ok {
		return demo{}, fmt.Errorf("no such demonstration program %q (available: %v)", name, demoNames())
	}
	return d, nil
}
