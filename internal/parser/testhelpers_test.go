package parser_test

import (
	"testing"

	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/parser"
	"kappa/internal/source"
)

// parseWithBag разбирает src с репортером в Bag.
func parseWithBag(t *testing.T, src string) (*ast.Program, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(src))
	bag := diag.NewBag(0)
	p := parser.New(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	prog, err := p.Parse()
	return prog, bag, err
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func onlyDeclaration(t *testing.T, prog *ast.Program) (*ast.VariableDeclaration, *ast.VariableDeclarator) {
	t.Helper()
	if len(prog.Body) != 1 {
		t.Fatalf("body has %d statements, want 1", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement is %T", prog.Body[0])
	}
	if len(decl.Declarations) != 1 {
		t.Fatalf("declaration has %d declarators", len(decl.Declarations))
	}
	return decl, decl.Declarations[0]
}

func assertNode(t *testing.T, what string, got ast.Node, start, end uint32) {
	t.Helper()
	if got.Start != start || got.End != end {
		t.Fatalf("%s range = %d-%d, want %d-%d", what, got.Start, got.End, start, end)
	}
}

func onlyDeclarationAt(t *testing.T, prog *ast.Program, i int) (*ast.VariableDeclaration, *ast.VariableDeclarator) {
	t.Helper()
	if i >= len(prog.Body) {
		t.Fatalf("no statement %d in body of %d", i, len(prog.Body))
	}
	decl, ok := prog.Body[i].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement %d is %T", i, prog.Body[i])
	}
	return decl, decl.Declarations[0]
}
