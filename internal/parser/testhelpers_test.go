package parser_test

import (
	"testing"

	"scopelint/internal/ast"
	"scopelint/internal/diag"
	"scopelint/internal/lexer"
	"scopelint/internal/parser"
	"scopelint/internal/source"
	"scopelint/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sol", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(100)
	toks := lexer.Tokenize(file, lexer.Options{})
	f := parser.ParseFile(file, toks, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := testkit.CheckSpanInvariants(f); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return f, bag
}

func parseClean(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseSource(t, src)
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Errorf("unexpected parse error at %d: %s", d.Span.Start, d.Message)
		}
		t.FailNow()
	}
	return f
}

func localNames(f *ast.File, fn *ast.Function) []string {
	var out []string
	for _, v := range f.Stmts.LocalVars(fn.Body) {
		out = append(out, v.Name.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
