package parser_test

import (
	"testing"

	"scopelint/internal/ast"
)

func TestParseLocalVariables(t *testing.T) {
	src := `contract C {
  function f(uint256 _a) public {
    uint256 x = 1;
    Data storage _s = data[msg.sender];
    uint256[] memory list = new uint256[](3);
    (uint256 p, , bool q) = g();
    (x, y) = (y, x);
    x[i] = 2;
    a.b = c;
    revert Err();
    emit E(x);
    if (x > 0) { uint256 inIf = 1; } else if (y) uint256 inElse = 2; else { uint256 last; }
    for (uint256 i = 0; i < 10; i++) { uint256 inFor = i; }
    for (;;) { break; }
    while (true) { uint256 inWhile; }
    do { uint256 inDo; } while (false);
    unchecked { uint256 inUnchecked = 1; }
    { uint256 nested; { uint256 deeper; } }
    try t.call{value: 1}(x) returns (uint256 r) { uint256 inTry; } catch Error(string memory reason) { uint256 inCatch; } catch { }
    assembly ("memory-safe") { let z := 1 }
    address payable to = payable(msg.sender);
    mapping(address => uint256) storage m = balances;
  }
}`
	f := parseClean(t, src)
	fn := f.Contracts[0].Functions[0]
	want := []string{
		"x", "_s", "list", "p", "q",
		"inIf", "inElse", "last",
		"i", "inFor",
		"inWhile", "inDo", "inUnchecked",
		"nested", "deeper",
		"inTry", "inCatch",
		"to", "m",
	}
	got := localNames(f, fn)
	if !equalStrings(got, want) {
		t.Fatalf("locals:\n got %v\nwant %v", got, want)
	}

	for st, v := range f.Stmts.LocalVars(fn.Body) {
		if v.Name.Name == "_s" {
			if v.Location != ast.LocStorage {
				t.Errorf("_s location = %v", v.Location)
			}
			if got := f.Text(st.Span); got != "Data storage _s = data[msg.sender];" {
				t.Errorf("decl span text = %q", got)
			}
		}
	}
}

func TestParseStatementKinds(t *testing.T) {
	src := `function f() {
  if (a) {} else {}
  while (a) {}
  do {} while (a);
  for (;;) {}
  unchecked {}
  assembly {}
  x++;
}`
	f := parseClean(t, src)
	fn := f.Functions[0]
	body := f.Stmts.Get(fn.Body)
	want := []ast.StmtKind{ast.StmtIf, ast.StmtWhile, ast.StmtDoWhile, ast.StmtFor, ast.StmtUnchecked, ast.StmtAssembly, ast.StmtSimple}
	if len(body.List) != len(want) {
		t.Fatalf("got %d statements", len(body.List))
	}
	for i, id := range body.List {
		if got := f.Stmts.Get(id).Kind; got != want[i] {
			t.Errorf("stmt %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	f, bag := parseSource(t, "function f() { x = 1 }\ncontract C {}")
	if bag.Len() == 0 {
		t.Fatal("expected an error for the missing ';'")
	}
	if len(f.Contracts) != 1 {
		t.Fatalf("contracts = %d", len(f.Contracts))
	}
}
