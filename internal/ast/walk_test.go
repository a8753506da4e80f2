package ast

import (
	"testing"
)

func TestPreorderOrder(t *testing.T) {
	s := NewStmts(8)
	a := s.New(Stmt{Kind: StmtSimple})
	decl := s.New(Stmt{Kind: StmtVarDecl, Vars: []*Param{{Name: Ident{Name: "x"}}}})
	inner := s.New(Stmt{Kind: StmtBlock, List: []StmtID{decl}})
	loop := s.New(Stmt{Kind: StmtWhile, Body: inner})
	root := s.New(Stmt{Kind: StmtBlock, List: []StmtID{a, loop}})

	var kinds []StmtKind
	for _, st := range s.Preorder(root) {
		kinds = append(kinds, st.Kind)
	}
	want := []StmtKind{StmtBlock, StmtSimple, StmtWhile, StmtBlock, StmtVarDecl}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kind[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestPreorderIfElseAndFor(t *testing.T) {
	s := NewStmts(8)
	init := s.New(Stmt{Kind: StmtVarDecl, Vars: []*Param{{Name: Ident{Name: "i"}}}})
	body := s.New(Stmt{Kind: StmtVarDecl, Vars: []*Param{{Name: Ident{Name: "y"}}}})
	loop := s.New(Stmt{Kind: StmtFor, Init: init, Body: body})
	then := s.New(Stmt{Kind: StmtVarDecl, Vars: []*Param{{Name: Ident{Name: "a"}}}})
	els := s.New(Stmt{Kind: StmtVarDecl, Vars: []*Param{{Name: Ident{Name: "b"}}}})
	branch := s.New(Stmt{Kind: StmtIf, Body: then, Else: els})
	root := s.New(Stmt{Kind: StmtBlock, List: []StmtID{loop, branch}})

	var names []string
	for _, v := range s.LocalVars(root) {
		names = append(names, v.Name.Name)
	}
	want := []string{"i", "y", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("name[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPreorderDeepNesting(t *testing.T) {
	s := NewStmts(0)
	id := s.New(Stmt{Kind: StmtVarDecl, Vars: []*Param{{Name: Ident{Name: "deep"}}}})
	for range 100_000 {
		id = s.New(Stmt{Kind: StmtBlock, List: []StmtID{id}})
	}
	n := 0
	for range s.LocalVars(id) {
		n++
	}
	if n != 1 {
		t.Fatalf("got %d vars, want 1", n)
	}
}

func TestPreorderStopsEarly(t *testing.T) {
	s := NewStmts(4)
	a := s.New(Stmt{Kind: StmtSimple})
	b := s.New(Stmt{Kind: StmtSimple})
	root := s.New(Stmt{Kind: StmtBlock, List: []StmtID{a, b}})
	n := 0
	for range s.Preorder(root) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("n = %d", n)
	}
	for range s.Preorder(NoStmtID) {
		t.Fatal("invalid root must yield nothing")
	}
}

func TestArenaGetOutOfRange(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(1) != nil || a.Get(0) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(7)
	if got := *a.Get(id); got != 7 {
		t.Fatalf("got %d", got)
	}
	if a.Len() != 1 {
		t.Fatalf("len = %d", a.Len())
	}
}
