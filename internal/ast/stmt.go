package ast

import (
	"scopelint/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtUnchecked
	StmtVarDecl
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtTry
	StmtAssembly
	// StmtSimple covers expression statements, return, emit, revert, break and continue.
	StmtSimple
)

var stmtKindNames = [...]string{
	StmtBlock:     "block",
	StmtUnchecked: "unchecked",
	StmtVarDecl:   "var",
	StmtIf:        "if",
	StmtWhile:     "while",
	StmtDoWhile:   "do-while",
	StmtFor:       "for",
	StmtTry:       "try",
	StmtAssembly:  "assembly",
	StmtSimple:    "simple",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "stmt?"
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	// List: statements of a block, or the clause blocks of a try statement.
	List []StmtID
	// Init is the for-loop initializer.
	Init StmtID
	// Body: the loop body, or the then-branch of an if.
	Body StmtID
	Else StmtID
	// Vars: declared variables of a StmtVarDecl; tuple holes are omitted.
	Vars []*Param
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
	}
}

func (s *Stmts) New(stmt Stmt) StmtID {
	return StmtID(s.Arena.Allocate(stmt))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// Children returns the direct child statements of id in source order.
func (s *Stmts) Children(id StmtID) []StmtID {
	st := s.Get(id)
	if st == nil {
		return nil
	}
	var out []StmtID
	for _, c := range [...]StmtID{st.Init, st.Body, st.Else} {
		if c.IsValid() {
			out = append(out, c)
		}
	}
	return append(out, st.List...)
}
