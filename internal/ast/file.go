package ast

import (
	"iter"

	"scopelint/internal/source"
	"scopelint/internal/token"
)

// Ident is a name together with where it was written.
type Ident struct {
	Name string
	Span source.Span
}

func (id Ident) IsZero() bool { return id.Name == "" }

// File is the parsed form of one Solidity source unit.
type File struct {
	Source    *source.File
	Tokens    []token.Token
	Pragmas   []*Pragma
	Imports   []*Import
	Contracts []*Contract
	// Free (file-level) declarations.
	Functions []*Function
	Variables []*Variable
	Errors    []*ErrorDef
	Events    []*EventDef
	Structs   []*Struct
	Stmts     *Stmts
}

func NewFile(src *source.File, toks []token.Token) *File {
	return &File{
		Source: src,
		Tokens: toks,
		Stmts:  NewStmts(64),
	}
}

// AllFunctions yields every function in the file: free functions first,
// then contract members in declaration order.
func (f *File) AllFunctions() iter.Seq2[*Contract, *Function] {
	return func(yield func(*Contract, *Function) bool) {
		for _, fn := range f.Functions {
			if !yield(nil, fn) {
				return
			}
		}
		for _, c := range f.Contracts {
			for _, fn := range c.Functions {
				if !yield(c, fn) {
					return
				}
			}
		}
	}
}

// Text returns the source text covered by sp.
func (f *File) Text(sp source.Span) string {
	if f == nil || f.Source == nil {
		return ""
	}
	return f.Source.Text(sp)
}

type Pragma struct {
	Span source.Span
	Text string
}
