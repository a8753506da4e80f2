package ast

import (
	"scopelint/internal/source"
	"scopelint/internal/token"
)

// Variable is a state variable or a file-level constant.
type Variable struct {
	Type       string
	Name       Ident
	Visibility Visibility
	Constant   bool
	Immutable  bool
	Transient  bool
	Override   bool
	// Init holds the initializer tokens, a subslice of File.Tokens.
	Init []token.Token
	Span source.Span
}

// InitSpan covers the initializer expression, or is empty without one.
func (v *Variable) InitSpan() source.Span {
	if len(v.Init) == 0 {
		return source.Span{File: v.Span.File, Start: v.Span.End, End: v.Span.End}
	}
	return v.Init[0].Span.Cover(v.Init[len(v.Init)-1].Span)
}
