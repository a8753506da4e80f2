package ast

import "scopelint/internal/source"

type FnKind uint8

const (
	FnFunction FnKind = iota
	FnConstructor
	FnFallback
	FnReceive
	FnModifier
)

func (k FnKind) String() string {
	switch k {
	case FnConstructor:
		return "constructor"
	case FnFallback:
		return "fallback"
	case FnReceive:
		return "receive"
	case FnModifier:
		return "modifier"
	default:
		return "function"
	}
}

type Function struct {
	Kind       FnKind
	Name       Ident
	Params     []*Param
	Returns    []*Param
	Visibility Visibility
	Virtual    bool
	Override   bool
	// Body is NoStmtID for declarations without an implementation.
	Body StmtID
	Span source.Span
}

func (fn *Function) HasBody() bool { return fn.Body.IsValid() }

// Param is a function, error, event or return parameter, or a struct field.
// Name is zero for unnamed parameters.
type Param struct {
	Type     string
	Location Location
	Indexed  bool
	Name     Ident
	Span     source.Span
}
