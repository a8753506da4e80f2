package ast

import "scopelint/internal/source"

type ContractKind uint8

const (
	ContractPlain ContractKind = iota
	ContractAbstract
	ContractInterface
	ContractLibrary
)

func (k ContractKind) String() string {
	switch k {
	case ContractAbstract:
		return "abstract contract"
	case ContractInterface:
		return "interface"
	case ContractLibrary:
		return "library"
	default:
		return "contract"
	}
}

type Contract struct {
	Kind      ContractKind
	Name      Ident
	Bases     []Ident
	Functions []*Function
	Modifiers []*Function
	Variables []*Variable
	Errors    []*ErrorDef
	Events    []*EventDef
	Structs   []*Struct
	Enums     []Ident
	Span      source.Span
	BodySpan  source.Span
}

// ErrorDef is an `error Name(...)` declaration.
type ErrorDef struct {
	Name   Ident
	Params []*Param
	Span   source.Span
}

// EventDef is an `event Name(...)` declaration.
type EventDef struct {
	Name      Ident
	Params    []*Param
	Anonymous bool
	Span      source.Span
}

type Struct struct {
	Name   Ident
	Fields []*Param
	Span   source.Span
}
