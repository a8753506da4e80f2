package ast

import "scopelint/internal/source"

type ImportKind uint8

const (
	// import "path";
	ImportPlain ImportKind = iota
	// import "path" as Alias;  /  import * as Alias from "path";
	ImportAlias
	// import {A, B as C} from "path";
	ImportSymbols
)

type ImportSymbol struct {
	Name  Ident
	Alias Ident
}

// Local returns the name the symbol is bound to inside the importing file.
func (s ImportSymbol) Local() Ident {
	if !s.Alias.IsZero() {
		return s.Alias
	}
	return s.Name
}

type Import struct {
	Kind    ImportKind
	Path    string
	Alias   Ident
	Symbols []ImportSymbol
	Span    source.Span
}

// Bindings lists the identifiers the import introduces into file scope.
func (im *Import) Bindings() []Ident {
	switch im.Kind {
	case ImportAlias:
		return []Ident{im.Alias}
	case ImportSymbols:
		out := make([]Ident, 0, len(im.Symbols))
		for _, s := range im.Symbols {
			out = append(out, s.Local())
		}
		return out
	default:
		return nil
	}
}
