package token

import "slices"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// NumberLit is a decimal, hex or scientific number literal.
	NumberLit
	// StringLit is a quoted string, including hex"..." and unicode"..." forms.
	StringLit

	// keywords
	KwPragma
	KwImport
	KwAs
	KwContract
	KwInterface
	KwLibrary
	KwAbstract
	KwIs
	KwFunction
	KwModifier
	KwEvent
	KwStruct
	KwEnum
	KwConstructor
	KwReturns
	KwReturn
	KwPublic
	KwExternal
	KwInternal
	KwPrivate
	KwPure
	KwView
	KwPayable
	KwConstant
	KwImmutable
	KwOverride
	KwVirtual
	KwMemory
	KwStorage
	KwCalldata
	KwMapping
	KwUsing
	KwFor
	KwIf
	KwElse
	KwWhile
	KwDo
	KwEmit
	KwType
	KwTrue
	KwFalse
	KwIndexed
	KwAnonymous
	KwUnchecked
	KwAssembly
	KwTry
	KwCatch
	KwNew
	KwDelete
	KwBreak
	KwContinue

	// punctuation
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Semicolon
	Comma
	Dot
	Question
	Colon
	Assign   // =
	FatArrow // =>
	// Operator covers every other operator ("+", "==", "<<=", "**", ...).
	Operator
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	NumberLit:     "NumberLit",
	StringLit:     "StringLit",
	KwPragma:      "pragma",
	KwImport:      "import",
	KwAs:          "as",
	KwContract:    "contract",
	KwInterface:   "interface",
	KwLibrary:     "library",
	KwAbstract:    "abstract",
	KwIs:          "is",
	KwFunction:    "function",
	KwModifier:    "modifier",
	KwEvent:       "event",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwConstructor: "constructor",
	KwReturns:     "returns",
	KwReturn:      "return",
	KwPublic:      "public",
	KwExternal:    "external",
	KwInternal:    "internal",
	KwPrivate:     "private",
	KwPure:        "pure",
	KwView:        "view",
	KwPayable:     "payable",
	KwConstant:    "constant",
	KwImmutable:   "immutable",
	KwOverride:    "override",
	KwVirtual:     "virtual",
	KwMemory:      "memory",
	KwStorage:     "storage",
	KwCalldata:    "calldata",
	KwMapping:     "mapping",
	KwUsing:       "using",
	KwFor:         "for",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwDo:          "do",
	KwEmit:        "emit",
	KwType:        "type",
	KwTrue:        "true",
	KwFalse:       "false",
	KwIndexed:     "indexed",
	KwAnonymous:   "anonymous",
	KwUnchecked:   "unchecked",
	KwAssembly:    "assembly",
	KwTry:         "try",
	KwCatch:       "catch",
	KwNew:         "new",
	KwDelete:      "delete",
	KwBreak:       "break",
	KwContinue:    "continue",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Question:      "?",
	Colon:         ":",
	Assign:        "=",
	FatArrow:      "=>",
	Operator:      "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwPragma && k <= KwContinue
}

// In reports whether k is one of kinds.
func (k Kind) In(kinds ...Kind) bool {
	return slices.Contains(kinds, k)
}
