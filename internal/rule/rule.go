// Package rule defines the closed vocabulary of lint rule identifiers.
package rule

import (
	"errors"
	"fmt"
)

// ID identifies one lint rule. The vocabulary is closed: per-rule state can
// live in fixed-size arrays indexed by ID.
type ID uint8

const (
	Error ID = iota
	Import
	Variable
	Constant
	Test
	Script
	Src
	Eip712
	Event

	// Directive is reported for malformed inline directives.
	Directive
	// Format is reported by the formatting check.
	Format
	// Parse is reported when a file cannot be read or tokenised.
	Parse

	// Count is the size of the vocabulary.
	Count
)

// ErrUnknown is returned by Lookup for names outside the vocabulary.
var ErrUnknown = errors.New("unknown rule")

var names = [Count]string{
	Error:     "error",
	Import:    "import",
	Variable:  "variable",
	Constant:  "constant",
	Test:      "test",
	Script:    "script",
	Src:       "src",
	Eip712:    "eip712",
	Event:     "event",
	Directive: "directive",
	Format:    "format",
	Parse:     "parse",
}

// labels are used in report lines: "Invalid <label> in <path> ...".
var labels = [Count]string{
	Error:     "error name",
	Import:    "import",
	Variable:  "variable name",
	Constant:  "constant or immutable name",
	Test:      "test name",
	Script:    "script",
	Src:       "src method name",
	Eip712:    "EIP712 typehash",
	Event:     "event name",
	Directive: "directive",
	Format:    "formatting",
	Parse:     "source",
}

func (id ID) String() string {
	if id < Count {
		return names[id]
	}
	return fmt.Sprintf("rule(%d)", uint8(id))
}

// Label is the human readable noun used in report lines.
func (id ID) Label() string {
	if id < Count {
		return labels[id]
	}
	return id.String()
}

// Valid reports whether id is part of the vocabulary.
func (id ID) Valid() bool { return id < Count }

// Inline reports whether the rule can be named by an ignore-<rule> directive.
// Engine rules (directive, format, parse) cannot.
func (id ID) Inline() bool { return id < Directive }

// FileLevel reports whether findings of the rule are printed without a line number.
func (id ID) FileLevel() bool { return id == Directive || id == Eip712 }

// Lookup resolves a rule name.
func Lookup(name string) (ID, error) {
	for id := range Count {
		if names[id] == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// ParseInline resolves a rule name usable inside directives and config overrides.
func ParseInline(name string) (ID, error) {
	id, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	if !id.Inline() {
		return 0, fmt.Errorf("%w: %q cannot be ignored inline", ErrUnknown, name)
	}
	return id, nil
}

// Inline returns the rules usable inside directives, in declaration order.
func Inline() []ID {
	out := make([]ID, 0, Directive)
	for id := range Directive {
		out = append(out, id)
	}
	return out
}
