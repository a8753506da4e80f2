// Package directive parses inline suppression directives such as
// "scopelint: ignore-error-next-line" out of comments.
package directive

import (
	"errors"
	"fmt"
	"strings"

	"scopelint/internal/rule"
)

// Scope is the span shape a directive asks for.
type Scope uint8

const (
	NextItem Scope = iota
	Line
	NextLine
	RegionStart
	RegionEnd
	WholeFile
)

var scopeNames = [...]string{
	NextItem:    "next-item",
	Line:        "line",
	NextLine:    "next-line",
	RegionStart: "start",
	RegionEnd:   "end",
	WholeFile:   "file",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return fmt.Sprintf("scope(%d)", uint8(s))
}

// Family separates the generic directives from the rule-scoped ones.
type Family uint8

const (
	// Disable is the generic disable-* family. It feeds the format universe.
	Disable Family = iota
	// Ignore is the generic ignore-* family. It feeds the lint universe.
	Ignore
	// Rule is ignore-<rule>-*, scoped to a single rule.
	Rule
)

// Kind is a parsed directive. Rule is meaningful only for the Rule family.
type Kind struct {
	Family Family
	Scope  Scope
	Rule   rule.ID
}

// Generic reports whether the kind belongs to one of the generic families.
func (k Kind) Generic() bool { return k.Family != Rule }

// String returns the canonical directive text. Rule-scoped kinds always carry
// their scope suffix, so Parse(k.String()) == k.
func (k Kind) String() string {
	switch k.Family {
	case Disable:
		return "disable-" + k.Scope.String()
	case Ignore:
		return "ignore-" + k.Scope.String()
	default:
		return "ignore-" + k.Rule.String() + "-" + k.Scope.String()
	}
}

// ErrInvalid is returned for directive text outside the grammar.
var ErrInvalid = errors.New("invalid inline config item")

// genericScopes excludes WholeFile, which only exists for rule-scoped directives.
var genericScopes = []Scope{NextItem, Line, NextLine, RegionStart, RegionEnd}

// Parse classifies bare directive text (the part after "scopelint:").
//
//	disable-<scope> | ignore-<scope> | ignore-<rule>[-<scope>|-file]
//
// A rule name without a suffix means next-item.
func Parse(text string) (Kind, error) {
	if rest, ok := strings.CutPrefix(text, "disable-"); ok {
		if s, ok := lookupScope(rest, genericScopes); ok {
			return Kind{Family: Disable, Scope: s}, nil
		}
		return Kind{}, fmt.Errorf("%w: %s", ErrInvalid, text)
	}

	rest, ok := strings.CutPrefix(text, "ignore-")
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s", ErrInvalid, text)
	}
	if s, ok := lookupScope(rest, genericScopes); ok {
		return Kind{Family: Ignore, Scope: s}, nil
	}

	for _, id := range rule.Inline() {
		name := id.String()
		if rest == name {
			return Kind{Family: Rule, Scope: NextItem, Rule: id}, nil
		}
		suffix, ok := strings.CutPrefix(rest, name+"-")
		if !ok {
			continue
		}
		if s, ok := lookupScope(suffix, nil); ok {
			return Kind{Family: Rule, Scope: s, Rule: id}, nil
		}
		break
	}
	return Kind{}, fmt.Errorf("%w: %s", ErrInvalid, text)
}

// lookupScope resolves a scope suffix. A nil allowed list accepts every scope.
func lookupScope(name string, allowed []Scope) (Scope, bool) {
	if allowed == nil {
		for s := range scopeNames {
			if scopeNames[s] == name {
				return Scope(s), true
			}
		}
		return 0, false
	}
	for _, s := range allowed {
		if scopeNames[s] == name {
			return s, true
		}
	}
	return 0, false
}

// Vocabulary returns every valid directive kind.
func Vocabulary() []Kind {
	out := make([]Kind, 0, 2*len(genericScopes)+len(scopeNames)*int(rule.Directive))
	for _, f := range []Family{Disable, Ignore} {
		for _, s := range genericScopes {
			out = append(out, Kind{Family: f, Scope: s})
		}
	}
	for _, id := range rule.Inline() {
		for s := range scopeNames {
			out = append(out, Kind{Family: Rule, Scope: Scope(s), Rule: id})
		}
	}
	return out
}
