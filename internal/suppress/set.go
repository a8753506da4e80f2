package suppress

import (
	"slices"

	"scopelint/internal/rule"
	"scopelint/internal/source"
)

// Set holds the suppression ranges of one file in three independent universes:
// format (disable-*), generic lint (ignore-*) and per-rule lint
// (ignore-<rule>-*). It is immutable once Build returns it. A nil *Set
// suppresses nothing.
type Set struct {
	format []Range
	lint   []Range
	rules  [rule.Count][]Range
}

// IsFormatDisabled reports whether formatting findings at sp are disabled.
func (s *Set) IsFormatDisabled(sp source.Span) bool {
	return s != nil && anyIncludes(s.format, sp)
}

// IsLintIgnored reports whether a generic ignore range covers sp.
func (s *Set) IsLintIgnored(sp source.Span) bool {
	return s != nil && anyIncludes(s.lint, sp)
}

// IsRuleIgnored reports whether an ignore range of rule id covers sp.
func (s *Set) IsRuleIgnored(sp source.Span, id rule.ID) bool {
	if s == nil || !id.Valid() {
		return false
	}
	return anyIncludes(s.rules[id], sp)
}

// Format returns a copy of the format-disable ranges.
func (s *Set) Format() []Range {
	if s == nil {
		return nil
	}
	return slices.Clone(s.format)
}

// Lint returns a copy of the generic lint-ignore ranges.
func (s *Set) Lint() []Range {
	if s == nil {
		return nil
	}
	return slices.Clone(s.lint)
}

// Rule returns a copy of the ranges of rule id.
func (s *Set) Rule(id rule.ID) []Range {
	if s == nil || !id.Valid() {
		return nil
	}
	return slices.Clone(s.rules[id])
}

// Len returns the total number of ranges.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	n := len(s.format) + len(s.lint)
	for i := range s.rules {
		n += len(s.rules[i])
	}
	return n
}

func anyIncludes(ranges []Range, sp source.Span) bool {
	for _, r := range ranges {
		if r.Includes(sp) {
			return true
		}
	}
	return false
}
