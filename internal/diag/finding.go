package diag

import (
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

// Finding is one rule violation.
type Finding struct {
	Rule     rule.ID
	Severity Severity
	Span     source.Span
	Message  string
}

// New returns an error-level finding.
func New(id rule.ID, sp source.Span, msg string) Finding {
	return Finding{Rule: id, Severity: SevError, Span: sp, Message: msg}
}

// compareFindings orders by start, end, rule and message.
func compareFindings(a, b Finding) int {
	switch {
	case a.Span.Start != b.Span.Start:
		return cmpUint(a.Span.Start, b.Span.Start)
	case a.Span.End != b.Span.End:
		return cmpUint(a.Span.End, b.Span.End)
	case a.Rule != b.Rule:
		return cmpUint(uint32(a.Rule), uint32(b.Rule))
	case a.Message < b.Message:
		return -1
	case a.Message > b.Message:
		return 1
	}
	return 0
}

func cmpUint(a, b uint32) int {
	if a < b {
		return -1
	}
	return 1
}
