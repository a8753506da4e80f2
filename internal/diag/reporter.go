package diag

import (
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

// Reporter is the minimal contract rules emit findings through.
// Implementations: BagReporter, DedupReporter, NopReporter.
type Reporter interface {
	Report(id rule.ID, sev Severity, sp source.Span, msg string)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(id rule.ID, sev Severity, sp source.Span, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Finding{Rule: id, Severity: sev, Span: sp, Message: msg})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(rule.ID, Severity, source.Span, string) {}

// ReportError is a shortcut for SevError findings.
func ReportError(r Reporter, id rule.ID, sp source.Span, msg string) {
	if r != nil {
		r.Report(id, SevError, sp, msg)
	}
}
