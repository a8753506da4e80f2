// Package diag defines the finding model shared by every rule and the
// report that decides which findings are surfaced.
//
// # Data model
//
// Finding is the central record:
//
//   - Rule – the rule.ID that produced it; decides which suppression universe applies.
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Span – the source.Span the finding points at.
//   - Message – short human oriented text, e.g. "Error 'Foo' should be prefixed with 'Counter_'".
//
// Findings are immutable values. Whether a finding is suppressed is never
// stored on it: Report computes it when it is asked.
//
// # Emitting findings
//
// Rules emit through a Reporter. BagReporter collects into a per-file Bag,
// DedupReporter drops repeated (rule, span, message) triples before they
// reach the bag.
//
// # Report
//
// Report accumulates the findings of every file of a run together with the
// file's suppress.Set and the rules the project configuration turns off for it.
// It is safe for concurrent use. Rendering happens in WriteTo (plain lines)
// or in internal/diagfmt (text, json, sarif).
package diag
