package diag

import (
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

type dedupKey struct {
	id    rule.ID
	sev   Severity
	file  source.FileID
	start uint32
	end   uint32
	msg   string
}

// DedupReporter wraps another Reporter and suppresses duplicate findings
// with the same rule, severity, span and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique findings to next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(id rule.ID, sev Severity, sp source.Span, msg string) {
	if r == nil {
		return
	}
	key := dedupKey{
		id:    id,
		sev:   sev,
		file:  sp.File,
		start: sp.Start,
		end:   sp.End,
		msg:   msg,
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(id, sev, sp, msg)
	}
}
