package diag

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"scopelint/internal/rule"
	"scopelint/internal/source"
	"scopelint/internal/suppress"
)

// FileInfo is what the report needs to resolve the findings of one file.
type FileInfo struct {
	// Path is the display path used in rendered lines and for ordering.
	Path string
	// File resolves line numbers; may be nil for files that failed to load.
	File *source.File
	// Set holds the inline suppressions; nil suppresses nothing.
	Set *suppress.Set
	// Overrides lists rules turned off for the whole file by the project config.
	Overrides []rule.ID
}

// Item is one finding with everything resolved at query time.
type Item struct {
	Path       string
	Line       uint32 // 1-based; 0 when unknown
	Column     uint32
	Finding    Finding
	Suppressed bool
	// External is set when the suppression came from the project config
	// rather than from an inline directive.
	External bool
}

// String renders the item the way the report prints it.
func (it Item) String() string {
	f := it.Finding
	if f.Rule.FileLevel() || it.Line == 0 {
		return fmt.Sprintf("Invalid %s in %s: %s", f.Rule.Label(), it.Path, f.Message)
	}
	return fmt.Sprintf("Invalid %s in %s on line %d: %s", f.Rule.Label(), it.Path, it.Line, f.Message)
}

type entry struct {
	info     FileInfo
	findings []Finding
}

// Suppressed reports whether f is silenced by the file's suppressions.
// Formatting findings only honour disable-*; every other rule honours the
// generic ignore-* ranges, its own ignore-<rule>-* ranges and the project overrides.
func (e *entry) suppressed(f Finding) bool {
	ok, _ := e.suppression(f)
	return ok
}

func (e *entry) suppression(f Finding) (suppressed, external bool) {
	if f.Rule == rule.Format {
		return e.info.Set.IsFormatDisabled(f.Span), false
	}
	if slices.Contains(e.info.Overrides, f.Rule) {
		return true, true
	}
	return e.info.Set.IsLintIgnored(f.Span) || e.info.Set.IsRuleIgnored(f.Span, f.Rule), false
}

// Report accumulates findings for a whole run. It is append-only and safe
// for concurrent use; suppression is evaluated lazily on every query.
type Report struct {
	mu      sync.Mutex
	entries []*entry
	byPath  map[string]int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{byPath: make(map[string]int)}
}

func (r *Report) entryLocked(info FileInfo) *entry {
	if i, ok := r.byPath[info.Path]; ok {
		return r.entries[i]
	}
	r.byPath[info.Path] = len(r.entries)
	e := &entry{info: info}
	r.entries = append(r.entries, e)
	return e
}

// AddFile registers a file without findings so it counts in Stats.
func (r *Report) AddFile(info FileInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entryLocked(info)
}

// Add appends one finding of the file described by info.
func (r *Report) Add(info FileInfo, f Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(info)
	e.findings = append(e.findings, f)
}

// AddMany appends findings of the file described by info.
func (r *Report) AddMany(info FileInfo, fs []Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(info)
	e.findings = append(e.findings, fs...)
}

// Items returns every finding, suppressed or not, in render order.
func (r *Report) Items() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Item
	for _, e := range r.entries {
		for _, f := range e.findings {
			it := Item{Path: e.info.Path, Finding: f}
			it.Suppressed, it.External = e.suppression(f)
			if e.info.File != nil {
				pos := e.info.File.Position(f.Span.Start)
				it.Line, it.Column = pos.Line, pos.Col
			}
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b Item) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return compareFindings(a.Finding, b.Finding)
	})
	return out
}

// Unsuppressed returns the findings that are surfaced, in render order.
func (r *Report) Unsuppressed() []Item {
	all := r.Items()
	out := all[:0]
	for _, it := range all {
		if !it.Suppressed {
			out = append(out, it)
		}
	}
	return out
}

// IsValid reports whether every finding is suppressed.
func (r *Report) IsValid() bool {
	return r.valid(func(rule.ID) bool { return true })
}

// LintValid is IsValid restricted to everything but formatting findings.
func (r *Report) LintValid() bool {
	return r.valid(func(id rule.ID) bool { return id != rule.Format })
}

// FormatValid is IsValid restricted to formatting findings.
func (r *Report) FormatValid() bool {
	return r.valid(func(id rule.ID) bool { return id == rule.Format })
}

func (r *Report) valid(match func(rule.ID) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		for _, f := range e.findings {
			if match(f.Rule) && !e.suppressed(f) {
				return false
			}
		}
	}
	return true
}

// WriteTo writes one line per surfaced finding.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, it := range r.Unsuppressed() {
		m, err := fmt.Fprintln(bw, it.String())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Stats summarises a report.
type Stats struct {
	Files      int
	Findings   int
	Surfaced   int
	Suppressed int
	ByRule     [rule.Count]int // surfaced findings per rule
}

// Stats counts findings. Suppression is evaluated the same way as for rendering.
func (r *Report) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := Stats{Files: len(r.entries)}
	for _, e := range r.entries {
		for _, f := range e.findings {
			st.Findings++
			if e.suppressed(f) {
				st.Suppressed++
				continue
			}
			st.Surfaced++
			if f.Rule.Valid() {
				st.ByRule[f.Rule]++
			}
		}
	}
	return st
}
