package diagfmt

import (
	"encoding/json"
	"io"

	"scopelint/internal/diag"
)

// LocationJSON locates a finding.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Column    uint32 `json:"column,omitempty"`
}

// FindingJSON is one finding.
type FindingJSON struct {
	Rule       string       `json:"rule"`
	Label      string       `json:"label"`
	Severity   string       `json:"severity"`
	Message    string       `json:"message"`
	Location   LocationJSON `json:"location"`
	Suppressed bool         `json:"suppressed,omitempty"`
	Text       string       `json:"text"`
}

// ReportJSON is the root of the JSON output.
type ReportJSON struct {
	Valid      bool          `json:"valid"`
	Findings   []FindingJSON `json:"findings"`
	Count      int           `json:"count"`
	Files      int           `json:"files"`
	Suppressed int           `json:"suppressed"`
}

// BuildReportJSON converts report without serialising it.
func BuildReportJSON(report *diag.Report, opts JSONOpts) ReportJSON {
	var items []diag.Item
	if opts.IncludeSuppressed {
		items = report.Items()
	} else {
		items = report.Unsuppressed()
	}
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	st := report.Stats()
	out := ReportJSON{
		Valid:      st.Surfaced == 0,
		Findings:   make([]FindingJSON, 0, len(items)),
		Files:      st.Files,
		Suppressed: st.Suppressed,
	}
	for _, it := range items {
		f := it.Finding
		out.Findings = append(out.Findings, FindingJSON{
			Rule:     f.Rule.String(),
			Label:    f.Rule.Label(),
			Severity: f.Severity.String(),
			Message:  f.Message,
			Location: LocationJSON{
				File:      it.Path,
				StartByte: f.Span.Start,
				EndByte:   f.Span.End,
				Line:      it.Line,
				Column:    it.Column,
			},
			Suppressed: it.Suppressed,
			Text:       it.String(),
		})
	}
	out.Count = len(out.Findings)
	return out
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, report *diag.Report, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReportJSON(report, opts))
}
