// Package diagfmt renders a diag.Report as text, JSON or SARIF.
package diagfmt

// TextOpts configures the text renderer.
type TextOpts struct {
	Color bool
	// Summary appends a one-line count of surfaced and suppressed findings.
	Summary bool
}

// JSONOpts configures the JSON renderer.
type JSONOpts struct {
	// IncludeSuppressed also lists suppressed findings, flagged as such.
	IncludeSuppressed bool
	// Max truncates the list; 0 means everything.
	Max int
}

// SarifRunMeta describes the tool in a SARIF log.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}
