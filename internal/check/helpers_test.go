package check

import (
	"testing"

	"scopelint/internal/diag"
	"scopelint/internal/project"
	"scopelint/internal/source"
)

type finding struct {
	Line    uint32
	Message string
}

func lintWith(t *testing.T, kind project.FileKind, src string, rules ...Rule) []finding {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("Fixture.sol", []byte(src)))
	res := Lint(Input{Path: "./Fixture.sol", File: file, Kind: kind}, Options{Rules: rules})
	out := make([]finding, 0, len(res.Findings))
	for _, f := range res.Findings {
		out = append(out, finding{Line: file.Position(f.Span.Start).Line, Message: f.Message})
	}
	return out
}

func messages(fs []finding) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Message)
	}
	return out
}

func reportLines(t *testing.T, r *diag.Report) []string {
	t.Helper()
	var out []string
	for _, it := range r.Unsuppressed() {
		out = append(out, it.String())
	}
	return out
}
