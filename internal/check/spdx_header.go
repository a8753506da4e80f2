package check

import (
	"strings"

	"scopelint/internal/project"
	"scopelint/internal/rule"
)

const spdxPrefix = "// SPDX-License-Identifier:"

// SpdxHeader: source files open with an SPDX license comment.
type SpdxHeader struct{}

func (SpdxHeader) ID() rule.ID { return rule.Src }

func (SpdxHeader) Description() string {
	return "source files start with an SPDX-License-Identifier comment"
}

func (SpdxHeader) Applies(kind project.FileKind) bool { return kind == project.KindSrc }

func (SpdxHeader) Check(ctx *Context) {
	src := ctx.File.Source
	if src == nil || HasSpdxHeader(string(src.Content)) {
		return
	}
	ctx.Report(rule.Src, src.Span(0, 0), "Missing SPDX-License-Identifier header")
}

// HasSpdxHeader scans the leading run of blank and comment lines for the
// license identifier; the first code line ends the search.
func HasSpdxHeader(text string) bool {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "//") && !strings.HasPrefix(line, "/*") {
			return false
		}
		if strings.HasPrefix(line, spdxPrefix) {
			return true
		}
	}
	return false
}
