package check

import (
	"scopelint/internal/ast"
	"scopelint/internal/diag"
	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

// Context is what a rule sees for one file.
type Context struct {
	File     *ast.File
	Kind     project.FileKind
	Reporter diag.Reporter
}

// Report emits an error-level finding.
func (c *Context) Report(id rule.ID, sp source.Span, msg string) {
	diag.ReportError(c.Reporter, id, sp, msg)
}

// Rule is a single convention check.
type Rule interface {
	ID() rule.ID
	Description() string
	// Applies reports whether the rule runs on files of the given kind.
	Applies(kind project.FileKind) bool
	Check(ctx *Context)
}

// Default returns the full rule set in a stable order.
func Default() []Rule {
	return []Rule{
		ConstantNames{},
		ScriptRun{},
		SrcInternal{},
		SpdxHeader{},
		TestNames{},
		VariableNames{},
		ErrorPrefix{},
		EventPrefix{},
		UnusedImports{},
		Eip712Typehash{},
	}
}

// Select keeps the rules whose IDs are listed; an empty list keeps everything.
func Select(rules []Rule, ids []rule.ID) []Rule {
	if len(ids) == 0 {
		return rules
	}
	out := make([]Rule, 0, len(ids))
	for _, r := range rules {
		for _, id := range ids {
			if r.ID() == id {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
