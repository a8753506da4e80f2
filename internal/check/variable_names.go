package check

import (
	"fmt"
	"strings"

	"scopelint/internal/ast"
	"scopelint/internal/project"
	"scopelint/internal/rule"
)

// VariableNames enforces underscore placement:
// parameters and locals start with '_', state variables and storage
// references do not.
type VariableNames struct{}

func (VariableNames) ID() rule.ID { return rule.Variable }

func (VariableNames) Description() string {
	return "parameters and locals are prefixed with an underscore, state and storage variables are not"
}

func (VariableNames) Applies(kind project.FileKind) bool {
	return kind.Is(project.KindSrc, project.KindTest, project.KindHandler, project.KindScript)
}

func (VariableNames) Check(ctx *Context) {
	f := ctx.File
	for _, fn := range f.Functions {
		checkFunctionVars(ctx, fn)
	}
	for _, c := range f.Contracts {
		for _, v := range c.Variables {
			if strings.HasPrefix(v.Name.Name, "_") {
				ctx.Report(rule.Variable, v.Name.Span,
					fmt.Sprintf("State variable '%s' should NOT have underscore prefix", v.Name.Name))
			}
		}
		for _, fn := range c.Functions {
			checkFunctionVars(ctx, fn)
		}
		for _, m := range c.Modifiers {
			checkFunctionVars(ctx, m)
		}
	}
}

func checkFunctionVars(ctx *Context, fn *ast.Function) {
	for _, p := range fn.Params {
		if p.Name.IsZero() {
			continue
		}
		if msg, bad := underscoreViolation(p, "Storage parameter", "Parameter"); bad {
			ctx.Report(rule.Variable, p.Span, msg)
		}
	}
	if !fn.HasBody() {
		return
	}
	for st, v := range ctx.File.Stmts.LocalVars(fn.Body) {
		if msg, bad := underscoreViolation(v, "Storage variable", "Local variable"); bad {
			ctx.Report(rule.Variable, st.Span, msg)
		}
	}
}

func underscoreViolation(p *ast.Param, storageLabel, plainLabel string) (string, bool) {
	underscored := strings.HasPrefix(p.Name.Name, "_")
	if p.Location == ast.LocStorage {
		if underscored {
			return fmt.Sprintf("%s '%s' should NOT have underscore prefix", storageLabel, p.Name.Name), true
		}
		return "", false
	}
	if !underscored {
		return fmt.Sprintf("%s '%s' should have underscore prefix", plainLabel, p.Name.Name), true
	}
	return "", false
}
