package check

import (
	"regexp"
	"strings"

	"scopelint/internal/ast"
	"scopelint/internal/project"
	"scopelint/internal/rule"
)

var (
	constantName = regexp.MustCompile(`^[A-Z0-9_]+$`)
	testName     = regexp.MustCompile(`^test(Fork)?(Fuzz)?(_Revert(If|When|On|Given))?_(\w+)*$`)
)

// ConstantNames: constants and immutables are ALL_CAPS.
type ConstantNames struct{}

func (ConstantNames) ID() rule.ID { return rule.Constant }

func (ConstantNames) Description() string { return "constants and immutables are ALL_CAPS" }

func (ConstantNames) Applies(kind project.FileKind) bool { return kind != project.KindOther }

func (ConstantNames) Check(ctx *Context) {
	check := func(v *ast.Variable) {
		if (v.Constant || v.Immutable) && !constantName.MatchString(v.Name.Name) {
			ctx.Report(rule.Constant, v.Span, v.Name.Name)
		}
	}
	for _, v := range ctx.File.Variables {
		check(v)
	}
	for _, c := range ctx.File.Contracts {
		for _, v := range c.Variables {
			check(v)
		}
	}
}

// TestNames: test functions follow test[Fork][Fuzz][_Revert{If,When,On,Given}]_Description.
type TestNames struct{}

func (TestNames) ID() rule.ID { return rule.Test }

func (TestNames) Description() string {
	return "test functions are named test[Fork][Fuzz][_Revert(If|When|On|Given)]_Description"
}

func (TestNames) Applies(kind project.FileKind) bool { return kind == project.KindTest }

func (TestNames) Check(ctx *Context) {
	for _, c := range ctx.File.Contracts {
		for _, fn := range c.Functions {
			if fn.Kind != ast.FnFunction || !strings.HasPrefix(fn.Name.Name, "test") {
				continue
			}
			if !testName.MatchString(fn.Name.Name) {
				ctx.Report(rule.Test, fn.Span, fn.Name.Name)
			}
		}
	}
}

// IsValidTestName reports whether name passes the test-name rule; names
// not starting with "test" are always valid.
func IsValidTestName(name string) bool {
	return !strings.HasPrefix(name, "test") || testName.MatchString(name)
}

// SrcInternal: internal and private functions start with an underscore.
type SrcInternal struct{}

func (SrcInternal) ID() rule.ID { return rule.Src }

func (SrcInternal) Description() string {
	return "internal and private functions are prefixed with an underscore"
}

func (SrcInternal) Applies(kind project.FileKind) bool { return kind == project.KindSrc }

func (SrcInternal) Check(ctx *Context) {
	for _, c := range ctx.File.Contracts {
		for _, fn := range c.Functions {
			if fn.Kind != ast.FnFunction {
				continue
			}
			if fn.Visibility != ast.VisInternal && fn.Visibility != ast.VisPrivate {
				continue
			}
			if !strings.HasPrefix(fn.Name.Name, "_") {
				ctx.Report(rule.Src, fn.Span, fn.Name.Name)
			}
		}
	}
}

// ScriptRun: a script exposes exactly one public method, `run`; setUp does not count.
type ScriptRun struct{}

const scriptRunMessage = "Scripts must have a single public method named `run` (excluding `setUp`)"

func (ScriptRun) ID() rule.ID { return rule.Script }

func (ScriptRun) Description() string {
	return "scripts have a single public method named run"
}

func (ScriptRun) Applies(kind project.FileKind) bool { return kind == project.KindScript }

func (ScriptRun) Check(ctx *Context) {
	if len(ctx.File.Contracts) == 0 {
		return
	}
	var exposed []*ast.Function
	for _, c := range ctx.File.Contracts {
		if c.Kind == ast.ContractInterface {
			continue
		}
		for _, fn := range c.Functions {
			if fn.Kind == ast.FnFunction && fn.Visibility.Exposed() && fn.Name.Name != "setUp" {
				exposed = append(exposed, fn)
			}
		}
	}
	if len(exposed) == 1 && exposed[0].Name.Name == "run" {
		return
	}
	ctx.Report(rule.Script, ctx.File.Contracts[0].Span, scriptRunMessage)
}
