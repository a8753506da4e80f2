package check

import (
	"fmt"

	"scopelint/internal/ast"
	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/token"
)

// UnusedImports flags imported names that never appear outside import statements.
// Comments do not count as a use since they never reach the token stream.
type UnusedImports struct{}

func (UnusedImports) ID() rule.ID { return rule.Import }

func (UnusedImports) Description() string { return "every imported symbol is used" }

func (UnusedImports) Applies(kind project.FileKind) bool { return kind != project.KindOther }

func (UnusedImports) Check(ctx *Context) {
	f := ctx.File
	if len(f.Imports) == 0 {
		return
	}
	used := usedIdents(f)
	for _, im := range f.Imports {
		for _, b := range im.Bindings() {
			if b.IsZero() {
				continue
			}
			if _, ok := used[b.Name]; !ok {
				ctx.Report(rule.Import, b.Span, fmt.Sprintf("Unused import: '%s'", b.Name))
			}
		}
	}
}

func usedIdents(f *ast.File) map[string]struct{} {
	used := make(map[string]struct{})
	inImport := func(tok token.Token) bool {
		for _, im := range f.Imports {
			if tok.Span.Within(im.Span) {
				return true
			}
		}
		return false
	}
	for _, tok := range f.Tokens {
		if tok.Kind != token.Ident || inImport(tok) {
			continue
		}
		used[tok.Text] = struct{}{}
	}
	return used
}
