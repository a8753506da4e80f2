package check

import (
	"fmt"

	"scopelint/internal/diag"
	"scopelint/internal/directive"
	"scopelint/internal/lexer"
	"scopelint/internal/parser"
	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/source"
	"scopelint/internal/suppress"
)

// Options tune a single-file run.
type Options struct {
	// Rules to apply; nil means Default().
	Rules []Rule
	// MaxParseErrors caps parse findings per file; 0 means no cap.
	MaxParseErrors uint
}

// Input describes one file to lint.
type Input struct {
	// Path is the display path, e.g. "./src/Counter.sol".
	Path      string
	File      *source.File
	Kind      project.FileKind
	Overrides []rule.ID
}

// Result is what one file produced. Directives are kept so that a cached
// result can rebuild its suppression set without lexing again.
type Result struct {
	Directives []directive.Token
	Set        *suppress.Set
	Findings   []diag.Finding
}

// Info returns the report entry header for this input and result.
func (in Input) Info(set *suppress.Set) diag.FileInfo {
	return diag.FileInfo{Path: in.Path, File: in.File, Set: set, Overrides: in.Overrides}
}

// Lint runs the whole per-file pipeline and returns its findings, sorted.
// It never fails: lexer and parser problems become rule.Parse findings.
func Lint(in Input, opts Options) Result {
	bag := diag.NewBag(0)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	toks := lexer.Tokenize(in.File, lexer.Options{Reporter: lexReporter{rep}})

	dirs, malformed := directive.Collect(toks)
	for _, m := range malformed {
		diag.ReportError(rep, rule.Directive, m.Span, fmt.Sprintf("Invalid inline config item: %s", m.Text))
	}
	set := suppress.Build(in.File.Content, dirs)

	tree := parser.ParseFile(in.File, toks, parser.Options{MaxErrors: opts.MaxParseErrors, Reporter: rep})

	rules := opts.Rules
	if rules == nil {
		rules = Default()
	}
	ctx := &Context{File: tree, Kind: in.Kind, Reporter: rep}
	for _, r := range rules {
		if r.Applies(in.Kind) {
			r.Check(ctx)
		}
	}

	bag.Sort()
	return Result{Directives: dirs, Set: set, Findings: bag.Items()}
}

// Run lints in and records the result in report.
func Run(report *diag.Report, in Input, opts Options) Result {
	res := Lint(in, opts)
	report.AddMany(in.Info(res.Set), res.Findings)
	return res
}

// lexReporter adapts lexer errors to parse findings.
type lexReporter struct{ next diag.Reporter }

func (r lexReporter) Report(_ string, sp source.Span, msg string) {
	diag.ReportError(r.next, rule.Parse, sp, msg)
}
