package lexer

import (
	"scopelint/internal/source"
)

// Reporter is a thin sink for lexical errors so the lexer does not depend on diag.
// The caller decides how the errors are surfaced.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // may be nil: errors are dropped and lexing continues
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}

// Error kinds passed to Reporter.
const (
	ErrUnterminatedComment = "UnterminatedComment"
	ErrUnterminatedString  = "UnterminatedString"
	ErrBadNumber           = "BadNumber"
	ErrUnknownChar         = "UnknownChar"
)
