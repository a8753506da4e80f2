package directive

import (
	"strings"
	"unicode"

	"scopelint/internal/source"
	"scopelint/internal/token"
)

// Prefix marks a comment as carrying a directive.
const Prefix = "scopelint:"

// Token is one directive found in a file: the span of the comment that holds
// it and its parsed kind.
type Token struct {
	Span source.Span
	Kind Kind
}

// Malformed is a directive comment whose text did not parse.
// Text is everything after the prefix, trailing prose included.
type Malformed struct {
	Span source.Span
	Text string
	Err  error
}

// Collect extracts directives from the comment trivia of toks, in discovery order.
// A comment is a directive when its body, after optional whitespace, starts
// with Prefix. Only the first word after the prefix is parsed so a directive
// can be followed by prose.
func Collect(toks []token.Token) ([]Token, []Malformed) {
	var (
		out []Token
		bad []Malformed
	)
	for i := range toks {
		for _, tv := range toks[i].Leading {
			if !tv.IsComment() {
				continue
			}
			word, full, ok := directiveText(tv.Body())
			if !ok {
				continue
			}
			kind, err := Parse(word)
			if err != nil {
				bad = append(bad, Malformed{Span: tv.Span, Text: full, Err: err})
				continue
			}
			out = append(out, Token{Span: tv.Span, Kind: kind})
		}
	}
	return out, bad
}

// directiveText returns the first word after the prefix and the whole trimmed remainder.
func directiveText(body string) (word, full string, ok bool) {
	rest, ok := strings.CutPrefix(strings.TrimLeftFunc(body, unicode.IsSpace), Prefix)
	if !ok {
		return "", "", false
	}
	full = strings.TrimSpace(rest)
	word = full
	if i := strings.IndexFunc(full, unicode.IsSpace); i >= 0 {
		word = full[:i]
	}
	return word, full, true
}
