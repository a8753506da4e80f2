package parser

import (
	"slices"
	"strings"

	"scopelint/internal/ast"
	"scopelint/internal/diag"
	"scopelint/internal/rule"
	"scopelint/internal/source"
	"scopelint/internal/token"
)

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

// peekN смотрит на n токенов вперёд, не выходя за EOF.
func (p *Parser) peekN(n int) token.Token {
	i := min(p.pos+n, len(p.toks)-1)
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) atWord(word string) bool { return p.peek().IsWord(word) }

// advance: съедает следующий токен и обновляет lastSpan. EOF never gets consumed.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

// mark/reset give the parser cheap backtracking for ambiguous statements.
func (p *Parser) mark() (int, source.Span) { return p.pos, p.lastSpan }

func (p *Parser) reset(pos int, last source.Span) {
	p.pos = pos
	p.lastSpan = last
}

// expect: ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) expectWord(word, msg string) bool {
	if p.atWord(word) {
		p.advance()
		return true
	}
	p.err(msg)
	return false
}

func (p *Parser) expectIdent(msg string) (token.Token, bool) {
	return p.expect(token.Ident, msg)
}

// diagnosticSpan: на EOF указываем сразу за последним съеденным токеном.
func (p *Parser) diagnosticSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) err(msg string) {
	p.report(p.diagnosticSpan(), msg)
}

func (p *Parser) report(sp source.Span, msg string) {
	p.errors++
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors > 0 && p.errors > p.opts.MaxErrors {
		return
	}
	diag.ReportError(p.opts.Reporter, rule.Parse, sp, msg)
}

// skipBalanced consumes an opening token and everything up to its matching closer.
// Brackets of other kinds are balanced along the way.
func (p *Parser) skipBalanced() {
	if !p.atOr(token.LParen, token.LBrace, token.LBracket) {
		return
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
			if depth == 0 {
				return
			}
		}
	}
	p.err("unbalanced brackets")
}

// skipUntil consumes tokens until one of kinds shows up at bracket depth 0.
// It also stops before an unmatched closing bracket so callers can recover.
func (p *Parser) skipUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if slices.Contains(kinds, k) {
			return
		}
		switch k {
		case token.LParen, token.LBrace, token.LBracket:
			p.skipBalanced()
			continue
		case token.RParen, token.RBrace, token.RBracket:
			return
		}
		p.advance()
	}
}

func (p *Parser) spanFrom(start token.Token) source.Span {
	return start.Span.Cover(p.lastSpan)
}

func identOf(tok token.Token) ast.Ident {
	return ast.Ident{Name: tok.Text, Span: tok.Span}
}

func unquote(text string) string {
	for _, prefix := range []string{"hex", "unicode"} {
		text = strings.TrimPrefix(text, prefix)
	}
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		return text[1 : len(text)-1]
	}
	return text
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	if tok.Text != "" {
		return "'" + tok.Text + "'"
	}
	return tok.Kind.String()
}
