package lexer

import (
	"scopelint/internal/token"
)

// Greedy: 4-byte, then 3-byte, then 2-byte, then single-byte operators.
var (
	ops4 = []string{">>>="}
	ops3 = []string{">>>", "<<=", ">>="}
	ops2 = []string{
		"=>", "==", "!=", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=",
		"%=", "|=", "&=", "^=", "<<", ">>", "**", "->", ":=",
	}
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, group := range [][]string{ops4, ops3, ops2} {
		for _, op := range group {
			if lx.tryString(op) {
				if op == "=>" {
					return emit(token.FatArrow)
				}
				return emit(token.Operator)
			}
		}
	}

	switch ch := lx.cursor.Bump(); ch {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '?':
		return emit(token.Question)
	case ':':
		return emit(token.Colon)
	case '=':
		return emit(token.Assign)
	case '+', '-', '*', '/', '%', '!', '~', '<', '>', '&', '|', '^':
		return emit(token.Operator)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.report(ErrUnknownChar, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
}
