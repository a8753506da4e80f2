package parser

import (
	"slices"

	"scopelint/internal/ast"
	"scopelint/internal/diag"
	"scopelint/internal/source"
	"scopelint/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks   []token.Token // поток токенов, последний всегда EOF
	pos    int
	file   *ast.File
	opts   Options
	errors uint
	// span последнего съеденного токена для лучшей диагностики
	lastSpan source.Span
}

// ParseFile builds the declaration-level tree of one file from its tokens.
// toks must come from lexer.Tokenize so that it ends with EOF.
// Syntax errors are reported as rule.Parse findings; the parser recovers
// and keeps going, so the returned tree is always usable.
func ParseFile(file *source.File, toks []token.Token, opts Options) *ast.File {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var end uint32
		if file != nil {
			end = file.Len()
		}
		toks = append(slices.Clip(toks), token.Token{Kind: token.EOF, Span: source.Span{Start: end, End: end}})
	}
	p := Parser{
		toks: toks,
		file: ast.NewFile(file, toks),
		opts: opts,
	}
	if file != nil {
		p.lastSpan = file.Span(0, 0)
	}
	p.parseItems()
	return p.file
}

func (p *Parser) Errors() uint { return p.errors }

// parseItems: основной цикл верхнего уровня: пока не EOF - parseItem.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		before := p.pos
		if !p.parseItem() {
			p.resyncTop()
		}
		if p.pos == before {
			p.advance()
		}
	}
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() bool {
	f := p.file
	switch tok := p.peek(); {
	case tok.Kind == token.KwPragma:
		start := p.advance()
		p.skipUntil(token.Semicolon)
		p.expect(token.Semicolon, "expected ';' after pragma")
		sp := p.spanFrom(start)
		f.Pragmas = append(f.Pragmas, &ast.Pragma{Span: sp, Text: f.Text(sp)})
		return true
	case tok.Kind == token.KwImport:
		im, ok := p.parseImport()
		if im != nil {
			f.Imports = append(f.Imports, im)
		}
		return ok
	case tok.Kind == token.KwContract, tok.Kind == token.KwInterface,
		tok.Kind == token.KwLibrary, tok.Kind == token.KwAbstract:
		c, ok := p.parseContract()
		if c != nil {
			f.Contracts = append(f.Contracts, c)
		}
		return ok
	case tok.Kind == token.KwFunction:
		fn, ok := p.parseFunction(ast.FnFunction)
		if fn != nil {
			f.Functions = append(f.Functions, fn)
		}
		return ok
	case tok.Kind == token.KwEvent:
		ev, ok := p.parseEvent()
		if ev != nil {
			f.Events = append(f.Events, ev)
		}
		return ok
	case p.atErrorDef():
		e, ok := p.parseErrorDef()
		if e != nil {
			f.Errors = append(f.Errors, e)
		}
		return ok
	case tok.Kind == token.KwStruct:
		st, ok := p.parseStruct()
		if st != nil {
			f.Structs = append(f.Structs, st)
		}
		return ok
	case tok.Kind == token.KwEnum:
		_, ok := p.parseEnum()
		return ok
	case tok.Kind == token.KwUsing, tok.Kind == token.KwType:
		p.skipUntil(token.Semicolon)
		_, ok := p.expect(token.Semicolon, "expected ';'")
		return ok
	case tok.Kind == token.Semicolon:
		p.advance()
		return true
	default:
		if v, ok := p.tryStateVariable(); ok {
			f.Variables = append(f.Variables, v)
			return true
		}
		p.err("unexpected token " + describe(tok) + " at top level")
		return false
	}
}

// resyncTop пропускает токены до следующего начала top-level конструкции.
func (p *Parser) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				p.advance()
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		default:
			if depth == 0 && isTopLevelStarter(p.peek().Kind) && p.pos > 0 {
				return
			}
		}
		p.advance()
	}
}

func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwPragma, token.KwImport, token.KwContract, token.KwInterface,
		token.KwLibrary, token.KwAbstract:
		return true
	default:
		return false
	}
}
