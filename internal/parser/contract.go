package parser

import (
	"scopelint/internal/ast"
	"scopelint/internal/token"
)

func (p *Parser) parseContract() (*ast.Contract, bool) {
	start := p.peek()
	c := &ast.Contract{}
	if p.at(token.KwAbstract) {
		p.advance()
		c.Kind = ast.ContractAbstract
		if _, ok := p.expect(token.KwContract, "expected 'contract' after 'abstract'"); !ok {
			return nil, false
		}
	} else {
		switch p.advance().Kind {
		case token.KwInterface:
			c.Kind = ast.ContractInterface
		case token.KwLibrary:
			c.Kind = ast.ContractLibrary
		default:
			c.Kind = ast.ContractPlain
		}
	}

	name, ok := p.expectIdent("expected " + c.Kind.String() + " name")
	if !ok {
		return nil, false
	}
	c.Name = identOf(name)

	if p.at(token.KwIs) {
		p.advance()
		for p.at(token.Ident) {
			base := p.advance()
			for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
				p.advance()
				base.Span = base.Span.Cover(p.advance().Span)
			}
			c.Bases = append(c.Bases, identOf(base))
			if p.at(token.LParen) {
				p.skipBalanced()
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	open, ok := p.expect(token.LBrace, "expected '{' to open "+c.Kind.String()+" body")
	if !ok {
		return nil, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		if !p.parseMember(c) {
			p.resyncMember()
		}
		if p.pos == before {
			p.advance()
		}
	}
	_, ok = p.expect(token.RBrace, "expected '}' to close "+c.Kind.String()+" body")
	c.BodySpan = p.spanFrom(open)
	c.Span = p.spanFrom(start)
	return c, ok
}

// parseMember разбирает одно объявление внутри тела контракта.
func (p *Parser) parseMember(c *ast.Contract) bool {
	switch tok := p.peek(); {
	case tok.Kind == token.KwFunction:
		return p.appendFn(&c.Functions, ast.FnFunction)
	case tok.Kind == token.KwConstructor:
		return p.appendFn(&c.Functions, ast.FnConstructor)
	case tok.Kind == token.KwModifier:
		return p.appendFn(&c.Modifiers, ast.FnModifier)
	case tok.IsWord("fallback") && p.peekN(1).Kind == token.LParen:
		return p.appendFn(&c.Functions, ast.FnFallback)
	case tok.IsWord("receive") && p.peekN(1).Kind == token.LParen:
		return p.appendFn(&c.Functions, ast.FnReceive)
	case tok.Kind == token.KwEvent:
		ev, ok := p.parseEvent()
		if ev != nil {
			c.Events = append(c.Events, ev)
		}
		return ok
	case p.atErrorDef():
		e, ok := p.parseErrorDef()
		if e != nil {
			c.Errors = append(c.Errors, e)
		}
		return ok
	case tok.Kind == token.KwStruct:
		st, ok := p.parseStruct()
		if st != nil {
			c.Structs = append(c.Structs, st)
		}
		return ok
	case tok.Kind == token.KwEnum:
		name, ok := p.parseEnum()
		if !name.IsZero() {
			c.Enums = append(c.Enums, name)
		}
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
			c.Variables = append(c.Variables, v)
			return true
		}
		p.err("unexpected token " + describe(tok) + " in " + c.Kind.String() + " body")
		return false
	}
}

func (p *Parser) appendFn(dst *[]*ast.Function, kind ast.FnKind) bool {
	fn, ok := p.parseFunction(kind)
	if fn != nil {
		*dst = append(*dst, fn)
	}
	return ok
}

// resyncMember пропускает до конца текущего объявления, не выходя из тела контракта.
func (p *Parser) resyncMember() {
	p.skipUntil(token.Semicolon, token.LBrace)
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		p.skipBalanced()
	}
}

func (p *Parser) atErrorDef() bool {
	return p.atWord("error") && p.peekN(1).Kind == token.Ident && p.peekN(2).Kind == token.LParen
}

func (p *Parser) parseErrorDef() (*ast.ErrorDef, bool) {
	start := p.advance()
	name := p.advance()
	e := &ast.ErrorDef{Name: identOf(name)}
	e.Params = p.parseParams()
	_, ok := p.expect(token.Semicolon, "expected ';' after error declaration")
	e.Span = p.spanFrom(start)
	return e, ok
}

func (p *Parser) parseEvent() (*ast.EventDef, bool) {
	start := p.advance()
	name, ok := p.expectIdent("expected event name")
	if !ok {
		return nil, false
	}
	ev := &ast.EventDef{Name: identOf(name)}
	ev.Params = p.parseParams()
	if p.at(token.KwAnonymous) {
		p.advance()
		ev.Anonymous = true
	}
	_, ok = p.expect(token.Semicolon, "expected ';' after event declaration")
	ev.Span = p.spanFrom(start)
	return ev, ok
}

func (p *Parser) parseStruct() (*ast.Struct, bool) {
	start := p.advance()
	name, ok := p.expectIdent("expected struct name")
	if !ok {
		return nil, false
	}
	st := &ast.Struct{Name: identOf(name)}
	if _, ok := p.expect(token.LBrace, "expected '{' after struct name"); !ok {
		return nil, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		field, fok := p.parseParam()
		if !fok {
			p.err("expected struct field")
			p.skipUntil(token.Semicolon, token.RBrace)
		} else {
			st.Fields = append(st.Fields, field)
		}
		if p.at(token.Semicolon) {
			p.advance()
		} else if !p.at(token.RBrace) {
			p.err("expected ';' after struct field")
			p.skipUntil(token.Semicolon, token.RBrace)
		}
		if p.pos == before {
			p.advance()
		}
	}
	_, ok = p.expect(token.RBrace, "expected '}' to close struct")
	st.Span = p.spanFrom(start)
	return st, ok
}

func (p *Parser) parseEnum() (ast.Ident, bool) {
	p.advance()
	name, ok := p.expectIdent("expected enum name")
	if !ok {
		return ast.Ident{}, false
	}
	if !p.at(token.LBrace) {
		p.err("expected '{' after enum name")
		return identOf(name), false
	}
	p.skipBalanced()
	return identOf(name), true
}
