package parser

import (
	"scopelint/internal/ast"
	"scopelint/internal/token"
)

// parseFunction разбирает function/constructor/modifier/fallback/receive.
// The header is scanned attribute by attribute until the body or ';'.
func (p *Parser) parseFunction(kind ast.FnKind) (*ast.Function, bool) {
	start := p.advance()
	fn := &ast.Function{Kind: kind}

	switch kind {
	case ast.FnFunction:
		// `function () external` is the pre-0.6 unnamed fallback.
		if p.at(token.Ident) {
			fn.Name = identOf(p.advance())
		}
	case ast.FnModifier:
		name, ok := p.expectIdent("expected modifier name")
		if !ok {
			return nil, false
		}
		fn.Name = identOf(name)
	case ast.FnFallback, ast.FnReceive:
		fn.Name = identOf(start)
	}

	if p.at(token.LParen) {
		fn.Params = p.parseParams()
	} else if kind != ast.FnModifier {
		p.err("expected '(' after " + kind.String() + " name")
		return nil, false
	}

	p.parseFnAttrs(fn)

	ok := true
	switch {
	case p.at(token.LBrace):
		fn.Body = p.parseBlock(ast.StmtBlock)
	case p.at(token.Semicolon):
		p.advance()
	default:
		p.err("expected '{' or ';' after " + kind.String() + " header")
		ok = false
	}
	fn.Span = p.spanFrom(start)
	return fn, ok
}

func (p *Parser) parseFnAttrs(fn *ast.Function) {
	for {
		switch tok := p.peek(); tok.Kind {
		case token.KwPublic, token.KwExternal, token.KwInternal, token.KwPrivate:
			fn.Visibility = visibilityOf(p.advance().Kind)
		case token.KwPure, token.KwView, token.KwPayable, token.KwConstant:
			p.advance()
		case token.KwVirtual:
			p.advance()
			fn.Virtual = true
		case token.KwOverride:
			p.advance()
			fn.Override = true
			if p.at(token.LParen) {
				p.skipBalanced()
			}
		case token.KwReturns:
			p.advance()
			if p.at(token.LParen) {
				fn.Returns = p.parseParams()
			} else {
				p.err("expected '(' after 'returns'")
			}
		case token.Ident:
			// modifier invocation, possibly qualified and with arguments
			p.advance()
			for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
				p.advance()
				p.advance()
			}
			if p.at(token.LParen) {
				p.skipBalanced()
			}
		default:
			return
		}
	}
}

func visibilityOf(k token.Kind) ast.Visibility {
	switch k {
	case token.KwPublic:
		return ast.VisPublic
	case token.KwExternal:
		return ast.VisExternal
	case token.KwInternal:
		return ast.VisInternal
	case token.KwPrivate:
		return ast.VisPrivate
	default:
		return ast.VisDefault
	}
}

func locationOf(k token.Kind) (ast.Location, bool) {
	switch k {
	case token.KwMemory:
		return ast.LocMemory, true
	case token.KwStorage:
		return ast.LocStorage, true
	case token.KwCalldata:
		return ast.LocCalldata, true
	default:
		return ast.LocNone, false
	}
}

// parseParams разбирает `( param, ... )`, восстанавливаясь на запятой.
// A '{', '}' or ';' ends the list early so a broken header does not eat the body.
func (p *Parser) parseParams() []*ast.Param {
	if _, ok := p.expect(token.LParen, "expected '('"); !ok {
		return nil
	}
	var out []*ast.Param
	for !p.atOr(token.RParen, token.EOF, token.LBrace, token.RBrace, token.Semicolon) {
		before := p.pos
		param, ok := p.parseParam()
		if ok {
			out = append(out, param)
		} else {
			p.err("expected parameter")
			p.skipUntil(token.Comma, token.RParen, token.LBrace, token.Semicolon)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.atOr(token.RParen, token.EOF, token.LBrace, token.RBrace, token.Semicolon) {
			p.err("expected ',' or ')' in parameter list")
			p.skipUntil(token.RParen, token.LBrace, token.Semicolon)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RParen, "expected ')' to close parameter list")
	return out
}

// parseParam: Type [indexed] [memory|storage|calldata] [name]
func (p *Parser) parseParam() (*ast.Param, bool) {
	start := p.peek()
	typ, ok := p.parseTypeName()
	if !ok {
		return nil, false
	}
	param := &ast.Param{Type: typ}
	for {
		if p.at(token.KwIndexed) {
			p.advance()
			param.Indexed = true
			continue
		}
		if loc, ok := locationOf(p.peek().Kind); ok {
			p.advance()
			param.Location = loc
			continue
		}
		break
	}
	if p.at(token.Ident) {
		param.Name = identOf(p.advance())
	}
	param.Span = p.spanFrom(start)
	return param, true
}

// parseTypeName consumes a type expression and returns its source text.
// It does not report: callers use it speculatively.
func (p *Parser) parseTypeName() (string, bool) {
	start := p.peek()
	switch start.Kind {
	case token.KwMapping:
		p.advance()
		if !p.at(token.LParen) {
			return "", false
		}
		p.skipBalanced()
	case token.KwFunction:
		p.advance()
		if !p.at(token.LParen) {
			return "", false
		}
		p.skipBalanced()
		for p.atOr(token.KwInternal, token.KwExternal, token.KwPure, token.KwView, token.KwPayable) {
			p.advance()
		}
		if p.at(token.KwReturns) {
			p.advance()
			if p.at(token.LParen) {
				p.skipBalanced()
			}
		}
	case token.Ident:
		p.advance()
		for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
			p.advance()
			p.advance()
		}
		if start.Text == "address" && p.at(token.KwPayable) {
			p.advance()
		}
	default:
		return "", false
	}
	for p.at(token.LBracket) {
		p.skipBalanced()
	}
	return p.file.Text(p.spanFrom(start)), true
}

// tryStateVariable parses `Type attrs* name [= expr];`. On failure the
// position is restored and nothing is reported.
func (p *Parser) tryStateVariable() (*ast.Variable, bool) {
	pos, last := p.mark()
	start := p.peek()
	typ, ok := p.parseTypeName()
	if !ok {
		p.reset(pos, last)
		return nil, false
	}
	v := &ast.Variable{Type: typ}
attrs:
	for {
		switch tok := p.peek(); {
		case tok.Kind == token.KwPublic, tok.Kind == token.KwExternal,
			tok.Kind == token.KwInternal, tok.Kind == token.KwPrivate:
			v.Visibility = visibilityOf(p.advance().Kind)
		case tok.Kind == token.KwConstant:
			p.advance()
			v.Constant = true
		case tok.Kind == token.KwImmutable:
			p.advance()
			v.Immutable = true
		case tok.Kind == token.KwOverride:
			p.advance()
			v.Override = true
			if p.at(token.LParen) {
				p.skipBalanced()
			}
		case tok.IsWord("transient") && p.peekN(1).Kind == token.Ident:
			p.advance()
			v.Transient = true
		default:
			break attrs
		}
	}
	if !p.at(token.Ident) || !p.peekN(1).Kind.In(token.Assign, token.Semicolon) {
		p.reset(pos, last)
		return nil, false
	}
	v.Name = identOf(p.advance())
	if p.at(token.Assign) {
		p.advance()
		from := p.pos
		p.skipUntil(token.Semicolon)
		v.Init = p.toks[from:p.pos]
	}
	p.expect(token.Semicolon, "expected ';' after variable declaration")
	v.Span = p.spanFrom(start)
	return v, true
}
