package parser

import (
	"scopelint/internal/ast"
	"scopelint/internal/token"
)

// parseBlock разбирает `{ stmt* }`. kind is StmtBlock or StmtUnchecked.
func (p *Parser) parseBlock(kind ast.StmtKind) ast.StmtID {
	start := p.peek()
	if _, ok := p.expect(token.LBrace, "expected '{'"); !ok {
		return ast.NoStmtID
	}
	var list []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		if id := p.parseStatement(); id.IsValid() {
			list = append(list, id)
		}
		if p.pos == before {
			p.err("unexpected token " + describe(p.peek()) + " in block")
			p.advance()
		}
	}
	p.expect(token.RBrace, "expected '}' to close block")
	return p.file.Stmts.New(ast.Stmt{Kind: kind, Span: p.spanFrom(start), List: list})
}

// parseStatement returns NoStmtID for the empty statement `;`.
func (p *Parser) parseStatement() ast.StmtID {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock(ast.StmtBlock)
	case token.KwUnchecked:
		if p.peekN(1).Kind == token.LBrace {
			p.advance()
			return p.parseBlock(ast.StmtUnchecked)
		}
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwTry:
		return p.parseTry()
	case token.KwAssembly:
		return p.parseAssembly()
	case token.Semicolon:
		p.advance()
		return ast.NoStmtID
	}
	return p.parseSimpleOrDecl()
}

func (p *Parser) parseSimpleOrDecl() ast.StmtID {
	if id, ok := p.tryVarDecl(); ok {
		return id
	}
	return p.parseSimple()
}

// parseSimple consumes an expression-like statement through its ';'.
func (p *Parser) parseSimple() ast.StmtID {
	start, before := p.peek(), p.pos
	p.skipUntil(token.Semicolon)
	if p.pos == before && !p.at(token.Semicolon) {
		// stuck on a stray closer: let the caller resync
		return ast.NoStmtID
	}
	p.expect(token.Semicolon, "expected ';' after statement")
	return p.file.Stmts.New(ast.Stmt{Kind: ast.StmtSimple, Span: p.spanFrom(start)})
}

// tryVarDecl parses `T [loc] x [= e];` and `(T a, , T b) = e;`.
// On failure the position is restored and nothing is reported.
func (p *Parser) tryVarDecl() (ast.StmtID, bool) {
	pos, last := p.mark()
	start := p.peek()

	var vars []*ast.Param
	if p.at(token.LParen) {
		vs, ok := p.tryTupleVars()
		if !ok {
			p.reset(pos, last)
			return ast.NoStmtID, false
		}
		vars = vs
	} else {
		v, ok := p.tryLocalVar()
		if !ok || !p.atOr(token.Assign, token.Semicolon) {
			p.reset(pos, last)
			return ast.NoStmtID, false
		}
		vars = []*ast.Param{v}
	}

	if p.at(token.Assign) {
		p.advance()
		p.skipUntil(token.Semicolon)
	}
	p.expect(token.Semicolon, "expected ';' after variable declaration")
	return p.file.Stmts.New(ast.Stmt{Kind: ast.StmtVarDecl, Span: p.spanFrom(start), Vars: vars}), true
}

func (p *Parser) tryLocalVar() (*ast.Param, bool) {
	start := p.peek()
	typ, ok := p.parseTypeName()
	if !ok {
		return nil, false
	}
	v := &ast.Param{Type: typ}
	if loc, ok := locationOf(p.peek().Kind); ok {
		p.advance()
		v.Location = loc
	}
	if !p.at(token.Ident) {
		return nil, false
	}
	v.Name = identOf(p.advance())
	v.Span = p.spanFrom(start)
	return v, true
}

// tryTupleVars: `(T a, , T b) =`; holes are skipped, plain names mean an assignment.
func (p *Parser) tryTupleVars() ([]*ast.Param, bool) {
	p.advance()
	var vars []*ast.Param
	for !p.at(token.RParen) {
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		v, ok := p.tryLocalVar()
		if !ok {
			return nil, false
		}
		vars = append(vars, v)
		if p.at(token.Comma) {
			p.advance()
		} else if !p.at(token.RParen) {
			return nil, false
		}
	}
	p.advance()
	if len(vars) == 0 || !p.at(token.Assign) {
		return nil, false
	}
	return vars, true
}

func (p *Parser) skipCondition(what string) {
	if !p.at(token.LParen) {
		p.err("expected '(' after '" + what + "'")
		return
	}
	p.skipBalanced()
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.advance()
	p.skipCondition("if")
	st := ast.Stmt{Kind: ast.StmtIf}
	st.Body = p.parseStatement()
	if p.at(token.KwElse) {
		p.advance()
		st.Else = p.parseStatement()
	}
	st.Span = p.spanFrom(start)
	return p.file.Stmts.New(st)
}

func (p *Parser) parseFor() ast.StmtID {
	start := p.advance()
	st := ast.Stmt{Kind: ast.StmtFor}
	if _, ok := p.expect(token.LParen, "expected '(' after 'for'"); ok {
		if p.at(token.Semicolon) {
			p.advance()
		} else {
			st.Init = p.parseSimpleOrDecl()
		}
		p.skipUntil(token.Semicolon)
		p.expect(token.Semicolon, "expected ';' after loop condition")
		p.skipUntil(token.RParen)
		p.expect(token.RParen, "expected ')' to close for header")
	}
	st.Body = p.parseStatement()
	st.Span = p.spanFrom(start)
	return p.file.Stmts.New(st)
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.advance()
	p.skipCondition("while")
	st := ast.Stmt{Kind: ast.StmtWhile}
	st.Body = p.parseStatement()
	st.Span = p.spanFrom(start)
	return p.file.Stmts.New(st)
}

func (p *Parser) parseDoWhile() ast.StmtID {
	start := p.advance()
	st := ast.Stmt{Kind: ast.StmtDoWhile}
	st.Body = p.parseStatement()
	if _, ok := p.expect(token.KwWhile, "expected 'while' after do body"); ok {
		p.skipCondition("while")
		p.expect(token.Semicolon, "expected ';' after do-while")
	}
	st.Span = p.spanFrom(start)
	return p.file.Stmts.New(st)
}

// parseTry keeps the success block and every catch block as children.
func (p *Parser) parseTry() ast.StmtID {
	start := p.advance()
	st := ast.Stmt{Kind: ast.StmtTry}
	for {
		if p.at(token.EOF) || p.atOr(token.Semicolon, token.RBrace) {
			p.err("expected '{' after try expression")
			st.Span = p.spanFrom(start)
			return p.file.Stmts.New(st)
		}
		// `{value: v}` call options follow a member name, the clause block follows ')'
		if p.at(token.LBrace) && p.toks[p.pos-1].Kind == token.RParen {
			break
		}
		if p.at(token.KwReturns) {
			p.advance()
			continue
		}
		if p.atOr(token.LParen, token.LBrace, token.LBracket) {
			p.skipBalanced()
			continue
		}
		p.advance()
	}
	if id := p.parseBlock(ast.StmtBlock); id.IsValid() {
		st.List = append(st.List, id)
	}
	for p.at(token.KwCatch) {
		p.advance()
		if p.at(token.Ident) {
			p.advance()
		}
		if p.at(token.LParen) {
			p.skipBalanced()
		}
		id := p.parseBlock(ast.StmtBlock)
		if !id.IsValid() {
			break
		}
		st.List = append(st.List, id)
	}
	st.Span = p.spanFrom(start)
	return p.file.Stmts.New(st)
}

func (p *Parser) parseAssembly() ast.StmtID {
	start := p.advance()
	if p.at(token.StringLit) {
		p.advance()
	}
	if p.at(token.LParen) {
		p.skipBalanced()
	}
	if p.at(token.LBrace) {
		p.skipBalanced()
	} else {
		p.err("expected '{' after 'assembly'")
	}
	return p.file.Stmts.New(ast.Stmt{Kind: ast.StmtAssembly, Span: p.spanFrom(start)})
}
