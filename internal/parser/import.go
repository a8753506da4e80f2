package parser

import (
	"scopelint/internal/ast"
	"scopelint/internal/token"
)

// parseImport handles the four import shapes:
//
//	import "path";
//	import "path" as Alias;
//	import * as Alias from "path";
//	import {A, B as C} from "path";
func (p *Parser) parseImport() (*ast.Import, bool) {
	start := p.advance()
	im := &ast.Import{}
	ok := true

	switch tok := p.peek(); {
	case tok.Kind == token.StringLit:
		im.Path = unquote(p.advance().Text)
		if p.at(token.KwAs) {
			p.advance()
			alias, aok := p.expectIdent("expected alias after 'as'")
			im.Kind, im.Alias, ok = ast.ImportAlias, identOf(alias), aok
		}
	case tok.Kind == token.Operator && tok.Text == "*":
		p.advance()
		if _, aok := p.expect(token.KwAs, "expected 'as' after '*'"); !aok {
			return nil, false
		}
		alias, aok := p.expectIdent("expected alias after 'as'")
		if !aok {
			return nil, false
		}
		im.Kind, im.Alias = ast.ImportAlias, identOf(alias)
		ok = p.parseImportFrom(im)
	case tok.Kind == token.LBrace:
		p.advance()
		im.Kind = ast.ImportSymbols
		for !p.atOr(token.RBrace, token.EOF) {
			name, nok := p.expectIdent("expected imported symbol")
			if !nok {
				p.skipUntil(token.RBrace, token.Semicolon)
				ok = false
				break
			}
			sym := ast.ImportSymbol{Name: identOf(name)}
			if p.at(token.KwAs) {
				p.advance()
				if alias, aok := p.expectIdent("expected alias after 'as'"); aok {
					sym.Alias = identOf(alias)
				}
			}
			im.Symbols = append(im.Symbols, sym)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, bok := p.expect(token.RBrace, "expected '}' in import list"); !bok {
			return nil, false
		}
		ok = p.parseImportFrom(im) && ok
	case tok.Kind == token.Ident:
		// import Alias from "path";
		im.Kind, im.Alias = ast.ImportAlias, identOf(p.advance())
		ok = p.parseImportFrom(im)
	default:
		p.err("expected import path, '*' or '{'")
		return nil, false
	}

	if _, sok := p.expect(token.Semicolon, "expected ';' after import"); !sok {
		ok = false
	}
	im.Span = p.spanFrom(start)
	return im, ok
}

func (p *Parser) parseImportFrom(im *ast.Import) bool {
	if !p.expectWord("from", "expected 'from'") {
		return false
	}
	path, ok := p.expect(token.StringLit, "expected import path")
	if ok {
		im.Path = unquote(path.Text)
	}
	return ok
}
