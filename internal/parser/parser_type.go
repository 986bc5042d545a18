package parser

import (
	"github.com/solislang/solis/internal/ast"
	"github.com/solislang/solis/internal/lexer"
)

// parseType parses a full surface type, including the function arrow
// (right-associative: `A -> B -> C` is `A -> (B -> C)`) and an optional
// leading `forall a b.` quantifier prefix.
func (p *Parser) parseType() ast.Type {
	if p.at(lexer.IDENT) && p.cur.Literal == "forall" {
		p.next()
		var vars []string
		for p.at(lexer.IDENT) {
			vars = append(vars, p.cur.Literal)
			p.next()
		}
		if p.at(lexer.DOT) {
			p.next()
		}
		return &ast.ForallType{Vars: vars, Body: p.parseType()}
	}
	return p.parseFuncType()
}

func (p *Parser) parseFuncType() ast.Type {
	first := p.parseTypeApp()
	if !p.at(lexer.ARROW) {
		return first
	}
	params := []ast.Type{first}
	var ret ast.Type
	for p.at(lexer.ARROW) {
		p.next()
		next := p.parseTypeApp()
		if p.at(lexer.ARROW) {
			params = append(params, next)
			continue
		}
		ret = next
		break
	}
	if ret == nil {
		ret = params[len(params)-1]
		params = params[:len(params)-1]
	}
	return &ast.FuncType{Params: params, Return: ret}
}

// parseTypeApp parses a type constructor application `Ctor t1 t2`, or
// falls through to a bare atom when there are no arguments.
func (p *Parser) parseTypeApp() ast.Type {
	atom := p.parseTypeAtom()
	name, ok := atom.(*ast.SimpleType)
	if !ok || !p.isTypeAtomStart() {
		return atom
	}
	var args []ast.Type
	for p.isTypeAtomStart() {
		args = append(args, p.parseTypeAtom())
	}
	return &ast.AppType{Ctor: name.Name, Args: args}
}

func (p *Parser) isTypeAtomStart() bool {
	switch p.cur.Kind {
	case lexer.IDENT, lexer.LPAREN, lexer.LBRACKET:
		return true
	default:
		return false
	}
}

func (p *Parser) parseTypeAtom() ast.Type {
	switch p.cur.Kind {
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		return &ast.SimpleType{Name: name}
	case lexer.LBRACKET:
		p.next()
		elem := p.parseType()
		p.expect(lexer.RBRACKET, "]")
		return &ast.ListType{Element: elem}
	case lexer.LPAREN:
		p.next()
		t := p.parseType()
		p.expect(lexer.RPAREN, ")")
		return t
	default:
		p.errorf("expected a type, found %q", p.cur.Literal)
		p.next()
		return &ast.SimpleType{Name: "?"}
	}
}
