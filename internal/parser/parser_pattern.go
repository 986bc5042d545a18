package parser

import (
	"strconv"

	"github.com/solislang/solis/internal/ast"
	"github.com/solislang/solis/internal/lexer"
)

// parsePattern parses a full pattern, including an unparenthesized
// constructor application `Ctor p1 p2`.
func (p *Parser) parsePattern() ast.Pattern {
	if p.at(lexer.IDENT) && isUpper(p.cur.Literal) {
		return p.parseConstructorPattern()
	}
	return p.parseConsPattern()
}

// parseConsPattern handles the right-associative list-cons pattern
// `head :: tail` (also spelled `:`, see DESIGN.md).
func (p *Parser) parseConsPattern() ast.Pattern {
	left := p.parseAtomPattern()
	if p.at(lexer.CONS) || p.at(lexer.COLON) {
		p.next()
		right := p.parseConsPattern()
		return &ast.ConsPat{Name: "::", Args: []ast.Pattern{left, right}}
	}
	return left
}

func (p *Parser) parseConstructorPattern() ast.Pattern {
	name := p.cur.Literal
	p.next()
	var args []ast.Pattern
	for p.startsAtomPattern() {
		args = append(args, p.parseAtomPattern())
	}
	return &ast.ConsPat{Name: name, Args: args}
}

func (p *Parser) startsAtomPattern() bool {
	switch p.cur.Kind {
	case lexer.IDENT, lexer.INT, lexer.BIGINT, lexer.FLOAT, lexer.STRING,
		lexer.TRUE, lexer.FALSE, lexer.LBRACKET, lexer.LBRACE, lexer.LPAREN, lexer.MINUS:
		return true
	default:
		return false
	}
}

// parseAtomPattern parses a pattern with no trailing constructor
// arguments: a var, wildcard, literal, list pattern, record pattern, a
// bare (nullary) constructor, or a parenthesized pattern.
func (p *Parser) parseAtomPattern() ast.Pattern {
	switch p.cur.Kind {
	case lexer.IDENT:
		name := p.cur.Literal
		if name == "_" {
			p.next()
			return &ast.WildcardPat{}
		}
		if isUpper(name) {
			p.next()
			return &ast.ConsPat{Name: name}
		}
		p.next()
		return &ast.VarPat{Name: name}
	case lexer.INT, lexer.BIGINT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.MINUS:
		return &ast.LitPat{Value: p.parseLiteralForPattern()}
	case lexer.LBRACKET:
		return p.parseListPattern()
	case lexer.LBRACE:
		return p.parseRecordPattern()
	case lexer.LPAREN:
		p.next()
		pat := p.parsePattern()
		p.expect(lexer.RPAREN, ")")
		return pat
	default:
		p.errorf("expected a pattern, found %q", p.cur.Literal)
		p.next()
		return &ast.WildcardPat{}
	}
}

// parseLiteralForPattern parses the small subset of expression
// syntax permitted in a literal pattern: integers, floats, strings,
// booleans, and a leading unary minus on a numeric literal.
func (p *Parser) parseLiteralForPattern() ast.Expr {
	loc := p.loc()
	neg := false
	if p.at(lexer.MINUS) {
		neg = true
		p.next()
	}
	switch p.cur.Kind {
	case lexer.INT:
		n, _ := strconv.ParseInt(p.cur.Literal, 10, 64)
		if neg {
			n = -n
		}
		p.next()
		return &ast.IntLit{Base: ast.Base{Loc: loc}, Value: n}
	case lexer.FLOAT:
		f, _ := strconv.ParseFloat(p.cur.Literal, 64)
		if neg {
			f = -f
		}
		p.next()
		return &ast.FloatLit{Base: ast.Base{Loc: loc}, Value: f}
	case lexer.BIGINT:
		digits := p.cur.Literal
		if neg {
			digits = "-" + digits
		}
		p.next()
		return &ast.BigIntLit{Base: ast.Base{Loc: loc}, Value: digits}
	case lexer.STRING:
		s := p.cur.Literal
		p.next()
		return &ast.StringLit{Base: ast.Base{Loc: loc}, Value: s}
	case lexer.TRUE:
		p.next()
		return &ast.BoolLit{Base: ast.Base{Loc: loc}, Value: true}
	case lexer.FALSE:
		p.next()
		return &ast.BoolLit{Base: ast.Base{Loc: loc}, Value: false}
	default:
		p.errorf("expected a literal pattern, found %q", p.cur.Literal)
		p.next()
		return &ast.BoolLit{Base: ast.Base{Loc: loc}, Value: false}
	}
}

func (p *Parser) parseListPattern() ast.Pattern {
	p.next() // "["
	var elems []ast.Pattern
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		elems = append(elems, p.parsePattern())
		if p.at(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACKET, "]")
	return &ast.ListPat{Elements: elems}
}

func (p *Parser) parseRecordPattern() ast.Pattern {
	p.next() // "{"
	fields := map[string]ast.Pattern{}
	var order []string
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		name := p.cur.Literal
		p.expect(lexer.IDENT, "a field name")
		var pat ast.Pattern
		if p.at(lexer.COLON) {
			p.next()
			pat = p.parsePattern()
		} else {
			pat = &ast.VarPat{Name: name}
		}
		fields[name] = pat
		order = append(order, name)
		if p.at(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.RecordPat{Fields: fields, Order: order}
}
