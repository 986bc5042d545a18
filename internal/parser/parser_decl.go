package parser

import (
	"github.com/solislang/solis/internal/ast"
	"github.com/solislang/solis/internal/lexer"
)

func (p *Parser) parseImport() *ast.Import {
	loc := p.loc()
	p.next() // "import"
	name := p.parseModulePath()
	imp := &ast.Import{Module: name}
	imp.Loc = loc

	if p.at(lexer.IDENT) && p.cur.Literal == "as" {
		p.next()
		imp.Alias = p.cur.Literal
		imp.Qualified = true
		p.next()
	}
	if p.at(lexer.LPAREN) {
		p.next()
		for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
			imp.Include = append(imp.Include, p.cur.Literal)
			p.next()
			if p.at(lexer.COMMA) {
				p.next()
			}
		}
		p.expect(lexer.RPAREN, ")")
	}
	return imp
}

func (p *Parser) parseModulePath() string {
	name := p.cur.Literal
	p.next()
	for p.at(lexer.DOT) {
		p.next()
		name += "." + p.cur.Literal
		p.next()
	}
	return name
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.cur.Kind {
	case lexer.LET:
		return p.parseFuncDecl()
	case lexer.DATA:
		return p.parseTypeDecl()
	case lexer.TRAIT:
		return p.parseTraitDecl()
	case lexer.IMPL:
		return p.parseImplDecl()
	default:
		p.errorf("expected a declaration, found %q", p.cur.Literal)
		return nil
	}
}

// parseFuncDecl parses a top-level binding: `let [rec] name pat* [: Type] = expr`.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	loc := p.loc()
	p.next() // "let"
	recursive := false
	if p.at(lexer.REC) {
		recursive = true
		p.next()
	}
	name := p.cur.Literal
	p.expect(lexer.IDENT, "a name")

	var params []ast.Param
	for !p.at(lexer.ASSIGN) && !p.at(lexer.COLON) && !p.at(lexer.EOF) {
		params = append(params, ast.Param{Pattern: p.parseAtomPattern()})
	}

	var annotation ast.Type
	if p.at(lexer.COLON) {
		p.next()
		annotation = p.parseType()
	}
	p.expect(lexer.ASSIGN, "=")
	body := p.parseExpr()

	return &ast.FuncDecl{
		Base: ast.Base{Loc: loc},
		Name:      name,
		Annotation: annotation,
		Params:    params,
		Body:      body,
		Recursive: recursive,
	}
}

// parseTypeDecl parses `data Name p1 p2 = C1 t1 t2 | C2 | ...`.
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	loc := p.loc()
	p.next() // "data"
	name := p.cur.Literal
	p.expect(lexer.IDENT, "a type name")

	var params []string
	for p.at(lexer.IDENT) {
		params = append(params, p.cur.Literal)
		p.next()
	}
	p.expect(lexer.ASSIGN, "=")

	var ctors []ast.CtorDecl
	for {
		ctorName := p.cur.Literal
		p.expect(lexer.IDENT, "a constructor name")
		var fields []ast.Type
		for p.isTypeAtomStart() {
			fields = append(fields, p.parseTypeAtom())
		}
		ctors = append(ctors, ast.CtorDecl{Name: ctorName, Fields: fields})
		if p.at(lexer.PIPE) {
			p.next()
			continue
		}
		break
	}
	return &ast.TypeDecl{Base: ast.Base{Loc: loc}, Name: name, Params: params, Ctors: ctors}
}

func (p *Parser) parseTraitDecl() *ast.TraitDecl {
	loc := p.loc()
	p.next() // "trait"
	name := p.cur.Literal
	p.expect(lexer.IDENT, "a trait name")
	tyParam := p.cur.Literal
	p.expect(lexer.IDENT, "a type parameter")
	p.expect(lexer.LBRACE, "{")

	var methods []ast.TraitMethod
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		mName := p.cur.Literal
		p.expect(lexer.IDENT, "a method name")
		p.expect(lexer.COLON, ":")
		methods = append(methods, ast.TraitMethod{Name: mName, Annotation: p.parseType()})
		p.skipSemis()
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.TraitDecl{Base: ast.Base{Loc: loc}, Name: name, TyParam: tyParam, Methods: methods}
}

func (p *Parser) parseImplDecl() *ast.ImplDecl {
	loc := p.loc()
	p.next() // "impl"
	trait := p.cur.Literal
	p.expect(lexer.IDENT, "a trait name")
	forType := p.parseTypeAtom()
	p.expect(lexer.LBRACE, "{")

	var methods []*ast.FuncDecl
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		if p.at(lexer.LET) {
			methods = append(methods, p.parseFuncDecl())
		} else {
			p.errorf("expected a method binding, found %q", p.cur.Literal)
			p.next()
		}
		p.skipSemis()
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.ImplDecl{Base: ast.Base{Loc: loc}, Trait: trait, ForType: forType, Methods: methods}
}
