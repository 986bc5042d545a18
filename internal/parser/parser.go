// Package parser builds an internal/ast.Module from a token stream
// (spec.md §6: another external collaborator). It is a hand-rolled
// recursive-descent parser with precedence climbing for binary operators
// — see DESIGN.md for why a grammar-combinator library was not adopted.
package parser

import (
	"fmt"

	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/lexer"
)

// Parser consumes tokens from a Lexer one at a time, keeping a
// one-token lookahead.
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	errs []*cerrors.SolisError
}

// New returns a Parser ready to parse src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) loc() cerrors.Location {
	return cerrors.Location{Line: p.cur.Line, Col: p.cur.Col}
}

func (p *Parser) errorf(format string, args ...any) *cerrors.SolisError {
	err := cerrors.New(cerrors.ParseError, fmt.Sprintf(format, args...)).At(p.loc())
	p.errs = append(p.errs, err)
	return err
}

// Errors returns every parse error accumulated so far, in order.
func (p *Parser) Errors() []*cerrors.SolisError { return p.errs }

func (p *Parser) expect(kind lexer.Kind, what string) bool {
	if p.cur.Kind != kind {
		p.errorf("expected %s, found %q", what, p.cur.Literal)
		return false
	}
	p.next()
	return true
}

func (p *Parser) at(kind lexer.Kind) bool { return p.cur.Kind == kind }

// skipSemis consumes any run of statement separators.
func (p *Parser) skipSemis() {
	for p.cur.Kind == lexer.SEMI {
		p.next()
	}
}

// ParseExprString parses src as a single expression — the REPL's input
// shape, distinct from ParseModule's declaration sequence.
func ParseExprString(src string) (ast.Expr, []*cerrors.SolisError) {
	p := New(src)
	e := p.parseExpr()
	if !p.at(lexer.EOF) {
		p.errorf("unexpected trailing input %q", p.cur.Literal)
	}
	return e, p.errs
}

// ParseDeclString parses src as a single top-level declaration — the
// REPL's shape for a persistent `let name ... = expr` binding entered
// with no trailing `in`.
func ParseDeclString(src string) (ast.Decl, []*cerrors.SolisError) {
	p := New(src)
	d := p.parseDecl()
	if !p.at(lexer.EOF) {
		p.errorf("unexpected trailing input %q", p.cur.Literal)
	}
	return d, p.errs
}

// ParseModule parses an entire source file into a Module (spec.md §6's
// external AST input format).
func ParseModule(src string) (*ast.Module, []*cerrors.SolisError) {
	p := New(src)
	m := &ast.Module{}

	if p.at(lexer.MODULE) {
		p.next()
		if p.at(lexer.IDENT) {
			m.Name = p.cur.Literal
			p.next()
		}
	}

	for p.at(lexer.IMPORT) {
		m.Imports = append(m.Imports, p.parseImport())
	}

	for !p.at(lexer.EOF) {
		decl := p.parseDecl()
		if decl != nil {
			m.Declarations = append(m.Declarations, decl)
		} else if !p.at(lexer.EOF) {
			// Error recovery: skip one token and try again, so one bad
			// declaration doesn't blank out the rest of the file's
			// diagnostics. Each skipped token that does not start a
			// declaration records its own parse error.
			p.next()
		}
	}
	return m, p.errs
}
