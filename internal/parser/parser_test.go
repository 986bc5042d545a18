package parser

import (
	"testing"

	"github.com/solislang/solis/internal/ast"
)

func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, errs := ParseExprString(src)
	if len(errs) > 0 {
		t.Fatalf("parsing %q: %v", src, errs)
	}
	return e
}

func TestOperatorPrecedence(t *testing.T) {
	e := mustParseExpr(t, "1 + 2 * 3 == 7 || false && true")
	or, ok := e.(*ast.BinOp)
	if !ok || or.Op != "||" {
		t.Fatalf("expected top-level ||, got %#v", e)
	}
	and, ok := or.Right.(*ast.BinOp)
	if !ok || and.Op != "&&" {
		t.Fatalf("expected && on the right of ||, got %#v", or.Right)
	}
	eq, ok := or.Left.(*ast.BinOp)
	if !ok || eq.Op != "==" {
		t.Fatalf("expected == to bind tighter than ||, got %#v", or.Left)
	}
	add, ok := eq.Left.(*ast.BinOp)
	if !ok || add.Op != "+" {
		t.Fatalf("expected + under ==, got %#v", eq.Left)
	}
	mul, ok := add.Right.(*ast.BinOp)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected * to bind tighter than +, got %#v", add.Right)
	}
	_ = and
}

func TestConsIsRightAssociative(t *testing.T) {
	e := mustParseExpr(t, "1 :: 2 :: []")
	outer, ok := e.(*ast.BinOp)
	if !ok || outer.Op != "::" {
		t.Fatalf("expected ::, got %#v", e)
	}
	inner, ok := outer.Right.(*ast.BinOp)
	if !ok || inner.Op != "::" {
		t.Fatalf("expected :: nested on the right (right-assoc), got %#v", outer.Right)
	}
}

func TestApplicationIsLeftAssociativeJuxtaposition(t *testing.T) {
	e := mustParseExpr(t, "f x y")
	outer, ok := e.(*ast.App)
	if !ok {
		t.Fatalf("expected App, got %#v", e)
	}
	if _, ok := outer.Arg.(*ast.Var); !ok || outer.Arg.(*ast.Var).Name != "y" {
		t.Fatalf("expected outer arg y, got %#v", outer.Arg)
	}
	inner, ok := outer.Func.(*ast.App)
	if !ok {
		t.Fatalf("expected inner App `f x`, got %#v", outer.Func)
	}
	if v, ok := inner.Func.(*ast.Var); !ok || v.Name != "f" {
		t.Fatalf("expected innermost function f, got %#v", inner.Func)
	}
}

func TestUnaryMinusDesugarsToSubtractionFromZero(t *testing.T) {
	e := mustParseExpr(t, "-x")
	bo, ok := e.(*ast.BinOp)
	if !ok || bo.Op != "-" {
		t.Fatalf("expected BinOp -, got %#v", e)
	}
	if lit, ok := bo.Left.(*ast.IntLit); !ok || lit.Value != 0 {
		t.Fatalf("expected left operand 0, got %#v", bo.Left)
	}
}

func TestBangProducesStrict(t *testing.T) {
	e := mustParseExpr(t, "!x")
	if _, ok := e.(*ast.Strict); !ok {
		t.Fatalf("expected Strict, got %#v", e)
	}
}

func TestQualifiedVarVsRecordAccess(t *testing.T) {
	e := mustParseExpr(t, "List.map")
	v, ok := e.(*ast.Var)
	if !ok || v.Module != "List" || v.Name != "map" {
		t.Fatalf("expected qualified Var List.map, got %#v", e)
	}

	e2 := mustParseExpr(t, "point.x")
	acc, ok := e2.(*ast.RecordAccess)
	if !ok || acc.Field != "x" {
		t.Fatalf("expected RecordAccess on field x, got %#v", e2)
	}
}

func TestIfThenElse(t *testing.T) {
	e := mustParseExpr(t, "if x then 1 else 2")
	ifE, ok := e.(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %#v", e)
	}
	if _, ok := ifE.Then.(*ast.IntLit); !ok {
		t.Fatalf("expected IntLit then-branch, got %#v", ifE.Then)
	}
}

func TestMatchExpr(t *testing.T) {
	e := mustParseExpr(t, `match xs with { x :: rest -> 1; [] -> 0 }`)
	m, ok := e.(*ast.Match)
	if !ok {
		t.Fatalf("expected Match, got %#v", e)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(m.Arms))
	}
	if _, ok := m.Arms[0].Pattern.(*ast.ConsPat); !ok {
		t.Fatalf("expected ConsPat in first arm, got %#v", m.Arms[0].Pattern)
	}
}

func TestLetExprRequiresIn(t *testing.T) {
	e := mustParseExpr(t, "let x = 1 in x + 1")
	let, ok := e.(*ast.Let)
	if !ok {
		t.Fatalf("expected Let, got %#v", e)
	}
	if _, ok := let.Body.(*ast.BinOp); !ok {
		t.Fatalf("expected BinOp body, got %#v", let.Body)
	}
}

func TestBlockThreadsLetAsBody(t *testing.T) {
	e := mustParseExpr(t, "{ let x = 1; x + 1 }")
	block, ok := e.(*ast.Block)
	if !ok {
		t.Fatalf("expected Block, got %#v", e)
	}
	if len(block.Stmts) != 1 {
		t.Fatalf("expected the let to swallow the remaining statement into its own Body, got %d stmts", len(block.Stmts))
	}
	let, ok := block.Stmts[0].(*ast.Let)
	if !ok {
		t.Fatalf("expected Let as the block's sole statement, got %#v", block.Stmts[0])
	}
	if _, ok := let.Body.(*ast.BinOp); !ok {
		t.Fatalf("expected let's Body to be the rest of the block, got %#v", let.Body)
	}
}

func TestBlockBindStatement(t *testing.T) {
	e := mustParseExpr(t, "{ x <- readLine; x }")
	block, ok := e.(*ast.Block)
	if !ok {
		t.Fatalf("expected Block, got %#v", e)
	}
	if len(block.Stmts) != 2 {
		t.Fatalf("expected 2 statements (bind does not swallow), got %d", len(block.Stmts))
	}
	if _, ok := block.Stmts[0].(*ast.Bind); !ok {
		t.Fatalf("expected Bind as first statement, got %#v", block.Stmts[0])
	}
}

func TestRecordLiteralAndUpdate(t *testing.T) {
	e := mustParseExpr(t, `{ name: "Alice", age: 30 }`)
	rec, ok := e.(*ast.RecordExpr)
	if !ok || len(rec.Order) != 2 {
		t.Fatalf("expected RecordExpr with 2 fields, got %#v", e)
	}

	e2 := mustParseExpr(t, `{ p | age = 31 }`)
	upd, ok := e2.(*ast.RecordUpdate)
	if !ok || len(upd.Order) != 1 {
		t.Fatalf("expected RecordUpdate with 1 field, got %#v", e2)
	}
}

func TestListLiteral(t *testing.T) {
	e := mustParseExpr(t, "[1, 2, 3]")
	list, ok := e.(*ast.ListExpr)
	if !ok || len(list.Elements) != 3 {
		t.Fatalf("expected 3-element ListExpr, got %#v", e)
	}
}

func TestLambdaMultipleParams(t *testing.T) {
	e := mustParseExpr(t, `\x y -> x + y`)
	lam, ok := e.(*ast.Lambda)
	if !ok || len(lam.Params) != 2 {
		t.Fatalf("expected 2-param Lambda, got %#v", e)
	}
}

func TestParseModuleWithImportsAndDecl(t *testing.T) {
	src := `module Main
import List
import Set as S (union, empty)

let add a b = a + b
data Option a = Some a | None
`
	m, errs := ParseModule(src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if m.Name != "Main" {
		t.Fatalf("expected module name Main, got %q", m.Name)
	}
	if len(m.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(m.Imports))
	}
	if m.Imports[1].Alias != "S" || !m.Imports[1].Qualified {
		t.Fatalf("expected aliased qualified import, got %#v", m.Imports[1])
	}
	if len(m.Imports[1].Include) != 2 {
		t.Fatalf("expected 2 included names, got %#v", m.Imports[1].Include)
	}
	if len(m.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(m.Declarations))
	}
	fd, ok := m.Declarations[0].(*ast.FuncDecl)
	if !ok || fd.Name != "add" || len(fd.Params) != 2 {
		t.Fatalf("expected FuncDecl add/2, got %#v", m.Declarations[0])
	}
	td, ok := m.Declarations[1].(*ast.TypeDecl)
	if !ok || td.Name != "Option" || len(td.Ctors) != 2 {
		t.Fatalf("expected TypeDecl Option with 2 ctors, got %#v", m.Declarations[1])
	}
}

func TestParseDeclStringRejectsTrailingIn(t *testing.T) {
	_, errs := ParseDeclString("let x = 1 in x")
	if len(errs) == 0 {
		t.Fatalf("expected an error: a `let ... in ...` is an expression, not a persisted declaration")
	}
}

func TestFuncDeclTypeAnnotation(t *testing.T) {
	m, errs := ParseModule("let compose f g x : (b -> c) -> (a -> b) -> a -> c = f (g x)\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fd := m.Declarations[0].(*ast.FuncDecl)
	ft, ok := fd.Annotation.(*ast.FuncType)
	if !ok {
		t.Fatalf("expected FuncType annotation, got %#v", fd.Annotation)
	}
	if len(ft.Params) != 3 {
		t.Fatalf("expected a 3-arrow curried signature, got %d params", len(ft.Params))
	}
}

func TestParseDeclStringAcceptsBareLet(t *testing.T) {
	decl, errs := ParseDeclString("let x = 1")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fd, ok := decl.(*ast.FuncDecl)
	if !ok || fd.Name != "x" {
		t.Fatalf("expected FuncDecl x, got %#v", decl)
	}
}
