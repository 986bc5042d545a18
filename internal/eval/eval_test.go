package eval

import (
	"testing"

	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/parser"
	"github.com/solislang/solis/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	e, errs := parser.ParseExprString(src)
	if len(errs) > 0 {
		t.Fatalf("parsing %q: %v", src, errs)
	}
	ev := New()
	v, err := ev.Eval(e, NewEnvironment())
	if err != nil {
		t.Fatalf("evaluating %q: %v", src, err)
	}
	forced, ferr := value.Force(v)
	if ferr != nil {
		t.Fatalf("forcing %q: %v", src, ferr)
	}
	return forced
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	e, errs := parser.ParseExprString(src)
	if len(errs) > 0 {
		t.Fatalf("parsing %q: %v", src, errs)
	}
	ev := New()
	v, err := ev.Eval(e, NewEnvironment())
	if err == nil {
		_, err = value.Force(v)
	}
	return err
}

func TestEvalArithmetic(t *testing.T) {
	v := run(t, "1 + 2 * 3")
	iv, ok := v.(*value.IntValue)
	if !ok || iv.Value != 7 {
		t.Fatalf("expected Int 7, got %#v", v)
	}
}

func TestEvalRecursiveFactorial(t *testing.T) {
	v := run(t, `let rec fact = \n -> if n == 0 then 1 else n * fact (n - 1) in fact 5`)
	iv, ok := v.(*value.IntValue)
	if !ok || iv.Value != 120 {
		t.Fatalf("expected Int 120, got %#v", v)
	}
}

func TestEvalIdentityPolymorphism(t *testing.T) {
	v := run(t, `let id = \x -> x in if id true then id 1 else id 2`)
	iv, ok := v.(*value.IntValue)
	if !ok || iv.Value != 1 {
		t.Fatalf("expected Int 1, got %#v", v)
	}
}

func TestEvalListConsPattern(t *testing.T) {
	v := run(t, `let xs = 1 :: 2 :: [] in match xs with { head :: tail -> head; [] -> 0 }`)
	iv, ok := v.(*value.IntValue)
	if !ok || iv.Value != 1 {
		t.Fatalf("expected Int 1, got %#v", v)
	}
}

func TestEvalForwardReferenceAcrossDeclarations(t *testing.T) {
	m := &ast.Module{
		Declarations: []ast.Decl{
			&ast.FuncDecl{
				Name: "isEven",
				Params: []ast.Param{{Pattern: &ast.VarPat{Name: "n"}}},
				Body: &ast.If{
					Cond: &ast.BinOp{Op: "==", Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 0}},
					Then: &ast.BoolLit{Value: true},
					Else: &ast.App{Func: &ast.Var{Name: "isOdd"}, Arg: &ast.BinOp{Op: "-", Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 1}}},
				},
			},
			&ast.FuncDecl{
				Name: "isOdd",
				Params: []ast.Param{{Pattern: &ast.VarPat{Name: "n"}}},
				Body: &ast.If{
					Cond: &ast.BinOp{Op: "==", Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 0}},
					Then: &ast.BoolLit{Value: false},
					Else: &ast.App{Func: &ast.Var{Name: "isEven"}, Arg: &ast.BinOp{Op: "-", Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 1}}},
				},
			},
		},
	}
	env := NewEnvironment()
	ev := New()
	if err := ev.EvalModule(m, env); err != nil {
		t.Fatalf("EvalModule: %v", err)
	}
	fn, ok := env.Get("isEven")
	if !ok {
		t.Fatal("isEven not installed")
	}
	forced, err := value.Force(fn)
	if err != nil {
		t.Fatalf("forcing isEven: %v", err)
	}
	callable, ok := forced.(*value.FunctionValue)
	if !ok {
		t.Fatalf("expected FunctionValue, got %#v", forced)
	}
	out, err := callable.Call(&value.IntValue{Value: 4})
	if err != nil {
		t.Fatalf("calling isEven(4): %v", err)
	}
	out, err = value.Force(out)
	if err != nil {
		t.Fatalf("forcing result: %v", err)
	}
	bv, ok := out.(*value.BoolValue)
	if !ok || !bv.Value {
		t.Fatalf("expected true (4 is even, mutually recursive with isOdd), got %#v", out)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	err := runErr(t, "1 / 0")
	serr, ok := err.(*cerrors.SolisError)
	if !ok || serr.Kind != cerrors.DivisionByZero {
		t.Fatalf("expected DivisionByZero, got %v", err)
	}
}

func TestEvalNonExhaustiveMatch(t *testing.T) {
	err := runErr(t, `match 1 with { 2 -> "two" }`)
	serr, ok := err.(*cerrors.SolisError)
	if !ok || serr.Kind != cerrors.NonExhaustiveMatch {
		t.Fatalf("expected NonExhaustiveMatch, got %v", err)
	}
}

func TestEvalNotCallable(t *testing.T) {
	err := runErr(t, "1 2")
	serr, ok := err.(*cerrors.SolisError)
	if !ok || serr.Kind != cerrors.NotCallable {
		t.Fatalf("expected NotCallable, got %v", err)
	}
}

func TestEvalUndefinedName(t *testing.T) {
	err := runErr(t, "doesNotExist")
	serr, ok := err.(*cerrors.SolisError)
	if !ok || serr.Kind != cerrors.UndefinedName {
		t.Fatalf("expected UndefinedName, got %v", err)
	}
}

func TestEvalShortCircuitAnd(t *testing.T) {
	// The right side references an undefined name; && must not evaluate
	// it once the left side is false.
	v := run(t, "false && explode")
	bv, ok := v.(*value.BoolValue)
	if !ok || bv.Value {
		t.Fatalf("expected false, got %#v", v)
	}
}

func TestEvalShortCircuitOr(t *testing.T) {
	v := run(t, "true || explode")
	bv, ok := v.(*value.BoolValue)
	if !ok || !bv.Value {
		t.Fatalf("expected true, got %#v", v)
	}
}

func TestEvalBlockBindThreadsEnv(t *testing.T) {
	v := run(t, "{ x <- 1; x + 1 }")
	iv, ok := v.(*value.IntValue)
	if !ok || iv.Value != 2 {
		t.Fatalf("expected Int 2, got %#v", v)
	}
}

func TestEvalRecordAccessAndUpdate(t *testing.T) {
	v := run(t, `{ { name: "a", age: 1 } | age = 2 }.age`)
	iv, ok := v.(*value.IntValue)
	if !ok || iv.Value != 2 {
		t.Fatalf("expected Int 2, got %#v", v)
	}
}

// stubNamespace is a minimal NamespaceManager for exercising evalVar's
// local-miss fallback without pulling in internal/module.
type stubNamespace struct {
	ambiguous  map[string]bool
	exporters  map[string][]string
	qualified  map[string]value.Value
	unresolved map[string]value.Value
}

func (s stubNamespace) Lookup(name string) (value.Value, bool) {
	v, ok := s.unresolved[name]
	return v, ok
}

func (s stubNamespace) LookupQualified(module, name string) (value.Value, bool) {
	v, ok := s.qualified[module+"."+name]
	return v, ok
}

func (s stubNamespace) IsAmbiguous(name string) bool { return s.ambiguous[name] }

func (s stubNamespace) GetModulesExporting(name string) []string { return s.exporters[name] }

func (s stubNamespace) SuggestImportsFor(name string) []string { return nil }

func TestEvalAmbiguousNameAfterLocalMiss(t *testing.T) {
	e, errs := parser.ParseExprString("shared")
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ev := New()
	ev.Namespace = stubNamespace{
		ambiguous: map[string]bool{"shared": true},
		exporters: map[string][]string{"shared": {"Left", "Right"}},
	}
	_, err := ev.Eval(e, NewEnvironment())
	serr, ok := err.(*cerrors.SolisError)
	if !ok || serr.Kind != cerrors.AmbiguousName {
		t.Fatalf("expected AmbiguousName, got %v", err)
	}
}

func TestEvalUnqualifiedNamespaceFallback(t *testing.T) {
	e, errs := parser.ParseExprString("fromPrelude")
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ev := New()
	ev.Namespace = stubNamespace{
		unresolved: map[string]value.Value{"fromPrelude": &value.IntValue{Value: 9}},
	}
	v, err := ev.Eval(e, NewEnvironment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	forced, ferr := value.Force(v)
	if ferr != nil {
		t.Fatalf("forcing: %v", ferr)
	}
	iv, ok := forced.(*value.IntValue)
	if !ok || iv.Value != 9 {
		t.Fatalf("expected Int 9 resolved via namespace fallback, got %#v", forced)
	}
}

func TestEvalQualifiedNameDispatchesToLookupQualified(t *testing.T) {
	e, errs := parser.ParseExprString("Mod.thing")
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ev := New()
	ev.Namespace = stubNamespace{
		qualified: map[string]value.Value{"Mod.thing": &value.StringValue{Value: "ok"}},
	}
	v, err := ev.Eval(e, NewEnvironment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	forced, ferr := value.Force(v)
	if ferr != nil {
		t.Fatalf("forcing: %v", ferr)
	}
	sv, ok := forced.(*value.StringValue)
	if !ok || sv.Value != "ok" {
		t.Fatalf("expected String \"ok\", got %#v", forced)
	}
}

func TestEvalQualifiedNameUndefinedWhenNamespaceMisses(t *testing.T) {
	e, errs := parser.ParseExprString("Mod.thing")
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ev := New()
	ev.Namespace = stubNamespace{}
	_, err := ev.Eval(e, NewEnvironment())
	serr, ok := err.(*cerrors.SolisError)
	if !ok || serr.Kind != cerrors.UndefinedName {
		t.Fatalf("expected UndefinedName, got %v", err)
	}
}
