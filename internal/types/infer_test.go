package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/parser"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, errs := parser.ParseExprString(src)
	if len(errs) > 0 {
		t.Fatalf("parsing %q: %v", src, errs)
	}
	return e
}

func infer(t *testing.T, src string) (*Result, *cerrors.SolisError) {
	t.Helper()
	gen := NewVarGen()
	inf := NewInferencer(gen)
	return inf.Infer(mustParse(t, src), NewEnv())
}

func TestInferLiterals(t *testing.T) {
	res, err := infer(t, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "Int", res.Type.String())
}

func TestInferIdentityIsPolymorphic(t *testing.T) {
	gen := NewVarGen()
	inf := NewInferencer(gen)
	env := NewEnv()

	letExpr := mustParse(t, `let id = \x -> x in if id true then id 1 else id 2`)
	res, err := inf.Infer(letExpr, env)
	if err != nil {
		t.Fatalf("identity should apply to both Bool and Int uses: %v", err)
	}
	assert.Equal(t, "Int", res.Type.String())
}

func TestInferRecursiveFactorial(t *testing.T) {
	src := `let rec fact = \n -> if n == 0 then 1 else n * fact (n - 1) in fact 5`
	res, err := infer(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "Int", res.Type.String())
}

func TestInferListConsPattern(t *testing.T) {
	src := `let xs = 1 :: 2 :: [] in match xs with { head :: tail -> head; [] -> 0 }`
	res, err := infer(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "Int", res.Type.String())
}

func TestInferOccursCheckFailure(t *testing.T) {
	// `\x -> x x` self-application requires x : t1 -> t2 where t1 = t1 -> t2.
	_, err := infer(t, `\x -> x x`)
	if err == nil {
		t.Fatal("expected an InfiniteType error for self-application")
	}
	assert.Equal(t, cerrors.InfiniteType, err.Kind)
}

func TestInferIfBranchMismatch(t *testing.T) {
	_, err := infer(t, `if true then 1 else "two"`)
	if err == nil {
		t.Fatal("expected a TypeMismatch between Int and String branches")
	}
	assert.Equal(t, cerrors.TypeMismatch, err.Kind)
}

func TestInferUndefinedNameSuggestsNearMiss(t *testing.T) {
	gen := NewVarGen()
	inf := NewInferencer(gen)
	env := NewEnv().Extend("length", MonoScheme(&TyFun{From: TList(&TyVar{Id: 0}), To: TInt}))
	_, err := inf.Infer(mustParse(t, "lenght []"), env)
	if err == nil {
		t.Fatal("expected UndefinedName for the misspelled call")
	}
	assert.Equal(t, cerrors.UndefinedName, err.Kind)
	if assert.NotEmpty(t, err.Suggestions) {
		assert.Equal(t, "length", err.Suggestions[0].Code)
	}
}

func TestGeneralizeQuantifiesOnlyVarsFreeInType(t *testing.T) {
	env := NewEnv().Extend("y", MonoScheme(&TyVar{Id: 5}))
	t1 := &TyFun{From: &TyVar{Id: 5}, To: &TyVar{Id: 7}}
	scheme, outer := Generalize(env, t1, nil)
	if len(outer) != 0 {
		t.Fatalf("expected no outer constraints, got %v", outer)
	}
	if scheme.Quantified[5] {
		t.Fatal("var 5 is free in env and must not be quantified")
	}
	if !scheme.Quantified[7] {
		t.Fatal("var 7 is free only in the type and should be quantified")
	}
}

func TestCollectorAccumulatesAcrossDeclarations(t *testing.T) {
	gen := NewVarGen()
	inf := NewInferencer(gen)
	inf.Collector = cerrors.NewCollector()

	env := NewEnv()
	_, err := inf.Infer(mustParse(t, "undefinedThing"), env)
	if err != nil {
		t.Fatalf("collector mode should never raise directly: %v", err)
	}
	if inf.Collector.Len() != 1 {
		t.Fatalf("expected 1 collected error, got %d", inf.Collector.Len())
	}
}
