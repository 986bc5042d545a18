package types

import (
	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
)

// typePattern implements spec.md §4.3's "Pattern typing" table: it unifies
// pat's shape against expected and returns the environment extended with
// whatever bindings pat introduces, plus the substitution unification
// produced along the way.
func (inf *Inferencer) typePattern(pat ast.Pattern, expected Type, env *Env) (*Env, Substitution, *cerrors.SolisError) {
	switch p := pat.(type) {
	case *ast.VarPat:
		return env.Extend(p.Name, MonoScheme(expected)), EmptySubst(), nil

	case *ast.WildcardPat:
		return env, EmptySubst(), nil

	case *ast.LitPat:
		litType := literalType(p.Value)
		sub, err := Unify(expected, litType)
		if err != nil {
			return env, nil, err
		}
		return env, sub, nil

	case *ast.ListPat:
		elem := inf.Gen.Fresh("elem")
		sub, err := Unify(expected, TList(elem))
		if err != nil {
			return env, nil, err
		}
		curEnv := env
		for _, sub2pat := range p.Elements {
			e2, s2, err := inf.typePattern(sub2pat, Apply(sub, elem), curEnv)
			if err != nil {
				return env, nil, err
			}
			curEnv = e2
			sub = Compose(s2, sub)
		}
		return curEnv, sub, nil

	case *ast.ConsPat:
		if p.Name == "::" || p.Name == ":" {
			return inf.typeConsListPattern(p, expected, env)
		}
		return inf.typeUserConstructorPattern(p, expected, env)

	case *ast.RecordPat:
		// Minimal support (spec.md §4.3): without row polymorphism, each
		// field's sub-pattern is typed against a fresh variable rather than
		// a type derived from the scrutinee's row.
		curEnv := env
		sub := EmptySubst()
		for _, name := range p.Order {
			fv := inf.Gen.Fresh(name)
			e2, s2, err := inf.typePattern(p.Fields[name], fv, curEnv)
			if err != nil {
				return env, nil, err
			}
			curEnv = e2
			sub = Compose(s2, sub)
		}
		return curEnv, sub, nil

	default:
		return env, nil, cerrors.New(cerrors.UnsupportedPattern, "unsupported pattern shape")
	}
}

func (inf *Inferencer) typeConsListPattern(p *ast.ConsPat, expected Type, env *Env) (*Env, Substitution, *cerrors.SolisError) {
	if len(p.Args) != 2 {
		return env, nil, cerrors.New(cerrors.UnsupportedPattern, "cons pattern requires exactly head and tail")
	}
	alpha := inf.Gen.Fresh("elem")
	sub, err := Unify(expected, TList(alpha))
	if err != nil {
		return env, nil, err
	}
	headEnv, s1, err := inf.typePattern(p.Args[0], Apply(sub, alpha), env)
	if err != nil {
		return env, nil, err
	}
	sub = Compose(s1, sub)
	tailEnv, s2, err := inf.typePattern(p.Args[1], TList(Apply(sub, alpha)), headEnv)
	if err != nil {
		return env, nil, err
	}
	return tailEnv, Compose(s2, sub), nil
}

func (inf *Inferencer) typeUserConstructorPattern(p *ast.ConsPat, expected Type, env *Env) (*Env, Substitution, *cerrors.SolisError) {
	scheme, ok := env.Lookup(p.Name)
	if !ok {
		return env, nil, cerrors.New(cerrors.UndefinedName, "undefined constructor "+p.Name).
			WithSuggestion(suggestionFor(p.Name, env))
	}
	ctorType := Instantiate(inf.Gen, scheme)
	args, result, ok := splitArrow(ctorType, len(p.Args))
	if !ok {
		return env, nil, cerrors.New(cerrors.UnsupportedPattern, "constructor "+p.Name+" applied to the wrong number of arguments")
	}
	sub, err := Unify(expected, result)
	if err != nil {
		return env, nil, err
	}
	curEnv := env
	for i, argPat := range p.Args {
		e2, s2, err := inf.typePattern(argPat, Apply(sub, args[i]), curEnv)
		if err != nil {
			return env, nil, err
		}
		curEnv = e2
		sub = Compose(s2, sub)
	}
	return curEnv, sub, nil
}

// splitArrow walks n levels of a right-associated TyFun chain, returning
// the n argument types and the final result type.
func splitArrow(t Type, n int) ([]Type, Type, bool) {
	args := make([]Type, 0, n)
	cur := t
	for i := 0; i < n; i++ {
		fn, ok := cur.(*TyFun)
		if !ok {
			return nil, nil, false
		}
		args = append(args, fn.From)
		cur = fn.To
	}
	return args, cur, true
}

func literalType(e ast.Expr) Type {
	switch e.(type) {
	case *ast.IntLit:
		return TInt
	case *ast.BigIntLit:
		return TBigInt
	case *ast.FloatLit:
		return TFloat
	case *ast.StringLit:
		return TString
	case *ast.BoolLit:
		return TBool
	default:
		return TUnit
	}
}

func suggestionFor(name string, env *Env) cerrors.Suggestion {
	near := NearMisses(name, env.Names())
	if len(near) == 0 {
		return cerrors.Suggestion{Description: "no similar name is in scope"}
	}
	return cerrors.Suggestion{Description: "did you mean " + near[0] + "?", Code: near[0]}
}
