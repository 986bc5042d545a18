package eval

import (
	"github.com/solislang/solis/internal/ast"
	"github.com/solislang/solis/internal/value"
)

// matchPattern implements spec.md §4.5's "Pattern matching operationally"
// table. It returns the environment extended with whatever bindings a
// successful match introduces (env itself if none), whether the match
// succeeded, and an error only for a genuine evaluation failure (pattern
// matching itself never errors — a failed match just returns ok=false).
func matchPattern(pat ast.Pattern, v value.Value, env *Environment) (*Environment, bool, error) {
	switch p := pat.(type) {
	case *ast.VarPat:
		return env.Extend(p.Name, v), true, nil

	case *ast.WildcardPat:
		return env, true, nil

	case *ast.LitPat:
		forced, err := value.Force(v)
		if err != nil {
			return env, false, err
		}
		want, err := literalValue(p.Value)
		if err != nil {
			return env, false, err
		}
		return env, valuesEqual(forced, want), nil

	case *ast.ListPat:
		forced, err := value.Force(v)
		if err != nil {
			return env, false, err
		}
		list, ok := forced.(*value.ListValue)
		if !ok || len(list.Elements) != len(p.Elements) {
			return env, false, nil
		}
		curEnv := env
		for i, elemPat := range p.Elements {
			e2, ok, err := matchPattern(elemPat, list.Elements[i], curEnv)
			if err != nil {
				return env, false, err
			}
			if !ok {
				return env, false, nil
			}
			curEnv = e2
		}
		return curEnv, true, nil

	case *ast.ConsPat:
		if p.Name == "::" || p.Name == ":" {
			return matchConsList(p, v, env)
		}
		return matchConstructor(p, v, env)

	case *ast.RecordPat:
		forced, err := value.Force(v)
		if err != nil {
			return env, false, err
		}
		rec, ok := forced.(*value.RecordValue)
		if !ok {
			return env, false, nil
		}
		curEnv := env
		for _, name := range p.Order {
			fieldVal, present := rec.Fields[name]
			if !present {
				return env, false, nil
			}
			e2, ok, err := matchPattern(p.Fields[name], fieldVal, curEnv)
			if err != nil {
				return env, false, err
			}
			if !ok {
				return env, false, nil
			}
			curEnv = e2
		}
		return curEnv, true, nil

	default:
		return env, false, nil
	}
}

func matchConsList(p *ast.ConsPat, v value.Value, env *Environment) (*Environment, bool, error) {
	forced, err := value.Force(v)
	if err != nil {
		return env, false, err
	}
	list, ok := forced.(*value.ListValue)
	if !ok || len(list.Elements) == 0 {
		return env, false, nil
	}
	head, tail := list.Elements[0], &value.ListValue{Elements: list.Elements[1:]}
	headEnv, ok, err := matchPattern(p.Args[0], head, env)
	if err != nil || !ok {
		return env, false, err
	}
	return matchPattern(p.Args[1], tail, headEnv)
}

func matchConstructor(p *ast.ConsPat, v value.Value, env *Environment) (*Environment, bool, error) {
	forced, err := value.Force(v)
	if err != nil {
		return env, false, err
	}
	ctor, ok := forced.(*value.ConstructorValue)
	if !ok || ctor.Name != p.Name || len(ctor.Args) != len(p.Args) {
		return env, false, nil
	}
	curEnv := env
	for i, argPat := range p.Args {
		e2, ok, err := matchPattern(argPat, ctor.Args[i], curEnv)
		if err != nil {
			return env, false, err
		}
		if !ok {
			return env, false, nil
		}
		curEnv = e2
	}
	return curEnv, true, nil
}

func literalValue(e ast.Expr) (value.Value, error) {
	switch lit := e.(type) {
	case *ast.IntLit:
		return &value.IntValue{Value: lit.Value}, nil
	case *ast.BigIntLit:
		return bigIntFromDecimal(lit.Value)
	case *ast.FloatLit:
		return &value.FloatValue{Value: lit.Value}, nil
	case *ast.StringLit:
		return &value.StringValue{Value: lit.Value}, nil
	case *ast.BoolLit:
		return &value.BoolValue{Value: lit.Value}, nil
	default:
		return &value.UnitValue{}, nil
	}
}

func valuesEqual(a, b value.Value) bool {
	if numKind(a) >= 0 && numKind(b) >= 0 {
		if numKind(a) == 2 || numKind(b) == 2 {
			return toFloat(a) == toFloat(b)
		}
		if numKind(a) == 1 || numKind(b) == 1 {
			return toBig(a).Cmp(toBig(b)) == 0
		}
		return a.(*value.IntValue).Value == b.(*value.IntValue).Value
	}
	return a.String() == b.String() && a.Type() == b.Type()
}
