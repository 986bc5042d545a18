package types

import (
	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
)

// InferModule types every declaration of m in source order, threading the
// environment forward so later declarations see earlier ones (spec.md §5's
// "declarations are typed... in source order"). It returns the final
// environment and any outer constraints left over at the top level —
// ordinarily empty, since top-level bindings are fully generalized.
func (inf *Inferencer) InferModule(m *ast.Module, env *Env) (*Env, []Constraint, *cerrors.SolisError) {
	var outer []Constraint
	for _, decl := range m.Declarations {
		newEnv, declOuter, err := inf.InferDecl(decl, env)
		if err != nil {
			return env, outer, err
		}
		env = newEnv
		outer = append(outer, declOuter...)
	}
	return env, outer, nil
}

// InferDecl applies spec.md §4.3's "Declaration inference" rules. It
// returns the environment extended with whatever the declaration binds,
// and constraints left over once the binding's scheme absorbed the ones
// it could quantify.
func (inf *Inferencer) InferDecl(decl ast.Decl, env *Env) (*Env, []Constraint, *cerrors.SolisError) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return inf.inferFuncDecl(d, env)
	case *ast.TypeDecl:
		return inf.inferTypeDecl(d, env)
	case *ast.Import:
		// Handled by the module resolver / namespace manager, not the
		// type environment directly (spec.md §4.3).
		return env, nil, nil
	case *ast.TraitDecl:
		return inf.inferTraitDecl(d, env)
	case *ast.ImplDecl:
		return inf.inferImplDecl(d, env)
	default:
		return env, nil, cerrors.New(cerrors.UnsupportedPattern, "unsupported declaration shape")
	}
}

func (inf *Inferencer) inferFuncDecl(d *ast.FuncDecl, env *Env) (*Env, []Constraint, *cerrors.SolisError) {
	assumed := inf.Gen.Fresh(d.Name)
	recEnv := env.Extend(d.Name, MonoScheme(assumed))

	paramEnv := recEnv
	paramTypes := make([]Type, len(d.Params))
	sub := EmptySubst()
	for i, p := range d.Params {
		fv := inf.Gen.Fresh("param")
		e2, s2, err := inf.typePattern(p.Pattern, fv, paramEnv)
		if err != nil {
			return env, nil, err
		}
		paramEnv = e2
		sub = Compose(s2, sub)
		paramTypes[i] = Apply(sub, fv)
	}

	bodyRes, err := inf.Infer(d.Body, paramEnv)
	if err != nil {
		return env, nil, err
	}
	sub = Compose(bodyRes.Subst, sub)

	fnType := Apply(sub, bodyRes.Type)
	for i := len(paramTypes) - 1; i >= 0; i-- {
		fnType = &TyFun{From: Apply(sub, paramTypes[i]), To: fnType}
	}

	uSub, uerr := Unify(Apply(sub, assumed), fnType)
	if uerr != nil {
		return env, nil, uerr.At(d.Pos())
	}
	sub = Compose(uSub, sub)
	fnType = Apply(sub, fnType)

	genEnv := applyEnv(sub, env)
	scheme, outer := Generalize(genEnv, fnType, bodyRes.Constraints)
	return genEnv.Extend(d.Name, scheme), outer, nil
}

// inferTypeDecl registers each constructor of an ADT as `name : τ1 -> ... ->
// τn -> ResultType`, with nullary constructors bound directly to
// ResultType (spec.md §4.3's Type declaration rule).
func (inf *Inferencer) inferTypeDecl(d *ast.TypeDecl, env *Env) (*Env, []Constraint, *cerrors.SolisError) {
	tyParams := make([]Type, len(d.Params))
	for i := range d.Params {
		tyParams[i] = &TyVar{Id: -(i + 1), Hint: d.Params[i]}
	}
	resultType := Type(&TyCon{Name: d.Name})
	if len(tyParams) > 0 {
		resultType = &TyCon{Name: d.Name, Args: tyParams}
	}

	for _, ctor := range d.Ctors {
		ctorType := resultType
		for i := len(ctor.Fields) - 1; i >= 0; i-- {
			fieldType, err := inf.resolveSurfaceType(ctor.Fields[i], d.Params)
			if err != nil {
				return env, nil, err
			}
			ctorType = &TyFun{From: fieldType, To: ctorType}
		}
		quantified := map[int]bool{}
		for _, tp := range tyParams {
			quantified[tp.(*TyVar).Id] = true
		}
		env = env.Extend(ctor.Name, &Scheme{Quantified: quantified, Body: ctorType})
	}
	return env, nil, nil
}

func (inf *Inferencer) inferTraitDecl(d *ast.TraitDecl, env *Env) (*Env, []Constraint, *cerrors.SolisError) {
	// A trait's method signatures become schemes qualified by a constraint
	// naming the trait against its type parameter (SPEC_FULL.md
	// "Supplemented features": qualified-type treatment of traits). No
	// instance table records impls, so nothing discharges that constraint.
	tv := &TyVar{Id: -1, Hint: d.TyParam}
	for _, m := range d.Methods {
		sigType, err := inf.resolveSurfaceType(m.Annotation, []string{d.TyParam})
		if err != nil {
			return env, nil, err
		}
		qual := &TyQual{Constraints: []Constraint{{Op: d.Name, Witness: tv}}, Body: sigType}
		env = env.Extend(m.Name, &Scheme{Quantified: map[int]bool{tv.Id: true}, Body: qual})
	}
	return env, nil, nil
}

func (inf *Inferencer) inferImplDecl(d *ast.ImplDecl, env *Env) (*Env, []Constraint, *cerrors.SolisError) {
	var outer []Constraint
	for _, m := range d.Methods {
		newEnv, declOuter, err := inf.inferFuncDecl(m, env)
		if err != nil {
			return env, nil, err
		}
		env = newEnv
		outer = append(outer, declOuter...)
	}
	return env, outer, nil
}

// resolveSurfaceType converts the parser's surface Type syntax to the
// core's inference-time Type, resolving any name in boundParams to the
// matching rigid variable.
func (inf *Inferencer) resolveSurfaceType(t ast.Type, boundParams []string) (Type, *cerrors.SolisError) {
	switch t := t.(type) {
	case nil:
		return inf.Gen.Fresh(""), nil
	case *ast.SimpleType:
		for i, p := range boundParams {
			if p == t.Name {
				return &TyVar{Id: -(i + 1), Hint: p}, nil
			}
		}
		switch t.Name {
		case "Int":
			return TInt, nil
		case "BigInt":
			return TBigInt, nil
		case "Float":
			return TFloat, nil
		case "Bool":
			return TBool, nil
		case "String":
			return TString, nil
		case "Unit":
			return TUnit, nil
		default:
			return &TyCon{Name: t.Name}, nil
		}
	case *ast.ListType:
		elem, err := inf.resolveSurfaceType(t.Element, boundParams)
		if err != nil {
			return nil, err
		}
		return TList(elem), nil
	case *ast.FuncType:
		ret, err := inf.resolveSurfaceType(t.Return, boundParams)
		if err != nil {
			return nil, err
		}
		result := ret
		for i := len(t.Params) - 1; i >= 0; i-- {
			param, err := inf.resolveSurfaceType(t.Params[i], boundParams)
			if err != nil {
				return nil, err
			}
			result = &TyFun{From: param, To: result}
		}
		return result, nil
	case *ast.AppType:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			arg, err := inf.resolveSurfaceType(a, boundParams)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &TyCon{Name: t.Ctor, Args: args}, nil
	case *ast.ForallType:
		merged := append(append([]string{}, boundParams...), t.Vars...)
		body, err := inf.resolveSurfaceType(t.Body, merged)
		if err != nil {
			return nil, err
		}
		quantified := map[int]bool{}
		for i, v := range t.Vars {
			quantified[-(len(boundParams) + i + 1)] = true
			_ = v
		}
		return &TyForall{Quantified: quantified, Body: body}, nil
	default:
		return nil, cerrors.New(cerrors.UnsupportedPattern, "unsupported type annotation shape")
	}
}
