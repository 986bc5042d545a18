package types

import (
	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
)

// Result is Algorithm W's per-node answer (spec.md §4.3): the
// substitution accumulated while inferring, the node's type (the caller
// decides whether and when to apply the substitution), and the ordered
// constraints still owed in the enclosing context.
type Result struct {
	Subst       Substitution
	Type        Type
	Constraints []Constraint
}

// Inferencer carries the two pieces of session-scoped mutable state the
// inference engine needs (spec.md §5, §9 "Global mutable state"): the
// fresh-variable counter and, optionally, an error collector that turns
// raised errors into accumulated ones so a driver can keep checking
// later declarations after an earlier one fails.
type Inferencer struct {
	Gen       *VarGen
	Collector *cerrors.Collector
}

// NewInferencer builds an inferencer that raises on the first error.
// Install a Collector field afterward to switch to accumulate-and-continue.
func NewInferencer(gen *VarGen) *Inferencer {
	return &Inferencer{Gen: gen}
}

// raise either returns err to the caller (collector-less mode) or, if a
// collector is installed, appends it and returns a recovery Result so
// inference of sibling declarations can continue (spec.md §4.3 "Error
// handling").
func (inf *Inferencer) raise(err *cerrors.SolisError) (*Result, *cerrors.SolisError) {
	if inf.Collector == nil {
		return nil, err
	}
	inf.Collector.Append(err)
	return &Result{Subst: EmptySubst(), Type: inf.Gen.Fresh("recovery")}, nil
}

// Infer dispatches on expr's concrete node type and applies the rule
// named for it in spec.md §4.3.
func (inf *Inferencer) Infer(expr ast.Expr, env *Env) (*Result, *cerrors.SolisError) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return &Result{Subst: EmptySubst(), Type: TInt}, nil
	case *ast.BigIntLit:
		return &Result{Subst: EmptySubst(), Type: TBigInt}, nil
	case *ast.FloatLit:
		return &Result{Subst: EmptySubst(), Type: TFloat}, nil
	case *ast.StringLit:
		return &Result{Subst: EmptySubst(), Type: TString}, nil
	case *ast.BoolLit:
		return &Result{Subst: EmptySubst(), Type: TBool}, nil

	case *ast.Var:
		return inf.inferVar(e, env)
	case *ast.Lambda:
		return inf.inferLambda(e, env)
	case *ast.App:
		return inf.inferApp(e, env)
	case *ast.BinOp:
		return inf.inferBinOp(e, env)
	case *ast.If:
		return inf.inferIf(e, env)
	case *ast.Let:
		return inf.inferLet(e, env)
	case *ast.ListExpr:
		return inf.inferList(e, env)
	case *ast.Match:
		return inf.inferMatch(e, env)
	case *ast.Block:
		return inf.inferBlock(e, env)
	case *ast.Bind:
		return inf.inferBind(e, env)
	case *ast.Strict:
		return inf.Infer(e.Inner, env)
	case *ast.RecordExpr:
		return &Result{Subst: EmptySubst(), Type: inf.Gen.Fresh("record")}, nil
	case *ast.RecordAccess:
		return inf.inferRecordAccess(e, env)
	case *ast.RecordUpdate:
		return inf.inferRecordUpdate(e, env)

	default:
		return inf.raise(cerrors.New(cerrors.UnsupportedPattern, "unsupported expression shape").At(expr.Pos()))
	}
}

func (inf *Inferencer) inferVar(e *ast.Var, env *Env) (*Result, *cerrors.SolisError) {
	lookupName := e.Name
	var scheme *Scheme
	var ok bool
	if e.Module != "" {
		scheme, ok = env.Lookup(e.Module + "." + e.Name)
	} else {
		scheme, ok = env.Lookup(lookupName)
	}
	if !ok {
		near := NearMisses(lookupName, env.Names())
		err := cerrors.New(cerrors.UndefinedName, "undefined name "+lookupName).At(e.Pos())
		if len(near) > 0 {
			err = err.WithSuggestion(cerrors.Suggestion{
				Description: "did you mean " + near[0] + "?",
				Code:        near[0],
			})
		}
		return inf.raise(err)
	}
	t := Instantiate(inf.Gen, scheme)
	if qual, ok := t.(*TyQual); ok {
		return &Result{Subst: EmptySubst(), Type: qual.Body, Constraints: qual.Constraints}, nil
	}
	return &Result{Subst: EmptySubst(), Type: t}, nil
}

func (inf *Inferencer) inferLambda(e *ast.Lambda, env *Env) (*Result, *cerrors.SolisError) {
	curEnv := env
	paramTypes := make([]Type, len(e.Params))
	sub := EmptySubst()
	for i, p := range e.Params {
		fv := inf.Gen.Fresh("param")
		e2, s2, err := inf.typePattern(p.Pattern, fv, curEnv)
		if err != nil {
			return inf.raise(err)
		}
		curEnv = e2
		sub = Compose(s2, sub)
		paramTypes[i] = Apply(sub, fv)
	}
	bodyRes, err := inf.Infer(e.Body, curEnv)
	if err != nil {
		return nil, err
	}
	sub = Compose(bodyRes.Subst, sub)
	result := Apply(sub, bodyRes.Type)
	for i := len(paramTypes) - 1; i >= 0; i-- {
		result = &TyFun{From: Apply(sub, paramTypes[i]), To: result}
	}
	return &Result{Subst: sub, Type: result, Constraints: bodyRes.Constraints}, nil
}

func (inf *Inferencer) inferApp(e *ast.App, env *Env) (*Result, *cerrors.SolisError) {
	fnRes, err := inf.Infer(e.Func, env)
	if err != nil {
		return nil, err
	}
	argRes, err := inf.Infer(e.Arg, applyEnv(fnRes.Subst, env))
	if err != nil {
		return nil, err
	}
	sub := Compose(argRes.Subst, fnRes.Subst)
	rho := inf.Gen.Fresh("result")
	fnType := Apply(sub, fnRes.Type)
	argType := Apply(sub, argRes.Type)
	uSub, uerr := Unify(fnType, &TyFun{From: argType, To: rho})
	if uerr != nil {
		return inf.raise(uerr.At(e.Pos()))
	}
	sub = Compose(uSub, sub)
	constraints := append(append([]Constraint{}, fnRes.Constraints...), argRes.Constraints...)
	return &Result{Subst: sub, Type: Apply(sub, rho), Constraints: constraints}, nil
}

func (inf *Inferencer) inferBinOp(e *ast.BinOp, env *Env) (*Result, *cerrors.SolisError) {
	leftRes, err := inf.Infer(e.Left, env)
	if err != nil {
		return nil, err
	}
	rightRes, err := inf.Infer(e.Right, applyEnv(leftRes.Subst, env))
	if err != nil {
		return nil, err
	}
	sub := Compose(rightRes.Subst, leftRes.Subst)
	constraints := append(append([]Constraint{}, leftRes.Constraints...), rightRes.Constraints...)

	class, known := operatorTable[e.Op]
	if !known {
		return inf.raise(cerrors.New(cerrors.UnsupportedPattern, "unknown operator "+e.Op).At(e.Pos()))
	}

	leftType := Apply(sub, leftRes.Type)
	rightType := Apply(sub, rightRes.Type)

	switch class {
	case classArith, classCompare:
		uSub, uerr := Unify(leftType, rightType)
		if uerr != nil {
			return inf.raise(uerr.At(e.Pos()))
		}
		sub = Compose(uSub, sub)
		operandType := Apply(sub, leftType)
		constraints = append(constraints, Constraint{Op: e.Op, Witness: operandType})
		if class == classArith {
			return &Result{Subst: sub, Type: operandType, Constraints: constraints}, nil
		}
		return &Result{Subst: sub, Type: TBool, Constraints: constraints}, nil

	case classConcat:
		s1, uerr := Unify(leftType, TString)
		if uerr != nil {
			return inf.raise(uerr.At(e.Pos()))
		}
		sub = Compose(s1, sub)
		s2, uerr := Unify(Apply(sub, rightType), TString)
		if uerr != nil {
			return inf.raise(uerr.At(e.Pos()))
		}
		sub = Compose(s2, sub)
		return &Result{Subst: sub, Type: TString, Constraints: constraints}, nil

	case classBool:
		s1, uerr := Unify(leftType, TBool)
		if uerr != nil {
			return inf.raise(uerr.At(e.Pos()))
		}
		sub = Compose(s1, sub)
		s2, uerr := Unify(Apply(sub, rightType), TBool)
		if uerr != nil {
			return inf.raise(uerr.At(e.Pos()))
		}
		sub = Compose(s2, sub)
		return &Result{Subst: sub, Type: TBool, Constraints: constraints}, nil

	case classCons:
		listType := TList(leftType)
		s1, uerr := Unify(Apply(sub, listType), rightType)
		if uerr != nil {
			return inf.raise(uerr.At(e.Pos()))
		}
		sub = Compose(s1, sub)
		return &Result{Subst: sub, Type: Apply(sub, listType), Constraints: constraints}, nil

	default:
		return inf.raise(cerrors.New(cerrors.UnsupportedPattern, "unhandled operator class").At(e.Pos()))
	}
}

func (inf *Inferencer) inferIf(e *ast.If, env *Env) (*Result, *cerrors.SolisError) {
	condRes, err := inf.Infer(e.Cond, env)
	if err != nil {
		return nil, err
	}
	sub := condRes.Subst
	s1, uerr := Unify(Apply(sub, condRes.Type), TBool)
	if uerr != nil {
		return inf.raise(uerr.At(e.Cond.Pos()))
	}
	sub = Compose(s1, sub)

	thenRes, err := inf.Infer(e.Then, applyEnv(sub, env))
	if err != nil {
		return nil, err
	}
	sub = Compose(thenRes.Subst, sub)

	elseRes, err := inf.Infer(e.Else, applyEnv(sub, env))
	if err != nil {
		return nil, err
	}
	sub = Compose(elseRes.Subst, sub)

	s2, uerr := Unify(Apply(sub, thenRes.Type), Apply(sub, elseRes.Type))
	if uerr != nil {
		return inf.raise(uerr.At(e.Pos()))
	}
	sub = Compose(s2, sub)
	constraints := append(append(append([]Constraint{}, condRes.Constraints...), thenRes.Constraints...), elseRes.Constraints...)
	return &Result{Subst: sub, Type: Apply(sub, thenRes.Type), Constraints: constraints}, nil
}

func (inf *Inferencer) inferLet(e *ast.Let, env *Env) (*Result, *cerrors.SolisError) {
	if varPat, ok := e.Pattern.(*ast.VarPat); ok {
		return inf.inferLetVar(e, varPat, env)
	}
	if consPat, ok := e.Pattern.(*ast.ConsPat); ok && (consPat.Name == "::" || consPat.Name == ":") {
		return inf.inferLetCons(e, consPat, env)
	}
	// Any other pattern shape (list/record/wildcard/literal): infer the
	// value monomorphically and bind via typePattern, no generalization.
	valRes, err := inf.Infer(e.Value, env)
	if err != nil {
		return nil, err
	}
	bodyEnv, s2, perr := inf.typePattern(e.Pattern, Apply(valRes.Subst, valRes.Type), env)
	if perr != nil {
		return inf.raise(perr)
	}
	sub := Compose(s2, valRes.Subst)
	bodyRes, err := inf.Infer(e.Body, applyEnv(sub, bodyEnv))
	if err != nil {
		return nil, err
	}
	sub = Compose(bodyRes.Subst, sub)
	constraints := append(append([]Constraint{}, valRes.Constraints...), bodyRes.Constraints...)
	return &Result{Subst: sub, Type: bodyRes.Type, Constraints: constraints}, nil
}

func (inf *Inferencer) inferLetVar(e *ast.Let, varPat *ast.VarPat, env *Env) (*Result, *cerrors.SolisError) {
	_, isLambda := e.Value.(*ast.Lambda)
	recursive := e.Recursive || isLambda

	var valRes *Result
	var err *cerrors.SolisError
	var genEnv *Env

	if recursive {
		assumed := inf.Gen.Fresh(varPat.Name)
		recEnv := env.Extend(varPat.Name, MonoScheme(assumed))
		valRes, err = inf.Infer(e.Value, recEnv)
		if err != nil {
			return nil, err
		}
		uSub, uerr := Unify(Apply(valRes.Subst, assumed), valRes.Type)
		if uerr != nil {
			return inf.raise(uerr.At(e.Value.Pos()))
		}
		valRes.Subst = Compose(uSub, valRes.Subst)
		valRes.Type = Apply(valRes.Subst, valRes.Type)
		genEnv = env
	} else {
		valRes, err = inf.Infer(e.Value, env)
		if err != nil {
			return nil, err
		}
		genEnv = env
	}

	genEnv = applyEnv(valRes.Subst, genEnv)
	scheme, outer := Generalize(genEnv, Apply(valRes.Subst, valRes.Type), valRes.Constraints)
	bodyEnv := genEnv.Extend(varPat.Name, scheme)

	bodyRes, err := inf.Infer(e.Body, bodyEnv)
	if err != nil {
		return nil, err
	}
	sub := Compose(bodyRes.Subst, valRes.Subst)
	constraints := append(append([]Constraint{}, outer...), bodyRes.Constraints...)
	return &Result{Subst: sub, Type: bodyRes.Type, Constraints: constraints}, nil
}

func (inf *Inferencer) inferLetCons(e *ast.Let, consPat *ast.ConsPat, env *Env) (*Result, *cerrors.SolisError) {
	valRes, err := inf.Infer(e.Value, env)
	if err != nil {
		return nil, err
	}
	bodyEnv, s2, perr := inf.typeConsListPattern(consPat, Apply(valRes.Subst, valRes.Type), env)
	if perr != nil {
		return inf.raise(perr)
	}
	sub := Compose(s2, valRes.Subst)
	bodyRes, err := inf.Infer(e.Body, applyEnv(sub, bodyEnv))
	if err != nil {
		return nil, err
	}
	sub = Compose(bodyRes.Subst, sub)
	constraints := append(append([]Constraint{}, valRes.Constraints...), bodyRes.Constraints...)
	return &Result{Subst: sub, Type: bodyRes.Type, Constraints: constraints}, nil
}

func (inf *Inferencer) inferList(e *ast.ListExpr, env *Env) (*Result, *cerrors.SolisError) {
	if len(e.Elements) == 0 {
		return &Result{Subst: EmptySubst(), Type: TList(inf.Gen.Fresh("elem"))}, nil
	}
	firstRes, err := inf.Infer(e.Elements[0], env)
	if err != nil {
		return nil, err
	}
	sub := firstRes.Subst
	elemType := firstRes.Type
	constraints := append([]Constraint{}, firstRes.Constraints...)
	for _, elemExpr := range e.Elements[1:] {
		res, err := inf.Infer(elemExpr, applyEnv(sub, env))
		if err != nil {
			return nil, err
		}
		sub = Compose(res.Subst, sub)
		uSub, uerr := Unify(Apply(sub, elemType), Apply(sub, res.Type))
		if uerr != nil {
			return inf.raise(uerr.At(elemExpr.Pos()))
		}
		sub = Compose(uSub, sub)
		elemType = Apply(sub, elemType)
		constraints = append(constraints, res.Constraints...)
	}
	return &Result{Subst: sub, Type: TList(elemType), Constraints: constraints}, nil
}

func (inf *Inferencer) inferMatch(e *ast.Match, env *Env) (*Result, *cerrors.SolisError) {
	scrutRes, err := inf.Infer(e.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	sub := scrutRes.Subst
	scrutType := scrutRes.Type
	result := inf.Gen.Fresh("match")
	constraints := append([]Constraint{}, scrutRes.Constraints...)

	for _, arm := range e.Arms {
		armEnv, s1, perr := inf.typePattern(arm.Pattern, Apply(sub, scrutType), applyEnv(sub, env))
		if perr != nil {
			return inf.raise(perr)
		}
		sub = Compose(s1, sub)
		bodyRes, err := inf.Infer(arm.Body, applyEnv(sub, armEnv))
		if err != nil {
			return nil, err
		}
		sub = Compose(bodyRes.Subst, sub)
		uSub, uerr := Unify(Apply(sub, result), Apply(sub, bodyRes.Type))
		if uerr != nil {
			return inf.raise(uerr.At(arm.Body.Pos()))
		}
		sub = Compose(uSub, sub)
		constraints = append(constraints, bodyRes.Constraints...)
	}
	return &Result{Subst: sub, Type: Apply(sub, result), Constraints: constraints}, nil
}

func (inf *Inferencer) inferBlock(e *ast.Block, env *Env) (*Result, *cerrors.SolisError) {
	if len(e.Stmts) == 0 {
		return &Result{Subst: EmptySubst(), Type: TBool}, nil
	}
	sub := EmptySubst()
	curEnv := env
	var constraints []Constraint
	var last Type
	for _, stmt := range e.Stmts {
		if bind, ok := stmt.(*ast.Bind); ok {
			valRes, err := inf.Infer(bind.Value, applyEnv(sub, curEnv))
			if err != nil {
				return nil, err
			}
			sub = Compose(valRes.Subst, sub)
			newEnv, s2, perr := inf.typePattern(bind.Pattern, Apply(sub, valRes.Type), applyEnv(sub, curEnv))
			if perr != nil {
				return inf.raise(perr)
			}
			sub = Compose(s2, sub)
			curEnv = newEnv
			constraints = append(constraints, valRes.Constraints...)
			last = TUnit
			continue
		}
		res, err := inf.Infer(stmt, applyEnv(sub, curEnv))
		if err != nil {
			return nil, err
		}
		sub = Compose(res.Subst, sub)
		constraints = append(constraints, res.Constraints...)
		last = res.Type
	}
	return &Result{Subst: sub, Type: Apply(sub, last), Constraints: constraints}, nil
}

func (inf *Inferencer) inferBind(e *ast.Bind, env *Env) (*Result, *cerrors.SolisError) {
	valRes, err := inf.Infer(e.Value, env)
	if err != nil {
		return nil, err
	}
	_, sub, perr := inf.typePattern(e.Pattern, Apply(valRes.Subst, valRes.Type), env)
	if perr != nil {
		return inf.raise(perr)
	}
	return &Result{Subst: Compose(sub, valRes.Subst), Type: TUnit, Constraints: valRes.Constraints}, nil
}

func (inf *Inferencer) inferRecordAccess(e *ast.RecordAccess, env *Env) (*Result, *cerrors.SolisError) {
	recRes, err := inf.Infer(e.Record, env)
	if err != nil {
		return nil, err
	}
	// Minimal support (spec.md §4.3): no row polymorphism, so field access
	// yields a fresh variable rather than a type read off the record's row.
	return &Result{Subst: recRes.Subst, Type: inf.Gen.Fresh(e.Field), Constraints: recRes.Constraints}, nil
}

func (inf *Inferencer) inferRecordUpdate(e *ast.RecordUpdate, env *Env) (*Result, *cerrors.SolisError) {
	recRes, err := inf.Infer(e.Record, env)
	if err != nil {
		return nil, err
	}
	sub := recRes.Subst
	constraints := append([]Constraint{}, recRes.Constraints...)
	for _, name := range e.Order {
		fieldRes, err := inf.Infer(e.Fields[name], applyEnv(sub, env))
		if err != nil {
			return nil, err
		}
		sub = Compose(fieldRes.Subst, sub)
		constraints = append(constraints, fieldRes.Constraints...)
	}
	return &Result{Subst: sub, Type: Apply(sub, recRes.Type), Constraints: constraints}, nil
}

// applyEnv substitutes through every scheme bound in env, used whenever a
// later sibling must see an earlier sibling's accumulated substitution
// (spec.md §4.3's Application/If/List/Match rules).
func applyEnv(s Substitution, env *Env) *Env {
	if len(s) == 0 || env == nil {
		return env
	}
	out := env.parent
	out = applyEnv(s, out)
	newScheme := &Scheme{Quantified: env.scheme.Quantified, Body: Apply(s, env.scheme.Body)}
	return out.Extend(env.name, newScheme)
}
