package eval

import (
	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/types"
	"github.com/solislang/solis/internal/value"
)

// Evaluator owns the collaborators the core delegates to but does not
// itself implement (spec.md §4.5's "Imports" paragraph): the namespace
// manager is consulted on a local lookup miss. Namespace may be nil for
// single-module evaluation (e.g. the REPL before any import).
type Evaluator struct {
	Namespace NamespaceManager
}

func New() *Evaluator { return &Evaluator{} }

// Eval dispatches on expr's concrete node type and applies the rule
// named for it in spec.md §4.5. The returned value is never pre-forced
// except where the rule explicitly says to force.
func (ev *Evaluator) Eval(expr ast.Expr, env *Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return &value.IntValue{Value: e.Value}, nil
	case *ast.BigIntLit:
		return bigIntFromDecimal(e.Value)
	case *ast.FloatLit:
		return &value.FloatValue{Value: e.Value}, nil
	case *ast.StringLit:
		return &value.StringValue{Value: e.Value}, nil
	case *ast.BoolLit:
		return &value.BoolValue{Value: e.Value}, nil

	case *ast.Var:
		return ev.evalVar(e, env)
	case *ast.Lambda:
		return ev.evalLambda(e, env)
	case *ast.App:
		return ev.evalApp(e, env)
	case *ast.BinOp:
		return ev.evalBinOp(e, env)
	case *ast.If:
		return ev.evalIf(e, env)
	case *ast.Let:
		return ev.evalLet(e, env)
	case *ast.ListExpr:
		return ev.evalList(e, env)
	case *ast.Match:
		return ev.evalMatch(e, env)
	case *ast.Block:
		return ev.evalBlock(e, env)
	case *ast.Bind:
		return ev.evalBind(e, env)
	case *ast.Strict:
		v, err := ev.Eval(e.Inner, env)
		if err != nil {
			return nil, err
		}
		return value.Force(v)
	case *ast.RecordExpr:
		return ev.evalRecord(e, env)
	case *ast.RecordAccess:
		return ev.evalRecordAccess(e, env)
	case *ast.RecordUpdate:
		return ev.evalRecordUpdate(e, env)

	default:
		return nil, cerrors.New(cerrors.UnsupportedPattern, "unsupported expression shape").At(expr.Pos())
	}
}

func (ev *Evaluator) evalVar(e *ast.Var, env *Environment) (value.Value, error) {
	var name string
	if e.Module != "" {
		if ev.Namespace != nil {
			if v, ok := ev.Namespace.LookupQualified(e.Module, e.Name); ok {
				return value.Force(v)
			}
		}
		return nil, undefinedNameErr(e.Module+"."+e.Name, e.Pos(), env, ev.Namespace)
	}
	name = e.Name
	if v, ok := env.Get(name); ok {
		return value.Force(v)
	}
	if ev.Namespace != nil {
		if ev.Namespace.IsAmbiguous(name) {
			return nil, cerrors.New(cerrors.AmbiguousName, "ambiguous name "+name).At(e.Pos()).
				WithExplanation("exported by: " + joinNames(ev.Namespace.GetModulesExporting(name)))
		}
		if v, ok := ev.Namespace.Lookup(name); ok {
			return value.Force(v)
		}
	}
	return nil, undefinedNameErr(name, e.Pos(), env, ev.Namespace)
}

func undefinedNameErr(name string, loc cerrors.Location, env *Environment, ns NamespaceManager) *cerrors.SolisError {
	err := cerrors.New(cerrors.UndefinedName, "undefined name "+name).At(loc)
	near := types.NearMisses(name, env.Names())
	if len(near) > 0 {
		err = err.WithSuggestion(cerrors.Suggestion{Description: "did you mean " + near[0] + "?", Code: near[0]})
	}
	if ns != nil {
		for _, mod := range ns.SuggestImportsFor(name) {
			err = err.WithSuggestion(cerrors.Suggestion{Description: "import " + mod + " to bring " + name + " into scope"})
		}
	}
	return err
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// evalLambda builds the curried unary-closure chain of spec.md §4.5.
// makeCurried is the single recursive function spec.md §9 describes,
// parameterized by the remaining parameter patterns and the captured
// environment.
func (ev *Evaluator) evalLambda(e *ast.Lambda, env *Environment) (value.Value, error) {
	return ev.makeCurried(e.Params, e.Body, env), nil
}

func (ev *Evaluator) makeCurried(params []ast.Param, body ast.Expr, captured *Environment) *value.FunctionValue {
	param := params[0]
	rest := params[1:]
	return &value.FunctionValue{
		Call: func(arg value.Value) (value.Value, error) {
			frame := captured.NewChildEnvironment()
			matched, ok, err := matchPattern(param.Pattern, arg, frame)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, cerrors.New(cerrors.NonExhaustiveMatch, "lambda parameter pattern did not match its argument")
			}
			if len(rest) == 0 {
				return ev.Eval(body, matched)
			}
			return ev.makeCurried(rest, body, matched), nil
		},
	}
}

// evalApp implements spec.md §4.5's Application rule: the callable is
// forced, the argument is not, and a Constructor with remaining arity
// accumulates rather than being called.
func (ev *Evaluator) evalApp(e *ast.App, env *Environment) (value.Value, error) {
	fn, err := ev.Eval(e.Func, env)
	if err != nil {
		return nil, err
	}
	fn, err = value.Force(fn)
	if err != nil {
		return nil, err
	}
	argThunk := value.NewThunk(func() (value.Value, error) { return ev.Eval(e.Arg, env) })

	switch callee := fn.(type) {
	case *value.FunctionValue:
		return callee.Call(argThunk)
	case *value.BuiltinValue:
		return callee.Call(argThunk)
	case *value.ConstructorValue:
		if len(callee.Args) >= callee.Arity {
			return nil, cerrors.New(cerrors.NotCallable, "constructor "+callee.Name+" is already fully applied").At(e.Pos())
		}
		args := append(append([]value.Value{}, callee.Args...), argThunk)
		return &value.ConstructorValue{Name: callee.Name, Arity: callee.Arity, Args: args}, nil
	default:
		return nil, cerrors.New(cerrors.NotCallable, "value of type "+fn.Type()+" is not callable").At(e.Pos())
	}
}

func (ev *Evaluator) evalIf(e *ast.If, env *Environment) (value.Value, error) {
	condVal, err := ev.Eval(e.Cond, env)
	if err != nil {
		return nil, err
	}
	condVal, err = value.Force(condVal)
	if err != nil {
		return nil, err
	}
	b, ok := condVal.(*value.BoolValue)
	if !ok {
		return nil, cerrors.New(cerrors.UnsupportedPattern, "if condition is not a Bool").At(e.Cond.Pos())
	}
	if b.Value {
		return ev.Eval(e.Then, env)
	}
	return ev.Eval(e.Else, env)
}

// evalLet implements spec.md §4.5's Let rule: a variable pattern supports
// recursion via a placeholder bound before the RHS is evaluated; any
// other pattern shape is matched only after the RHS value exists.
func (ev *Evaluator) evalLet(e *ast.Let, env *Environment) (value.Value, error) {
	if varPat, ok := e.Pattern.(*ast.VarPat); ok {
		placeholder := value.NewPlaceholder()
		recEnv := env.Extend(varPat.Name, placeholder)
		v, err := ev.Eval(e.Value, recEnv)
		if err != nil {
			return nil, err
		}
		placeholder.Fill(v)
		return ev.Eval(e.Body, recEnv)
	}

	v, err := ev.Eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	forced, err := value.Force(v)
	if err != nil {
		return nil, err
	}
	bodyEnv, ok, err := matchPattern(e.Pattern, forced, env)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cerrors.New(cerrors.NonExhaustiveMatch, "let binding pattern did not match its value").At(e.Pos())
	}
	return ev.Eval(e.Body, bodyEnv)
}

func (ev *Evaluator) evalList(e *ast.ListExpr, env *Environment) (value.Value, error) {
	elems := make([]value.Value, len(e.Elements))
	for i, elemExpr := range e.Elements {
		v, err := ev.Eval(elemExpr, env)
		if err != nil {
			return nil, err
		}
		forced, err := value.Force(v)
		if err != nil {
			return nil, err
		}
		elems[i] = forced
	}
	return &value.ListValue{Elements: elems}, nil
}

func (ev *Evaluator) evalMatch(e *ast.Match, env *Environment) (value.Value, error) {
	scrutVal, err := ev.Eval(e.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	scrutVal, err = value.Force(scrutVal)
	if err != nil {
		return nil, err
	}
	for _, arm := range e.Arms {
		armEnv, ok, err := matchPattern(arm.Pattern, scrutVal, env)
		if err != nil {
			return nil, err
		}
		if ok {
			return ev.Eval(arm.Body, armEnv)
		}
	}
	return nil, cerrors.New(cerrors.NonExhaustiveMatch, "no pattern matched "+scrutVal.String()).At(e.Pos())
}

// evalBlock threads a Bind statement's pattern bindings into the rest of
// the block (spec.md §4.5); a Let statement already carries its own
// continuation as Body, built that way by the parser.
func (ev *Evaluator) evalBlock(e *ast.Block, env *Environment) (value.Value, error) {
	if len(e.Stmts) == 0 {
		return &value.BoolValue{Value: false}, nil
	}
	curEnv := env
	var last value.Value
	for _, stmt := range e.Stmts {
		if bind, ok := stmt.(*ast.Bind); ok {
			v, err := ev.Eval(bind.Value, curEnv)
			if err != nil {
				return nil, err
			}
			forced, err := value.Force(v)
			if err != nil {
				return nil, err
			}
			newEnv, ok, err := matchPattern(bind.Pattern, forced, curEnv)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, cerrors.New(cerrors.NonExhaustiveMatch, "bind pattern did not match").At(stmt.Pos())
			}
			curEnv = newEnv
			last = &value.UnitValue{}
			continue
		}
		v, err := ev.Eval(stmt, curEnv)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (ev *Evaluator) evalBind(e *ast.Bind, env *Environment) (value.Value, error) {
	v, err := ev.Eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	forced, err := value.Force(v)
	if err != nil {
		return nil, err
	}
	_, ok, err := matchPattern(e.Pattern, forced, env)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cerrors.New(cerrors.NonExhaustiveMatch, "bind pattern did not match").At(e.Pos())
	}
	return &value.UnitValue{}, nil
}

func (ev *Evaluator) evalRecord(e *ast.RecordExpr, env *Environment) (value.Value, error) {
	fields := make(map[string]value.Value, len(e.Order))
	for _, name := range e.Order {
		v, err := ev.Eval(e.Fields[name], env)
		if err != nil {
			return nil, err
		}
		forced, err := value.Force(v)
		if err != nil {
			return nil, err
		}
		fields[name] = forced
	}
	return &value.RecordValue{Fields: fields, Order: append([]string{}, e.Order...)}, nil
}

func (ev *Evaluator) evalRecordAccess(e *ast.RecordAccess, env *Environment) (value.Value, error) {
	recVal, err := ev.Eval(e.Record, env)
	if err != nil {
		return nil, err
	}
	recVal, err = value.Force(recVal)
	if err != nil {
		return nil, err
	}
	rec, ok := recVal.(*value.RecordValue)
	if !ok {
		return nil, cerrors.New(cerrors.FieldNotFound, "value is not a record").At(e.Pos())
	}
	v, ok := rec.Fields[e.Field]
	if !ok {
		return nil, cerrors.New(cerrors.FieldNotFound, "field "+e.Field+" not found").At(e.Pos()).
			WithExplanation("record has fields: " + joinNames(rec.Order))
	}
	return v, nil
}

func (ev *Evaluator) evalRecordUpdate(e *ast.RecordUpdate, env *Environment) (value.Value, error) {
	recVal, err := ev.Eval(e.Record, env)
	if err != nil {
		return nil, err
	}
	recVal, err = value.Force(recVal)
	if err != nil {
		return nil, err
	}
	rec, ok := recVal.(*value.RecordValue)
	if !ok {
		return nil, cerrors.New(cerrors.FieldNotFound, "value is not a record").At(e.Pos())
	}
	newFields := make(map[string]value.Value, len(rec.Fields))
	for k, v := range rec.Fields {
		newFields[k] = v
	}
	order := append([]string{}, rec.Order...)
	for _, name := range e.Order {
		v, err := ev.Eval(e.Fields[name], env)
		if err != nil {
			return nil, err
		}
		forced, err := value.Force(v)
		if err != nil {
			return nil, err
		}
		if _, existed := newFields[name]; !existed {
			order = append(order, name)
		}
		newFields[name] = forced
	}
	return &value.RecordValue{Fields: newFields, Order: order}, nil
}
