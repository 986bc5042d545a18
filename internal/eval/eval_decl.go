package eval

import (
	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/value"
)

// EvalModule installs every declaration of m into globalEnv (spec.md
// §4.5's "ADT constructors at runtime" and §5's "declarations are typed
// and evaluated in source order"). Installation never evaluates a
// function body: a zero-parameter binding is wrapped in a Thunk that
// closes over globalEnv itself, so a forward reference (scenario 5 of
// spec.md §8) resolves correctly once every sibling declaration has been
// installed and the binding is finally forced by the driver.
func (ev *Evaluator) EvalModule(m *ast.Module, globalEnv *Environment) error {
	for _, decl := range m.Declarations {
		if err := ev.installDecl(decl, globalEnv); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) installDecl(decl ast.Decl, globalEnv *Environment) error {
	switch d := decl.(type) {
	case *ast.TypeDecl:
		installConstructors(d, globalEnv)
		return nil
	case *ast.FuncDecl:
		installFunc(ev, d, globalEnv)
		return nil
	case *ast.ImplDecl:
		for _, m := range d.Methods {
			installFunc(ev, m, globalEnv)
		}
		return nil
	case *ast.Import, *ast.TraitDecl:
		// Imports are resolved by the module resolver / namespace manager;
		// traits contribute only method type schemes, handled entirely by
		// internal/types during inference.
		return nil
	default:
		return cerrors.New(cerrors.UnsupportedPattern, "unsupported declaration shape")
	}
}

func installFunc(ev *Evaluator, d *ast.FuncDecl, globalEnv *Environment) {
	if len(d.Params) == 0 {
		body := d.Body
		globalEnv.Set(d.Name, value.NewThunk(func() (value.Value, error) {
			return ev.Eval(body, globalEnv)
		}))
		return
	}
	globalEnv.Set(d.Name, ev.makeCurried(d.Params, d.Body, globalEnv))
}

// installConstructors binds each alternative of an ADT declaration to an
// unsaturated Constructor value. Application (evalApp) accumulates
// arguments onto it directly — a Constructor is itself "callable" while
// arguments remain, per spec.md §4.5's Application rule — until arity is
// reached. Nullary constructors are simply installed with no arguments
// to accumulate.
func installConstructors(d *ast.TypeDecl, globalEnv *Environment) {
	for _, ctor := range d.Ctors {
		globalEnv.Set(ctor.Name, &value.ConstructorValue{Name: ctor.Name, Arity: len(ctor.Fields)})
	}
}

// Run forces name in globalEnv — the driver's entry point for evaluating
// a module's designated top-level binding (e.g. "main").
func (ev *Evaluator) Run(name string, globalEnv *Environment) (value.Value, error) {
	v, ok := globalEnv.Get(name)
	if !ok {
		return nil, cerrors.New(cerrors.UndefinedName, "undefined name "+name)
	}
	return value.Force(v)
}
