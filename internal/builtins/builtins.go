// Package builtins implements the core's built-in registry (C6): print,
// show, list/string/file primitives, and arithmetic predicates, each
// installed both as a runtime value and as a type scheme (spec.md §4.6).
package builtins

import (
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/types"
	"github.com/solislang/solis/internal/value"
)

// Registry maps a built-in's name to its callable runtime value.
type Registry map[string]*value.BuiltinValue

// NewRegistry builds the full set of runtime built-ins named in
// spec.md §4.6.
func NewRegistry() Registry {
	r := Registry{}
	registerCore(r)
	registerList(r)
	registerString(r)
	registerIO(r)
	registerArithmetic(r)
	return r
}

// InstallInto copies every built-in into a value environment through its
// set function; the session passes the evaluator's global
// Environment.Set. Type schemes are installed separately, from Schemes.
func (r Registry) InstallInto(set func(name string, v value.Value)) {
	for name, fn := range r {
		set(name, fn)
	}
}

// Schemes builds the type scheme for every built-in, allocating fresh
// type-variable ids from gen so a session's schemes never collide with
// ids allocated during inference of the program itself (spec.md §4.6:
// built-ins exist "both as type-environment entries and as runtime
// values").
func Schemes(gen *types.VarGen) map[string]*types.Scheme {
	return map[string]*types.Scheme{
		"print": polyUnary(gen, func(a types.Type) types.Type { return types.TBool }),
		"show":  polyUnary(gen, func(a types.Type) types.Type { return types.TString }),

		"head":   polyUnary(gen, func(a types.Type) types.Type { return a }, true),
		"tail":   polyUnary(gen, func(a types.Type) types.Type { return types.TList(a) }, true),
		"length": polyUnary(gen, func(a types.Type) types.Type { return types.TInt }, true),

		"words":       monoFun(types.TString, types.TList(types.TString)),
		"unwords":     monoFun(types.TList(types.TString), types.TString),
		"lines":       monoFun(types.TString, types.TList(types.TString)),
		"unlines":     monoFun(types.TList(types.TString), types.TString),
		"trim":        monoFun(types.TString, types.TString),
		"startsWith":  monoFun2(types.TString, types.TString, types.TBool),
		"endsWith":    monoFun2(types.TString, types.TString, types.TBool),
		"contains":    monoFun2(types.TString, types.TString, types.TBool),
		"split":       monoFun2(types.TString, types.TString, types.TList(types.TString)),

		"readFile":   monoFun(types.TString, types.TString),
		"writeFile":  monoFun2(types.TString, types.TString, types.TBool),
		"appendFile": monoFun2(types.TString, types.TString, types.TBool),
		"fileExists": monoFun(types.TString, types.TBool),
		"deleteFile": monoFun(types.TString, types.TBool),

		"even": monoFun(types.TInt, types.TBool),
		"odd":  monoFun(types.TInt, types.TBool),
		"abs":  monoFun(types.TInt, types.TInt),
		"max":  monoFun2(types.TInt, types.TInt, types.TInt),
		"min":  monoFun2(types.TInt, types.TInt, types.TInt),
		"gcd":  monoFun2(types.TInt, types.TInt, types.TInt),
		"lcm":  monoFun2(types.TInt, types.TInt, types.TInt),
	}
}

func monoFun(from, to types.Type) *types.Scheme {
	return types.MonoScheme(&types.TyFun{From: from, To: to})
}

func monoFun2(a, b, to types.Type) *types.Scheme {
	return types.MonoScheme(&types.TyFun{From: a, To: &types.TyFun{From: b, To: to}})
}

// polyUnary builds `forall a. a -> result(a)`, optionally wrapping `a` in
// List (for list primitives whose argument is `List a`, not `a` itself).
func polyUnary(gen *types.VarGen, result func(a types.Type) types.Type, listArg ...bool) *types.Scheme {
	a := gen.Fresh("a")
	argType := types.Type(a)
	if len(listArg) > 0 && listArg[0] {
		argType = types.TList(a)
	}
	return &types.Scheme{
		Quantified: map[int]bool{a.Id: true},
		Body:       &types.TyFun{From: argType, To: result(a)},
	}
}

func ioFailure(path string, reason error) *cerrors.SolisError {
	return cerrors.New(cerrors.IOFailure, "I/O operation failed").
		WithExplanation(path + ": " + reason.Error())
}
