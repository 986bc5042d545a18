// Package session owns the compiler context spec.md's Design Notes name
// under "Global mutable state": the fresh-type-variable counter and the
// global value environment a driver threads through every declaration it
// feeds the core, plus the structured logger the driver layer (never
// inference or evaluation themselves) writes through (SPEC_FULL.md A.1).
package session

import (
	"go.uber.org/zap"

	"github.com/solislang/solis/internal/builtins"
	"github.com/solislang/solis/internal/eval"
	"github.com/solislang/solis/internal/module"
	"github.com/solislang/solis/internal/types"
)

// Session is the single mutable context a CLI/REPL run carries: one
// *types.VarGen (so every fresh type variable allocated across a whole
// run gets a distinct id), one global *eval.Environment (so forward
// references across declarations resolve against the same map, per
// spec.md §4.5's installFunc design), and one *module.Loader wired to
// both.
type Session struct {
	Gen      *types.VarGen
	TypeEnv  *types.Env
	ValueEnv *eval.Environment
	Eval     *eval.Evaluator
	Loader   *module.Loader
	Log      *zap.SugaredLogger
}

// New builds a Session rooted at workingDir with the built-in registry
// (spec.md §4.6) installed into both the starting type environment and
// the global value environment.
func New(workingDir string) (*Session, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	sugar := logger.Sugar()

	gen := types.NewVarGen()
	typeEnv := types.NewEnv()
	for name, scheme := range builtins.Schemes(gen) {
		typeEnv = typeEnv.Extend(name, scheme)
	}

	valueEnv := eval.NewEnvironment()
	builtins.NewRegistry().InstallInto(valueEnv.Set)

	ev := eval.New()
	loader, err := module.NewLoader(workingDir, gen, ev, sugar)
	if err != nil {
		return nil, err
	}

	return &Session{
		Gen:      gen,
		TypeEnv:  typeEnv,
		ValueEnv: valueEnv,
		Eval:     ev,
		Loader:   loader,
		Log:      sugar,
	}, nil
}

// Close flushes the logger; drivers should defer this.
func (s *Session) Close() {
	_ = s.Log.Sync()
}
