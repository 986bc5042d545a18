package module

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/eval"
	"github.com/solislang/solis/internal/parser"
	"github.com/solislang/solis/internal/types"
	"github.com/solislang/solis/internal/value"
)

// Loaded is one module's result: the declarations it installed into its
// own type/value environment frames, kept separately from its imports so
// later re-exporting a transitively-imported symbol doesn't happen by
// accident (spec.md §6's export rule).
type Loaded struct {
	Identity  string
	TypeEnv   *types.Env
	ValueEnv  *eval.Environment
	Exports   map[string]*types.Scheme
	ExportVal map[string]value.Value
}

// Loader resolves, parses, type-checks, and evaluates Solis modules,
// caching each by its resolved identity (spec.md §6; "declarations are
// typed and evaluated in source order" across a dependency-ordered load
// chain). It is the concrete collaborator behind eval.NamespaceManager.
type Loader struct {
	Resolver  *Resolver
	Namespace *Namespace
	Gen       *types.VarGen
	Evaluator *eval.Evaluator
	Log       *zap.SugaredLogger

	cache     map[string]*Loaded
	loadStack []string
	runID     uuid.UUID
}

// NewLoader builds a Loader rooted at workingDir, reading an optional
// solis.yaml there first (SPEC_FULL.md A.3).
func NewLoader(workingDir string, gen *types.VarGen, ev *eval.Evaluator, log *zap.SugaredLogger) (*Loader, error) {
	cfg, err := LoadConfig(workingDir)
	if err != nil {
		return nil, err
	}
	ns := NewNamespace()
	ev.Namespace = ns
	return &Loader{
		Resolver:  NewResolver(workingDir, cfg),
		Namespace: ns,
		Gen:       gen,
		Evaluator: ev,
		Log:       log,
		cache:     map[string]*Loaded{},
		runID:     uuid.New(),
	}, nil
}

// RunID identifies this loader's lifetime for log correlation
// (SPEC_FULL.md A.8).
func (l *Loader) RunID() uuid.UUID { return l.runID }

// LoadFile parses and loads the module at path, identified by its
// slash-free base name (the driver's entry point: `run FILE`).
func (l *Loader) LoadFile(path string, baseTypeEnv *types.Env, baseValueEnv *eval.Environment) (*Loaded, error) {
	identity := filepath.Base(path)
	for _, ext := range []string{".solis"} {
		identity = trimSuffix(identity, ext)
	}
	return l.loadFromPath(identity, path, baseTypeEnv, baseValueEnv)
}

// Load resolves name relative to currentDir and loads it, returning the
// cached Loaded if name was already brought into this run.
func (l *Loader) Load(name, currentDir string, baseTypeEnv *types.Env, baseValueEnv *eval.Environment) (*Loaded, error) {
	if cached, ok := l.cache[name]; ok {
		return cached, nil
	}
	path, ok := l.Resolver.Resolve(name, currentDir)
	if !ok {
		return nil, cerrors.New(cerrors.IOFailure, "module not found: "+name).
			WithExplanation("searched stdlib root, current directory, working directory, configured search paths, and the prelude root")
	}
	return l.loadFromPath(name, path, baseTypeEnv, baseValueEnv)
}

func (l *Loader) loadFromPath(identity, path string, baseTypeEnv *types.Env, baseValueEnv *eval.Environment) (*Loaded, error) {
	if cached, ok := l.cache[identity]; ok {
		return cached, nil
	}
	if err := l.checkCycle(identity); err != nil {
		return nil, err
	}
	l.loadStack = append(l.loadStack, identity)
	defer func() { l.loadStack = l.loadStack[:len(l.loadStack)-1] }()

	if l.Log != nil {
		l.Log.Debugw("resolving module", "identity", identity, "path", path, "run", l.runID)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.New(cerrors.IOFailure, "cannot read module").WithExplanation(err.Error())
	}

	m, perrs := parser.ParseModule(string(src))
	if len(perrs) > 0 {
		return nil, perrs[0]
	}

	typeEnv := baseTypeEnv
	valueEnv := baseValueEnv.NewChildEnvironment()
	dir := filepath.Dir(path)

	seenUnqualified := map[string]bool{}
	ambiguous := map[string]bool{}
	for _, imp := range m.Imports {
		dep, err := l.Load(imp.Module, dir, baseTypeEnv, baseValueEnv)
		if err != nil {
			return nil, err
		}
		typeEnv = mergeImportedTypes(typeEnv, imp, dep)
		l.Namespace.AddImport(imp, dep.Identity, dep.ExportVal)
		if imp.Qualified {
			continue
		}
		for name := range dep.ExportVal {
			if !passesFilter(name, imp) {
				continue
			}
			if seenUnqualified[name] {
				ambiguous[name] = true
			}
			seenUnqualified[name] = true
		}
	}
	// Write unqualified imported bindings directly into this module's
	// value environment, except names two of its own imports both
	// export unqualified: those are left unset here so the evaluator's
	// local lookup misses and falls through to the Namespace, which
	// raises AmbiguousName (spec.md §6's collision rule; C5 only — the
	// type environment gets no such check: mergeImportedTypes extends it
	// with every unqualified import, so a later import's scheme shadows an
	// earlier one's).
	for _, imp := range m.Imports {
		if imp.Qualified {
			continue
		}
		dep := l.cache[imp.Module]
		if dep == nil {
			continue
		}
		for name, v := range dep.ExportVal {
			if passesFilter(name, imp) && !ambiguous[name] {
				valueEnv.Set(name, v)
			}
		}
	}

	inf := types.NewInferencer(l.Gen)
	finalTypeEnv, _, terr := inf.InferModule(m, typeEnv)
	if terr != nil {
		return nil, terr
	}

	ownValueEnv := valueEnv.NewChildEnvironment()
	if err := l.Evaluator.EvalModule(m, ownValueEnv); err != nil {
		return nil, err
	}

	loaded := &Loaded{
		Identity:  identity,
		TypeEnv:   finalTypeEnv,
		ValueEnv:  ownValueEnv,
		Exports:   exportedSchemes(m, finalTypeEnv),
		ExportVal: exportedValues(m, ownValueEnv),
	}
	l.cache[identity] = loaded
	if l.Log != nil {
		l.Log.Infow("module loaded", "identity", identity, "exports", len(loaded.ExportVal), "run", l.runID)
	}
	return loaded, nil
}

// mergeImportedTypes extends typeEnv with dep's exported schemes, both
// qualified (always) and unqualified (unless imp.Qualified), matching
// Namespace.AddImport's exposure rules on the type side (spec.md §6).
func mergeImportedTypes(typeEnv *types.Env, imp *ast.Import, dep *Loaded) *types.Env {
	qualifier := imp.Module
	if imp.Alias != "" {
		qualifier = imp.Alias
	}
	for name, scheme := range dep.Exports {
		if !passesFilter(name, imp) {
			continue
		}
		typeEnv = typeEnv.Extend(qualifier+"."+name, scheme)
		typeEnv = typeEnv.Extend(imp.Module+"."+name, scheme)
		if !imp.Qualified {
			typeEnv = typeEnv.Extend(name, scheme)
		}
	}
	return typeEnv
}

// exportedSchemes returns every name m declared at its own top level,
// mapped to the scheme it ended up with after InferModule — spec.md §6's
// "if a module provides no explicit export list, every top-level
// function is considered exported."
func exportedSchemes(m *ast.Module, finalEnv *types.Env) map[string]*types.Scheme {
	own := declaredNames(m)
	all := finalEnv.All()
	out := map[string]*types.Scheme{}
	for name := range own {
		if scheme, ok := all[name]; ok {
			out[name] = scheme
		}
	}
	return out
}

func exportedValues(m *ast.Module, ownEnv *eval.Environment) map[string]value.Value {
	own := declaredNames(m)
	bindings := ownEnv.OwnBindings()
	out := map[string]value.Value{}
	for name := range own {
		if v, ok := bindings[name]; ok {
			out[name] = v
		}
	}
	return out
}

func declaredNames(m *ast.Module) map[string]bool {
	names := map[string]bool{}
	for _, decl := range m.Declarations {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			names[d.Name] = true
		case *ast.TypeDecl:
			for _, ctor := range d.Ctors {
				names[ctor.Name] = true
			}
		case *ast.ImplDecl:
			for _, method := range d.Methods {
				names[method.Name] = true
			}
		}
	}
	return names
}

func (l *Loader) checkCycle(identity string) error {
	for _, id := range l.loadStack {
		if id == identity {
			return cerrors.New(cerrors.IOFailure, "circular module dependency involving "+identity)
		}
	}
	return nil
}

func trimSuffix(s, suffix string) string {
	if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}
