package types

// Env is the ordered type environment mapping names to schemes (spec.md
// §3). It is immutable: Extend returns a new Env sharing the parent's
// bindings, mirroring the evaluator's environment discipline so lexical
// shadowing behaves identically in both passes.
type Env struct {
	name   string
	scheme *Scheme
	parent *Env
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return nil
}

// Extend returns a new environment with name bound to scheme, shadowing
// any existing binding of the same name.
func (e *Env) Extend(name string, scheme *Scheme) *Env {
	return &Env{name: name, scheme: scheme, parent: e}
}

// Lookup finds the nearest binding for name, if any.
func (e *Env) Lookup(name string) (*Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.scheme, true
		}
	}
	return nil, false
}

// Names returns every bound name, most recently added first, for use in
// near-miss suggestion search (spec.md §4.3).
func (e *Env) Names() []string {
	var names []string
	for cur := e; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	return names
}

func (e *Env) forEach(fn func(name string, scheme *Scheme)) {
	seen := map[string]bool{}
	for cur := e; cur != nil; cur = cur.parent {
		if seen[cur.name] {
			continue
		}
		seen[cur.name] = true
		fn(cur.name, cur.scheme)
	}
}

// All returns every binding visible in e, keyed by name. Used by the
// module loader to compute a module's exported schemes (spec.md §6).
func (e *Env) All() map[string]*Scheme {
	out := map[string]*Scheme{}
	e.forEach(func(name string, scheme *Scheme) {
		out[name] = scheme
	})
	return out
}
