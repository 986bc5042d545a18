// Package eval implements the tree-walking evaluator (C5): an
// environment-passing recursive walk over the AST, operating on
// internal/value's runtime values (spec.md §4.5).
package eval

import "github.com/solislang/solis/internal/value"

// Environment is a chained, mutable-at-the-frame value environment. A
// Lambda captures its defining Environment by reference (spec.md §4.5's
// "capture the current environment by value — a shallow copy/shared
// reference"); Extend never mutates the frame it extends, so a closure
// does not see bindings that a later Extend adds in a new child frame. A
// Set on a frame a closure has captured (as EvalModule does on the global
// environment) is visible to that closure.
type Environment struct {
	values map[string]value.Value
	parent *Environment
}

// NewEnvironment returns an empty root environment — typically the
// global value environment a Session owns (spec.md §5).
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// NewChildEnvironment returns a fresh frame chained to e.
func (e *Environment) NewChildEnvironment() *Environment {
	return &Environment{values: make(map[string]value.Value), parent: e}
}

// Set binds name in e's own frame, shadowing any outer binding.
func (e *Environment) Set(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up name, walking outward through parents.
func (e *Environment) Get(name string) (value.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Extend returns a new child frame with name bound to v — the shape the
// evaluator uses for every pattern-introduced binding (spec.md §4.5).
func (e *Environment) Extend(name string, v value.Value) *Environment {
	child := e.NewChildEnvironment()
	child.Set(name, v)
	return child
}

// OwnBindings returns a shallow copy of e's own frame, excluding any
// parent bindings — the module loader uses this to read back exactly the
// names one module installed, to hand to the namespace manager.
func (e *Environment) OwnBindings() map[string]value.Value {
	out := make(map[string]value.Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Names returns every visible binding name, innermost first, for
// near-miss suggestion search (spec.md §4.5's Variable-lookup rule).
func (e *Environment) Names() []string {
	var names []string
	seen := map[string]bool{}
	for cur := e; cur != nil; cur = cur.parent {
		for name := range cur.values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
