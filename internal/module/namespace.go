package module

import (
	"github.com/solislang/solis/internal/ast"
	"github.com/solislang/solis/internal/value"
)

// Namespace implements eval.NamespaceManager (spec.md §6): it tracks,
// across every module a Loader has brought into a run, which symbols are
// visible unqualified and which only under a module/alias qualifier, so
// the evaluator's variable lookup can fall back to it once the local
// environment misses.
type Namespace struct {
	qualified   map[string]value.Value   // "Qualifier.name" -> value
	unqualified map[string][]string      // name -> exporting module identities
	values      map[string]value.Value   // name -> value, only when unambiguous
}

// NewNamespace returns an empty Namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		qualified:   map[string]value.Value{},
		unqualified: map[string][]string{},
		values:      map[string]value.Value{},
	}
}

// AddImport registers imp's exported symbols under the qualifier (alias,
// or module name, or both) and, if imp is unqualified, under the
// unqualified space too — filtered by imp's Include/Hide lists (spec.md
// §6's namespace-manager interface).
func (ns *Namespace) AddImport(imp *ast.Import, moduleIdentity string, exported map[string]value.Value) {
	qualifier := imp.Module
	if imp.Alias != "" {
		qualifier = imp.Alias
	}
	for name, v := range exported {
		if !passesFilter(name, imp) {
			continue
		}
		ns.qualified[qualifier+"."+name] = v
		ns.qualified[imp.Module+"."+name] = v

		if imp.Qualified {
			continue
		}
		ns.unqualified[name] = appendUnique(ns.unqualified[name], moduleIdentity)
		if len(ns.unqualified[name]) == 1 {
			ns.values[name] = v
		} else {
			delete(ns.values, name)
		}
	}
}

func passesFilter(name string, imp *ast.Import) bool {
	if len(imp.Include) > 0 {
		found := false
		for _, n := range imp.Include {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, n := range imp.Hide {
		if n == name {
			return false
		}
	}
	return true
}

func appendUnique(xs []string, x string) []string {
	for _, existing := range xs {
		if existing == x {
			return xs
		}
	}
	return append(xs, x)
}

// Lookup resolves an unqualified name, returning ok=false if it is
// either unknown or ambiguous (callers should check IsAmbiguous first to
// produce the richer diagnostic).
func (ns *Namespace) Lookup(name string) (value.Value, bool) {
	v, ok := ns.values[name]
	return v, ok
}

// LookupQualified resolves "module.name" or "alias.name".
func (ns *Namespace) LookupQualified(mod, name string) (value.Value, bool) {
	v, ok := ns.qualified[mod+"."+name]
	return v, ok
}

// IsAmbiguous reports whether name is exported, unqualified, by more
// than one imported module.
func (ns *Namespace) IsAmbiguous(name string) bool {
	return len(ns.unqualified[name]) > 1
}

// GetModulesExporting lists every module that exports name unqualified.
func (ns *Namespace) GetModulesExporting(name string) []string {
	return ns.unqualified[name]
}

// SuggestImportsFor finds modules whose qualified export namespace
// contains name, for the "did you mean to import X?" suggestion spec.md
// §4.3/§8 name.
func (ns *Namespace) SuggestImportsFor(name string) []string {
	var mods []string
	seen := map[string]bool{}
	for key := range ns.qualified {
		qualifier, symbol := splitQualified(key)
		if symbol == name && !seen[qualifier] {
			seen[qualifier] = true
			mods = append(mods, qualifier)
		}
	}
	return mods
}

func splitQualified(key string) (string, string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '.' {
			return key[:i], key[i+1:]
		}
	}
	return "", key
}
