package eval

import "github.com/solislang/solis/internal/value"

// NamespaceManager is the evaluator's view of spec.md §6's namespace
// manager: the collaborator that resolves imported, possibly qualified,
// names once a local environment lookup misses. internal/module provides
// the concrete implementation; eval only depends on this interface so the
// two packages don't import each other.
type NamespaceManager interface {
	Lookup(name string) (value.Value, bool)
	LookupQualified(module, name string) (value.Value, bool)
	IsAmbiguous(name string) bool
	GetModulesExporting(name string) []string
	SuggestImportsFor(name string) []string
}
