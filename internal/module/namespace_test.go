package module

import (
	"testing"

	"github.com/solislang/solis/internal/ast"
	"github.com/solislang/solis/internal/value"
)

func TestNamespaceUnqualifiedImportIsVisibleUnqualified(t *testing.T) {
	ns := NewNamespace()
	imp := &ast.Import{Module: "List"}
	ns.AddImport(imp, "List", map[string]value.Value{"map": &value.IntValue{Value: 1}})

	v, ok := ns.Lookup("map")
	if !ok {
		t.Fatal("expected map to be visible unqualified")
	}
	if iv := v.(*value.IntValue); iv.Value != 1 {
		t.Fatalf("unexpected value %#v", v)
	}
}

func TestNamespaceQualifiedImportIsNotVisibleUnqualified(t *testing.T) {
	ns := NewNamespace()
	imp := &ast.Import{Module: "List", Qualified: true}
	ns.AddImport(imp, "List", map[string]value.Value{"map": &value.IntValue{Value: 1}})

	if _, ok := ns.Lookup("map"); ok {
		t.Fatal("a qualified import must not leak its exports unqualified")
	}
	v, ok := ns.LookupQualified("List", "map")
	if !ok {
		t.Fatal("expected List.map to resolve")
	}
	if iv := v.(*value.IntValue); iv.Value != 1 {
		t.Fatalf("unexpected value %#v", v)
	}
}

func TestNamespaceAliasIsAnAdditionalQualifier(t *testing.T) {
	ns := NewNamespace()
	imp := &ast.Import{Module: "List", Alias: "L", Qualified: true}
	ns.AddImport(imp, "List", map[string]value.Value{"map": &value.IntValue{Value: 1}})

	if _, ok := ns.LookupQualified("L", "map"); !ok {
		t.Fatal("expected the alias L.map to resolve")
	}
	if _, ok := ns.LookupQualified("List", "map"); !ok {
		t.Fatal("expected the original module name List.map to still resolve")
	}
}

func TestNamespaceTwoUnqualifiedImportsExportingSameNameAreAmbiguous(t *testing.T) {
	ns := NewNamespace()
	ns.AddImport(&ast.Import{Module: "Left"}, "Left", map[string]value.Value{"shared": &value.IntValue{Value: 1}})
	ns.AddImport(&ast.Import{Module: "Right"}, "Right", map[string]value.Value{"shared": &value.IntValue{Value: 2}})

	if !ns.IsAmbiguous("shared") {
		t.Fatal("expected shared to be ambiguous across two unqualified imports")
	}
	if _, ok := ns.Lookup("shared"); ok {
		t.Fatal("an ambiguous name must not resolve via plain Lookup")
	}
	exporters := ns.GetModulesExporting("shared")
	if len(exporters) != 2 {
		t.Fatalf("expected 2 exporters, got %v", exporters)
	}
}

func TestNamespaceIncludeFilterRestrictsExposedNames(t *testing.T) {
	ns := NewNamespace()
	imp := &ast.Import{Module: "Set", Include: []string{"union"}}
	ns.AddImport(imp, "Set", map[string]value.Value{
		"union": &value.IntValue{Value: 1},
		"empty": &value.IntValue{Value: 2},
	})

	if _, ok := ns.Lookup("union"); !ok {
		t.Fatal("expected union to pass the include filter")
	}
	if _, ok := ns.Lookup("empty"); ok {
		t.Fatal("expected empty to be excluded by the include filter")
	}
}

func TestNamespaceHideFilterExcludesNames(t *testing.T) {
	ns := NewNamespace()
	imp := &ast.Import{Module: "Set", Hide: []string{"internal"}}
	ns.AddImport(imp, "Set", map[string]value.Value{
		"union":    &value.IntValue{Value: 1},
		"internal": &value.IntValue{Value: 2},
	})

	if _, ok := ns.Lookup("internal"); ok {
		t.Fatal("expected internal to be excluded by the hide filter")
	}
	if _, ok := ns.Lookup("union"); !ok {
		t.Fatal("expected union to remain visible")
	}
}

func TestNamespaceSuggestImportsFor(t *testing.T) {
	ns := NewNamespace()
	ns.AddImport(&ast.Import{Module: "List", Qualified: true}, "List", map[string]value.Value{"map": &value.IntValue{Value: 1}})

	suggestions := ns.SuggestImportsFor("map")
	found := false
	for _, s := range suggestions {
		if s == "List" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected List among suggestions, got %v", suggestions)
	}
}
