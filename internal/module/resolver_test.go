package module

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("let x = 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestResolverStdlibTakesPriorityOverCurrentDir(t *testing.T) {
	root := t.TempDir()
	stdlib := filepath.Join(root, "stdlib")
	cur := filepath.Join(root, "cur")
	touch(t, filepath.Join(stdlib, "List.solis"))
	touch(t, filepath.Join(cur, "List.solis"))

	r := NewResolver(root, Config{StdlibRoot: stdlib})
	path, ok := r.Resolve("List", cur)
	if !ok {
		t.Fatal("expected List to resolve")
	}
	if path != filepath.Join(stdlib, "List.solis") {
		t.Fatalf("expected stdlib to win, got %s", path)
	}
}

func TestResolverFallsBackToCurrentDir(t *testing.T) {
	root := t.TempDir()
	cur := filepath.Join(root, "cur")
	touch(t, filepath.Join(cur, "Helpers.solis"))

	r := NewResolver(root, Config{StdlibRoot: filepath.Join(root, "stdlib")})
	path, ok := r.Resolve("Helpers", cur)
	if !ok || path != filepath.Join(cur, "Helpers.solis") {
		t.Fatalf("expected current-dir resolution, got %s ok=%v", path, ok)
	}
}

func TestResolverFallsBackToWorkingDir(t *testing.T) {
	root := t.TempDir()
	cur := filepath.Join(root, "cur")
	touch(t, filepath.Join(root, "Util.solis"))

	r := NewResolver(root, Config{StdlibRoot: filepath.Join(root, "stdlib")})
	path, ok := r.Resolve("Util", cur)
	if !ok || path != filepath.Join(root, "Util.solis") {
		t.Fatalf("expected working-dir resolution, got %s ok=%v", path, ok)
	}
}

func TestResolverFallsBackToSearchPaths(t *testing.T) {
	root := t.TempDir()
	cur := filepath.Join(root, "cur")
	extra := filepath.Join(root, "vendor")
	touch(t, filepath.Join(extra, "Vendored.solis"))

	r := NewResolver(root, Config{StdlibRoot: filepath.Join(root, "stdlib"), SearchPaths: []string{extra}})
	path, ok := r.Resolve("Vendored", cur)
	if !ok || path != filepath.Join(extra, "Vendored.solis") {
		t.Fatalf("expected search-path resolution, got %s ok=%v", path, ok)
	}
}

func TestResolverFallsBackToPreludeRootLast(t *testing.T) {
	root := t.TempDir()
	cur := filepath.Join(root, "cur")
	prelude := filepath.Join(root, "prelude")
	touch(t, filepath.Join(prelude, "Core.solis"))

	r := NewResolver(root, Config{StdlibRoot: filepath.Join(root, "stdlib"), PreludeRoot: prelude})
	path, ok := r.Resolve("Core", cur)
	if !ok || path != filepath.Join(prelude, "Core.solis") {
		t.Fatalf("expected prelude resolution, got %s ok=%v", path, ok)
	}
}

func TestResolverDottedNameBecomesNestedPath(t *testing.T) {
	root := t.TempDir()
	cur := filepath.Join(root, "cur")
	touch(t, filepath.Join(root, "Data", "Map.solis"))

	r := NewResolver(root, Config{StdlibRoot: filepath.Join(root, "stdlib")})
	path, ok := r.Resolve("Data.Map", cur)
	if !ok || path != filepath.Join(root, "Data", "Map.solis") {
		t.Fatalf("expected Data/Map.solis, got %s ok=%v", path, ok)
	}
}

func TestResolverMissReturnsFalse(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root, Config{StdlibRoot: filepath.Join(root, "stdlib")})
	_, ok := r.Resolve("Nowhere", filepath.Join(root, "cur"))
	if ok {
		t.Fatal("expected no resolution for a module with no file anywhere")
	}
}
