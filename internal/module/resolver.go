// Package module provides the resolver and namespace manager spec.md §6
// names as external collaborators: resolveModule turns an import name
// into a file path, and the Namespace type tracks which imported symbols
// are visible, qualified or not, across the modules a Loader brings in.
package module

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns a module name into a `.solis` file path, searching in
// the priority order spec.md §6 fixes: standard-library root, current
// directory, working directory, configured extra paths, prelude root.
type Resolver struct {
	StdlibRoot  string
	CurrentDir  string
	WorkingDir  string
	SearchPaths []string
	PreludeRoot string
}

// NewResolver builds a Resolver for a run rooted at workingDir, applying
// cfg's overrides where set and falling back to conventional defaults
// otherwise (solis.yaml absence is not an error — spec.md §6, SPEC_FULL.md A.3).
func NewResolver(workingDir string, cfg Config) *Resolver {
	r := &Resolver{
		StdlibRoot:  cfg.StdlibRoot,
		WorkingDir:  workingDir,
		SearchPaths: cfg.SearchPaths,
		PreludeRoot: cfg.PreludeRoot,
	}
	if r.StdlibRoot == "" {
		r.StdlibRoot = filepath.Join(workingDir, "stdlib")
	}
	if r.PreludeRoot == "" {
		r.PreludeRoot = filepath.Join(r.StdlibRoot, "prelude")
	}
	return r
}

// moduleFilename rewrites a dotted module name to a `.solis` relative
// path: `.` becomes the host path separator (spec.md §6).
func moduleFilename(name string) string {
	rel := strings.ReplaceAll(name, ".", string(filepath.Separator))
	return rel + ".solis"
}

// Resolve searches the priority order and returns the first existing
// file, or "", false if name resolves to no file anywhere.
func (r *Resolver) Resolve(name, currentDir string) (string, bool) {
	rel := moduleFilename(name)
	candidates := []string{
		filepath.Join(r.StdlibRoot, rel),
		filepath.Join(currentDir, rel),
		filepath.Join(r.WorkingDir, rel),
	}
	for _, sp := range r.SearchPaths {
		candidates = append(candidates, filepath.Join(sp, rel))
	}
	candidates = append(candidates, filepath.Join(r.PreludeRoot, rel))

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
