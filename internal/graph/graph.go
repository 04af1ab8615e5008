// Package graph holds the code graph data model: files, modules, dependency
// edges, and the derivation and maintenance procedures that keep them
// consistent across full scans and incremental updates.
package graph

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// commonRootDirs are path prefixes stripped before module assignment, so
// "src/auth/login.ts" and "auth/login.ts" land in the same module.
var commonRootDirs = map[string]bool{
	"src":      true,
	"lib":      true,
	"app":      true,
	"source":   true,
	"packages": true,
}

// entryPointStems are lowercase filename stems treated as entry points.
var entryPointStems = map[string]bool{
	"main":      true,
	"index":     true,
	"server":    true,
	"app":       true,
	"entry":     true,
	"bootstrap": true,
}

// New returns an empty graph for the given project.
func New(projectName, root string, config Config) *Graph {
	return &Graph{
		Version: GraphVersion,
		Project: ProjectInfo{Name: projectName, Root: root},
		Config:  config,
		Summary: Summary{
			Languages:   map[string]int{},
			Modules:     []string{},
			EntryPoints: []string{},
		},
		Modules: map[string]*Module{},
		Files:   map[string]*FileEntry{},
	}
}

// ComputeFileHash fingerprints file content as "sha256:" plus the first
// 16 hex characters of the content's SHA-256.
func ComputeFileHash(content []byte) string {
	hex := fmt.Sprintf("%x", sha256.Sum256(content))
	return "sha256:" + hex[:16]
}

// ModuleNameForPath derives the module a project-relative path belongs to:
// the first directory segment after stripping common root directories, or
// "_root" for files directly under the root.
func ModuleNameForPath(relPath string) string {
	parts := strings.Split(relPath, "/")
	if len(parts) < 2 {
		return "_root"
	}
	parts = parts[:len(parts)-1]
	for len(parts) > 0 && commonRootDirs[parts[0]] {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "_root"
	}
	return parts[0]
}

// IsEntryPoint reports whether a path's filename stem marks it as a
// project entry point.
func IsEntryPoint(relPath string) bool {
	base := relPath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return entryPointStems[strings.ToLower(stripExtension(base))]
}

// AttachFile inserts or replaces a file entry and keeps module membership
// consistent. All additions go through here so a module always exists for
// every file that names it.
func (g *Graph) AttachFile(entry *FileEntry) {
	if old, ok := g.Files[entry.Path]; ok && old.Module != entry.Module {
		g.removeFromModule(old.Module, entry.Path)
	}
	g.Files[entry.Path] = entry

	m, ok := g.Modules[entry.Module]
	if !ok {
		m = &Module{Name: entry.Module, Files: []string{}, DependsOn: []string{}, DependedBy: []string{}}
		g.Modules[entry.Module] = m
	}
	m.Files = insertSorted(m.Files, entry.Path)
}

// DetachFile removes a file and its module membership. Removals go through
// here so a module is dropped the moment its last member leaves.
func (g *Graph) DetachFile(path string) {
	entry, ok := g.Files[path]
	if !ok {
		return
	}
	delete(g.Files, path)
	g.removeFromModule(entry.Module, path)
}

func (g *Graph) removeFromModule(name, path string) {
	m, ok := g.Modules[name]
	if !ok {
		return
	}
	m.Files = removeString(m.Files, path)
	if len(m.Files) == 0 {
		delete(g.Modules, name)
	}
}

// RecalculateSummary recomputes all aggregate counts from the file set.
func (g *Graph) RecalculateSummary() {
	s := Summary{
		Languages:   map[string]int{},
		Modules:     []string{},
		EntryPoints: []string{},
	}
	for path, f := range g.Files {
		s.TotalFiles++
		s.TotalFunctions += len(f.Functions)
		s.TotalClasses += len(f.Classes)
		s.Languages[f.Language]++
		if f.IsEntryPoint {
			s.EntryPoints = append(s.EntryPoints, path)
		}
	}
	for name := range g.Modules {
		s.Modules = append(s.Modules, name)
	}
	sort.Strings(s.Modules)
	sort.Strings(s.EntryPoints)
	g.Summary = s
}

// RebuildDependencies re-derives every cross-module edge from the current
// file set. It is the only way edges are produced: full scans and
// incremental merges both discard existing edges and call this.
func (g *Graph) RebuildDependencies() {
	lookup := g.pathLookup()

	dependsOn := map[string]map[string]bool{}
	dependedBy := map[string]map[string]bool{}

	for _, path := range sortedKeys(g.Files) {
		f := g.Files[path]
		dir := posixDir(path)
		for _, imp := range f.Imports {
			if imp.IsExternal {
				continue
			}
			target := g.resolveImport(lookup, dir, imp.Source)
			if target == "" || target == f.Module {
				continue
			}
			if dependsOn[f.Module] == nil {
				dependsOn[f.Module] = map[string]bool{}
			}
			dependsOn[f.Module][target] = true
			if dependedBy[target] == nil {
				dependedBy[target] = map[string]bool{}
			}
			dependedBy[target][f.Module] = true
		}
	}

	for name, m := range g.Modules {
		m.DependsOn = sortedKeys(dependsOn[name])
		m.DependedBy = sortedKeys(dependedBy[name])
	}
}

// pathLookup maps each file path, and its extension-stripped form, to the
// owning module. Built fresh for every derivation.
func (g *Graph) pathLookup() map[string]string {
	lookup := make(map[string]string, len(g.Files)*2)
	for _, path := range sortedKeys(g.Files) {
		lookup[path] = g.Files[path].Module
		if stripped := stripExtension(path); stripped != path {
			lookup[stripped] = g.Files[path].Module
		}
	}
	return lookup
}

// resolveImport maps a relative import source to the module that owns it,
// trying the resolved path directly and then as a directory index.
func (g *Graph) resolveImport(lookup map[string]string, importerDir, source string) string {
	candidate := resolveRelative(importerDir, source)
	if m, ok := lookup[candidate]; ok {
		return m
	}
	if m, ok := lookup[candidate+"/index"]; ok {
		return m
	}
	return ""
}

func insertSorted(list []string, s string) []string {
	i := sort.SearchStrings(list, s)
	if i < len(list) && list[i] == s {
		return list
	}
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
