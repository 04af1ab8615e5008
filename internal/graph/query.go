package graph

import (
	"sort"
	"strings"
)

// SymbolResult is one hit from a symbol query.
type SymbolResult struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	File      string `json:"file"`
	Module    string `json:"module"`
	Signature string `json:"signature,omitempty"`
	StartLine int    `json:"startLine,omitempty"`
}

// CallerResult is a file that imports a given symbol.
type CallerResult struct {
	File   string `json:"file"`
	Module string `json:"module"`
}

// QuerySymbol finds functions, classes, and types by name. Exact matches
// win; substring matches are the fallback. kind filters to "function",
// "class", or "type" when non-empty. Results sort by file then name.
func QuerySymbol(g *Graph, name, kind string) []SymbolResult {
	exact := collectSymbols(g, kind, func(n string) bool { return n == name })
	if len(exact) > 0 {
		return exact
	}
	return collectSymbols(g, kind, func(n string) bool { return strings.Contains(n, name) })
}

func collectSymbols(g *Graph, kind string, match func(string) bool) []SymbolResult {
	results := []SymbolResult{}
	for _, path := range sortedKeys(g.Files) {
		f := g.Files[path]
		if kind == "" || kind == "function" {
			for _, fn := range f.Functions {
				if match(fn.Name) {
					results = append(results, SymbolResult{
						Name: fn.Name, Kind: "function", File: path, Module: f.Module,
						Signature: fn.Signature, StartLine: fn.StartLine,
					})
				}
			}
		}
		if kind == "" || kind == "class" {
			for _, c := range f.Classes {
				if match(c.Name) {
					results = append(results, SymbolResult{
						Name: c.Name, Kind: "class", File: path, Module: f.Module,
						StartLine: c.StartLine,
					})
				}
			}
		}
		if kind == "" || kind == "type" {
			for _, t := range f.Types {
				if match(t.Name) {
					results = append(results, SymbolResult{
						Name: t.Name, Kind: t.Kind, File: path, Module: f.Module,
					})
				}
			}
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].File != results[j].File {
			return results[i].File < results[j].File
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// FindCallers lists files whose imports name the given symbol.
func FindCallers(g *Graph, symbol string) []CallerResult {
	results := []CallerResult{}
	for _, path := range sortedKeys(g.Files) {
		f := g.Files[path]
		for _, imp := range f.Imports {
			for _, s := range imp.Symbols {
				if s == symbol {
					results = append(results, CallerResult{File: path, Module: f.Module})
				}
			}
		}
	}
	return results
}
