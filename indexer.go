package codegraph

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jward/codegraph/internal/graph"
	"github.com/jward/codegraph/internal/lang"
)

// indexPaths indexes the given project-relative paths and returns their
// file entries in path order. Per-file failures are logged and skipped.
func (e *Engine) indexPaths(ctx context.Context, paths []string, hasCpp bool) []*graph.FileEntry {
	if e.useParallel && len(paths) > 1 {
		return e.indexPathsParallel(ctx, paths, hasCpp)
	}

	parsers := lang.NewParserSet()
	entries := make([]*graph.FileEntry, 0, len(paths))
	for _, rel := range paths {
		entry, err := e.indexFile(ctx, parsers, rel, hasCpp)
		if err != nil {
			e.logger.Warn("skipping file", "path", rel, "error", err)
			continue
		}
		if entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// indexFile reads, fingerprints, parses, and extracts one file. A nil
// entry with nil error means the file is unsupported or filtered out.
func (e *Engine) indexFile(ctx context.Context, parsers *lang.ParserSet, rel string, hasCpp bool) (*graph.FileEntry, error) {
	detected, ok := lang.Detect(rel)
	if !ok {
		return nil, nil
	}
	l := lang.Effective(rel, detected, hasCpp)
	if e.languages != nil && !e.languages[l] {
		return nil, nil
	}
	adapter, ok := lang.ForLanguage(l)
	if !ok {
		return nil, fmt.Errorf("no extractor for language %q", l)
	}

	content, err := os.ReadFile(filepath.Join(e.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	tree, err := parsers.Parse(ctx, l, rel, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	syms := adapter.Extract(tree.RootNode(), content)
	return buildEntry(rel, l, content, syms), nil
}

// buildEntry converts extracted symbols into a file entry. Record slices
// are always non-nil so entries serialize as empty arrays, not null.
func buildEntry(rel string, l lang.Language, content []byte, syms lang.Symbols) *graph.FileEntry {
	entry := &graph.FileEntry{
		Path:         rel,
		Module:       graph.ModuleNameForPath(rel),
		Language:     string(l),
		Hash:         graph.ComputeFileHash(content),
		Lines:        bytes.Count(content, []byte{'\n'}) + 1,
		Functions:    make([]graph.FunctionRecord, 0, len(syms.Functions)),
		Imports:      make([]graph.ImportRecord, 0, len(syms.Imports)),
		Exports:      make([]graph.ExportRecord, 0, len(syms.Exports)),
		Classes:      make([]graph.ClassRecord, 0, len(syms.Classes)),
		Types:        make([]graph.TypeRecord, 0, len(syms.Types)),
		IsEntryPoint: graph.IsEntryPoint(rel),
	}
	for _, fn := range syms.Functions {
		entry.Functions = append(entry.Functions, graph.FunctionRecord{
			Name:      fn.Name,
			Signature: fn.Signature,
			StartLine: fn.StartLine,
			EndLine:   fn.EndLine,
		})
	}
	for _, imp := range syms.Imports {
		symbols := imp.Symbols
		if symbols == nil {
			symbols = []string{}
		}
		entry.Imports = append(entry.Imports, graph.ImportRecord{
			Source:     imp.Source,
			Symbols:    symbols,
			IsExternal: imp.External,
		})
	}
	for _, exp := range syms.Exports {
		entry.Exports = append(entry.Exports, graph.ExportRecord{Name: exp.Name, Kind: exp.Kind})
	}
	for _, cls := range syms.Classes {
		methods := cls.Methods
		if methods == nil {
			methods = []string{}
		}
		entry.Classes = append(entry.Classes, graph.ClassRecord{
			Name:      cls.Name,
			StartLine: cls.StartLine,
			EndLine:   cls.EndLine,
			Methods:   methods,
		})
	}
	for _, t := range syms.Types {
		entry.Types = append(entry.Types, graph.TypeRecord{
			Name:      t.Name,
			Kind:      t.Kind,
			StartLine: t.StartLine,
			EndLine:   t.EndLine,
		})
	}
	return entry
}
