// Package codegraph builds and incrementally maintains a structural index
// of a multi-language source tree. Files are parsed with tree-sitter,
// grouped into modules by their top-level directory, and linked by
// cross-module dependency edges derived from relative imports. No type
// resolution or code execution is involved; everything comes from syntax.
//
// # Pipeline
//
// A full scan discovers source files, extracts functions, imports,
// exports, classes, and types per file, assigns each file to a module, and
// derives the dependency edges. The result persists as two JSON documents
// in the project's .codegraph directory: graph.json (the index) and
// meta.json (content fingerprints for change detection).
//
// An update re-discovers files, partitions them against the recorded
// fingerprints into added, modified, removed, and unchanged, re-indexes
// only the changed files, and merges them in. Dependency edges are never
// patched; every merge re-derives them from the full file set.
//
// # Usage
//
// Create an Engine and scan, then update as the tree evolves:
//
//	e, err := codegraph.New("path/to/project")
//	if err != nil { ... }
//
//	ctx := context.Background()
//	g, meta, err := e.Scan(ctx)
//	changes, g, err := e.Update(ctx)
//
//	result, err := e.Impact("auth", 3)
//
// Supported languages: TypeScript, JavaScript, Python, Go, Rust, Java, C,
// and C++. Use [WithLanguages] to restrict which of them the Engine
// processes and [WithExcludes] to skip paths by glob pattern.
package codegraph
