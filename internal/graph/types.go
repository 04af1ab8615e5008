package graph

// GraphVersion is the persisted document format version.
const GraphVersion = "1.0"

// Graph is the structural index of one project: every indexed file, the
// modules they group into, and the cross-module dependency edges derived
// from relative imports.
type Graph struct {
	Version    string                `json:"version"`
	Project    ProjectInfo           `json:"project"`
	ScannedAt  string                `json:"scannedAt"`
	CommitHash *string               `json:"commitHash"`
	Config     Config                `json:"config"`
	Summary    Summary               `json:"summary"`
	Modules    map[string]*Module    `json:"modules"`
	Files      map[string]*FileEntry `json:"files"`
}

// ProjectInfo identifies the indexed project.
type ProjectInfo struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

// Config records the settings the graph was built with.
type Config struct {
	Languages       []string `json:"languages"`
	ExcludePatterns []string `json:"excludePatterns"`
}

// Summary holds aggregate counts recomputed after every scan or merge.
type Summary struct {
	TotalFiles     int            `json:"totalFiles"`
	TotalFunctions int            `json:"totalFunctions"`
	TotalClasses   int            `json:"totalClasses"`
	Languages      map[string]int `json:"languages"`
	Modules        []string       `json:"modules"`
	EntryPoints    []string       `json:"entryPoints"`
}

// Module groups files by their top-level directory. Edge lists are always
// re-derived from the full file set, never patched in place.
type Module struct {
	Name       string   `json:"name"`
	Files      []string `json:"files"`
	DependsOn  []string `json:"dependsOn"`
	DependedBy []string `json:"dependedBy"`
}

// FileEntry is everything extracted from a single source file. Entries are
// replaced wholesale when a file is re-indexed.
type FileEntry struct {
	Path         string           `json:"path"`
	Module       string           `json:"module"`
	Language     string           `json:"language"`
	Hash         string           `json:"hash"`
	Lines        int              `json:"lines"`
	Functions    []FunctionRecord `json:"functions"`
	Imports      []ImportRecord   `json:"imports"`
	Exports      []ExportRecord   `json:"exports"`
	Classes      []ClassRecord    `json:"classes"`
	Types        []TypeRecord     `json:"types"`
	IsEntryPoint bool             `json:"isEntryPoint"`
}

// FunctionRecord describes one extracted function or method.
type FunctionRecord struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// ImportRecord describes one import statement.
type ImportRecord struct {
	Source     string   `json:"source"`
	Symbols    []string `json:"symbols"`
	IsExternal bool     `json:"isExternal"`
}

// ExportRecord describes one exported symbol.
type ExportRecord struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ClassRecord describes a class or struct and its method names.
type ClassRecord struct {
	Name      string   `json:"name"`
	StartLine int      `json:"startLine"`
	EndLine   int      `json:"endLine"`
	Methods   []string `json:"methods"`
}

// TypeRecord describes an interface, type alias, enum, or typedef.
type TypeRecord struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Meta is the sidecar document used for change detection between runs.
type Meta struct {
	LastScanAt   string            `json:"lastScanAt"`
	CommitHash   *string           `json:"commitHash"`
	ScanDuration string            `json:"scanDuration"`
	FileHashes   map[string]string `json:"fileHashes"`
}
