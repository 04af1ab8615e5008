// Package lang contains the per-language structural extractors. Each
// adapter walks a tree-sitter syntax tree and reports functions, imports,
// exports, classes, and types. Extraction is purely syntactic.
package lang

import (
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language identifies one supported language.
type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Go         Language = "go"
	Rust       Language = "rust"
	Java       Language = "java"
	C          Language = "c"
	Cpp        Language = "cpp"
)

// Function is one extracted function or method.
type Function struct {
	Name      string
	Signature string
	StartLine int
	EndLine   int
}

// Import is one extracted import statement. External marks imports that
// cannot resolve to a file inside the project: non-relative sources for
// TypeScript, JavaScript, and Python; system includes for C and C++;
// everything for Go, Java, and Rust.
type Import struct {
	Source   string
	Symbols  []string
	External bool
}

// Export is one exported symbol.
type Export struct {
	Name string
	Kind string
}

// Class is one class or struct with its method names.
type Class struct {
	Name      string
	StartLine int
	EndLine   int
	Methods   []string
}

// Type is one interface, alias, enum, or typedef.
type Type struct {
	Name      string
	Kind      string
	StartLine int
	EndLine   int
}

// Symbols is everything an adapter extracts from one file.
type Symbols struct {
	Functions []Function
	Imports   []Import
	Exports   []Export
	Classes   []Class
	Types     []Type
}

// Adapter extracts structural symbols for one language.
type Adapter interface {
	Language() Language
	Extract(root *sitter.Node, source []byte) Symbols
}

// adapters is populated by each language file's init.
var adapters = map[Language]Adapter{}

// ForLanguage returns the adapter for a language.
func ForLanguage(l Language) (Adapter, bool) {
	a, ok := adapters[l]
	return a, ok
}

var extensions = map[string]Language{
	".ts":   TypeScript,
	".tsx":  TypeScript,
	".js":   JavaScript,
	".jsx":  JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".py":   Python,
	".go":   Go,
	".rs":   Rust,
	".java": Java,
	".c":    C,
	".h":    C,
	".cpp":  Cpp,
	".cc":   Cpp,
	".cxx":  Cpp,
	".hpp":  Cpp,
	".hh":   Cpp,
}

var cppSourceExts = map[string]bool{
	".cpp": true, ".cc": true, ".cxx": true, ".hpp": true, ".hh": true,
}

// Detect maps a file path to its language by extension.
func Detect(path string) (Language, bool) {
	l, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// HasCppSources reports whether any path is an unambiguous C++ file.
func HasCppSources(paths []string) bool {
	for _, p := range paths {
		if cppSourceExts[strings.ToLower(filepath.Ext(p))] {
			return true
		}
	}
	return false
}

// Effective reclassifies .h headers as C++ when the project contains C++
// sources; otherwise the detected language stands.
func Effective(path string, detected Language, projectHasCpp bool) Language {
	if detected == C && projectHasCpp && strings.EqualFold(filepath.Ext(path), ".h") {
		return Cpp
	}
	return detected
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NodeText returns the source text a node spans.
func NodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

// CollapseWhitespace squashes runs of whitespace to single spaces.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// eachChild visits every direct child of a node.
func eachChild(n *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(n.ChildCount()); i++ {
		visit(n.Child(i))
	}
}

// walk visits a node and all of its descendants depth-first.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

// startLine and endLine convert tree-sitter's 0-based rows to 1-based lines.
func startLine(n *sitter.Node) int { return int(n.StartPoint().Row) + 1 }
func endLine(n *sitter.Node) int   { return int(n.EndPoint().Row) + 1 }

// typeAt builds a Type record spanning the given node.
func typeAt(name, kind string, n *sitter.Node) Type {
	return Type{Name: name, Kind: kind, StartLine: startLine(n), EndLine: endLine(n)}
}
