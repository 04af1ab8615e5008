package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[C] = &cAdapter{}
}

// cAdapter extracts C declarations. Angle-bracket includes are external;
// quoted includes resolve against the including file's directory. Static
// functions are file-local and never exported.
type cAdapter struct{}

func (a *cAdapter) Language() Language { return C }

func (a *cAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	var syms Symbols
	syms.Functions = cFunctions(root, source)
	syms.Imports = cIncludes(root, source)
	syms.Exports = cExports(root, source)
	syms.Classes, syms.Types = cStructs(root, source)
	return syms
}

func cFunctions(root *sitter.Node, source []byte) []Function {
	var functions []Function
	walk(root, func(n *sitter.Node) {
		if n.Type() != "function_definition" {
			return
		}
		declarator := findDescendant(n, "function_declarator")
		if declarator == nil {
			return
		}
		name := declarator.ChildByFieldName("declarator")
		if name == nil {
			return
		}
		functions = append(functions, Function{
			Name:      NodeText(name, source),
			Signature: cSignature(n, declarator, source),
			StartLine: startLine(n),
			EndLine:   endLine(n),
		})
	})
	return functions
}

func cIncludes(root *sitter.Node, source []byte) []Import {
	var imports []Import
	walk(root, func(n *sitter.Node) {
		if n.Type() != "preproc_include" {
			return
		}
		path := findChild(n, "system_lib_string")
		system := path != nil
		if path == nil {
			path = findChild(n, "string_literal")
		}
		if path == nil {
			return
		}
		raw := strings.Trim(NodeText(path, source), `<>"`)
		imports = append(imports, Import{Source: raw, External: system})
	})
	return imports
}

func cExports(root *sitter.Node, source []byte) []Export {
	exports := []Export{}
	seen := map[string]bool{}
	add := func(name, kind string) {
		if name != "" && !seen[name] {
			seen[name] = true
			exports = append(exports, Export{Name: name, Kind: kind})
		}
	}
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			if cIsStatic(n, source) || cInsideClassBody(n) {
				return
			}
			if declarator := findDescendant(n, "function_declarator"); declarator != nil {
				if name := declarator.ChildByFieldName("declarator"); name != nil {
					add(bareIdentifier(NodeText(name, source)), "function")
				}
			}
		case "struct_specifier", "class_specifier":
			// forward declarations have no body
			if n.ChildByFieldName("body") == nil {
				return
			}
			if name := n.ChildByFieldName("name"); name != nil {
				add(NodeText(name, source), "struct")
			}
		case "enum_specifier":
			if name := n.ChildByFieldName("name"); name != nil {
				add(NodeText(name, source), "enum")
			}
		case "type_definition":
			if name := cTypedefName(n); name != nil {
				add(NodeText(name, source), "typedef")
			}
		}
	})
	return exports
}

// cTypedefName returns the defined name of a typedef. The declarator field
// holds the new name; searching the whole node would hit the underlying
// type's tag first in "typedef struct point point_t".
func cTypedefName(n *sitter.Node) *sitter.Node {
	decl := n.ChildByFieldName("declarator")
	if decl == nil {
		return nil
	}
	if decl.Type() == "type_identifier" {
		return decl
	}
	return findDescendant(decl, "type_identifier")
}

// cInsideClassBody reports whether a definition is nested in a class or
// struct body, as with inline C++ methods.
func cInsideClassBody(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "field_declaration_list" {
			return true
		}
	}
	return false
}

// cStructs splits specifiers into classes (struct/class with a body) and
// types (typedefs).
func cStructs(root *sitter.Node, source []byte) ([]Class, []Type) {
	var classes []Class
	var types []Type
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "struct_specifier", "class_specifier":
			if n.ChildByFieldName("body") == nil {
				return
			}
			if name := n.ChildByFieldName("name"); name != nil {
				classes = append(classes, Class{
					Name:      NodeText(name, source),
					StartLine: startLine(n),
					EndLine:   endLine(n),
				})
			}
		case "type_definition":
			if name := cTypedefName(n); name != nil {
				types = append(types, typeAt(NodeText(name, source), "typedef", n))
			}
		}
	})
	return classes, types
}

func cIsStatic(n *sitter.Node, source []byte) bool {
	static := false
	eachChild(n, func(child *sitter.Node) {
		if child.Type() == "storage_class_specifier" && NodeText(child, source) == "static" {
			static = true
		}
	})
	return static
}

func cSignature(fn, declarator *sitter.Node, source []byte) string {
	sig := CollapseWhitespace(NodeText(declarator, source))
	if ret := fn.ChildByFieldName("type"); ret != nil {
		sig = CollapseWhitespace(NodeText(ret, source)) + " " + sig
	}
	return sig
}

// bareIdentifier strips a leading Class:: qualifier from a declarator.
func bareIdentifier(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}

// findDescendant returns the first descendant of the given node type,
// depth-first.
func findDescendant(n *sitter.Node, nodeType string) *sitter.Node {
	var found *sitter.Node
	walk(n, func(d *sitter.Node) {
		if found == nil && d.Type() == nodeType {
			found = d
		}
	})
	return found
}
