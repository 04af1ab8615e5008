package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[Cpp] = &cppAdapter{}
}

// cppAdapter reuses the C extraction and layers on class methods, named
// enums, and namespaces. Namespaces surface as types, never as exports.
type cppAdapter struct{}

func (a *cppAdapter) Language() Language { return Cpp }

func (a *cppAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	var syms Symbols
	syms.Functions = cFunctions(root, source)
	syms.Imports = cIncludes(root, source)
	syms.Exports = cExports(root, source)
	syms.Classes, syms.Types = cStructs(root, source)

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "class_specifier":
			if n.ChildByFieldName("body") == nil {
				return
			}
			name := n.ChildByFieldName("name")
			if name == nil {
				return
			}
			className := NodeText(name, source)
			for i := range syms.Classes {
				if syms.Classes[i].Name == className {
					syms.Classes[i].Methods = cppMethods(n, source)
				}
			}
		case "enum_specifier":
			if n.ChildByFieldName("body") == nil {
				return
			}
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "enum", n))
			}
		case "namespace_definition":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "namespace", n))
			}
		}
	})

	return syms
}

func cppMethods(class *sitter.Node, source []byte) []string {
	var methods []string
	walk(class, func(n *sitter.Node) {
		if n.Type() != "function_definition" {
			return
		}
		if declarator := findDescendant(n, "function_declarator"); declarator != nil {
			if name := declarator.ChildByFieldName("declarator"); name != nil {
				methods = append(methods, NodeText(name, source))
			}
		}
	})
	return methods
}
