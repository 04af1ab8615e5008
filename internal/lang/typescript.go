package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[TypeScript] = &typeScriptAdapter{}
}

// typeScriptAdapter covers .ts and .tsx. Most extraction is shared with
// JavaScript; TypeScript adds interfaces, type aliases, and enums.
type typeScriptAdapter struct{}

func (a *typeScriptAdapter) Language() Language { return TypeScript }

func (a *typeScriptAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	syms := extractECMAScript(root, source)

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "interface_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "interface", n))
			}
		case "type_alias_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "type", n))
			}
		case "enum_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "enum", n))
			}
		case "export_statement":
			if iface := findChild(n, "interface_declaration"); iface != nil {
				if name := iface.ChildByFieldName("name"); name != nil {
					syms.Exports = append(syms.Exports, Export{Name: NodeText(name, source), Kind: "interface"})
				}
			}
			if alias := findChild(n, "type_alias_declaration"); alias != nil {
				if name := alias.ChildByFieldName("name"); name != nil {
					syms.Exports = append(syms.Exports, Export{Name: NodeText(name, source), Kind: "type"})
				}
			}
		}
	})

	return syms
}

// extractECMAScript handles the grammar shared by TypeScript and
// JavaScript: function declarations, top-level arrow assignments, ES module
// imports and exports, and classes.
func extractECMAScript(root *sitter.Node, source []byte) Symbols {
	var syms Symbols

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration":
			if fn, ok := ecmaFunction(n, source); ok {
				syms.Functions = append(syms.Functions, fn)
			}
		case "lexical_declaration":
			parent := n.Parent()
			if parent == nil || (parent.Type() != "program" && parent.Type() != "export_statement") {
				return
			}
			eachChild(n, func(decl *sitter.Node) {
				if decl.Type() != "variable_declarator" {
					return
				}
				value := decl.ChildByFieldName("value")
				name := decl.ChildByFieldName("name")
				if value == nil || name == nil || value.Type() != "arrow_function" {
					return
				}
				syms.Functions = append(syms.Functions, Function{
					Name:      NodeText(name, source),
					Signature: ecmaSignature(NodeText(name, source), value, source),
					StartLine: startLine(n),
					EndLine:   endLine(n),
				})
			})
		case "import_statement":
			if imp, ok := ecmaImport(n, source); ok {
				syms.Imports = append(syms.Imports, imp)
			}
		case "export_statement":
			syms.Exports = append(syms.Exports, ecmaExports(n, source)...)
		case "class_declaration":
			name := n.ChildByFieldName("name")
			if name == nil {
				return
			}
			var methods []string
			walk(n, func(m *sitter.Node) {
				if m.Type() == "method_definition" {
					if mn := m.ChildByFieldName("name"); mn != nil {
						methods = append(methods, NodeText(mn, source))
					}
				}
			})
			syms.Classes = append(syms.Classes, Class{
				Name:      NodeText(name, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
				Methods:   methods,
			})
		}
	})

	return syms
}

func ecmaFunction(n *sitter.Node, source []byte) (Function, bool) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return Function{}, false
	}
	return Function{
		Name:      NodeText(name, source),
		Signature: ecmaSignature(NodeText(name, source), n, source),
		StartLine: startLine(n),
		EndLine:   endLine(n),
	}, true
}

// ecmaSignature rebuilds "name(params): ReturnType" from the declaration's
// parameter and return-type nodes.
func ecmaSignature(name string, fn *sitter.Node, source []byte) string {
	params := "()"
	if p := fn.ChildByFieldName("parameters"); p != nil {
		params = CollapseWhitespace(NodeText(p, source))
	}
	sig := name + params
	if rt := fn.ChildByFieldName("return_type"); rt != nil {
		sig += CollapseWhitespace(NodeText(rt, source))
	}
	return sig
}

func ecmaImport(n *sitter.Node, source []byte) (Import, bool) {
	srcNode := n.ChildByFieldName("source")
	if srcNode == nil {
		srcNode = findChild(n, "string")
	}
	if srcNode == nil {
		return Import{}, false
	}
	src := stripQuotes(NodeText(srcNode, source))

	var names []string
	if clause := findChild(n, "import_clause"); clause != nil {
		if named := findChild(clause, "named_imports"); named != nil {
			eachChild(named, func(spec *sitter.Node) {
				if spec.Type() != "import_specifier" {
					return
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					name = spec.NamedChild(0)
				}
				if name != nil {
					names = append(names, NodeText(name, source))
				}
			})
		}
		// default import
		eachChild(clause, func(child *sitter.Node) {
			if child.Type() == "identifier" {
				names = append(names, NodeText(child, source))
			}
		})
	}

	return Import{
		Source:   src,
		Symbols:  names,
		External: !strings.HasPrefix(src, "."),
	}, true
}

func ecmaExports(n *sitter.Node, source []byte) []Export {
	var exports []Export
	if fn := findChild(n, "function_declaration"); fn != nil {
		if name := fn.ChildByFieldName("name"); name != nil {
			exports = append(exports, Export{Name: NodeText(name, source), Kind: "function"})
		}
	}
	if cls := findChild(n, "class_declaration"); cls != nil {
		if name := cls.ChildByFieldName("name"); name != nil {
			exports = append(exports, Export{Name: NodeText(name, source), Kind: "class"})
		}
	}
	if lex := findChild(n, "lexical_declaration"); lex != nil {
		eachChild(lex, func(decl *sitter.Node) {
			if decl.Type() != "variable_declarator" {
				return
			}
			if name := decl.ChildByFieldName("name"); name != nil {
				exports = append(exports, Export{Name: NodeText(name, source), Kind: "variable"})
			}
		})
	}
	if clause := findChild(n, "export_clause"); clause != nil {
		eachChild(clause, func(spec *sitter.Node) {
			if spec.Type() != "export_specifier" {
				return
			}
			name := spec.ChildByFieldName("name")
			if name == nil {
				name = spec.NamedChild(0)
			}
			if name != nil {
				exports = append(exports, Export{Name: NodeText(name, source), Kind: "variable"})
			}
		})
	}
	return exports
}

// findChild returns the first direct child of the given node type.
func findChild(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func stripQuotes(s string) string {
	return strings.Trim(s, `"'`+"`")
}
