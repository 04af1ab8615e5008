package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[Python] = &pythonAdapter{}
}

// pythonAdapter extracts top-level definitions only. Nested functions are
// implementation detail; class methods surface through the class record.
type pythonAdapter struct{}

func (a *pythonAdapter) Language() Language { return Python }

func (a *pythonAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	var syms Symbols

	eachChild(root, func(child *sitter.Node) {
		if fn := unwrapDecorated(child, "function_definition"); fn != nil {
			name := fn.ChildByFieldName("name")
			if name == nil {
				return
			}
			syms.Functions = append(syms.Functions, Function{
				Name:      NodeText(name, source),
				Signature: pythonSignature(fn, source),
				StartLine: startLine(child),
				EndLine:   endLine(child),
			})
		}
		if cls := unwrapDecorated(child, "class_definition"); cls != nil {
			name := cls.ChildByFieldName("name")
			if name == nil {
				return
			}
			syms.Classes = append(syms.Classes, Class{
				Name:      NodeText(name, source),
				StartLine: startLine(child),
				EndLine:   endLine(child),
				Methods:   pythonMethods(cls, source),
			})
		}
	})

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			eachChild(n, func(child *sitter.Node) {
				switch child.Type() {
				case "dotted_name":
					name := NodeText(child, source)
					syms.Imports = append(syms.Imports, pythonImport(name, []string{name}))
				case "aliased_import":
					if inner := child.NamedChild(0); inner != nil {
						name := NodeText(inner, source)
						syms.Imports = append(syms.Imports, pythonImport(name, []string{name}))
					}
				}
			})
		case "import_from_statement":
			var module string
			if m := n.ChildByFieldName("module_name"); m != nil {
				module = NodeText(m, source)
			}
			var names []string
			pastImport := false
			eachChild(n, func(child *sitter.Node) {
				if child.Type() == "import" {
					pastImport = true
					return
				}
				if !pastImport {
					return
				}
				switch child.Type() {
				case "dotted_name", "identifier":
					names = append(names, NodeText(child, source))
				case "aliased_import":
					if inner := child.NamedChild(0); inner != nil {
						names = append(names, NodeText(inner, source))
					}
				case "wildcard_import":
					names = append(names, "*")
				}
			})
			syms.Imports = append(syms.Imports, pythonImport(module, names))
		}
	})

	syms.Exports = pythonExports(root, source)
	return syms
}

func pythonImport(source string, names []string) Import {
	return Import{
		Source:   source,
		Symbols:  names,
		External: !strings.HasPrefix(source, "."),
	}
}

// pythonExports honors __all__ when present; otherwise every top-level
// function and class is exported.
func pythonExports(root *sitter.Node, source []byte) []Export {
	if all, ok := dunderAll(root, source); ok {
		exports := make([]Export, 0, len(all))
		for _, name := range all {
			exports = append(exports, Export{Name: name, Kind: "variable"})
		}
		return exports
	}

	var exports []Export
	eachChild(root, func(child *sitter.Node) {
		if fn := unwrapDecorated(child, "function_definition"); fn != nil {
			if name := fn.ChildByFieldName("name"); name != nil {
				exports = append(exports, Export{Name: NodeText(name, source), Kind: "function"})
			}
			return
		}
		if cls := unwrapDecorated(child, "class_definition"); cls != nil {
			if name := cls.ChildByFieldName("name"); name != nil {
				exports = append(exports, Export{Name: NodeText(name, source), Kind: "class"})
			}
		}
	})
	return exports
}

// dunderAll looks for a top-level `__all__ = [...]` assignment.
func dunderAll(root *sitter.Node, source []byte) ([]string, bool) {
	var names []string
	found := false
	eachChild(root, func(child *sitter.Node) {
		if found {
			return
		}
		assign := child
		if child.Type() == "expression_statement" {
			assign = child.NamedChild(0)
		}
		if assign == nil || assign.Type() != "assignment" {
			return
		}
		left := assign.ChildByFieldName("left")
		right := assign.ChildByFieldName("right")
		if left == nil || right == nil || NodeText(left, source) != "__all__" || right.Type() != "list" {
			return
		}
		found = true
		eachChild(right, func(item *sitter.Node) {
			if item.Type() == "string" {
				names = append(names, stripQuotes(NodeText(item, source)))
			}
		})
	})
	return names, found
}

func pythonMethods(cls *sitter.Node, source []byte) []string {
	var methods []string
	body := cls.ChildByFieldName("body")
	if body == nil {
		return methods
	}
	eachChild(body, func(child *sitter.Node) {
		fn := unwrapDecorated(child, "function_definition")
		if fn == nil {
			return
		}
		if name := fn.ChildByFieldName("name"); name != nil {
			methods = append(methods, NodeText(name, source))
		}
	})
	return methods
}

func pythonSignature(fn *sitter.Node, source []byte) string {
	name := ""
	if n := fn.ChildByFieldName("name"); n != nil {
		name = NodeText(n, source)
	}
	params := "()"
	if p := fn.ChildByFieldName("parameters"); p != nil {
		params = CollapseWhitespace(NodeText(p, source))
	}
	sig := name + params
	if rt := fn.ChildByFieldName("return_type"); rt != nil {
		sig += " -> " + CollapseWhitespace(NodeText(rt, source))
	}
	return sig
}

// unwrapDecorated returns the node itself, or the matching child of a
// decorated_definition wrapper.
func unwrapDecorated(n *sitter.Node, expected string) *sitter.Node {
	if n.Type() == expected {
		return n
	}
	if n.Type() == "decorated_definition" {
		return findChild(n, expected)
	}
	return nil
}
