package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[Java] = &javaAdapter{}
}

// javaAdapter extracts Java declarations. Methods and constructors are
// qualified Class.method; exported means a public modifier. Imports always
// name packages, so they are always external.
type javaAdapter struct{}

func (a *javaAdapter) Language() Language { return Java }

func (a *javaAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	var syms Symbols

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "method_declaration", "constructor_declaration":
			name := n.ChildByFieldName("name")
			if name == nil {
				return
			}
			qualified := NodeText(name, source)
			if cls := javaEnclosingClass(n, source); cls != "" {
				qualified = cls + "." + qualified
			}
			syms.Functions = append(syms.Functions, Function{
				Name:      qualified,
				Signature: javaSignature(qualified, n, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
			})
		case "import_declaration":
			syms.Imports = append(syms.Imports, javaImport(n, source))
		case "class_declaration", "interface_declaration", "enum_declaration":
			name := n.ChildByFieldName("name")
			if name == nil {
				return
			}
			kind := strings.TrimSuffix(n.Type(), "_declaration")
			if kind == "class" {
				var methods []string
				walk(n, func(m *sitter.Node) {
					if m.Type() == "method_declaration" {
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
			} else {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), kind, n))
			}
			if javaHasModifier(n, source, "public") {
				syms.Exports = append(syms.Exports, Export{Name: NodeText(name, source), Kind: kind})
			}
		}
	})

	return syms
}

// javaImport splits "import java.util.List;" into source "java.util" and
// symbol "List".
func javaImport(n *sitter.Node, source []byte) Import {
	text := strings.TrimSpace(NodeText(n, source))
	text = strings.TrimPrefix(text, "import")
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "static"))
	text = strings.TrimSpace(strings.TrimSuffix(text, ";"))

	imp := Import{Source: text, External: true}
	if dot := strings.LastIndexByte(text, '.'); dot >= 0 {
		imp.Source = text[:dot]
		imp.Symbols = []string{text[dot+1:]}
	}
	return imp
}

func javaEnclosingClass(n *sitter.Node, source []byte) string {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "class_body", "interface_body", "enum_body":
			decl := p.Parent()
			if decl == nil {
				return ""
			}
			if name := decl.ChildByFieldName("name"); name != nil {
				return NodeText(name, source)
			}
		}
	}
	return ""
}

func javaHasModifier(n *sitter.Node, source []byte, modifier string) bool {
	mods := findChild(n, "modifiers")
	if mods == nil {
		return false
	}
	found := false
	eachChild(mods, func(m *sitter.Node) {
		if NodeText(m, source) == modifier {
			found = true
		}
	})
	return found
}

func javaSignature(name string, fn *sitter.Node, source []byte) string {
	params := "()"
	if p := fn.ChildByFieldName("parameters"); p != nil {
		params = CollapseWhitespace(NodeText(p, source))
	}
	sig := name + params
	if rt := fn.ChildByFieldName("type"); rt != nil {
		sig += ": " + CollapseWhitespace(NodeText(rt, source))
	}
	return sig
}
