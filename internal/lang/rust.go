package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[Rust] = &rustAdapter{}
}

// rustAdapter extracts Rust items. Functions inside an impl block are
// qualified Type::method. Exports are pub items outside impl blocks; use
// declarations are always external since Rust imports name crate paths,
// not files.
type rustAdapter struct{}

func (a *rustAdapter) Language() Language { return Rust }

func (a *rustAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	var syms Symbols

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_item":
			name := n.ChildByFieldName("name")
			if name == nil {
				return
			}
			qualified := NodeText(name, source)
			if implType := rustImplType(n, source); implType != "" {
				qualified = implType + "::" + qualified
			}
			syms.Functions = append(syms.Functions, Function{
				Name:      qualified,
				Signature: rustSignature(qualified, n, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
			})
		case "use_declaration":
			if imp, ok := rustUse(n, source); ok {
				syms.Imports = append(syms.Imports, imp)
			}
		case "struct_item":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Classes = append(syms.Classes, Class{
					Name:      NodeText(name, source),
					StartLine: startLine(n),
					EndLine:   endLine(n),
				})
			}
		case "enum_item":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "enum", n))
			}
		case "trait_item":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "trait", n))
			}
		case "type_item":
			if name := n.ChildByFieldName("name"); name != nil {
				syms.Types = append(syms.Types, typeAt(NodeText(name, source), "type", n))
			}
		}

		if export, ok := rustExport(n, source); ok {
			syms.Exports = append(syms.Exports, export)
		}
	})

	return syms
}

func rustExport(n *sitter.Node, source []byte) (Export, bool) {
	var kind string
	switch n.Type() {
	case "function_item":
		kind = "function"
	case "struct_item":
		kind = "struct"
	case "enum_item":
		kind = "enum"
	case "trait_item":
		kind = "trait"
	case "type_item":
		kind = "type"
	case "mod_item":
		kind = "module"
	default:
		return Export{}, false
	}
	if !rustIsPub(n, source) || rustInsideImpl(n) {
		return Export{}, false
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		return Export{}, false
	}
	return Export{Name: NodeText(name, source), Kind: kind}, true
}

func rustIsPub(n *sitter.Node, source []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == "visibility_modifier" {
			return true
		}
	}
	return false
}

func rustInsideImpl(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "impl_item" {
			return true
		}
	}
	return false
}

func rustImplType(n *sitter.Node, source []byte) string {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "impl_item" {
			if t := p.ChildByFieldName("type"); t != nil {
				return NodeText(t, source)
			}
			return ""
		}
	}
	return ""
}

func rustSignature(name string, fn *sitter.Node, source []byte) string {
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

// rustUse parses one use declaration into a path plus imported symbols.
// "use std::io::{Read, Write}" yields source "std::io" and both names.
func rustUse(n *sitter.Node, source []byte) (Import, bool) {
	imp := Import{External: true}
	eachChild(n, func(child *sitter.Node) {
		if imp.Source != "" {
			return
		}
		switch child.Type() {
		case "scoped_identifier", "scoped_use_list":
			if path := child.ChildByFieldName("path"); path != nil {
				imp.Source = NodeText(path, source)
			}
			if list := findChild(child, "use_list"); list != nil {
				imp.Symbols = append(imp.Symbols, rustUseListSymbols(list, source)...)
			} else if name := child.ChildByFieldName("name"); name != nil {
				imp.Symbols = append(imp.Symbols, NodeText(name, source))
			}
		case "identifier":
			imp.Source = NodeText(child, source)
			imp.Symbols = append(imp.Symbols, imp.Source)
		case "use_list":
			imp.Symbols = append(imp.Symbols, rustUseListSymbols(child, source)...)
		}
	})
	if imp.Source == "" {
		return Import{}, false
	}
	return imp, true
}

func rustUseListSymbols(list *sitter.Node, source []byte) []string {
	var symbols []string
	eachChild(list, func(child *sitter.Node) {
		switch child.Type() {
		case "identifier", "self":
			symbols = append(symbols, NodeText(child, source))
		case "scoped_identifier":
			if name := child.ChildByFieldName("name"); name != nil {
				symbols = append(symbols, NodeText(name, source))
			}
		}
	})
	return symbols
}
