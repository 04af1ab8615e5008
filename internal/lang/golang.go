package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[Go] = &goAdapter{}
}

// goAdapter extracts Go declarations. Methods are receiver-qualified
// (Type.Method) and exported means an uppercase first letter. Go imports
// never resolve inside the project; resolution works on package paths, not
// file paths.
type goAdapter struct{}

func (a *goAdapter) Language() Language { return Go }

func (a *goAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	var syms Symbols
	methodsByType := map[string][]string{}

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration":
			name := n.ChildByFieldName("name")
			if name == nil {
				return
			}
			syms.Functions = append(syms.Functions, Function{
				Name:      NodeText(name, source),
				Signature: goSignature(NodeText(name, source), n, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
			})
			if goExported(NodeText(name, source)) {
				syms.Exports = append(syms.Exports, Export{Name: NodeText(name, source), Kind: "function"})
			}
		case "method_declaration":
			name := n.ChildByFieldName("name")
			if name == nil {
				return
			}
			recv := goReceiverType(n, source)
			qualified := NodeText(name, source)
			if recv != "" {
				qualified = recv + "." + qualified
				methodsByType[recv] = append(methodsByType[recv], NodeText(name, source))
			}
			syms.Functions = append(syms.Functions, Function{
				Name:      qualified,
				Signature: goSignature(qualified, n, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
			})
			if goExported(NodeText(name, source)) {
				syms.Exports = append(syms.Exports, Export{Name: qualified, Kind: "function"})
			}
		case "import_spec":
			if imp, ok := goImport(n, source); ok {
				syms.Imports = append(syms.Imports, imp)
			}
		}
	})

	// Second pass for type declarations so struct method lists see every
	// receiver in the file.
	walk(root, func(n *sitter.Node) {
		if n.Type() != "type_spec" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		typeNode := n.ChildByFieldName("type")
		if nameNode == nil || typeNode == nil {
			return
		}
		name := NodeText(nameNode, source)

		span := n
		if p := n.Parent(); p != nil && p.Type() == "type_declaration" {
			span = p
		}

		kind := "type"
		switch typeNode.Type() {
		case "struct_type":
			kind = "struct"
			syms.Classes = append(syms.Classes, Class{
				Name:      name,
				StartLine: startLine(span),
				EndLine:   endLine(span),
				Methods:   methodsByType[name],
			})
		case "interface_type":
			kind = "interface"
			syms.Types = append(syms.Types, typeAt(name, "interface", span))
		default:
			syms.Types = append(syms.Types, typeAt(name, "type", span))
		}

		if goExported(name) {
			syms.Exports = append(syms.Exports, Export{Name: name, Kind: kind})
		}
	})

	return syms
}

func goExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func goImport(spec *sitter.Node, source []byte) (Import, bool) {
	var path, alias string
	eachChild(spec, func(child *sitter.Node) {
		switch child.Type() {
		case "interpreted_string_literal":
			path = stripQuotes(NodeText(child, source))
		case "package_identifier", "identifier", "dot", "blank_identifier":
			alias = NodeText(child, source)
		}
	})
	if path == "" {
		return Import{}, false
	}
	symbol := alias
	if symbol == "" {
		symbol = path
		if i := strings.LastIndexByte(path, '/'); i >= 0 {
			symbol = path[i+1:]
		}
	}
	return Import{Source: path, Symbols: []string{symbol}, External: true}, true
}

// goReceiverType unwraps the receiver's type, dropping a pointer star.
func goReceiverType(method *sitter.Node, source []byte) string {
	recv := method.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	var name string
	walk(recv, func(n *sitter.Node) {
		if name == "" && n.Type() == "type_identifier" {
			name = NodeText(n, source)
		}
	})
	return name
}

func goSignature(name string, fn *sitter.Node, source []byte) string {
	params := "()"
	if p := fn.ChildByFieldName("parameters"); p != nil {
		params = CollapseWhitespace(NodeText(p, source))
	}
	sig := name + params
	if r := fn.ChildByFieldName("result"); r != nil {
		sig += " " + CollapseWhitespace(NodeText(r, source))
	}
	return sig
}
