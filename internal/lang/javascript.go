package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	adapters[JavaScript] = &javaScriptAdapter{}
}

// javaScriptAdapter covers .js, .jsx, .mjs, and .cjs. The grammar shares
// its ES module surface with TypeScript, so extraction is the shared path
// with no type declarations on top.
type javaScriptAdapter struct{}

func (a *javaScriptAdapter) Language() Language { return JavaScript }

func (a *javaScriptAdapter) Extract(root *sitter.Node, source []byte) Symbols {
	return extractECMAScript(root, source)
}
