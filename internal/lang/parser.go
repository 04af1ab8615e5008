package lang

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ParserSet owns one tree-sitter parser per grammar, created lazily.
// Parsers are not reentrant, so a ParserSet must stay on one goroutine;
// concurrent indexers each create their own.
type ParserSet struct {
	parsers map[string]*sitter.Parser
}

// NewParserSet returns an empty set. Parsers are created on first use.
func NewParserSet() *ParserSet {
	return &ParserSet{parsers: map[string]*sitter.Parser{}}
}

// Parse parses source for the given language. path only disambiguates the
// grammar variant (.tsx uses the TSX grammar). The returned tree must be
// closed by the caller.
func (p *ParserSet) Parse(ctx context.Context, l Language, path string, source []byte) (*sitter.Tree, error) {
	key, grammar := grammarFor(l, path)
	parser, ok := p.parsers[key]
	if !ok {
		parser = sitter.NewParser()
		parser.SetLanguage(grammar)
		p.parsers[key] = parser
	}
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return tree, nil
}

func grammarFor(l Language, path string) (string, *sitter.Language) {
	switch l {
	case TypeScript:
		if strings.EqualFold(filepath.Ext(path), ".tsx") {
			return "tsx", tsx.GetLanguage()
		}
		return "typescript", typescript.GetLanguage()
	case JavaScript:
		return "javascript", javascript.GetLanguage()
	case Python:
		return "python", python.GetLanguage()
	case Go:
		return "go", golang.GetLanguage()
	case Rust:
		return "rust", rust.GetLanguage()
	case Java:
		return "java", java.GetLanguage()
	case C:
		return "c", c.GetLanguage()
	case Cpp:
		return "cpp", cpp.GetLanguage()
	}
	return "typescript", typescript.GetLanguage()
}
