package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"pyrite/interpreter-go/pkg/ast"
)

// ModuleParser wraps a tree-sitter parser configured for Python-syntax
// source and converts the concrete tree into Pyrite syntax nodes.
type ModuleParser struct {
	parser *sitter.Parser
}

// UnsupportedSyntaxError reports a well-formed construct Pyrite does not
// implement.
type UnsupportedSyntaxError struct {
	Kind string
	Line int
}

func (e *UnsupportedSyntaxError) Error() string {
	return fmt.Sprintf("parser: unsupported syntax %q (line %d)", e.Kind, e.Line)
}

func unsupported(node *sitter.Node) error {
	return &UnsupportedSyntaxError{Kind: node.Kind(), Line: int(node.StartPosition().Row) + 1}
}

// NewModuleParser constructs a parser with the Python grammar loaded.
func NewModuleParser() (*ModuleParser, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	if lang == nil {
		return nil, fmt.Errorf("parser: python language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &ModuleParser{parser: p}, nil
}

// Close releases parser resources.
func (p *ModuleParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// ParseModule parses source into a module.
func (p *ModuleParser) ParseModule(source []byte) (*ast.Module, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "module" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, fmt.Errorf("parser: syntax errors present")
	}

	body, err := parseStatements(root, source)
	if err != nil {
		return nil, err
	}
	return ast.NewModule(body), nil
}
