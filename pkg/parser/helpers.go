package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrite/interpreter-go/pkg/ast"
)

func parseIdentifier(node *sitter.Node, source []byte) (*ast.Identifier, error) {
	if node == nil || node.Kind() != "identifier" {
		return nil, fmt.Errorf("parser: expected identifier")
	}
	return ast.ID(sliceContent(node, source)), nil
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

func isIgnorableNode(node *sitter.Node) bool {
	return node != nil && node.Kind() == "comment"
}

// namedChildren returns the named children of node, skipping comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func operatorText(node *sitter.Node) string {
	op := node.ChildByFieldName("operator")
	if op == nil {
		return ""
	}
	return op.Kind()
}
