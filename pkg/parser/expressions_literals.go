package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrite/interpreter-go/pkg/ast"
)

// stringPieces is one string literal split into raw text and interpolated
// fields.
type stringPieces struct {
	parts    []ast.Expression
	isFormat bool
}

// parseStringExpression handles single and adjacent string literals. Plain
// literals collapse into one StringLiteral; any f-string turns the whole run
// into a FormatString.
func parseStringExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	pieces := []*sitter.Node{node}
	if node.Kind() == "concatenated_string" {
		pieces = namedChildren(node)
	}
	var parts []ast.Expression
	format := false
	for _, piece := range pieces {
		parsed, err := parseStringLiteral(piece, source)
		if err != nil {
			return nil, err
		}
		format = format || parsed.isFormat
		parts = appendStringParts(parts, parsed.parts...)
	}
	if !format {
		if len(parts) == 0 {
			return ast.NewStringLiteral(""), nil
		}
		return parts[0], nil
	}
	return ast.NewFormatString(parts), nil
}

// appendStringParts merges neighbouring literal text.
func appendStringParts(parts []ast.Expression, more ...ast.Expression) []ast.Expression {
	for _, part := range more {
		lit, ok := part.(*ast.StringLiteral)
		if ok && len(parts) > 0 {
			if prev, prevOK := parts[len(parts)-1].(*ast.StringLiteral); prevOK {
				parts[len(parts)-1] = ast.NewStringLiteral(prev.Value + lit.Value)
				continue
			}
		}
		parts = append(parts, part)
	}
	return parts
}

func parseStringLiteral(node *sitter.Node, source []byte) (*stringPieces, error) {
	if node.Kind() != "string" {
		return nil, unsupported(node)
	}
	var start, end *sitter.Node
	var interpolations []*sitter.Node
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "string_start":
			start = child
		case "string_end":
			end = child
		case "interpolation":
			interpolations = append(interpolations, child)
		}
	}
	if start == nil || end == nil {
		return nil, unsupported(node)
	}
	prefix := strings.ToLower(strings.TrimRight(sliceContent(start, source), `"'`))
	if strings.Contains(prefix, "b") {
		return nil, &UnsupportedSyntaxError{Kind: "string prefix " + prefix, Line: int(node.StartPosition().Row) + 1}
	}
	pieces := &stringPieces{isFormat: strings.Contains(prefix, "f")}
	raw := strings.Contains(prefix, "r")

	literal := func(from, to uint) {
		if to <= from {
			return
		}
		text := string(source[from:to])
		if raw {
			text = strings.ReplaceAll(text, `\`, `\\`)
		}
		if pieces.isFormat {
			text = strings.ReplaceAll(strings.ReplaceAll(text, "{{", "{"), "}}", "}")
		}
		pieces.parts = appendStringParts(pieces.parts, ast.NewStringLiteral(text))
	}

	pos := start.EndByte()
	for _, interp := range interpolations {
		literal(pos, interp.StartByte())
		if interp.ChildByFieldName("type_conversion") != nil || interp.ChildByFieldName("format_specifier") != nil {
			return nil, &UnsupportedSyntaxError{Kind: "format specifier", Line: int(interp.StartPosition().Row) + 1}
		}
		expr, err := parseExpression(interp.ChildByFieldName("expression"), source)
		if err != nil {
			return nil, err
		}
		pieces.parts = append(pieces.parts, expr)
		pos = interp.EndByte()
	}
	literal(pos, end.StartByte())
	if len(pieces.parts) == 0 {
		pieces.parts = []ast.Expression{ast.NewStringLiteral("")}
	}
	return pieces, nil
}
