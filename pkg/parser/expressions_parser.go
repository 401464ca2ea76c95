package parser

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrite/interpreter-go/pkg/ast"
)

var binaryOperators = map[string]ast.BinaryOperator{
	"+":  ast.BinaryAdd,
	"-":  ast.BinarySubtract,
	"*":  ast.BinaryMultiply,
	"/":  ast.BinaryDivide,
	"//": ast.BinaryFloorDivide,
	"%":  ast.BinaryModulo,
}

var comparisonOperators = map[string]ast.ComparisonOperator{
	"<":  ast.CompareLess,
	"<=": ast.CompareLessEqual,
	">":  ast.CompareGreater,
	">=": ast.CompareGreaterEqual,
	"==": ast.CompareEqual,
	"!=": ast.CompareNotEqual,
}

func parseExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing expression")
	}
	switch node.Kind() {
	case "identifier":
		return parseIdentifier(node, source)
	case "integer":
		return parseIntegerLiteral(node, source)
	case "float":
		return parseFloatLiteral(node, source)
	case "true":
		return ast.NewBooleanLiteral(true), nil
	case "false":
		return ast.NewBooleanLiteral(false), nil
	case "none":
		return ast.NewNoneLiteral(), nil
	case "string", "concatenated_string":
		return parseStringExpression(node, source)
	case "parenthesized_expression":
		children := namedChildren(node)
		if len(children) != 1 {
			return nil, unsupported(node)
		}
		return parseExpression(children[0], source)
	case "tuple", "expression_list":
		elements, err := parseExpressionSequence(namedChildren(node), source)
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionList(elements), nil
	case "unary_operator":
		return parseUnary(node, source)
	case "not_operator":
		operand, err := parseExpression(node.ChildByFieldName("argument"), source)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryNot, operand), nil
	case "binary_operator":
		return parseBinary(node, source)
	case "boolean_operator":
		return parseBooleanOperator(node, source)
	case "comparison_operator":
		return parseComparison(node, source)
	case "call":
		return parseCall(node, source)
	default:
		return nil, unsupported(node)
	}
}

// parseExpressionSequence converts a list of expressions; an expression_list
// among them is expanded in place.
func parseExpressionSequence(nodes []*sitter.Node, source []byte) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind() == "expression_list" {
			inner, err := parseExpressionSequence(namedChildren(node), source)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		expr, err := parseExpression(node, source)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func parseIntegerLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	text := strings.ReplaceAll(sliceContent(node, source), "_", "")
	if text == "" {
		return nil, fmt.Errorf("parser: empty integer literal")
	}
	for _, ch := range text {
		if ch < '0' || ch > '9' {
			return nil, &UnsupportedSyntaxError{Kind: "integer literal " + text, Line: int(node.StartPosition().Row) + 1}
		}
	}
	return ast.NewIntegerLiteral(text), nil
}

func parseFloatLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	text := strings.ReplaceAll(sliceContent(node, source), "_", "")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &UnsupportedSyntaxError{Kind: "float literal " + text, Line: int(node.StartPosition().Row) + 1}
	}
	return ast.NewFloatLiteral(value), nil
}

func parseUnary(node *sitter.Node, source []byte) (ast.Expression, error) {
	var op ast.UnaryOperator
	switch operatorText(node) {
	case "-":
		op = ast.UnaryNegate
	case "+":
		op = ast.UnaryPlus
	default:
		return nil, &UnsupportedSyntaxError{Kind: "unary " + operatorText(node), Line: int(node.StartPosition().Row) + 1}
	}
	operand, err := parseExpression(node.ChildByFieldName("argument"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryExpression(op, operand), nil
}

func parseBinary(node *sitter.Node, source []byte) (ast.Expression, error) {
	op, ok := binaryOperators[operatorText(node)]
	if !ok {
		return nil, &UnsupportedSyntaxError{Kind: "operator " + operatorText(node), Line: int(node.StartPosition().Row) + 1}
	}
	left, err := parseExpression(node.ChildByFieldName("left"), source)
	if err != nil {
		return nil, err
	}
	right, err := parseExpression(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpression(op, left, right), nil
}

// parseBooleanOperator folds left-nested runs of the same operator into one
// operation: a and b and c has three operands.
func parseBooleanOperator(node *sitter.Node, source []byte) (ast.Expression, error) {
	text := operatorText(node)
	var op ast.BooleanOperator
	switch text {
	case "and":
		op = ast.BooleanAnd
	case "or":
		op = ast.BooleanOr
	default:
		return nil, unsupported(node)
	}
	var operands []ast.Expression
	left := node.ChildByFieldName("left")
	if left != nil && left.Kind() == "boolean_operator" && operatorText(left) == text {
		folded, err := parseBooleanOperator(left, source)
		if err != nil {
			return nil, err
		}
		operands = append(operands, folded.(*ast.BooleanOperation).Operands...)
	} else {
		expr, err := parseExpression(left, source)
		if err != nil {
			return nil, err
		}
		operands = append(operands, expr)
	}
	right, err := parseExpression(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewBooleanOperation(op, append(operands, right)), nil
}

func parseComparison(node *sitter.Node, source []byte) (ast.Expression, error) {
	var operands []ast.Expression
	var operators []ast.ComparisonOperator
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if node.FieldNameForChild(uint32(i)) == "operators" {
			op, ok := comparisonOperators[child.Kind()]
			if !ok {
				return nil, &UnsupportedSyntaxError{Kind: "operator " + child.Kind(), Line: int(child.StartPosition().Row) + 1}
			}
			operators = append(operators, op)
			continue
		}
		if !child.IsNamed() {
			continue
		}
		expr, err := parseExpression(child, source)
		if err != nil {
			return nil, err
		}
		operands = append(operands, expr)
	}
	if len(operands) != len(operators)+1 {
		return nil, fmt.Errorf("parser: malformed comparison")
	}
	return ast.NewComparison(operands, operators), nil
}

func parseCall(node *sitter.Node, source []byte) (ast.Expression, error) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" {
		return nil, &UnsupportedSyntaxError{Kind: "call target", Line: int(node.StartPosition().Row) + 1}
	}
	callee, err := parseIdentifier(fn, source)
	if err != nil {
		return nil, err
	}
	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil {
		return nil, fmt.Errorf("parser: call without arguments")
	}
	if argsNode.Kind() != "argument_list" {
		return nil, unsupported(argsNode)
	}
	var args []*ast.Argument
	for _, child := range namedChildren(argsNode) {
		if child.Kind() == "keyword_argument" {
			name, err := parseIdentifier(child.ChildByFieldName("name"), source)
			if err != nil {
				return nil, err
			}
			value, err := parseExpression(child.ChildByFieldName("value"), source)
			if err != nil {
				return nil, err
			}
			args = append(args, ast.NewArgument(name, value))
			continue
		}
		value, err := parseExpression(child, source)
		if err != nil {
			return nil, err
		}
		args = append(args, ast.NewArgument(nil, value))
	}
	return ast.NewFunctionCall(callee, args), nil
}
