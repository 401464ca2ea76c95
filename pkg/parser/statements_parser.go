package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyrite/interpreter-go/pkg/ast"
)

// parseStatements converts the statements of a module or block.
func parseStatements(node *sitter.Node, source []byte) ([]ast.Statement, error) {
	children := namedChildren(node)
	stmts := make([]ast.Statement, 0, len(children))
	for _, child := range children {
		stmt, err := parseStatement(child, source)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func parseBlock(node *sitter.Node, source []byte) (*ast.Block, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing block")
	}
	body, err := parseStatements(node, source)
	if err != nil {
		return nil, err
	}
	return ast.NewBlock(body), nil
}

func parseStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	switch node.Kind() {
	case "expression_statement":
		return parseExpressionStatement(node, source)
	case "function_definition":
		return parseFunctionDefinition(node, source)
	case "if_statement":
		return parseIfStatement(node, source)
	case "while_statement":
		return parseWhileStatement(node, source)
	case "return_statement":
		values, err := parseExpressionSequence(namedChildren(node), source)
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(values), nil
	case "break_statement":
		return ast.NewBreakStatement(), nil
	case "continue_statement":
		return ast.NewContinueStatement(), nil
	case "pass_statement":
		return ast.NewPassStatement(), nil
	default:
		return nil, unsupported(node)
	}
}

func parseExpressionStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	children := namedChildren(node)
	if len(children) == 1 {
		switch children[0].Kind() {
		case "assignment":
			return parseAssignment(children[0], source)
		case "augmented_assignment":
			return parseAugmentedAssignment(children[0], source)
		}
		return parseExpression(children[0], source)
	}
	elements := make([]ast.Expression, 0, len(children))
	for _, child := range children {
		expr, err := parseExpression(child, source)
		if err != nil {
			return nil, err
		}
		elements = append(elements, expr)
	}
	return ast.NewExpressionList(elements), nil
}

// parseAssignment flattens `a = b, c = value` into one statement with every
// target listed left to right.
func parseAssignment(node *sitter.Node, source []byte) (ast.Statement, error) {
	var targets []ast.Expression
	current := node
	for {
		if current.ChildByFieldName("type") != nil {
			return nil, &UnsupportedSyntaxError{Kind: "annotated assignment", Line: int(current.StartPosition().Row) + 1}
		}
		target, err := parseTarget(current.ChildByFieldName("left"), source)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
		right := current.ChildByFieldName("right")
		if right == nil {
			return nil, fmt.Errorf("parser: assignment without a value")
		}
		if right.Kind() == "assignment" {
			current = right
			continue
		}
		if right.Kind() == "augmented_assignment" {
			return nil, unsupported(right)
		}
		value, err := parseExpression(right, source)
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentStatement(targets, value), nil
	}
}

func parseTarget(node *sitter.Node, source []byte) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: assignment without a target")
	}
	switch node.Kind() {
	case "identifier":
		return parseIdentifier(node, source)
	case "pattern_list", "tuple_pattern":
		children := namedChildren(node)
		names := make([]ast.Expression, 0, len(children))
		for _, child := range children {
			if child.Kind() != "identifier" {
				return nil, unsupported(child)
			}
			id, err := parseIdentifier(child, source)
			if err != nil {
				return nil, err
			}
			names = append(names, id)
		}
		return ast.NewExpressionList(names), nil
	default:
		return nil, unsupported(node)
	}
}

var augmentedOperators = map[string]ast.BinaryOperator{
	"+=":  ast.BinaryAdd,
	"-=":  ast.BinarySubtract,
	"*=":  ast.BinaryMultiply,
	"/=":  ast.BinaryDivide,
	"//=": ast.BinaryFloorDivide,
	"%=":  ast.BinaryModulo,
}

func parseAugmentedAssignment(node *sitter.Node, source []byte) (ast.Statement, error) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return nil, unsupported(node)
	}
	op, ok := augmentedOperators[operatorText(node)]
	if !ok {
		return nil, &UnsupportedSyntaxError{Kind: operatorText(node), Line: int(node.StartPosition().Row) + 1}
	}
	target, err := parseIdentifier(left, source)
	if err != nil {
		return nil, err
	}
	value, err := parseExpression(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewAugmentedAssignment(op, target, value), nil
}

func parseFunctionDefinition(node *sitter.Node, source []byte) (ast.Statement, error) {
	name, err := parseIdentifier(node.ChildByFieldName("name"), source)
	if err != nil {
		return nil, err
	}
	params, err := parseParameters(node.ChildByFieldName("parameters"), source)
	if err != nil {
		return nil, err
	}
	body, err := parseBlock(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(name, params, body), nil
}

func parseParameters(node *sitter.Node, source []byte) ([]*ast.FunctionParameter, error) {
	children := namedChildren(node)
	params := make([]*ast.FunctionParameter, 0, len(children))
	for _, child := range children {
		switch child.Kind() {
		case "identifier":
			id, err := parseIdentifier(child, source)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.NewFunctionParameter(id, nil))
		case "typed_parameter":
			inner := namedChildren(child)
			if len(inner) == 0 || inner[0].Kind() != "identifier" {
				return nil, unsupported(child)
			}
			id, err := parseIdentifier(inner[0], source)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.NewFunctionParameter(id, nil))
		case "default_parameter", "typed_default_parameter":
			id, err := parseIdentifier(child.ChildByFieldName("name"), source)
			if err != nil {
				return nil, err
			}
			def, err := parseExpression(child.ChildByFieldName("value"), source)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.NewFunctionParameter(id, def))
		default:
			return nil, unsupported(child)
		}
	}
	return params, nil
}

func parseIfStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	first, err := parseIfClause(node, source)
	if err != nil {
		return nil, err
	}
	clauses := []*ast.IfClause{first}
	var elseBody *ast.Block
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "elif_clause":
			clause, err := parseIfClause(child, source)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, clause)
		case "else_clause":
			elseBody, err = parseBlock(child.ChildByFieldName("body"), source)
			if err != nil {
				return nil, err
			}
		}
	}
	return ast.NewIfStatement(clauses, elseBody), nil
}

func parseIfClause(node *sitter.Node, source []byte) (*ast.IfClause, error) {
	cond, err := parseExpression(node.ChildByFieldName("condition"), source)
	if err != nil {
		return nil, err
	}
	body, err := parseBlock(node.ChildByFieldName("consequence"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewIfClause(cond, body), nil
}

func parseWhileStatement(node *sitter.Node, source []byte) (ast.Statement, error) {
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		return nil, &UnsupportedSyntaxError{Kind: "while-else", Line: int(alt.StartPosition().Row) + 1}
	}
	cond, err := parseExpression(node.ChildByFieldName("condition"), source)
	if err != nil {
		return nil, err
	}
	body, err := parseBlock(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(cond, body), nil
}
