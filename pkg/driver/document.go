package driver

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"pyrite/interpreter-go/pkg/ast"
)

// DecodeModule reads a syntax-tree document. Nodes are mappings keyed by
// "type" using the ast node type names; JSON documents are accepted too.
func DecodeModule(r io.Reader) (*ast.Module, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("document: empty document")
		}
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	module, ok := node.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("document: root must be a Module, got %s", node.NodeType())
	}
	return module, nil
}

func decodeNode(raw any) (ast.Node, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document: expected node mapping, got %T", raw)
	}
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeModule:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewModule(body), nil
	case ast.NodeBlock:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(body), nil
	case ast.NodeFunctionDefinition:
		id, err := decodeIdentifier(node["id"])
		if err != nil {
			return nil, err
		}
		rawParams, err := decodeList(node["params"])
		if err != nil {
			return nil, err
		}
		params := make([]*ast.FunctionParameter, 0, len(rawParams))
		for _, rawParam := range rawParams {
			child, err := decodeNode(rawParam)
			if err != nil {
				return nil, err
			}
			param, ok := child.(*ast.FunctionParameter)
			if !ok {
				return nil, fmt.Errorf("document: expected FunctionParameter, got %s", child.NodeType())
			}
			params = append(params, param)
		}
		body, err := decodeBlock(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(id, params, body), nil
	case ast.NodeFunctionParameter:
		name, err := decodeIdentifier(node["name"])
		if err != nil {
			return nil, err
		}
		def, err := decodeOptionalExpression(node["default"])
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionParameter(name, def), nil
	case ast.NodeAssignmentStatement:
		targets, err := decodeExpressions(node["targets"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentStatement(targets, value), nil
	case ast.NodeAugmentedAssignment:
		op, _ := node["operator"].(string)
		target, err := decodeIdentifier(node["target"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		return ast.NewAugmentedAssignment(ast.BinaryOperator(op), target, value), nil
	case ast.NodeIfStatement:
		rawClauses, err := decodeList(node["clauses"])
		if err != nil {
			return nil, err
		}
		clauses := make([]*ast.IfClause, 0, len(rawClauses))
		for _, rawClause := range rawClauses {
			child, err := decodeNode(rawClause)
			if err != nil {
				return nil, err
			}
			clause, ok := child.(*ast.IfClause)
			if !ok {
				return nil, fmt.Errorf("document: expected IfClause, got %s", child.NodeType())
			}
			clauses = append(clauses, clause)
		}
		var elseBody *ast.Block
		if node["else"] != nil {
			if elseBody, err = decodeBlock(node["else"]); err != nil {
				return nil, err
			}
		}
		return ast.NewIfStatement(clauses, elseBody), nil
	case ast.NodeIfClause:
		cond, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewIfClause(cond, body), nil
	case ast.NodeWhileLoop:
		cond, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewWhileLoop(cond, body), nil
	case ast.NodeReturnStatement:
		values, err := decodeExpressions(node["values"])
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(values), nil
	case ast.NodeBreakStatement:
		return ast.NewBreakStatement(), nil
	case ast.NodeContinueStatement:
		return ast.NewContinueStatement(), nil
	case ast.NodePassStatement:
		return ast.NewPassStatement(), nil
	case ast.NodeIdentifier:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("document: identifier without a name")
		}
		return ast.NewIdentifier(name), nil
	case ast.NodeIntegerLiteral:
		switch digits := node["digits"].(type) {
		case string:
			return ast.NewIntegerLiteral(digits), nil
		case int:
			return ast.NewIntegerLiteral(strconv.Itoa(digits)), nil
		default:
			return nil, fmt.Errorf("document: integer literal digits must be a string, got %T", digits)
		}
	case ast.NodeFloatLiteral:
		switch v := node["value"].(type) {
		case float64:
			return ast.NewFloatLiteral(v), nil
		case int:
			return ast.NewFloatLiteral(float64(v)), nil
		default:
			return nil, fmt.Errorf("document: float literal value must be a number, got %T", v)
		}
	case ast.NodeStringLiteral:
		val, _ := node["value"].(string)
		return ast.NewStringLiteral(val), nil
	case ast.NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return ast.NewBooleanLiteral(val), nil
	case ast.NodeNoneLiteral:
		return ast.NewNoneLiteral(), nil
	case ast.NodeFormatString:
		parts, err := decodeExpressions(node["parts"])
		if err != nil {
			return nil, err
		}
		return ast.NewFormatString(parts), nil
	case ast.NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, err := decodeExpression(node["operand"])
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryOperator(op), operand), nil
	case ast.NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(ast.BinaryOperator(op), left, right), nil
	case ast.NodeBooleanOperation:
		op, _ := node["operator"].(string)
		operands, err := decodeExpressions(node["operands"])
		if err != nil {
			return nil, err
		}
		return ast.NewBooleanOperation(ast.BooleanOperator(op), operands), nil
	case ast.NodeComparison:
		operands, err := decodeExpressions(node["operands"])
		if err != nil {
			return nil, err
		}
		rawOps, err := decodeList(node["operators"])
		if err != nil {
			return nil, err
		}
		operators := make([]ast.ComparisonOperator, 0, len(rawOps))
		for _, rawOp := range rawOps {
			op, ok := rawOp.(string)
			if !ok {
				return nil, fmt.Errorf("document: comparison operator must be a string, got %T", rawOp)
			}
			operators = append(operators, ast.ComparisonOperator(op))
		}
		return ast.NewComparison(operands, operators), nil
	case ast.NodeFunctionCall:
		callee, err := decodeIdentifier(node["callee"])
		if err != nil {
			return nil, err
		}
		rawArgs, err := decodeList(node["arguments"])
		if err != nil {
			return nil, err
		}
		args := make([]*ast.Argument, 0, len(rawArgs))
		for _, rawArg := range rawArgs {
			child, err := decodeNode(rawArg)
			if err != nil {
				return nil, err
			}
			arg, ok := child.(*ast.Argument)
			if !ok {
				return nil, fmt.Errorf("document: expected Argument, got %s", child.NodeType())
			}
			args = append(args, arg)
		}
		return ast.NewFunctionCall(callee, args), nil
	case ast.NodeArgument:
		var name *ast.Identifier
		if node["name"] != nil {
			id, err := decodeIdentifier(node["name"])
			if err != nil {
				return nil, err
			}
			name = id
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		return ast.NewArgument(name, value), nil
	case ast.NodeExpressionList:
		elements, err := decodeExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionList(elements), nil
	default:
		return nil, fmt.Errorf("document: unknown node type %q", typ)
	}
}

func decodeList(raw any) ([]any, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("document: expected list, got %T", raw)
	}
	return list, nil
}

func decodeStatements(raw any) ([]ast.Statement, error) {
	items, err := decodeList(raw)
	if err != nil {
		return nil, err
	}
	stmts := make([]ast.Statement, 0, len(items))
	for _, item := range items {
		child, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		stmt, ok := child.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("document: %s is not a statement", child.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeExpression(raw any) (ast.Expression, error) {
	if raw == nil {
		return nil, fmt.Errorf("document: missing expression")
	}
	child, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := child.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("document: %s is not an expression", child.NodeType())
	}
	return expr, nil
}

func decodeOptionalExpression(raw any) (ast.Expression, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeExpression(raw)
}

func decodeExpressions(raw any) ([]ast.Expression, error) {
	items, err := decodeList(raw)
	if err != nil {
		return nil, err
	}
	exprs := make([]ast.Expression, 0, len(items))
	for _, item := range items {
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeIdentifier(raw any) (*ast.Identifier, error) {
	child, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	id, ok := child.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("document: expected Identifier, got %s", child.NodeType())
	}
	return id, nil
}

func decodeBlock(raw any) (*ast.Block, error) {
	child, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	block, ok := child.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("document: expected Block, got %s", child.NodeType())
	}
	return block, nil
}

// EncodeModule writes module as a YAML syntax-tree document readable by
// DecodeModule.
func EncodeModule(w io.Writer, module *ast.Module) error {
	var e nodeEncoder
	doc := e.encode(module)
	if e.err != nil {
		return e.err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("document: encode: %w", err)
	}
	return enc.Close()
}

type nodeEncoder struct {
	err error
}

func (e *nodeEncoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func addField(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalarNode("!!str", key), value)
}

func floatNode(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalarNode("!!float", ".nan")
	case math.IsInf(f, 1):
		return scalarNode("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalarNode("!!float", "-.inf")
	}
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if _, err := strconv.Atoi(text); err == nil {
		text += ".0"
	}
	return scalarNode("!!float", text)
}

func (e *nodeEncoder) child(m *yaml.Node, key string, n ast.Node) {
	if n == nil {
		e.fail(fmt.Errorf("document: missing %s", key))
		return
	}
	addField(m, key, e.encode(n))
}

func encodeList[T ast.Node](e *nodeEncoder, m *yaml.Node, key string, items []T) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		seq.Content = append(seq.Content, e.encode(item))
	}
	addField(m, key, seq)
}

func (e *nodeEncoder) encode(node ast.Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	addField(m, "type", scalarNode("!!str", string(node.NodeType())))
	switch n := node.(type) {
	case *ast.Module:
		encodeList(e, m, "body", n.Body)
	case *ast.Block:
		encodeList(e, m, "body", n.Body)
	case *ast.FunctionDefinition:
		e.child(m, "id", n.ID)
		encodeList(e, m, "params", n.Params)
		e.child(m, "body", n.Body)
	case *ast.FunctionParameter:
		e.child(m, "name", n.Name)
		if n.Default != nil {
			e.child(m, "default", n.Default)
		}
	case *ast.AssignmentStatement:
		encodeList(e, m, "targets", n.Targets)
		e.child(m, "value", n.Value)
	case *ast.AugmentedAssignment:
		addField(m, "operator", scalarNode("!!str", string(n.Operator)))
		e.child(m, "target", n.Target)
		e.child(m, "value", n.Value)
	case *ast.IfStatement:
		encodeList(e, m, "clauses", n.Clauses)
		if n.Else != nil {
			e.child(m, "else", n.Else)
		}
	case *ast.IfClause:
		e.child(m, "condition", n.Condition)
		e.child(m, "body", n.Body)
	case *ast.WhileLoop:
		e.child(m, "condition", n.Condition)
		e.child(m, "body", n.Body)
	case *ast.ReturnStatement:
		if len(n.Values) > 0 {
			encodeList(e, m, "values", n.Values)
		}
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.PassStatement, *ast.NoneLiteral:
	case *ast.Identifier:
		addField(m, "name", scalarNode("!!str", n.Name))
	case *ast.IntegerLiteral:
		addField(m, "digits", scalarNode("!!str", n.Digits))
	case *ast.FloatLiteral:
		addField(m, "value", floatNode(n.Value))
	case *ast.StringLiteral:
		addField(m, "value", scalarNode("!!str", n.Value))
	case *ast.BooleanLiteral:
		addField(m, "value", scalarNode("!!bool", strconv.FormatBool(n.Value)))
	case *ast.FormatString:
		encodeList(e, m, "parts", n.Parts)
	case *ast.UnaryExpression:
		addField(m, "operator", scalarNode("!!str", string(n.Operator)))
		e.child(m, "operand", n.Operand)
	case *ast.BinaryExpression:
		addField(m, "operator", scalarNode("!!str", string(n.Operator)))
		e.child(m, "left", n.Left)
		e.child(m, "right", n.Right)
	case *ast.BooleanOperation:
		addField(m, "operator", scalarNode("!!str", string(n.Operator)))
		encodeList(e, m, "operands", n.Operands)
	case *ast.Comparison:
		encodeList(e, m, "operands", n.Operands)
		ops := &yaml.Node{Kind: yaml.SequenceNode}
		for _, op := range n.Operators {
			ops.Content = append(ops.Content, scalarNode("!!str", string(op)))
		}
		addField(m, "operators", ops)
	case *ast.FunctionCall:
		e.child(m, "callee", n.Callee)
		encodeList(e, m, "arguments", n.Arguments)
	case *ast.Argument:
		if n.Name != nil {
			e.child(m, "name", n.Name)
		}
		e.child(m, "value", n.Value)
	case *ast.ExpressionList:
		encodeList(e, m, "elements", n.Elements)
	default:
		e.fail(fmt.Errorf("document: cannot encode %T", node))
	}
	return m
}
