package interpreter

import (
	"fmt"
	"strings"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/bigint"
	"pyrite/interpreter-go/pkg/runtime"
)

// evaluateExpression may return a NameRefValue; use evaluateValue when a
// concrete value is needed.
func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		return runtime.NameRefValue{Name: n.Name}, nil
	case *ast.IntegerLiteral:
		val, err := bigint.Parse(n.Digits)
		if err != nil {
			return nil, &InternalError{Message: fmt.Sprintf("malformed integer literal %q", n.Digits)}
		}
		return runtime.IntegerValue{Val: val}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NoneLiteral:
		return runtime.None, nil
	case *ast.FormatString:
		return i.evaluateFormatString(n)
	case *ast.UnaryExpression:
		operand, err := i.evaluateValue(n.Operand)
		if err != nil {
			return nil, err
		}
		return i.applyUnaryOperator(n.Operator, operand)
	case *ast.BinaryExpression:
		left, err := i.evaluateValue(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateValue(n.Right)
		if err != nil {
			return nil, err
		}
		return i.applyBinaryOperator(n.Operator, left, right)
	case *ast.BooleanOperation:
		return i.evaluateBooleanOperation(n)
	case *ast.Comparison:
		return i.evaluateComparison(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	case *ast.ExpressionList:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			val, err := i.evaluateValue(el)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return runtime.TupleValue{Elements: elements}, nil
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unsupported expression type %T", node)}
	}
}

func (i *Interpreter) evaluateValue(node ast.Expression) (runtime.Value, error) {
	if node == nil {
		return nil, &InternalError{Message: "missing expression"}
	}
	val, err := i.evaluateExpression(node)
	if err != nil {
		return nil, err
	}
	return i.resolve(val)
}

func (i *Interpreter) resolve(val runtime.Value) (runtime.Value, error) {
	if ref, ok := val.(runtime.NameRefValue); ok {
		return i.scope.Query(ref.Name)
	}
	return val, nil
}

// evaluateSequence flattens the right-hand side of an assignment. A lone
// tuple value is unpacked; inside a list only tuples returned by calls are
// spliced in place.
func (i *Interpreter) evaluateSequence(node ast.Expression) ([]runtime.Value, error) {
	list, ok := node.(*ast.ExpressionList)
	if !ok {
		val, err := i.evaluateValue(node)
		if err != nil {
			return nil, err
		}
		if tuple, ok := val.(runtime.TupleValue); ok {
			return append([]runtime.Value(nil), tuple.Elements...), nil
		}
		return []runtime.Value{val}, nil
	}
	values := make([]runtime.Value, 0, len(list.Elements))
	for _, el := range list.Elements {
		val, err := i.evaluateValue(el)
		if err != nil {
			return nil, err
		}
		if tuple, ok := val.(runtime.TupleValue); ok {
			if _, isCall := el.(*ast.FunctionCall); isCall {
				values = append(values, tuple.Elements...)
				continue
			}
		}
		values = append(values, val)
	}
	return values, nil
}

func (i *Interpreter) evaluateFormatString(fs *ast.FormatString) (runtime.Value, error) {
	var b strings.Builder
	for _, part := range fs.Parts {
		if lit, ok := part.(*ast.StringLiteral); ok {
			b.WriteString(lit.Value)
			continue
		}
		val, err := i.evaluateValue(part)
		if err != nil {
			return nil, err
		}
		b.WriteString(formatValue(val))
	}
	return runtime.StringValue{Val: b.String()}, nil
}

// evaluateBooleanOperation short-circuits and always yields a Bool.
func (i *Interpreter) evaluateBooleanOperation(op *ast.BooleanOperation) (runtime.Value, error) {
	if len(op.Operands) == 1 {
		return i.evaluateValue(op.Operands[0])
	}
	stopOn := op.Operator == ast.BooleanOr
	if op.Operator != ast.BooleanAnd && op.Operator != ast.BooleanOr {
		return nil, &InternalError{Message: fmt.Sprintf("unknown boolean operator %q", op.Operator)}
	}
	for _, operand := range op.Operands {
		val, err := i.evaluateValue(operand)
		if err != nil {
			return nil, err
		}
		ok, err := truthy(val)
		if err != nil {
			return nil, err
		}
		if ok == stopOn {
			return runtime.BoolValue{Val: stopOn}, nil
		}
	}
	return runtime.BoolValue{Val: !stopOn}, nil
}

// evaluateComparison evaluates each operand at most once and stops at the
// first false link.
func (i *Interpreter) evaluateComparison(cmp *ast.Comparison) (runtime.Value, error) {
	if len(cmp.Operands) != len(cmp.Operators)+1 {
		return nil, &InternalError{Message: "comparison operands and operators do not line up"}
	}
	left, err := i.evaluateValue(cmp.Operands[0])
	if err != nil {
		return nil, err
	}
	if len(cmp.Operators) == 0 {
		return left, nil
	}
	for idx, op := range cmp.Operators {
		right, err := i.evaluateValue(cmp.Operands[idx+1])
		if err != nil {
			return nil, err
		}
		ok, err := i.compareValues(op, left, right)
		if err != nil {
			return nil, err
		}
		if !ok {
			return runtime.False, nil
		}
		left = right
	}
	return runtime.True, nil
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (runtime.Value, error) {
	if call.Callee == nil {
		return nil, &InternalError{Message: "call without a callee"}
	}
	name := call.Callee.Name
	if builtin, ok := builtins[name]; ok {
		args := make([]runtime.Value, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			vals, err := i.evaluateArgument(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, vals...)
		}
		i.log.Trace().Str("builtin", name).Int("args", len(args)).Msg("dispatch")
		return builtin(i, args)
	}

	fn, err := i.functions.Lookup(name)
	if err != nil {
		return nil, err
	}
	bound, err := i.bindArguments(fn, call.Arguments)
	if err != nil {
		return nil, err
	}
	return i.invokeFunction(fn, bound)
}

// evaluateArgument evaluates one call argument. A positional argument that
// is itself a call returning a tuple expands into the tuple's elements.
func (i *Interpreter) evaluateArgument(arg *ast.Argument) ([]runtime.Value, error) {
	val, err := i.evaluateValue(arg.Value)
	if err != nil {
		return nil, err
	}
	if arg.Name == nil {
		if tuple, ok := val.(runtime.TupleValue); ok {
			if _, isCall := arg.Value.(*ast.FunctionCall); isCall {
				return tuple.Elements, nil
			}
		}
	}
	return []runtime.Value{val}, nil
}

// bindArguments evaluates call arguments in the caller's frame and maps them
// onto fn's parameters.
func (i *Interpreter) bindArguments(fn *runtime.Function, args []*ast.Argument) ([]runtime.Value, error) {
	bound := make([]runtime.Value, len(fn.Params))
	index := make(map[string]int, len(fn.Params))
	for idx, p := range fn.Params {
		index[p.Name] = idx
	}
	position := 0
	for _, arg := range args {
		vals, err := i.evaluateArgument(arg)
		if err != nil {
			return nil, err
		}
		if arg.Name == nil {
			for _, val := range vals {
				if position >= len(fn.Params) {
					return nil, &ArgumentError{Function: fn.Name, Message: fmt.Sprintf("takes %d positional arguments but more were given", len(fn.Params))}
				}
				bound[position] = val
				position++
			}
			continue
		}
		val := vals[0]
		idx, ok := index[arg.Name.Name]
		if !ok {
			return nil, &ArgumentError{Function: fn.Name, Message: fmt.Sprintf("got an unexpected keyword argument '%s'", arg.Name.Name)}
		}
		if bound[idx] != nil {
			return nil, &ArgumentError{Function: fn.Name, Message: fmt.Sprintf("got multiple values for argument '%s'", arg.Name.Name)}
		}
		bound[idx] = val
	}
	for idx, p := range fn.Params {
		if bound[idx] != nil {
			continue
		}
		if p.Default == nil {
			return nil, &ArgumentError{Function: fn.Name, Message: fmt.Sprintf("missing required argument '%s'", p.Name)}
		}
		bound[idx] = p.Default
	}
	return bound, nil
}

func (i *Interpreter) invokeFunction(fn *runtime.Function, args []runtime.Value) (result runtime.Value, err error) {
	if i.scope.Depth() >= i.maxDepth {
		return nil, &RecursionError{Limit: i.maxDepth}
	}
	i.scope.Push()
	depth := i.scope.Depth()
	i.log.Trace().Str("function", fn.Name).Int("depth", depth).Msg("call")
	defer func() {
		if popErr := i.scope.Pop(); popErr != nil && err == nil {
			err = &InternalError{Message: popErr.Error()}
		}
		i.log.Trace().Str("function", fn.Name).Int("depth", depth).Msg("return")
	}()

	for idx, p := range fn.Params {
		i.scope.Register(p.Name, args[idx])
	}
	outcome, err := i.executeBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	switch outcome.kind {
	case completionReturn:
		return outcome.value, nil
	case completionNormal:
		return runtime.None, nil
	default:
		return nil, outcome.escapeError()
	}
}
