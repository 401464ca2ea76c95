package interpreter

import (
	"fmt"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Statement) (completion, error) {
	switch n := node.(type) {
	case *ast.FunctionDefinition:
		return normalCompletion, i.defineFunction(n)
	case *ast.AssignmentStatement:
		return normalCompletion, i.executeAssignment(n)
	case *ast.AugmentedAssignment:
		return normalCompletion, i.executeAugmentedAssignment(n)
	case *ast.IfStatement:
		return i.executeIf(n)
	case *ast.WhileLoop:
		return i.executeWhile(n)
	case *ast.ReturnStatement:
		return i.executeReturn(n)
	case *ast.BreakStatement:
		return breakCompletion, nil
	case *ast.ContinueStatement:
		return continueCompletion, nil
	case *ast.PassStatement:
		return normalCompletion, nil
	case ast.Expression:
		_, err := i.evaluateValue(n)
		return normalCompletion, err
	default:
		return normalCompletion, &InternalError{Message: fmt.Sprintf("unsupported statement type %T", node)}
	}
}

// executeBlock stops at the first statement that does not complete normally.
func (i *Interpreter) executeBlock(block *ast.Block) (completion, error) {
	if block == nil {
		return normalCompletion, nil
	}
	for _, stmt := range block.Body {
		result, err := i.executeStatement(stmt)
		if err != nil {
			return normalCompletion, err
		}
		if result.kind != completionNormal {
			return result, nil
		}
	}
	return normalCompletion, nil
}

func (i *Interpreter) defineFunction(def *ast.FunctionDefinition) error {
	if def.ID == nil {
		return &InternalError{Message: "function definition without a name"}
	}
	params := make([]runtime.Parameter, 0, len(def.Params))
	for _, p := range def.Params {
		if p == nil || p.Name == nil {
			return &InternalError{Message: fmt.Sprintf("function %s has an unnamed parameter", def.ID.Name)}
		}
		param := runtime.Parameter{Name: p.Name.Name}
		if p.Default != nil {
			val, err := i.evaluateValue(p.Default)
			if err != nil {
				return err
			}
			param.Default = val
		}
		params = append(params, param)
	}
	i.functions.Define(&runtime.Function{Name: def.ID.Name, Params: params, Body: def.Body})
	i.log.Trace().Str("function", def.ID.Name).Int("params", len(params)).Msg("define")
	return nil
}

func (i *Interpreter) executeAssignment(assign *ast.AssignmentStatement) error {
	if len(assign.Targets) == 0 {
		return &InternalError{Message: "assignment without a target"}
	}
	values, err := i.evaluateSequence(assign.Value)
	if err != nil {
		return err
	}
	for idx := len(assign.Targets) - 1; idx >= 0; idx-- {
		if err := i.bindTarget(assign.Targets[idx], values); err != nil {
			return err
		}
	}
	return nil
}

// bindTarget unpacks values into a single name or a list of names.
func (i *Interpreter) bindTarget(target ast.Expression, values []runtime.Value) error {
	switch t := target.(type) {
	case *ast.Identifier:
		if len(values) == 1 {
			i.scope.Set(t.Name, values[0])
		} else {
			i.scope.Set(t.Name, runtime.TupleValue{Elements: append([]runtime.Value(nil), values...)})
		}
		return nil
	case *ast.ExpressionList:
		names := make([]string, 0, len(t.Elements))
		for _, el := range t.Elements {
			id, ok := el.(*ast.Identifier)
			if !ok {
				return &InternalError{Message: fmt.Sprintf("cannot assign to %s", el.NodeType())}
			}
			names = append(names, id.Name)
		}
		if len(names) != len(values) {
			return &ArgumentError{Message: fmt.Sprintf("cannot unpack %d values into %d targets", len(values), len(names))}
		}
		for idx, name := range names {
			i.scope.Set(name, values[idx])
		}
		return nil
	default:
		return &InternalError{Message: fmt.Sprintf("cannot assign to %s", target.NodeType())}
	}
}

func (i *Interpreter) executeAugmentedAssignment(assign *ast.AugmentedAssignment) error {
	if assign.Target == nil {
		return &InternalError{Message: "augmented assignment without a target"}
	}
	current, err := i.scope.Query(assign.Target.Name)
	if err != nil {
		return err
	}
	operand, err := i.evaluateValue(assign.Value)
	if err != nil {
		return err
	}
	result, err := i.applyBinaryOperator(assign.Operator, current, operand)
	if err != nil {
		return err
	}
	i.scope.Set(assign.Target.Name, result)
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement) (completion, error) {
	for _, clause := range stmt.Clauses {
		cond, err := i.evaluateValue(clause.Condition)
		if err != nil {
			return normalCompletion, err
		}
		ok, err := truthy(cond)
		if err != nil {
			return normalCompletion, err
		}
		if ok {
			return i.executeBlock(clause.Body)
		}
	}
	if stmt.Else != nil {
		return i.executeBlock(stmt.Else)
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeWhile(loop *ast.WhileLoop) (completion, error) {
	for {
		cond, err := i.evaluateValue(loop.Condition)
		if err != nil {
			return normalCompletion, err
		}
		ok, err := truthy(cond)
		if err != nil {
			return normalCompletion, err
		}
		if !ok {
			return normalCompletion, nil
		}
		result, err := i.executeBlock(loop.Body)
		if err != nil {
			return normalCompletion, err
		}
		switch result.kind {
		case completionReturn:
			return result, nil
		case completionBreak:
			return normalCompletion, nil
		}
	}
}

func (i *Interpreter) executeReturn(ret *ast.ReturnStatement) (completion, error) {
	switch len(ret.Values) {
	case 0:
		return returnCompletion(runtime.None), nil
	case 1:
		val, err := i.evaluateValue(ret.Values[0])
		if err != nil {
			return normalCompletion, err
		}
		return returnCompletion(val), nil
	}
	elements := make([]runtime.Value, 0, len(ret.Values))
	for _, expr := range ret.Values {
		val, err := i.evaluateValue(expr)
		if err != nil {
			return normalCompletion, err
		}
		elements = append(elements, val)
	}
	return returnCompletion(runtime.TupleValue{Elements: elements}), nil
}
