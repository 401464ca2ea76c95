package ast

import "strconv"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(strconv.FormatInt(value, 10))
}

func IntText(digits string) *IntegerLiteral {
	return NewIntegerLiteral(digits)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func None() *NoneLiteral {
	return NewNoneLiteral()
}

func FStr(parts ...Expression) *FormatString {
	return NewFormatString(parts)
}

func Tuple(elements ...Expression) *ExpressionList {
	return NewExpressionList(elements)
}

// Operator helpers.

func Un(op UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryNegate, operand)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryNot, operand)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(BinaryOperator(op), left, right)
}

func And(operands ...Expression) *BooleanOperation {
	return NewBooleanOperation(BooleanAnd, operands)
}

func Or(operands ...Expression) *BooleanOperation {
	return NewBooleanOperation(BooleanOr, operands)
}

// Cmp builds a single comparison.
func Cmp(op string, left, right Expression) *Comparison {
	return NewComparison([]Expression{left, right}, []ComparisonOperator{ComparisonOperator(op)})
}

// Chain builds a comparison chain from alternating operands and operators.
func Chain(first Expression, rest ...any) *Comparison {
	operands := []Expression{first}
	var operators []ComparisonOperator
	for i := 0; i+1 < len(rest); i += 2 {
		operators = append(operators, ComparisonOperator(rest[i].(string)))
		operands = append(operands, rest[i+1].(Expression))
	}
	return NewComparison(operands, operators)
}

// Call helpers.

func Arg(value Expression) *Argument {
	return NewArgument(nil, value)
}

func Kw(name string, value Expression) *Argument {
	return NewArgument(ID(name), value)
}

func Call(name string, args ...Expression) *FunctionCall {
	wrapped := make([]*Argument, 0, len(args))
	for _, arg := range args {
		wrapped = append(wrapped, Arg(arg))
	}
	return NewFunctionCall(ID(name), wrapped)
}

func CallArgs(name string, args ...*Argument) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

// Statement helpers.

func Suite(stmts ...Statement) *Block {
	return NewBlock(stmts)
}

func Mod(stmts ...Statement) *Module {
	return NewModule(stmts)
}

func Assign(target string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement([]Expression{ID(target)}, value)
}

// AssignTo binds value to several targets, as in `a = b = value`.
func AssignTo(targets []Expression, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(targets, value)
}

// Names builds a tuple target from identifiers.
func Names(names ...string) *ExpressionList {
	elements := make([]Expression, 0, len(names))
	for _, name := range names {
		elements = append(elements, ID(name))
	}
	return NewExpressionList(elements)
}

func AssignOp(op string, target string, value Expression) *AugmentedAssignment {
	return NewAugmentedAssignment(BinaryOperator(op), ID(target), value)
}

func Param(name string) *FunctionParameter {
	return NewFunctionParameter(ID(name), nil)
}

func ParamDefault(name string, def Expression) *FunctionParameter {
	return NewFunctionParameter(ID(name), def)
}

func Fn(name string, params []*FunctionParameter, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(ID(name), params, Suite(body...))
}

func Ret(values ...Expression) *ReturnStatement {
	return NewReturnStatement(values)
}

func Clause(condition Expression, body ...Statement) *IfClause {
	return NewIfClause(condition, Suite(body...))
}

func If(condition Expression, body ...Statement) *IfStatement {
	return NewIfStatement([]*IfClause{Clause(condition, body...)}, nil)
}

func IfElse(clauses []*IfClause, elseBody ...Statement) *IfStatement {
	var els *Block
	if elseBody != nil {
		els = Suite(elseBody...)
	}
	return NewIfStatement(clauses, els)
}

func While(condition Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(condition, Suite(body...))
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Pass() *PassStatement {
	return NewPassStatement()
}
