package ast

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}

type Block struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

type FunctionParameter struct {
	nodeImpl

	Name    *Identifier `json:"name"`
	Default Expression  `json:"default,omitempty"`
}

func NewFunctionParameter(name *Identifier, def Expression) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), Name: name, Default: def}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier          `json:"id"`
	Params []*FunctionParameter `json:"params"`
	Body   *Block               `json:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*FunctionParameter, body *Block) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, Body: body}
}

// AssignmentStatement binds Value to every target, right to left. A target
// is an Identifier or an ExpressionList of Identifiers.
type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Targets []Expression `json:"targets"`
	Value   Expression   `json:"value"`
}

func NewAssignmentStatement(targets []Expression, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Targets: targets, Value: value}
}

// AugmentedAssignment is `target op= value` for the arithmetic operators.
type AugmentedAssignment struct {
	nodeImpl
	statementMarker

	Operator BinaryOperator `json:"operator"`
	Target   *Identifier    `json:"target"`
	Value    Expression     `json:"value"`
}

func NewAugmentedAssignment(op BinaryOperator, target *Identifier, value Expression) *AugmentedAssignment {
	return &AugmentedAssignment{nodeImpl: newNodeImpl(NodeAugmentedAssignment), Operator: op, Target: target, Value: value}
}

type IfClause struct {
	nodeImpl

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewIfClause(condition Expression, body *Block) *IfClause {
	return &IfClause{nodeImpl: newNodeImpl(NodeIfClause), Condition: condition, Body: body}
}

// IfStatement holds the `if` clause followed by any `elif` clauses.
type IfStatement struct {
	nodeImpl
	statementMarker

	Clauses []*IfClause `json:"clauses"`
	Else    *Block      `json:"else,omitempty"`
}

func NewIfStatement(clauses []*IfClause, elseBody *Block) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Clauses: clauses, Else: elseBody}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhileLoop(condition Expression, body *Block) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Values []Expression `json:"values,omitempty"`
}

func NewReturnStatement(values []Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Values: values}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type PassStatement struct {
	nodeImpl
	statementMarker
}

func NewPassStatement() *PassStatement {
	return &PassStatement{nodeImpl: newNodeImpl(NodePassStatement)}
}
