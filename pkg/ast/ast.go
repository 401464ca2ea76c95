package ast

type NodeType string

const (
	NodeModule              NodeType = "Module"
	NodeBlock               NodeType = "Block"
	NodeFunctionDefinition  NodeType = "FunctionDefinition"
	NodeFunctionParameter   NodeType = "FunctionParameter"
	NodeAssignmentStatement NodeType = "AssignmentStatement"
	NodeAugmentedAssignment NodeType = "AugmentedAssignment"
	NodeIfStatement         NodeType = "IfStatement"
	NodeIfClause            NodeType = "IfClause"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodePassStatement       NodeType = "PassStatement"
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeFloatLiteral        NodeType = "FloatLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNoneLiteral         NodeType = "NoneLiteral"
	NodeFormatString        NodeType = "FormatString"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeBooleanOperation    NodeType = "BooleanOperation"
	NodeComparison          NodeType = "Comparison"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeArgument            NodeType = "Argument"
	NodeExpressionList      NodeType = "ExpressionList"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

// Expression nodes double as expression statements.
type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

// IntegerLiteral keeps the decimal digits as written; the evaluator builds
// the arbitrary-precision value.
type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Digits string `json:"digits"`
}

func NewIntegerLiteral(digits string) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Digits: digits}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

// StringLiteral holds the raw text between the quotes; escape sequences are
// left in place.
type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NoneLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
}

func NewNoneLiteral() *NoneLiteral {
	return &NoneLiteral{nodeImpl: newNodeImpl(NodeNoneLiteral)}
}

// FormatString is an f-string: StringLiteral parts are copied verbatim and
// every other part is formatted with the str rule.
type FormatString struct {
	nodeImpl
	expressionMarker
	statementMarker

	Parts []Expression `json:"parts"`
}

func NewFormatString(parts []Expression) *FormatString {
	return &FormatString{nodeImpl: newNodeImpl(NodeFormatString), Parts: parts}
}

// Operators

type UnaryOperator string

const (
	UnaryNegate UnaryOperator = "-"
	UnaryPlus   UnaryOperator = "+"
	UnaryNot    UnaryOperator = "not"
)

type BinaryOperator string

const (
	BinaryAdd         BinaryOperator = "+"
	BinarySubtract    BinaryOperator = "-"
	BinaryMultiply    BinaryOperator = "*"
	BinaryDivide      BinaryOperator = "/"
	BinaryFloorDivide BinaryOperator = "//"
	BinaryModulo      BinaryOperator = "%"
)

type BooleanOperator string

const (
	BooleanAnd BooleanOperator = "and"
	BooleanOr  BooleanOperator = "or"
)

type ComparisonOperator string

const (
	CompareLess         ComparisonOperator = "<"
	CompareLessEqual    ComparisonOperator = "<="
	CompareGreater      ComparisonOperator = ">"
	CompareGreaterEqual ComparisonOperator = ">="
	CompareEqual        ComparisonOperator = "=="
	CompareNotEqual     ComparisonOperator = "!="
)

// Expressions

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(op UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: op, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(op BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: op, Left: left, Right: right}
}

// BooleanOperation is a flattened run of one operator: a and b and c.
type BooleanOperation struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator BooleanOperator `json:"operator"`
	Operands []Expression    `json:"operands"`
}

func NewBooleanOperation(op BooleanOperator, operands []Expression) *BooleanOperation {
	return &BooleanOperation{nodeImpl: newNodeImpl(NodeBooleanOperation), Operator: op, Operands: operands}
}

// Comparison is a chain: Operators[i] compares Operands[i] and Operands[i+1].
type Comparison struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operands  []Expression         `json:"operands"`
	Operators []ComparisonOperator `json:"operators"`
}

func NewComparison(operands []Expression, operators []ComparisonOperator) *Comparison {
	return &Comparison{nodeImpl: newNodeImpl(NodeComparison), Operands: operands, Operators: operators}
}

// Argument is a call argument; Name is nil for positional arguments.
type Argument struct {
	nodeImpl

	Name  *Identifier `json:"name,omitempty"`
	Value Expression  `json:"value"`
}

func NewArgument(name *Identifier, value Expression) *Argument {
	return &Argument{nodeImpl: newNodeImpl(NodeArgument), Name: name, Value: value}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    *Identifier `json:"callee"`
	Arguments []*Argument `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, args []*Argument) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

// ExpressionList is a comma-separated list; it evaluates to a tuple.
type ExpressionList struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements"`
}

func NewExpressionList(elements []Expression) *ExpressionList {
	return &ExpressionList{nodeImpl: newNodeImpl(NodeExpressionList), Elements: elements}
}
