package interpreter

import (
	"errors"
	"testing"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/bigint"
)

func TestOperatorCoercion(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"int add", ast.Bin("+", ast.Int(2), ast.Int(3)), "5"},
		{"floor div negative", ast.Bin("//", ast.Int(-7), ast.Int(2)), "-4"},
		{"mod negative dividend", ast.Bin("%", ast.Int(-7), ast.Int(2)), "1"},
		{"mod negative divisor", ast.Bin("%", ast.Int(7), ast.Int(-2)), "-1"},
		{"true division", ast.Bin("/", ast.Int(7), ast.Int(2)), "3.500000"},
		{"float promotion", ast.Bin("+", ast.Int(1), ast.Flt(0.5)), "1.500000"},
		{"float floor div", ast.Bin("//", ast.Flt(7.5), ast.Int(2)), "3.000000"},
		{"float mod", ast.Bin("%", ast.Flt(7.5), ast.Int(2)), "1.500000"},
		{"string repeat", ast.Bin("*", ast.Str("a"), ast.Int(3)), "aaa"},
		{"repeat count first", ast.Bin("*", ast.Int(2), ast.Str("ab")), "abab"},
		{"negative repeat", ast.Bin("*", ast.Str("a"), ast.Int(-1)), ""},
		{"bool repeat", ast.Bin("*", ast.Str("ab"), ast.Bool(true)), "ab"},
		{"float repeat truncates", ast.Bin("*", ast.Str("ab"), ast.Flt(2.9)), "abab"},
		{"concat int", ast.Bin("+", ast.Str("n="), ast.Int(5)), "n=5"},
		{"concat float", ast.Bin("+", ast.Str("x"), ast.Flt(1.5)), "x1.500000"},
		{"concat bool", ast.Bin("+", ast.Bool(true), ast.Str("!")), "True!"},
		{"bools are integers", ast.Bin("+", ast.Bool(true), ast.Bool(true)), "2"},
		{"negate bool", ast.Neg(ast.Bool(true)), "-1"},
		{"unary plus", ast.Un(ast.UnaryPlus, ast.Flt(2)), "2.000000"},
		{"less", ast.Cmp("<", ast.Int(1), ast.Int(2)), "True"},
		{"int equals float", ast.Cmp("==", ast.Int(1), ast.Flt(1.0)), "True"},
		{"string vs int ordering", ast.Cmp("<", ast.Str("a"), ast.Int(1)), "False"},
		{"string vs int inequality", ast.Cmp("!=", ast.Str("1"), ast.Int(1)), "True"},
		{"string ordering", ast.Cmp("<", ast.Str("abc"), ast.Str("abd")), "True"},
		{"none equality", ast.Cmp("==", ast.None(), ast.None()), "True"},
		{"none vs zero", ast.Cmp("==", ast.None(), ast.Int(0)), "False"},
		{"tuple equality", ast.Cmp("==", ast.Tuple(ast.Int(1), ast.Str("a")), ast.Tuple(ast.Int(1), ast.Str("a"))), "True"},
		{"chain holds", ast.Chain(ast.Int(1), "<", ast.Int(2), "<", ast.Int(3)), "True"},
		{"chain breaks", ast.Chain(ast.Int(1), "<", ast.Int(3), "<", ast.Int(2)), "False"},
		{"and yields bool", ast.And(ast.Int(1), ast.Str("x")), "True"},
		{"or yields bool", ast.Or(ast.Int(0), ast.Str("")), "False"},
		{"not empty string", ast.Not(ast.Str("")), "True"},
		{"big product", ast.Bin("*", ast.IntText("123456789012345678901234567890"), ast.IntText("987654321098765432109876543210")),
			"121932631137021795226185032733622923332237463801111263526900"},
		{"big floor division", ast.Bin("//", ast.Neg(ast.IntText("10000000000000000000000000000000000000000")), ast.Int(7)),
			"-1428571428571428571428571428571428571429"},
		{"big modulo", ast.Bin("%", ast.Neg(ast.IntText("10000000000000000000000000000000000000000")), ast.Int(7)), "3"},
	}
	for _, tc := range cases {
		got := runProgram(t, ast.Mod(ast.Call("print", tc.expr)))
		if got != tc.want+"\n" {
			t.Fatalf("%s: printed %q, want %q", tc.name, got, tc.want+"\n")
		}
	}
}

func TestFactorialWithBigIntegers(t *testing.T) {
	module := ast.Mod(
		ast.Fn("fact", []*ast.FunctionParameter{ast.Param("n")},
			ast.If(ast.Cmp("<=", ast.ID("n"), ast.Int(1)), ast.Ret(ast.Int(1))),
			ast.Ret(ast.Bin("*", ast.ID("n"), ast.Call("fact", ast.Bin("-", ast.ID("n"), ast.Int(1))))),
		),
		ast.Call("print", ast.Call("fact", ast.Int(30))),
	)
	if got := runProgram(t, module); got != "265252859812191058636308480000000\n" {
		t.Fatalf("fact(30) printed %q", got)
	}
}

func TestTypeMismatches(t *testing.T) {
	cases := []struct {
		name string
		stmt ast.Statement
	}{
		{"string minus int", ast.Bin("-", ast.Str("a"), ast.Int(1))},
		{"string times string", ast.Bin("*", ast.Str("a"), ast.Str("b"))},
		{"string floor div", ast.Bin("//", ast.Str("a"), ast.Int(1))},
		{"negate string", ast.Neg(ast.Str("a"))},
		{"add none", ast.Bin("+", ast.None(), ast.Int(1))},
		{"order tuples", ast.Cmp("<", ast.Tuple(ast.Int(1)), ast.Tuple(ast.Int(2)))},
		{"tuple truthiness", ast.If(ast.Tuple(ast.Int(1), ast.Int(2)), ast.Pass())},
	}
	for _, tc := range cases {
		err := evalError(t, ast.Mod(tc.stmt))
		var mismatchErr *TypeMismatchError
		if !errors.As(err, &mismatchErr) {
			t.Fatalf("%s: expected TypeMismatchError, got %T (%v)", tc.name, err, err)
		}
	}
}

func TestNoneOrderingsAreFalse(t *testing.T) {
	module := ast.Mod(
		ast.Call("print",
			ast.Cmp("<", ast.None(), ast.Int(1)),
			ast.Cmp(">=", ast.Flt(2.5), ast.None()),
			ast.Cmp("<=", ast.None(), ast.None()),
			ast.Cmp(">", ast.None(), ast.Str("a")),
			ast.Cmp("==", ast.None(), ast.None()),
		),
	)
	if got := runProgram(t, module); got != "False False False False True\n" {
		t.Fatalf("None orderings printed %q", got)
	}
}

func TestAugmentedAssignmentReadsTargetFirst(t *testing.T) {
	module := ast.Mod(
		ast.Assign("x", ast.Int(1)),
		ast.Fn("bump", nil,
			ast.Assign("x", ast.Int(100)),
			ast.Ret(ast.Int(1)),
		),
		ast.AssignOp("+", "x", ast.Call("bump")),
		ast.Call("print", ast.ID("x")),
	)
	if got := runProgram(t, module); got != "2\n" {
		t.Fatalf("x += bump() printed %q", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	cases := []ast.Expression{
		ast.Bin("//", ast.Int(1), ast.Int(0)),
		ast.Bin("%", ast.Int(1), ast.Int(0)),
		ast.Bin("/", ast.Int(1), ast.Int(0)),
		ast.Bin("/", ast.Int(1), ast.Flt(0)),
		ast.Bin("//", ast.Flt(1.5), ast.Flt(0.5)),
	}
	for _, expr := range cases {
		err := evalError(t, ast.Mod(expr))
		var divErr *DivisionByZeroError
		if !errors.As(err, &divErr) {
			t.Fatalf("expected DivisionByZeroError, got %T (%v)", err, err)
		}
		if !errors.Is(err, bigint.ErrDivisionByZero) {
			t.Fatalf("expected error to wrap bigint.ErrDivisionByZero")
		}
	}
}

func TestAugmentedAssignment(t *testing.T) {
	module := ast.Mod(
		ast.Assign("x", ast.Int(10)),
		ast.AssignOp("+", "x", ast.Int(5)),
		ast.AssignOp("*", "x", ast.Int(3)),
		ast.AssignOp("//", "x", ast.Int(4)),
		ast.AssignOp("%", "x", ast.Int(7)),
		ast.AssignOp("-", "x", ast.Int(1)),
		ast.Call("print", ast.ID("x")),
		ast.AssignOp("/", "x", ast.Int(2)),
		ast.Call("print", ast.ID("x")),
	)
	if got := runProgram(t, module); got != "3\n1.500000\n" {
		t.Fatalf("augmented assignment printed %q", got)
	}
	err := evalError(t, ast.Mod(ast.AssignOp("+", "missing", ast.Int(1))))
	if err.Error() != "Undefined variable 'missing'" {
		t.Fatalf("unexpected error %v", err)
	}
}
