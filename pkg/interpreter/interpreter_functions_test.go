package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/runtime"
)

func TestDefaultAndKeywordArguments(t *testing.T) {
	module := ast.Mod(
		ast.Fn("greet", []*ast.FunctionParameter{ast.Param("name"), ast.ParamDefault("greeting", ast.Str("hello"))},
			ast.Ret(ast.Bin("+", ast.Bin("+", ast.ID("greeting"), ast.Str(" ")), ast.ID("name"))),
		),
		ast.Call("print", ast.Call("greet", ast.Str("ann"))),
		ast.Call("print", ast.CallArgs("greet", ast.Arg(ast.Str("bo")), ast.Kw("greeting", ast.Str("hi")))),
		ast.Call("print", ast.CallArgs("greet", ast.Kw("greeting", ast.Str("yo")), ast.Kw("name", ast.Str("cy")))),
	)
	want := "hello ann\nhi bo\nyo cy\n"
	if got := runProgram(t, module); got != want {
		t.Fatalf("printed %q, want %q", got, want)
	}
}

func TestArgumentErrors(t *testing.T) {
	def := ast.Fn("pair", []*ast.FunctionParameter{ast.Param("a"), ast.ParamDefault("b", ast.Int(2))}, ast.Ret(ast.ID("a")))
	cases := []struct {
		name string
		call *ast.FunctionCall
	}{
		{"missing required", ast.Call("pair")},
		{"too many positional", ast.Call("pair", ast.Int(1), ast.Int(2), ast.Int(3))},
		{"unknown keyword", ast.CallArgs("pair", ast.Arg(ast.Int(1)), ast.Kw("c", ast.Int(3)))},
		{"duplicate binding", ast.CallArgs("pair", ast.Arg(ast.Int(1)), ast.Kw("a", ast.Int(3)))},
		{"too many for int", ast.Call("int", ast.Int(1), ast.Int(2))},
	}
	for _, tc := range cases {
		err := evalError(t, ast.Mod(def, tc.call))
		var argErr *ArgumentError
		if !errors.As(err, &argErr) {
			t.Fatalf("%s: expected ArgumentError, got %T (%v)", tc.name, err, err)
		}
	}
}

func TestDefaultsEvaluatedAtDefinition(t *testing.T) {
	module := ast.Mod(
		ast.Assign("base", ast.Int(1)),
		ast.Fn("f", []*ast.FunctionParameter{ast.ParamDefault("x", ast.ID("base"))}, ast.Ret(ast.ID("x"))),
		ast.Assign("base", ast.Int(2)),
		ast.Call("print", ast.Call("f")),
	)
	if got := runProgram(t, module); got != "1\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestLastDefinitionWins(t *testing.T) {
	module := ast.Mod(
		ast.Fn("f", nil, ast.Ret(ast.Int(1))),
		ast.Fn("f", nil, ast.Ret(ast.Int(2))),
		ast.Call("print", ast.Call("f")),
	)
	if got := runProgram(t, module); got != "2\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestFunctionWithoutReturnYieldsNone(t *testing.T) {
	module := ast.Mod(
		ast.Fn("noop", nil, ast.Pass()),
		ast.Fn("bare", nil, ast.Ret()),
		ast.Call("print", ast.Call("noop"), ast.Call("bare")),
	)
	if got := runProgram(t, module); got != "None None\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestTupleSwapAndUnpacking(t *testing.T) {
	module := ast.Mod(
		ast.AssignTo([]ast.Expression{ast.Names("a", "b")}, ast.Tuple(ast.Int(1), ast.Int(2))),
		ast.AssignTo([]ast.Expression{ast.Names("a", "b")}, ast.Tuple(ast.ID("b"), ast.ID("a"))),
		ast.Call("print", ast.ID("a"), ast.ID("b")),
	)
	if got := runProgram(t, module); got != "2 1\n" {
		t.Fatalf("swap printed %q", got)
	}
}

func TestMultipleReturnValuesSplice(t *testing.T) {
	module := ast.Mod(
		ast.Fn("divmod", []*ast.FunctionParameter{ast.Param("a"), ast.Param("b")},
			ast.Ret(ast.Bin("//", ast.ID("a"), ast.ID("b")), ast.Bin("%", ast.ID("a"), ast.ID("b"))),
		),
		ast.AssignTo([]ast.Expression{ast.Names("q", "r")}, ast.Call("divmod", ast.Int(17), ast.Int(5))),
		ast.Call("print", ast.ID("q"), ast.ID("r")),
		ast.AssignTo([]ast.Expression{ast.Names("x", "y", "z")}, ast.Tuple(ast.Call("divmod", ast.Int(9), ast.Int(4)), ast.Int(0))),
		ast.Call("print", ast.ID("x"), ast.ID("y"), ast.ID("z")),
		ast.Assign("t", ast.Call("divmod", ast.Int(7), ast.Int(2))),
		ast.Call("print", ast.ID("t")),
	)
	if got := runProgram(t, module); got != "3 2\n2 1 0\n3 1\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestTupleArgumentsSplice(t *testing.T) {
	module := ast.Mod(
		ast.Fn("pair", nil, ast.Ret(ast.Int(1), ast.Int(2))),
		ast.Fn("add", []*ast.FunctionParameter{ast.Param("a"), ast.Param("b")},
			ast.Ret(ast.Bin("+", ast.ID("a"), ast.ID("b"))),
		),
		ast.Fn("add3", []*ast.FunctionParameter{ast.Param("a"), ast.Param("b"), ast.ParamDefault("c", ast.Int(100))},
			ast.Ret(ast.Bin("+", ast.Bin("+", ast.ID("a"), ast.ID("b")), ast.ID("c"))),
		),
		ast.Call("print", ast.Call("add", ast.Call("pair"))),
		ast.Call("print", ast.Call("add3", ast.Call("pair"), ast.Int(10))),
		ast.Call("print", ast.CallArgs("add3", ast.Arg(ast.Call("pair")), ast.Kw("c", ast.Int(0)))),
		ast.Call("print", ast.Call("pair"), ast.Call("str", ast.Int(3))),
	)
	if got := runProgram(t, module); got != "3\n13\n3\n1 2 3\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestTupleArgumentsSpliceArity(t *testing.T) {
	module := ast.Mod(
		ast.Fn("pair", nil, ast.Ret(ast.Int(1), ast.Int(2))),
		ast.Fn("one", []*ast.FunctionParameter{ast.Param("a")}, ast.Ret(ast.ID("a"))),
		ast.Call("one", ast.Call("pair")),
	)
	err := evalError(t, module)
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected ArgumentError, got %T (%v)", err, err)
	}
}

func TestChainedAssignment(t *testing.T) {
	interp, _ := newTestInterpreter()
	module := ast.Mod(
		ast.AssignTo([]ast.Expression{ast.ID("a"), ast.ID("b")}, ast.Int(4)),
		ast.AssignTo([]ast.Expression{ast.Names("c", "d"), ast.ID("e")}, ast.Tuple(ast.Int(1), ast.Int(2))),
	)
	if _, err := interp.EvaluateModule(module); err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	for _, name := range []string{"a", "b"} {
		if got := formatValue(mustGlobal(t, interp, name)); got != "4" {
			t.Fatalf("%s = %s", name, got)
		}
	}
	if got := formatValue(mustGlobal(t, interp, "c")); got != "1" {
		t.Fatalf("c = %s", got)
	}
	tuple, ok := mustGlobal(t, interp, "e").(runtime.TupleValue)
	if !ok || len(tuple.Elements) != 2 {
		t.Fatalf("e should hold a pair, got %#v", mustGlobal(t, interp, "e"))
	}
}

func TestUnpackingCountMismatch(t *testing.T) {
	err := evalError(t, ast.Mod(ast.AssignTo([]ast.Expression{ast.Names("a", "b")}, ast.Tuple(ast.Int(1), ast.Int(2), ast.Int(3)))))
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected ArgumentError, got %T (%v)", err, err)
	}
}

func TestScopeIsolation(t *testing.T) {
	t.Run("assignment updates an existing global", func(t *testing.T) {
		module := ast.Mod(
			ast.Assign("x", ast.Int(1)),
			ast.Fn("f", nil, ast.Assign("x", ast.Int(5))),
			ast.Call("f"),
			ast.Call("print", ast.ID("x")),
		)
		if got := runProgram(t, module); got != "5\n" {
			t.Fatalf("printed %q", got)
		}
	})
	t.Run("parameters shadow globals", func(t *testing.T) {
		module := ast.Mod(
			ast.Assign("x", ast.Int(1)),
			ast.Fn("f", []*ast.FunctionParameter{ast.Param("x")}, ast.Assign("x", ast.Int(9))),
			ast.Call("f", ast.Int(3)),
			ast.Call("print", ast.ID("x")),
		)
		if got := runProgram(t, module); got != "1\n" {
			t.Fatalf("printed %q", got)
		}
	})
	t.Run("callee cannot see caller locals", func(t *testing.T) {
		module := ast.Mod(
			ast.Fn("inner", nil, ast.Call("print", ast.ID("secret"))),
			ast.Fn("outer", nil, ast.Assign("secret", ast.Int(1)), ast.Call("inner")),
			ast.Call("outer"),
		)
		var nameErr *runtime.NameError
		if err := evalError(t, module); !errors.As(err, &nameErr) || nameErr.Name != "secret" {
			t.Fatalf("expected NameError for secret, got %v", err)
		}
	})
	t.Run("locals vanish after return", func(t *testing.T) {
		interp, _ := newTestInterpreter()
		module := ast.Mod(
			ast.Fn("f", nil, ast.Assign("temp", ast.Int(1))),
			ast.Call("f"),
		)
		if _, err := interp.EvaluateModule(module); err != nil {
			t.Fatalf("evaluation failed: %v", err)
		}
		if interp.Scope().Find("temp") {
			t.Fatalf("local leaked into globals")
		}
		if interp.Scope().Depth() != 0 {
			t.Fatalf("frames left open: %d", interp.Scope().Depth())
		}
	})
}

func TestFramePoppedOnError(t *testing.T) {
	interp, _ := newTestInterpreter()
	module := ast.Mod(
		ast.Fn("bad", nil, ast.Ret(ast.ID("nope"))),
		ast.Call("bad"),
	)
	if _, err := interp.EvaluateModule(module); err == nil {
		t.Fatalf("expected error")
	}
	if interp.Scope().Depth() != 0 {
		t.Fatalf("frame not popped after error, depth %d", interp.Scope().Depth())
	}
}

func TestUndefinedFunction(t *testing.T) {
	var undef *runtime.UndefinedFunctionError
	if err := evalError(t, ast.Mod(ast.Call("nowhere"))); !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedFunctionError, got %v", err)
	}
}

func TestRecursionLimit(t *testing.T) {
	var out bytes.Buffer
	interp := New(Options{Stdout: &out, MaxCallDepth: 50})
	module := ast.Mod(
		ast.Fn("down", []*ast.FunctionParameter{ast.Param("n")},
			ast.Ret(ast.Call("down", ast.Bin("+", ast.ID("n"), ast.Int(1)))),
		),
		ast.Call("down", ast.Int(0)),
	)
	_, err := interp.EvaluateModule(module)
	var recErr *RecursionError
	if !errors.As(err, &recErr) || recErr.Limit != 50 {
		t.Fatalf("expected RecursionError at 50, got %v", err)
	}
	if interp.Scope().Depth() != 0 {
		t.Fatalf("frames left open: %d", interp.Scope().Depth())
	}

	deep := ast.Mod(
		ast.Fn("count", []*ast.FunctionParameter{ast.Param("n")},
			ast.If(ast.Cmp("==", ast.ID("n"), ast.Int(0)), ast.Ret(ast.Int(0))),
			ast.Ret(ast.Bin("+", ast.Int(1), ast.Call("count", ast.Bin("-", ast.ID("n"), ast.Int(1))))),
		),
		ast.Call("print", ast.Call("count", ast.Int(49))),
	)
	if _, err := interp.EvaluateModule(deep); err != nil {
		t.Fatalf("depth 50 should fit: %v", err)
	}
	if out.String() != "49\n" {
		t.Fatalf("printed %q", out.String())
	}
}
