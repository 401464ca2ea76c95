package interpreter

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/runtime"
)

func fibonacciProgram() *ast.Module {
	return ast.Mod(
		ast.Fn("fib", []*ast.FunctionParameter{ast.Param("n")},
			ast.AssignTo([]ast.Expression{ast.Names("a", "b")}, ast.Tuple(ast.Int(0), ast.Int(1))),
			ast.While(ast.Cmp(">", ast.ID("n"), ast.Int(0)),
				ast.AssignTo([]ast.Expression{ast.Names("a", "b")}, ast.Tuple(ast.ID("b"), ast.Bin("+", ast.ID("a"), ast.ID("b")))),
				ast.AssignOp("-", "n", ast.Int(1)),
			),
			ast.Ret(ast.ID("a")),
		),
		ast.Call("print", ast.Call("fib", ast.Int(10)), ast.Call("fib", ast.Int(90))),
		ast.Call("print", ast.FStr(ast.Str("ratio "), ast.Bin("/", ast.Call("fib", ast.Int(20)), ast.Call("fib", ast.Int(19))))),
	)
}

func TestProgramEvaluation(t *testing.T) {
	want := "55 2880067194370816120\nratio 1.618034\n"
	if got := runProgram(t, fibonacciProgram()); got != want {
		t.Fatalf("printed %q, want %q", got, want)
	}
}

func TestDeterministicAcrossSessions(t *testing.T) {
	first := runProgram(t, fibonacciProgram())
	for n := 0; n < 3; n++ {
		if got := runProgram(t, fibonacciProgram()); got != first {
			t.Fatalf("run %d printed %q, first run printed %q", n, got, first)
		}
	}
}

func TestConcurrentSessions(t *testing.T) {
	var wg sync.WaitGroup
	outputs := make([]string, 6)
	errs := make([]error, 6)
	for n := range outputs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			var out bytes.Buffer
			interp := New(Options{Stdout: &out})
			_, errs[n] = interp.EvaluateModule(fibonacciProgram())
			outputs[n] = out.String()
		}(n)
	}
	wg.Wait()
	for n := range outputs {
		if errs[n] != nil {
			t.Fatalf("session %d failed: %v", n, errs[n])
		}
		if outputs[n] != outputs[0] {
			t.Fatalf("session %d printed %q, session 0 printed %q", n, outputs[n], outputs[0])
		}
	}
}

func TestEvaluateModuleReturnsLastExpression(t *testing.T) {
	interp, _ := newTestInterpreter()
	val, err := interp.EvaluateModule(ast.Mod(
		ast.Assign("x", ast.Int(20)),
		ast.Bin("+", ast.ID("x"), ast.Int(1)),
	))
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if got := formatValue(val); got != "21" {
		t.Fatalf("last value = %s", got)
	}

	val, err = interp.EvaluateModule(ast.Mod(ast.ID("x")))
	if err != nil {
		t.Fatalf("second module failed: %v", err)
	}
	if _, ok := val.(runtime.IntegerValue); !ok {
		t.Fatalf("bare name should resolve, got %#v", val)
	}

	val, err = interp.EvaluateModule(ast.Mod(ast.Assign("y", ast.Int(1))))
	if err != nil {
		t.Fatalf("third module failed: %v", err)
	}
	if _, ok := val.(runtime.NoneValue); !ok {
		t.Fatalf("statement module should yield None, got %#v", val)
	}
	if got := interp.Scope().Globals(); strings.Join(got, ",") != "x,y" {
		t.Fatalf("globals = %v", got)
	}
}

func TestTraceLogging(t *testing.T) {
	var out, logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.TraceLevel)
	interp := New(Options{Stdout: &out, Logger: &logger})
	module := ast.Mod(
		ast.Fn("id", []*ast.FunctionParameter{ast.Param("v")}, ast.Ret(ast.ID("v"))),
		ast.Call("print", ast.Call("id", ast.Int(1))),
	)
	if _, err := interp.EvaluateModule(module); err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	text := logs.String()
	for _, want := range []string{`"message":"define"`, `"message":"call"`, `"message":"return"`, `"builtin":"print"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("trace log missing %s:\n%s", want, text)
		}
	}
}
