package interpreter

import (
	"bytes"
	"testing"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/runtime"
)

func newTestInterpreter() (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(Options{Stdout: &out}), &out
}

// runProgram evaluates module in a fresh session and returns what it printed.
func runProgram(t *testing.T, module *ast.Module) string {
	t.Helper()
	interp, out := newTestInterpreter()
	if _, err := interp.EvaluateModule(module); err != nil {
		t.Fatalf("module evaluation failed: %v", err)
	}
	return out.String()
}

// evalError evaluates module and returns the error it must produce.
func evalError(t *testing.T, module *ast.Module) error {
	t.Helper()
	interp, _ := newTestInterpreter()
	_, err := interp.EvaluateModule(module)
	if err == nil {
		t.Fatalf("expected evaluation error")
	}
	return err
}

func mustGlobal(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	v, err := interp.Scope().Query(name)
	if err != nil {
		t.Fatalf("global %s: %v", name, err)
	}
	return v
}
