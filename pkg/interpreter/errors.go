package interpreter

import (
	"fmt"
	"strings"

	"pyrite/interpreter-go/pkg/runtime"
)

// TypeMismatchError reports an operator applied to kinds it does not accept.
type TypeMismatchError struct {
	Operator string
	Kinds    []runtime.Kind
}

func (e *TypeMismatchError) Error() string {
	names := make([]string, len(e.Kinds))
	for idx, kind := range e.Kinds {
		names[idx] = "'" + kind.String() + "'"
	}
	if len(names) == 1 {
		return fmt.Sprintf("bad operand type for %s: %s", e.Operator, names[0])
	}
	return fmt.Sprintf("unsupported operand type(s) for %s: %s", e.Operator, strings.Join(names, " and "))
}

func mismatch(op string, operands ...runtime.Value) *TypeMismatchError {
	kinds := make([]runtime.Kind, len(operands))
	for idx, v := range operands {
		kinds[idx] = v.Kind()
	}
	return &TypeMismatchError{Operator: op, Kinds: kinds}
}

// DivisionByZeroError wraps bigint.ErrDivisionByZero for integer and true
// division alike.
type DivisionByZeroError struct {
	Operator string
	Err      error
}

func (e *DivisionByZeroError) Error() string {
	if e.Operator == "/" {
		return "division by zero"
	}
	return "integer division or modulo by zero"
}

func (e *DivisionByZeroError) Unwrap() error { return e.Err }

// ArgumentError reports a bad call or an unpacking count mismatch.
type ArgumentError struct {
	Function string
	Message  string
}

func (e *ArgumentError) Error() string {
	if e.Function == "" {
		return e.Message
	}
	return fmt.Sprintf("%s() %s", e.Function, e.Message)
}

type ConversionError struct {
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	return e.Message
}

func (e *ConversionError) Unwrap() error { return e.Err }

type RecursionError struct {
	Limit int
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("maximum recursion depth exceeded (%d)", e.Limit)
}

// InternalError reports a syntax tree the evaluator cannot execute.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return e.Message
}
