package interpreter

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/bigint"
	"pyrite/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested user function calls.
const DefaultMaxCallDepth = 1000

// Options configures an interpreter session.
type Options struct {
	// Stdout receives print output. Defaults to os.Stdout.
	Stdout io.Writer
	// Logger receives trace events. Defaults to a disabled logger.
	Logger *zerolog.Logger
	// MaxCallDepth defaults to DefaultMaxCallDepth when zero or negative.
	MaxCallDepth int
}

// Interpreter evaluates Pyrite syntax trees. Each instance is an independent
// session with its own globals, functions and integer engine.
type Interpreter struct {
	scope     *runtime.Scope
	functions *runtime.FunctionRegistry
	engine    *bigint.Engine
	stdout    io.Writer
	log       zerolog.Logger
	maxDepth  int
}

// New returns an interpreter with an empty global frame.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	depth := opts.MaxCallDepth
	if depth <= 0 {
		depth = DefaultMaxCallDepth
	}
	return &Interpreter{
		scope:     runtime.NewScope(),
		functions: runtime.NewFunctionRegistry(),
		engine:    bigint.NewEngine(),
		stdout:    out,
		log:       logger,
		maxDepth:  depth,
	}
}

// Scope returns the session's variable frames.
func (i *Interpreter) Scope() *runtime.Scope {
	return i.scope
}

// Functions returns the session's function registry.
func (i *Interpreter) Functions() *runtime.FunctionRegistry {
	return i.functions
}

// EvaluateModule executes a module's statements in order. When the final
// statement is an expression its value is returned; otherwise None.
func (i *Interpreter) EvaluateModule(module *ast.Module) (runtime.Value, error) {
	if module == nil {
		return nil, &InternalError{Message: "nil module"}
	}
	var last runtime.Value = runtime.None
	for _, stmt := range module.Body {
		if expr, ok := stmt.(ast.Expression); ok {
			val, err := i.evaluateValue(expr)
			if err != nil {
				return nil, err
			}
			last = val
			continue
		}
		last = runtime.None
		result, err := i.executeStatement(stmt)
		if err != nil {
			return nil, err
		}
		if err := result.escapeError(); err != nil {
			return nil, err
		}
	}
	return last, nil
}
