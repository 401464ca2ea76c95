package runtime

import (
	"sort"

	"pyrite/interpreter-go/pkg/ast"
)

// Parameter is a declared parameter; Default is nil when the caller must
// supply a value.
type Parameter struct {
	Name    string
	Default Value
}

// Function is a user definition. The body belongs to the syntax tree.
type Function struct {
	Name   string
	Params []Parameter
	Body   *ast.Block
}

type FunctionRegistry struct {
	defs map[string]*Function
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{defs: make(map[string]*Function)}
}

// Define installs fn, replacing any earlier definition with the same name.
func (r *FunctionRegistry) Define(fn *Function) {
	r.defs[fn.Name] = fn
}

func (r *FunctionRegistry) Lookup(name string) (*Function, error) {
	if fn, ok := r.defs[name]; ok {
		return fn, nil
	}
	return nil, &UndefinedFunctionError{Name: name}
}

// Names lists the defined functions in sorted order.
func (r *FunctionRegistry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
