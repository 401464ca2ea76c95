package runtime

import (
	"errors"
	"fmt"
)

// ErrGlobalFramePop is returned when a caller tries to pop the global frame.
var ErrGlobalFramePop = errors.New("scope: cannot pop the global frame")

// NameError reports a read of an unbound name.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'", e.Name)
}

// UndefinedFunctionError reports a call to a name with no definition.
type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("Undefined function '%s'", e.Name)
}
