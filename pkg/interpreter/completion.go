package interpreter

import "pyrite/interpreter-go/pkg/runtime"

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

// completion is the outcome of executing a statement. Only completionReturn
// carries a value.
type completion struct {
	kind  completionKind
	value runtime.Value
}

var (
	normalCompletion   = completion{kind: completionNormal}
	breakCompletion    = completion{kind: completionBreak}
	continueCompletion = completion{kind: completionContinue}
)

func returnCompletion(v runtime.Value) completion {
	return completion{kind: completionReturn, value: v}
}

// escapeError reports a signal that left the construct able to consume it.
func (c completion) escapeError() error {
	switch c.kind {
	case completionReturn:
		return &InternalError{Message: "'return' outside function"}
	case completionBreak:
		return &InternalError{Message: "'break' outside loop"}
	case completionContinue:
		return &InternalError{Message: "'continue' not properly in loop"}
	default:
		return nil
	}
}
