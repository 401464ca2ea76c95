package runtime

import "pyrite/interpreter-go/pkg/bigint"

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindString
	KindNone
	KindTuple
	KindNameRef
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindNone:
		return "NoneType"
	case KindTuple:
		return "tuple"
	case KindNameRef:
		return "name"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val bigint.Int
}

func (IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

// StringValue holds raw text; escape sequences are resolved when printed.
type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

type TupleValue struct {
	Elements []Value
}

func (TupleValue) Kind() Kind { return KindTuple }

// NameRefValue is produced by evaluating a bare identifier. Consumers resolve
// it through the Scope; assignment targets only read the name.
type NameRefValue struct {
	Name string
}

func (NameRefValue) Kind() Kind { return KindNameRef }

func NewInteger(v int64) IntegerValue {
	return IntegerValue{Val: bigint.FromInt64(v)}
}

func NewTuple(elements ...Value) TupleValue {
	return TupleValue{Elements: elements}
}

var (
	True  = BoolValue{Val: true}
	False = BoolValue{Val: false}
	None  = NoneValue{}
)
