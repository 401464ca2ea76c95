package interpreter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/bigint"
	"pyrite/interpreter-go/pkg/runtime"
)

// maxRepeatLength caps the size of a repeated string.
const maxRepeatLength = 1 << 30

// number is an operand after the coercion ladder: either an exact integer
// or a float.
type number struct {
	isFloat bool
	i       bigint.Int
	f       float64
}

func asNumber(v runtime.Value) (number, bool) {
	switch val := v.(type) {
	case runtime.IntegerValue:
		return number{i: val.Val}, true
	case runtime.BoolValue:
		if val.Val {
			return number{i: bigint.One()}, true
		}
		return number{i: bigint.Zero()}, true
	case runtime.FloatValue:
		return number{isFloat: true, f: val.Val}, true
	default:
		return number{}, false
	}
}

func (n number) float() (float64, error) {
	if n.isFloat {
		return n.f, nil
	}
	f, err := n.i.Float64()
	if err != nil {
		return 0, &ConversionError{Message: "int too large to convert to float", Err: err}
	}
	return f, nil
}

// integer truncates floats toward zero.
func (n number) integer() (bigint.Int, error) {
	if !n.isFloat {
		return n.i, nil
	}
	return floatToInt(n.f)
}

func floatToInt(f float64) (bigint.Int, error) {
	if math.IsNaN(f) {
		return bigint.Int{}, &ConversionError{Message: "cannot convert float NaN to integer"}
	}
	if math.IsInf(f, 0) {
		return bigint.Int{}, &ConversionError{Message: "cannot convert float infinity to integer"}
	}
	return bigint.Parse(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
}

func (i *Interpreter) applyBinaryOperator(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	_, leftStr := left.(runtime.StringValue)
	_, rightStr := right.(runtime.StringValue)
	if leftStr || rightStr {
		return applyStringOperator(op, left, right)
	}
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if !lok || !rok {
		return nil, mismatch(string(op), left, right)
	}
	if op == ast.BinaryDivide {
		return trueDivide(l, r)
	}
	if l.isFloat || r.isFloat {
		return i.floatArithmetic(op, l, r)
	}
	return i.integerArithmetic(op, l.i, r.i)
}

func applyStringOperator(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.BinaryAdd:
		return runtime.StringValue{Val: formatValue(left) + formatValue(right)}, nil
	case ast.BinaryMultiply:
		text, countVal := left, right
		if _, ok := left.(runtime.StringValue); !ok {
			text, countVal = right, left
		}
		if _, ok := countVal.(runtime.StringValue); ok {
			return nil, mismatch(string(op), left, right)
		}
		count, ok := asNumber(countVal)
		if !ok {
			return nil, mismatch(string(op), left, right)
		}
		n, err := count.integer()
		if err != nil {
			return nil, err
		}
		return repeatString(text.(runtime.StringValue).Val, n)
	default:
		return nil, mismatch(string(op), left, right)
	}
}

func repeatString(s string, count bigint.Int) (runtime.Value, error) {
	if count.Sign() <= 0 || s == "" {
		return runtime.StringValue{}, nil
	}
	n, ok := count.Int64()
	if !ok || n > maxRepeatLength/int64(len(s)) {
		return nil, &ArgumentError{Message: "repeated string is too long"}
	}
	return runtime.StringValue{Val: strings.Repeat(s, int(n))}, nil
}

func trueDivide(l, r number) (runtime.Value, error) {
	if (r.isFloat && r.f == 0) || (!r.isFloat && r.i.IsZero()) {
		return nil, &DivisionByZeroError{Operator: "/", Err: bigint.ErrDivisionByZero}
	}
	lf, err := l.float()
	if err != nil {
		return nil, err
	}
	rf, err := r.float()
	if err != nil {
		return nil, err
	}
	return runtime.FloatValue{Val: lf / rf}, nil
}

func (i *Interpreter) floatArithmetic(op ast.BinaryOperator, l, r number) (runtime.Value, error) {
	switch op {
	case ast.BinaryFloorDivide, ast.BinaryModulo:
		a, err := l.integer()
		if err != nil {
			return nil, err
		}
		b, err := r.integer()
		if err != nil {
			return nil, err
		}
		q, err := i.engine.Div(a, b)
		if err != nil {
			return nil, divisionError(op, err)
		}
		qf, err := number{i: q}.float()
		if err != nil {
			return nil, err
		}
		if op == ast.BinaryFloorDivide {
			return runtime.FloatValue{Val: qf}, nil
		}
		lf, err := l.float()
		if err != nil {
			return nil, err
		}
		rf, err := r.float()
		if err != nil {
			return nil, err
		}
		return runtime.FloatValue{Val: lf - rf*qf}, nil
	}
	lf, err := l.float()
	if err != nil {
		return nil, err
	}
	rf, err := r.float()
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.BinaryAdd:
		return runtime.FloatValue{Val: lf + rf}, nil
	case ast.BinarySubtract:
		return runtime.FloatValue{Val: lf - rf}, nil
	case ast.BinaryMultiply:
		return runtime.FloatValue{Val: lf * rf}, nil
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unknown binary operator %q", op)}
	}
}

func (i *Interpreter) integerArithmetic(op ast.BinaryOperator, a, b bigint.Int) (runtime.Value, error) {
	switch op {
	case ast.BinaryAdd:
		return runtime.IntegerValue{Val: a.Add(b)}, nil
	case ast.BinarySubtract:
		return runtime.IntegerValue{Val: a.Sub(b)}, nil
	case ast.BinaryMultiply:
		return runtime.IntegerValue{Val: i.engine.Mul(a, b)}, nil
	case ast.BinaryFloorDivide:
		q, err := i.engine.Div(a, b)
		if err != nil {
			return nil, divisionError(op, err)
		}
		return runtime.IntegerValue{Val: q}, nil
	case ast.BinaryModulo:
		m, err := i.engine.Mod(a, b)
		if err != nil {
			return nil, divisionError(op, err)
		}
		return runtime.IntegerValue{Val: m}, nil
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unknown binary operator %q", op)}
	}
}

func divisionError(op ast.BinaryOperator, err error) error {
	if errors.Is(err, bigint.ErrDivisionByZero) {
		return &DivisionByZeroError{Operator: string(op), Err: err}
	}
	return err
}

func (i *Interpreter) applyUnaryOperator(op ast.UnaryOperator, operand runtime.Value) (runtime.Value, error) {
	if op == ast.UnaryNot {
		ok, err := truthy(operand)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !ok}, nil
	}
	n, ok := asNumber(operand)
	if !ok {
		return nil, mismatch("unary "+string(op), operand)
	}
	switch op {
	case ast.UnaryNegate:
		if n.isFloat {
			return runtime.FloatValue{Val: -n.f}, nil
		}
		return runtime.IntegerValue{Val: n.i.Neg()}, nil
	case ast.UnaryPlus:
		if n.isFloat {
			return runtime.FloatValue{Val: n.f}, nil
		}
		return runtime.IntegerValue{Val: n.i}, nil
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unknown unary operator %q", op)}
	}
}

func (i *Interpreter) compareValues(op ast.ComparisonOperator, left, right runtime.Value) (bool, error) {
	switch op {
	case ast.CompareEqual:
		return valuesEqual(left, right), nil
	case ast.CompareNotEqual:
		return !valuesEqual(left, right), nil
	case ast.CompareLess, ast.CompareLessEqual, ast.CompareGreater, ast.CompareGreaterEqual:
	default:
		return false, &InternalError{Message: fmt.Sprintf("unknown comparison operator %q", op)}
	}

	ls, lstr := left.(runtime.StringValue)
	rs, rstr := right.(runtime.StringValue)
	if lstr || rstr {
		if !(lstr && rstr) {
			return false, nil
		}
		return orderHolds(op, strings.Compare(ls.Val, rs.Val)), nil
	}
	// None never orders against anything.
	if left.Kind() == runtime.KindNone || right.Kind() == runtime.KindNone {
		return false, nil
	}
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if !lok || !rok {
		return false, mismatch(string(op), left, right)
	}
	c, ordered := compareNumbers(l, r)
	if !ordered {
		return false, nil
	}
	return orderHolds(op, c), nil
}

func orderHolds(op ast.ComparisonOperator, c int) bool {
	switch op {
	case ast.CompareLess:
		return c < 0
	case ast.CompareLessEqual:
		return c <= 0
	case ast.CompareGreater:
		return c > 0
	case ast.CompareGreaterEqual:
		return c >= 0
	}
	return false
}

// compareNumbers reports ordered=false when either side is NaN.
func compareNumbers(l, r number) (int, bool) {
	if !l.isFloat && !r.isFloat {
		return l.i.Cmp(r.i), true
	}
	if l.isFloat && r.isFloat {
		return compareFloats(l.f, r.f)
	}
	if l.isFloat {
		c, ok := compareIntFloat(r.i, l.f)
		return -c, ok
	}
	return compareIntFloat(l.i, r.f)
}

func compareFloats(a, b float64) (int, bool) {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return 0, false
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

// compareIntFloat orders an integer against a float. Integers beyond the
// float64 range sit between the largest finite float and infinity.
func compareIntFloat(a bigint.Int, f float64) (int, bool) {
	if math.IsNaN(f) {
		return 0, false
	}
	af, err := a.Float64()
	if err != nil {
		if math.IsInf(f, 1) {
			return -1, true
		}
		if math.IsInf(f, -1) {
			return 1, true
		}
		return a.Sign(), true
	}
	return compareFloats(af, f)
}

func valuesEqual(left, right runtime.Value) bool {
	switch l := left.(type) {
	case runtime.NoneValue:
		_, ok := right.(runtime.NoneValue)
		return ok
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.TupleValue:
		r, ok := right.(runtime.TupleValue)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false
		}
		for idx := range l.Elements {
			if !valuesEqual(l.Elements[idx], r.Elements[idx]) {
				return false
			}
		}
		return true
	}
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if !lok || !rok {
		return false
	}
	c, ordered := compareNumbers(l, r)
	return ordered && c == 0
}

func truthy(v runtime.Value) (bool, error) {
	switch val := v.(type) {
	case runtime.IntegerValue:
		return !val.Val.IsZero(), nil
	case runtime.FloatValue:
		return val.Val != 0, nil
	case runtime.BoolValue:
		return val.Val, nil
	case runtime.StringValue:
		return val.Val != "", nil
	case runtime.NoneValue:
		return false, nil
	case runtime.TupleValue:
		return false, mismatch("truth test", v)
	default:
		return false, &InternalError{Message: fmt.Sprintf("unresolved value of kind %s", v.Kind())}
	}
}
