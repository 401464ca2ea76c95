package interpreter

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"pyrite/interpreter-go/pkg/bigint"
	"pyrite/interpreter-go/pkg/runtime"
)

type builtinFunc func(i *Interpreter, args []runtime.Value) (runtime.Value, error)

// builtins shadow user definitions with the same name.
var builtins = map[string]builtinFunc{
	"print": builtinPrint,
	"int":   builtinInt,
	"float": builtinFloat,
	"str":   builtinStr,
	"bool":  builtinBool,
}

// BuiltinNames lists the builtin functions in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinPrint(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = printValue(arg)
	}
	if _, err := fmt.Fprintln(i.stdout, strings.Join(parts, " ")); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return runtime.None, nil
}

// conversionArg returns the single argument of a conversion builtin, or nil
// when it was called without arguments.
func conversionArg(name string, args []runtime.Value) (runtime.Value, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		return args[0], nil
	default:
		return nil, &ArgumentError{Function: name, Message: fmt.Sprintf("takes at most 1 argument (%d given)", len(args))}
	}
}

func builtinInt(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	arg, err := conversionArg("int", args)
	if err != nil {
		return nil, err
	}
	if arg == nil {
		return runtime.NewInteger(0), nil
	}
	switch val := arg.(type) {
	case runtime.IntegerValue:
		return val, nil
	case runtime.FloatValue:
		n, err := floatToInt(val.Val)
		if err != nil {
			return nil, err
		}
		return runtime.IntegerValue{Val: n}, nil
	case runtime.BoolValue:
		if val.Val {
			return runtime.NewInteger(1), nil
		}
		return runtime.NewInteger(0), nil
	case runtime.StringValue:
		n, err := bigint.Parse(strings.TrimSpace(val.Val))
		if err != nil {
			return nil, &ConversionError{Message: fmt.Sprintf("invalid literal for int() with base 10: '%s'", val.Val), Err: err}
		}
		return runtime.IntegerValue{Val: n}, nil
	default:
		return nil, &ConversionError{Message: fmt.Sprintf("int() argument must be a string or a number, not '%s'", arg.Kind())}
	}
}

func builtinFloat(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	arg, err := conversionArg("float", args)
	if err != nil {
		return nil, err
	}
	if arg == nil {
		return runtime.FloatValue{}, nil
	}
	switch val := arg.(type) {
	case runtime.FloatValue:
		return val, nil
	case runtime.IntegerValue:
		f, err := number{i: val.Val}.float()
		if err != nil {
			return nil, err
		}
		return runtime.FloatValue{Val: f}, nil
	case runtime.BoolValue:
		if val.Val {
			return runtime.FloatValue{Val: 1}, nil
		}
		return runtime.FloatValue{Val: 0}, nil
	case runtime.StringValue:
		text := strings.TrimSpace(val.Val)
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)) {
			return nil, &ConversionError{Message: fmt.Sprintf("could not convert string to float: '%s'", val.Val), Err: err}
		}
		return runtime.FloatValue{Val: f}, nil
	default:
		return nil, &ConversionError{Message: fmt.Sprintf("float() argument must be a string or a number, not '%s'", arg.Kind())}
	}
}

func builtinStr(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	arg, err := conversionArg("str", args)
	if err != nil {
		return nil, err
	}
	if arg == nil {
		return runtime.StringValue{}, nil
	}
	return runtime.StringValue{Val: formatValue(arg)}, nil
}

func builtinBool(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	arg, err := conversionArg("bool", args)
	if err != nil {
		return nil, err
	}
	if arg == nil {
		return runtime.False, nil
	}
	ok, err := truthy(arg)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: ok}, nil
}
