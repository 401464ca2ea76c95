package interpreter

import (
	"math"
	"strconv"
	"strings"

	"pyrite/interpreter-go/pkg/runtime"
)

// formatValue applies the str rule. Strings are returned raw.
func formatValue(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.IntegerValue:
		return val.Val.String()
	case runtime.FloatValue:
		return formatFloat(val.Val)
	case runtime.BoolValue:
		if val.Val {
			return "True"
		}
		return "False"
	case runtime.StringValue:
		return val.Val
	case runtime.NoneValue:
		return "None"
	case runtime.TupleValue:
		parts := make([]string, len(val.Elements))
		for idx, el := range val.Elements {
			parts[idx] = formatValue(el)
		}
		return strings.Join(parts, " ")
	case runtime.NameRefValue:
		return val.Name
	default:
		return "<unknown>"
	}
}

// printValue is formatValue with escape sequences in strings resolved.
func printValue(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.StringValue:
		return unescape(val.Val)
	case runtime.TupleValue:
		parts := make([]string, len(val.Elements))
		for idx, el := range val.Elements {
			parts[idx] = printValue(el)
		}
		return strings.Join(parts, " ")
	default:
		return formatValue(v)
	}
}

// Display renders v exactly as print would write it.
func Display(v runtime.Value) string {
	return printValue(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// unescape resolves \n, \t, \", \' and \; any other escaped character is
// kept without its backslash.
func unescape(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for idx := 0; idx < len(raw); idx++ {
		ch := raw[idx]
		if ch != '\\' || idx == len(raw)-1 {
			b.WriteByte(ch)
			continue
		}
		idx++
		switch raw[idx] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(raw[idx])
		}
	}
	return b.String()
}
