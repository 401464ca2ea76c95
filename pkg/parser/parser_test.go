package parser_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/interpreter"
	"pyrite/interpreter-go/pkg/parser"
)

func newParser(t *testing.T) *parser.ModuleParser {
	t.Helper()
	mp, err := parser.NewModuleParser()
	if err != nil {
		t.Fatalf("NewModuleParser: %v", err)
	}
	t.Cleanup(func() { mp.Close() })
	return mp
}

func parse(t *testing.T, source string) *ast.Module {
	t.Helper()
	mod, err := newParser(t).ParseModule([]byte(source))
	if err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}
	return mod
}

func TestParseModuleIgnoresComments(t *testing.T) {
	mod := parse(t, `
# leading comment
def main():
    # inside
    pass  # trailing
`)
	if len(mod.Body) != 1 {
		t.Fatalf("expected single statement in module body, got %d", len(mod.Body))
	}
	def, ok := mod.Body[0].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected FunctionDefinition, got %T", mod.Body[0])
	}
	if def.ID.Name != "main" || len(def.Body.Body) != 1 {
		t.Fatalf("unexpected definition %#v", def)
	}
}

func TestParseAssignments(t *testing.T) {
	mod := parse(t, "a = b = 1\nx, y = y, x\nn += 2\n")
	if len(mod.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(mod.Body))
	}
	chained, ok := mod.Body[0].(*ast.AssignmentStatement)
	if !ok || len(chained.Targets) != 2 {
		t.Fatalf("expected chained assignment, got %#v", mod.Body[0])
	}
	swap := mod.Body[1].(*ast.AssignmentStatement)
	if list, ok := swap.Targets[0].(*ast.ExpressionList); !ok || len(list.Elements) != 2 {
		t.Fatalf("expected tuple target, got %#v", swap.Targets[0])
	}
	if value, ok := swap.Value.(*ast.ExpressionList); !ok || len(value.Elements) != 2 {
		t.Fatalf("expected tuple value, got %#v", swap.Value)
	}
	aug, ok := mod.Body[2].(*ast.AugmentedAssignment)
	if !ok || aug.Operator != ast.BinaryAdd || aug.Target.Name != "n" {
		t.Fatalf("expected += assignment, got %#v", mod.Body[2])
	}
}

func TestParseExpressions(t *testing.T) {
	mod := parse(t, "1 < x <= 3\na and b and c\nf(1, key=2)\n-x\nnot y\n")
	cmp, ok := mod.Body[0].(*ast.Comparison)
	if !ok || len(cmp.Operands) != 3 || cmp.Operators[1] != ast.CompareLessEqual {
		t.Fatalf("expected comparison chain, got %#v", mod.Body[0])
	}
	boolOp, ok := mod.Body[1].(*ast.BooleanOperation)
	if !ok || boolOp.Operator != ast.BooleanAnd || len(boolOp.Operands) != 3 {
		t.Fatalf("expected flattened and, got %#v", mod.Body[1])
	}
	call, ok := mod.Body[2].(*ast.FunctionCall)
	if !ok || len(call.Arguments) != 2 || call.Arguments[0].Name != nil || call.Arguments[1].Name.Name != "key" {
		t.Fatalf("expected call with keyword, got %#v", mod.Body[2])
	}
	if neg, ok := mod.Body[3].(*ast.UnaryExpression); !ok || neg.Operator != ast.UnaryNegate {
		t.Fatalf("expected negation, got %#v", mod.Body[3])
	}
	if not, ok := mod.Body[4].(*ast.UnaryExpression); !ok || not.Operator != ast.UnaryNot {
		t.Fatalf("expected not, got %#v", mod.Body[4])
	}
}

func TestParseStrings(t *testing.T) {
	mod := parse(t, `"a\n" 'b'
f"x={x}, {{literal}}"
r"c\d"
`)
	lit, ok := mod.Body[0].(*ast.StringLiteral)
	if !ok || lit.Value != `a\nb` {
		t.Fatalf("expected concatenated raw literal, got %#v", mod.Body[0])
	}
	fs, ok := mod.Body[1].(*ast.FormatString)
	if !ok || len(fs.Parts) != 3 {
		t.Fatalf("expected three-part format string, got %#v", mod.Body[1])
	}
	if tail := fs.Parts[2].(*ast.StringLiteral).Value; tail != ", {literal}" {
		t.Fatalf("unexpected literal tail %q", tail)
	}
	if raw := mod.Body[2].(*ast.StringLiteral).Value; raw != `c\\d` {
		t.Fatalf("raw string should keep its backslash, got %q", raw)
	}
}

func TestParseRejectsUnsupportedSyntax(t *testing.T) {
	cases := []string{
		"for i in x:\n    pass\n",
		"while x:\n    pass\nelse:\n    pass\n",
		"f = lambda: 1\n",
		"x = 2 ** 3\n",
		"x = 0x10\n",
		"import os\n",
	}
	mp := newParser(t)
	for _, source := range cases {
		_, err := mp.ParseModule([]byte(source))
		var unsupported *parser.UnsupportedSyntaxError
		if !errors.As(err, &unsupported) {
			t.Fatalf("%q: expected UnsupportedSyntaxError, got %v", source, err)
		}
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	_, err := newParser(t).ParseModule([]byte("def (:\n"))
	if err == nil || err.Error() != "parser: syntax errors present" {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestParsedProgramRuns(t *testing.T) {
	source := `
def fact(n, acc=1):
    while n > 1:
        acc *= n
        n -= 1
    return acc

def split(v):
    return v // 10, v % 10

total = 0
i = 0
while True:
    i += 1
    if i % 2 == 0:
        continue
    elif i > 5:
        break
    total += i
q, r = split(47)
print(total, q, r)
print(fact(25))
print(f"{7 / 2} {'a' * 3} {1 < 2}")
print("tab\there", 'it\'s')
`
	mod := parse(t, source)
	var out bytes.Buffer
	interp := interpreter.New(interpreter.Options{Stdout: &out})
	if _, err := interp.EvaluateModule(mod); err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	want := strings.Join([]string{
		"9 4 7",
		"15511210043330985984000000",
		"3.500000 aaa True",
		"tab\there it's",
	}, "\n") + "\n"
	if out.String() != want {
		t.Fatalf("program printed %q, want %q", out.String(), want)
	}
}
