package expr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/jorge-barreto/casedoc/internal/metrics"
)

func TestEvaluate_EmptyExpressionIsVisible(t *testing.T) {
	for _, in := range []string{"", "   "} {
		if !Evaluate(in, map[string]string{"a": "1"}) {
			t.Fatalf("Evaluate(%q) = false, want true", in)
		}
	}
}

func TestEvaluate_Literals(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{"1 == 1", true},
		{"1 == 2", false},
		{"1 != 2", true},
		{"2 > 1", true},
		{"2 < 1", false},
		{"2 >= 2", true},
		{"2 <= 1.5", false},
		{"'a' == \"a\"", true},
		{"'abc' < 'abd'", true},
		{"true && false", false},
		{"true || false", true},
		{"!false", true},
		{"not true", false},
		{"true and (false or true)", true},
		{"1 + 2 * 3 == 7", true},
		{"(1 + 2) * 3 == 9", true},
		{"10 % 4 == 2", true},
		{"-3 < 0", true},
		{"0", false},
		{"''", false},
		{"'false'", true},
		{"null", false},
		{"null == null", true},
		{"1e3 == 1000", true},
	}
	for _, c := range cases {
		if got := Evaluate(c.expr, nil); got != c.want {
			t.Errorf("Evaluate(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestEvaluate_ContextLookups(t *testing.T) {
	ctx := map[string]string{
		"case.status":   "approved",
		"salary":        "52000",
		"isManager":     "true",
		"employeeName":  "Alice",
		"assignment.to": "",
	}
	cases := []struct {
		expr string
		want bool
	}{
		{"case.status == 'approved'", true},
		{"case.status != 'approved'", false},
		{"salary > 50000", true},
		{"salary >= 52000 && salary < 60000", true},
		{"salary + 1000 == 53000", true},
		{"isManager == true", true},
		{"isManager", true},
		{"employeeName == 'Bob' || case.status == 'approved'", true},
		{"assignment.to", false},
		{"!assignment.to", true},
	}
	for _, c := range cases {
		if got := Evaluate(c.expr, ctx); got != c.want {
			t.Errorf("Evaluate(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestEvaluate_FailsOpen(t *testing.T) {
	cases := []string{
		"not a valid expr (((",
		"1 ==",
		"(1 == 1",
		"'unterminated",
		"missing == 'x'",
		"upper(name) == 'X'",
		"1 / 0",
		"'abc' > 3",
		"a = b",
		"#",
	}
	for _, in := range cases {
		if !Evaluate(in, map[string]string{"name": "x"}) {
			t.Errorf("Evaluate(%q) = false, want fail-open true", in)
		}
	}
}

func TestEvaluate_ShortCircuitSkipsUndefined(t *testing.T) {
	ctx := map[string]string{"hasSpouse": ""}
	if Evaluate("hasSpouse && spouseName == 'Sam'", ctx) {
		t.Fatal("expected false: right side must not be evaluated")
	}
}

func TestEvaluator_LogsAndCountsFailures(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New()
	e := &Evaluator{Log: zerolog.New(&buf), Metrics: m}

	if !e.Evaluate("1 ==", nil) {
		t.Fatal("expected fail-open")
	}
	if !strings.Contains(buf.String(), `"expression":"1 =="`) {
		t.Fatalf("log missing expression: %q", buf.String())
	}
	e.Evaluate("1 == 1", nil)
	if got := testutil.ToFloat64(m.ExpressionFailures); got != 1 {
		t.Fatalf("failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ExpressionEvaluations); got != 2 {
		t.Fatalf("evaluations = %v, want 2", got)
	}
}

func TestEvaluator_ZeroValue(t *testing.T) {
	var e Evaluator
	if e.Evaluate("1 == 2", nil) {
		t.Fatal("1 == 2 should be false")
	}
	if !e.Evaluate("((", nil) {
		t.Fatal("zero evaluator should still fail open")
	}
}

func TestEval_UndefinedVariable(t *testing.T) {
	_, err := Eval("nope == 1", map[string]string{})
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("err = %v, want ErrUndefinedVariable", err)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("1 + (2")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if se.Pos != 6 {
		t.Fatalf("Pos = %d, want 6", se.Pos)
	}
}

func TestParse_NestingLimit(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("(", n) + "1" + strings.Repeat(")", n)
	}
	if _, err := Parse(nested(maxDepth)); err != nil {
		t.Fatalf("depth %d: %v", maxDepth, err)
	}
	for name, src := range map[string]string{
		"parens":  nested(maxDepth + 1),
		"negate":  strings.Repeat("!", maxDepth+1) + "true",
		"minus":   strings.Repeat("- ", maxDepth+1) + "1",
		"mixed":   strings.Repeat("!(", maxDepth) + "x" + strings.Repeat(")", maxDepth),
		"huge":    nested(1_000_000),
		"chained": "1" + strings.Repeat(" + 1", maxTokens),
	} {
		_, err := Parse(src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%s: err = %v, want *SyntaxError", name, err)
		}
	}
}

func TestEvaluate_DeepExpressionFailsOpen(t *testing.T) {
	src := strings.Repeat("(", 1_000_000) + "false" + strings.Repeat(")", 1_000_000)
	if !Evaluate(src, nil) {
		t.Fatal("over-deep expression must fail open")
	}
	if !Evaluate(strings.Repeat("!", 2*maxDepth)+"true", nil) {
		t.Fatal("over-deep negation must fail open")
	}
}

func TestParse_Precedence(t *testing.T) {
	n, err := Parse("a || b && !c == 1 + 2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	want := "(a || (b && ((!c) == (1 + (2 * 3)))))"
	if n.String() != want {
		t.Fatalf("tree = %s, want %s", n.String(), want)
	}
}

func TestParse_DottedIdentifier(t *testing.T) {
	n, err := Parse("case.employee.grade")
	if err != nil {
		t.Fatal(err)
	}
	id, ok := n.(*Ident)
	if !ok || id.Name != "case.employee.grade" {
		t.Fatalf("got %#v", n)
	}
	if _, err := Parse("case."); err == nil {
		t.Fatal("trailing dot should be a syntax error")
	}
}

func TestLex_StringEscapes(t *testing.T) {
	toks, err := lex(`'it\'s' "a\"b"`)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].text != "it's" || toks[1].text != `a"b` {
		t.Fatalf("got %q %q", toks[0].text, toks[1].text)
	}
}
