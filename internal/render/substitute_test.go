package render

import (
	"reflect"
	"testing"

	"github.com/jorge-barreto/casedoc/internal/template"
)

func TestSubstitute_PartialResolution(t *testing.T) {
	got := Substitute("Hello {{name}}, you are in {{city}}.", map[string]string{"name": "Alice"})
	want := "Hello Alice, you are in {{city}}."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubstitute_NoPlaceholdersIsNoop(t *testing.T) {
	for _, content := range []string{"", "plain text", "<p>{ single }</p>", "{{}}"} {
		if got := Substitute(content, map[string]string{"a": "b"}); got != content {
			t.Errorf("Substitute(%q) = %q", content, got)
		}
	}
}

func TestSubstitute_GlobalAndTrimmed(t *testing.T) {
	got := Substitute("{{name}} / {{ name }} / {{name}}", map[string]string{"name": "Bo"})
	if got != "Bo / Bo / Bo" {
		t.Fatalf("got %q", got)
	}
}

func TestSubstitute_ValuesAreNotRescanned(t *testing.T) {
	ctx := map[string]string{"a": "{{b}}", "b": "oops"}
	got := Substitute("{{a}} {{b}}", ctx)
	if got != "{{b}} oops" {
		t.Fatalf("got %q", got)
	}
}

func TestSubstitute_EmptyValueReplaces(t *testing.T) {
	got := Substitute("[{{middleName}}]", map[string]string{"middleName": ""})
	if got != "[]" {
		t.Fatalf("got %q", got)
	}
}

func TestSubstitute_StableOnceResolved(t *testing.T) {
	ctx := map[string]string{"name": "Alice", "city": "Oslo", "start": "2025-01-01"}
	contents := []string{
		"{{name}} moves to {{city}} on {{start}}",
		"<p>{{ name }}</p><p>{{city}}{{city}}</p>",
	}
	for _, c := range contents {
		once := Substitute(c, ctx)
		if twice := Substitute(once, ctx); twice != once {
			t.Errorf("not stable: %q -> %q -> %q", c, once, twice)
		}
	}
}

func TestBuildContext_Precedence(t *testing.T) {
	system := []template.Variable{
		{Name: "companyName", Value: "Acme Global"},
		{Name: "currency", Value: "USD"},
		{Name: "employeeName"},
	}
	tenant := []template.Variable{
		{Name: "companyName", Value: "Acme Norway"},
		{Name: "hrContact", Value: "hr@acme.no"},
	}
	caseData := map[string]string{
		"hrContact":    "kari@acme.no",
		"employeeName": "Alice",
	}
	got := BuildContext(system, tenant, caseData)
	want := map[string]string{
		"companyName":  "Acme Norway",
		"currency":     "USD",
		"hrContact":    "kari@acme.no",
		"employeeName": "Alice",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnresolved(t *testing.T) {
	got := Unresolved("{{a}} {{b}} {{a}} {{c}}", map[string]string{"b": "x"})
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
