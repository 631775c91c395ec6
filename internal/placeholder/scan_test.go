package placeholder

import (
	"reflect"
	"testing"
)

func TestFind_Offsets(t *testing.T) {
	content := "Hello {{name}}, you are in {{ city }}."
	got := Find(content)
	if len(got) != 2 {
		t.Fatalf("found %d placeholders, want 2", len(got))
	}
	if got[0].Name != "name" || got[0].Raw != "{{name}}" {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Name != "city" || got[1].Raw != "{{ city }}" {
		t.Fatalf("second = %+v", got[1])
	}
	for _, p := range got {
		if content[p.Start:p.End] != p.Raw {
			t.Fatalf("offsets [%d:%d] = %q, want %q", p.Start, p.End, content[p.Start:p.End], p.Raw)
		}
	}
}

func TestFind_EdgeCases(t *testing.T) {
	cases := []struct {
		content string
		want    []string
	}{
		{"", nil},
		{"no placeholders", nil},
		{"{{}}", nil},
		{"{{a}}{{b}}", []string{"a", "b"}},
		{"{{{a}}}", []string{"{a"}},
		{"{{a}b}}", nil},
		{"{{ first name }}", []string{"first name"}},
		{"{{a}} and {{a}}", []string{"a", "a"}},
		{"{{ unclosed", nil},
	}
	for _, c := range cases {
		var names []string
		for _, p := range Find(c.content) {
			names = append(names, p.Name)
		}
		if !reflect.DeepEqual(names, c.want) {
			t.Errorf("Find(%q) names = %v, want %v", c.content, names, c.want)
		}
	}
}

func TestAll_Restartable(t *testing.T) {
	seq := All("{{a}} {{b}} {{c}}")
	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	again := 0
	for range seq {
		again++
	}
	if count != 2 || again != 3 {
		t.Fatalf("count=%d again=%d", count, again)
	}
}

func TestNames_Distinct(t *testing.T) {
	got := Names("{{b}} {{a}} {{ b }} {{c}}")
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	set := NameSet("{{b}} {{a}}")
	if !set["a"] || !set["b"] || len(set) != 2 {
		t.Fatalf("set = %v", set)
	}
}

func TestSplit(t *testing.T) {
	cases := []struct {
		content string
		want    []string
	}{
		{"", []string{""}},
		{"plain", []string{"plain"}},
		{"{{a}}", []string{"", "{{a}}", ""}},
		{"Dear {{name}}, welcome to {{city}}.", []string{"Dear ", "{{name}}", ", welcome to ", "{{city}}", "."}},
		{"{{a}}{{b}}", []string{"", "{{a}}", "", "{{b}}", ""}},
	}
	for _, c := range cases {
		got := Split(c.content)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Split(%q) = %q, want %q", c.content, got, c.want)
		}
		if len(got)%2 != 1 {
			t.Errorf("Split(%q) has even length %d", c.content, len(got))
		}
	}
}
