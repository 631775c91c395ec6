// Package placeholder finds {{variable}} tokens in document content.
package placeholder

import (
	"iter"
	"regexp"
	"strings"
)

// Pattern matches a placeholder: two opening braces, one or more characters
// other than '}', two closing braces.
var Pattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Placeholder is one occurrence of {{name}} in content.
type Placeholder struct {
	Name  string // interior text with surrounding whitespace trimmed
	Raw   string // the full matched text, braces included
	Start int    // byte offset of the first '{'
	End   int    // byte offset just past the last '}'
}

// All yields every non-overlapping placeholder in content, in order.
// Each call scans afresh; the sequence can be ranged over more than once.
func All(content string) iter.Seq[Placeholder] {
	return func(yield func(Placeholder) bool) {
		rest := content
		offset := 0
		for {
			loc := Pattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			p := Placeholder{
				Name:  strings.TrimSpace(rest[loc[2]:loc[3]]),
				Raw:   rest[loc[0]:loc[1]],
				Start: offset + loc[0],
				End:   offset + loc[1],
			}
			if !yield(p) {
				return
			}
			rest = rest[loc[1]:]
			offset += loc[1]
		}
	}
}

// Find returns every placeholder in content.
func Find(content string) []Placeholder {
	var out []Placeholder
	for p := range All(content) {
		out = append(out, p)
	}
	return out
}

// Names returns the distinct placeholder names in order of first appearance.
func Names(content string) []string {
	seen := make(map[string]bool)
	var names []string
	for p := range All(content) {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}

// NameSet returns the placeholder names in content as a set.
func NameSet(content string) map[string]bool {
	set := make(map[string]bool)
	for p := range All(content) {
		set[p.Name] = true
	}
	return set
}

// Split cuts content into alternating literal and placeholder segments.
// The result always has odd length: literals sit at even indexes (possibly
// empty) and raw placeholder text at odd indexes.
func Split(content string) []string {
	segments := make([]string, 0, 8)
	last := 0
	for p := range All(content) {
		segments = append(segments, content[last:p.Start], p.Raw)
		last = p.End
	}
	return append(segments, content[last:])
}
