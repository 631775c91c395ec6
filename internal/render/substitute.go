// Package render produces the displayed form of a document: placeholder
// substitution and conditional visibility of spans and blocks.
package render

import (
	"strings"

	"github.com/jorge-barreto/casedoc/internal/placeholder"
	"github.com/jorge-barreto/casedoc/internal/template"
)

// BuildContext merges variable values for one render. Case data wins over
// tenant variables, which win over system variables. Variables without a
// default value only contribute through case data.
func BuildContext(system, tenant []template.Variable, caseData map[string]string) map[string]string {
	ctx := make(map[string]string, len(system)+len(tenant)+len(caseData))
	for _, layer := range [][]template.Variable{system, tenant} {
		for _, v := range layer {
			if v.Name != "" && v.Value != "" {
				ctx[v.Name] = v.Value
			}
		}
	}
	for k, v := range caseData {
		ctx[k] = v
	}
	return ctx
}

// Substitute replaces every {{name}} whose name has a value in ctx. Unknown
// placeholders are kept verbatim. Output is built in one pass, so substituted
// values are never rescanned for placeholders.
func Substitute(content string, ctx map[string]string) string {
	out, _, _ := substitute(content, ctx)
	return out
}

func substitute(content string, ctx map[string]string) (string, int, int) {
	var b strings.Builder
	replaced, unresolved := 0, 0
	last := 0
	for p := range placeholder.All(content) {
		b.WriteString(content[last:p.Start])
		if v, ok := ctx[p.Name]; ok {
			b.WriteString(v)
			replaced++
		} else {
			b.WriteString(p.Raw)
			unresolved++
		}
		last = p.End
	}
	if last == 0 {
		return content, 0, unresolved
	}
	b.WriteString(content[last:])
	return b.String(), replaced, unresolved
}

// Unresolved returns the distinct placeholder names in content that have no
// value in ctx, in order of first appearance.
func Unresolved(content string, ctx map[string]string) []string {
	var missing []string
	for _, name := range placeholder.Names(content) {
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
