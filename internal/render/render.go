package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jorge-barreto/casedoc/internal/metrics"
)

// Renderer turns stored document content into its displayed form.
type Renderer struct {
	Resolver *Resolver
	Metrics  *metrics.Metrics
	Mode     Mode
	// SkipVisibility renders placeholders only, leaving conditional markup
	// untouched.
	SkipVisibility bool
}

// Render substitutes placeholders from ctx, then applies conditional
// visibility. It is safe to call on every edit or context change; each call
// starts from content and ctx alone.
//
// When the content carries conditional markup it is parsed as HTML, and
// substituted values are escaped first so case data is never read as markup.
// Conditions still see the raw values.
func (r *Renderer) Render(content string, ctx map[string]string) (string, error) {
	if r.SkipVisibility || !strings.Contains(content, ConditionAttr) {
		out, replaced, unresolved := substitute(content, ctx)
		r.Metrics.Substituted(replaced, unresolved)
		return out, nil
	}
	out, replaced, unresolved := substitute(content, escapeValues(ctx))
	r.Metrics.Substituted(replaced, unresolved)
	doc, err := ParseHTML(out)
	if err != nil {
		return "", err
	}
	doc.Apply(r.resolver().Resolve(doc.Fragments, ctx), r.Mode)
	return doc.String()
}

func (r *Renderer) resolver() *Resolver {
	if r.Resolver == nil {
		return &Resolver{Metrics: r.Metrics}
	}
	return r.Resolver
}

func escapeValues(ctx map[string]string) map[string]string {
	escaped := make(map[string]string, len(ctx))
	for k, v := range ctx {
		escaped[k] = html.EscapeString(v)
	}
	return escaped
}
