// Package doctor checks a tenant's templates and documents for problems
// that would otherwise only show up at render or update time.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jorge-barreto/casedoc/internal/expr"
	"github.com/jorge-barreto/casedoc/internal/render"
	"github.com/jorge-barreto/casedoc/internal/template"
	"github.com/jorge-barreto/casedoc/internal/ux"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Finding is one problem with a template or document.
type Finding struct {
	Severity Severity
	Subject  string // "template tpl-offer" or "document doc-1"
	Message  string
}

// Check inspects every template and document of tn. system holds the
// system variables used to build render contexts.
func Check(tn *template.Tenant, system []template.Variable) []Finding {
	var out []Finding
	add := func(sev Severity, subject, format string, args ...any) {
		out = append(out, Finding{Severity: sev, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	for i := range tn.Templates {
		t := &tn.Templates[i]
		subject := "template " + t.ID
		if len(t.Versions) == 0 {
			add(Error, subject, "has no versions")
			continue
		}
		if _, ok := t.Version(t.CurrentVersion); !ok {
			add(Error, subject, "current version %q is not in its version history", t.CurrentVersion)
		}
		if _, _, ok := template.ParseVersion(t.CurrentVersion); !ok {
			add(Warning, subject, "current version %q is not vMAJOR.MINOR; the next edit restarts at %s", t.CurrentVersion, template.InitialVersion)
		}
	}

	for i := range tn.Cases {
		c := &tn.Cases[i]
		ctx := render.BuildContext(system, tn.Variables, c.Data)
		for j := range c.Documents {
			d := &c.Documents[j]
			subject := "document " + d.ID
			out = append(out, checkDocument(tn, d, subject, ctx)...)
		}
	}
	return out
}

func checkDocument(tn *template.Tenant, d *template.Document, subject string, ctx map[string]string) []Finding {
	var out []Finding
	add := func(sev Severity, format string, args ...any) {
		out = append(out, Finding{Severity: sev, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	if d.TemplateID != "" {
		t, ok := tn.Template(d.TemplateID)
		switch {
		case !ok:
			add(Error, "template %q does not exist", d.TemplateID)
		case d.TemplateVersion == "":
		case d.TemplateVersion != t.CurrentVersion:
			if _, found := t.Version(d.TemplateVersion); !found {
				add(Error, "template version %s does not exist", d.TemplateVersion)
			} else {
				add(Warning, "built from %s, template is at %s", d.TemplateVersion, t.CurrentVersion)
			}
		}
	}

	if missing := render.Unresolved(d.Content, ctx); len(missing) > 0 {
		add(Warning, "unresolved placeholders: %s", strings.Join(missing, ", "))
	}

	if !strings.Contains(d.Content, render.ConditionAttr) {
		return out
	}
	doc, err := render.ParseHTML(d.Content)
	if err != nil {
		add(Error, "content is not parseable HTML: %v", err)
		return out
	}
	walk(doc.Fragments, func(f *render.Fragment) {
		if f.Condition == nil || strings.TrimSpace(*f.Condition) == "" {
			return
		}
		_, err := expr.Eval(*f.Condition, ctx)
		var syn *expr.SyntaxError
		switch {
		case err == nil:
		case errors.As(err, &syn):
			add(Error, "condition %q: %v", *f.Condition, err)
		default:
			add(Warning, "condition %q: %v; the %s will always show", *f.Condition, err, f.Kind)
		}
	})
	return out
}

func walk(fragments []*render.Fragment, fn func(*render.Fragment)) {
	for _, f := range fragments {
		fn(f)
		walk(f.Children, fn)
	}
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == Error {
			return true
		}
	}
	return false
}

// Print writes findings for tenantID, or a success line when there are none.
func Print(w io.Writer, tenantID string, findings []Finding) {
	fmt.Fprintf(w, "\n%s%s══ Doctor: tenant %s ══%s\n\n", ux.Bold, ux.Cyan, tenantID, ux.Reset)
	if len(findings) == 0 {
		fmt.Fprintf(w, "  %s✓ no problems found%s\n\n", ux.Green, ux.Reset)
		return
	}
	for _, f := range findings {
		color, mark := ux.Yellow, "⚠"
		if f.Severity == Error {
			color, mark = ux.Red, "✗"
		}
		fmt.Fprintf(w, "  %s%s %s%s  %s\n", color, mark, f.Subject, ux.Reset, f.Message)
	}
	fmt.Fprintln(w)
}
