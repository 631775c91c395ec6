package ux

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jorge-barreto/casedoc/internal/change"
	"github.com/jorge-barreto/casedoc/internal/lifecycle"
	"github.com/jorge-barreto/casedoc/internal/template"
)

// RenderUpdateResult prints the propagation buckets of a template update and
// the version it produced.
func RenderUpdateResult(w io.Writer, res lifecycle.UpdateResult, v template.Version) {
	fmt.Fprintf(w, "%sVersion:%s  %s (%s)\n", Bold, Reset, v.Number, v.ChangeType)
	if res.Breaking {
		fmt.Fprintf(w, "%sBreaking:%s %syes%s\n", Bold, Reset, Red, Reset)
	}
	bucket(w, "Updated", Green, res.UpdatedDocuments)
	bucket(w, "Skipped", Yellow, res.SkippedDocuments)
	bucket(w, "Needs review", Red, res.RequiresManualUpdate)
	fmt.Fprintln(w)
}

func bucket(w io.Writer, title, color string, ids []string) {
	fmt.Fprintf(w, "\n%s%s:%s %d\n", Bold, title, Reset, len(ids))
	for _, id := range ids {
		fmt.Fprintf(w, "  %s•%s %s\n", color, Reset, id)
	}
}

// RenderReport prints a change analysis.
func RenderReport(w io.Writer, r change.Report) {
	state := Green + "non-breaking" + Reset
	if r.Breaking() {
		state = Red + "breaking" + Reset
	}
	fmt.Fprintf(w, "%sChange:%s   %s\n", Bold, Reset, state)
	fmt.Fprintf(w, "%sRemoved:%s  %s\n", Bold, Reset, list(r.RemovedVariables))
	fmt.Fprintf(w, "%sAdded:%s    %s\n", Bold, Reset, list(r.AddedVariables))
	fmt.Fprintf(w, "%sSections:%s %d → %d", Bold, Reset, r.OldSections, r.NewSections)
	if r.StructuralChange() {
		fmt.Fprintf(w, " %s(structural)%s", Yellow, Reset)
	}
	fmt.Fprintln(w)
}

// RenderStats prints document counts per template version.
func RenderStats(w io.Writer, t *template.Template, s template.Stats) {
	fmt.Fprintf(w, "%sTemplate:%s  %s (%s)\n", Bold, Reset, t.Name, t.ID)
	fmt.Fprintf(w, "%sCurrent:%s   %s\n", Bold, Reset, t.CurrentVersion)
	fmt.Fprintf(w, "%sDocuments:%s %d\n", Bold, Reset, s.DocumentCount)
	if len(s.VersionUsage) == 0 {
		return
	}
	versions := make([]string, 0, len(s.VersionUsage))
	for v := range s.VersionUsage {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	fmt.Fprintf(w, "\n%sBy version:%s\n", Bold, Reset)
	for _, v := range versions {
		marker := "  "
		if v == t.CurrentVersion {
			marker = fmt.Sprintf("%s→%s ", Yellow, Reset)
		}
		fmt.Fprintf(w, "  %s%-8s %s\n", marker, v, strings.Join(s.VersionUsage[v], ", "))
	}
}

// RenderVars prints each placeholder with its resolved value.
func RenderVars(w io.Writer, names []string, ctx map[string]string) {
	for _, n := range names {
		if v, ok := ctx[n]; ok {
			fmt.Fprintf(w, "  %-24s %s\n", n, v)
			continue
		}
		fmt.Fprintf(w, "  %-24s %s(unresolved)%s\n", n, Dim, Reset)
	}
}

func list(items []string) string {
	if len(items) == 0 {
		return Dim + "(none)" + Reset
	}
	return strings.Join(items, ", ")
}
