// Package change classifies template edits and carries document
// customizations over to a new template version.
package change

import (
	"strings"

	"github.com/jorge-barreto/casedoc/internal/placeholder"
)

// SectionDeltaThreshold is the largest difference in blank-line separated
// section counts that still counts as a non-structural edit.
const SectionDeltaThreshold = 2

// Report describes how a template edit affects existing documents.
type Report struct {
	RemovedVariables []string
	AddedVariables   []string
	OldSections      int
	NewSections      int
}

// SectionDelta is the absolute difference in section counts.
func (r Report) SectionDelta() int {
	d := r.OldSections - r.NewSections
	if d < 0 {
		return -d
	}
	return d
}

// StructuralChange is a coarse heuristic: more than SectionDeltaThreshold
// sections were added or removed. It does not look at what the sections say.
func (r Report) StructuralChange() bool {
	return r.SectionDelta() > SectionDeltaThreshold
}

// Breaking reports whether the edit removes a variable or changes the
// section structure beyond the threshold.
func (r Report) Breaking() bool {
	return len(r.RemovedVariables) > 0 || r.StructuralChange()
}

// Analyze compares two template contents.
func Analyze(oldContent, newContent string) Report {
	oldNames := placeholder.Names(oldContent)
	newNames := placeholder.Names(newContent)
	oldSet := placeholder.NameSet(oldContent)
	newSet := placeholder.NameSet(newContent)

	r := Report{
		OldSections: CountSections(oldContent),
		NewSections: CountSections(newContent),
	}
	for _, n := range oldNames {
		if !newSet[n] {
			r.RemovedVariables = append(r.RemovedVariables, n)
		}
	}
	for _, n := range newNames {
		if !oldSet[n] {
			r.AddedVariables = append(r.AddedVariables, n)
		}
	}
	return r
}

// DetectBreakingChanges reports whether moving from oldContent to newContent
// could break documents built from the old version.
func DetectBreakingChanges(oldContent, newContent string) bool {
	return Analyze(oldContent, newContent).Breaking()
}

// CountSections counts paragraph-like segments separated by a blank line.
func CountSections(content string) int {
	return len(strings.Split(content, "\n\n"))
}
