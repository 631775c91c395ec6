package change

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jorge-barreto/casedoc/internal/placeholder"
	"github.com/jorge-barreto/casedoc/internal/template"
)

var (
	// ErrSegmentMismatch means the document no longer has the segment layout
	// of the template version it was built from.
	ErrSegmentMismatch = errors.New("document segments do not line up with the old template")
	// ErrUnanchoredCustomization means a document edit has no place to go in
	// the new template.
	ErrUnanchoredCustomization = errors.New("customization has no anchor in the new template")
)

// Strategy selects how customizations are carried into the new template.
type Strategy int

const (
	// StrategyPositional aligns segments by index and replaces every
	// occurrence of each customized segment's original text in the new
	// template. Duplicate segment text is replaced everywhere, and a document
	// whose segment count drifted from the template can misalign. Text added
	// where the old template had an empty segment is not prepended to the
	// result; the merge fails with ErrUnanchoredCustomization.
	StrategyPositional Strategy = iota
	// StrategyAnchored replaces only the matching occurrence of a customized
	// segment and refuses documents whose segment layout drifted.
	StrategyAnchored
)

func (s Strategy) String() string {
	if s == StrategyAnchored {
		return "anchored"
	}
	return "positional"
}

// ParseStrategy maps a config name to a Strategy. Empty means positional.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "positional":
		return StrategyPositional, nil
	case "anchored":
		return StrategyAnchored, nil
	}
	return StrategyPositional, fmt.Errorf("unknown merge strategy %q (must be positional or anchored)", name)
}

// customization is a document segment that differs from the template
// segment at the same index.
type customization struct {
	index    int
	original string
	custom   string
}

// diffSegments lists per-index differences. A document with fewer segments
// than the template is treated as having deleted the missing ones.
func diffSegments(oldSegs, docSegs []string) []customization {
	var out []customization
	for i, seg := range oldSegs {
		doc := ""
		if i < len(docSegs) {
			doc = docSegs[i]
		}
		if seg != doc {
			out = append(out, customization{index: i, original: seg, custom: doc})
		}
	}
	return out
}

// Merger carries document customizations over to a new template version.
type Merger struct {
	Strategy Strategy
}

// Merge returns newContent with the edits the document made to oldContent
// reapplied.
func (m Merger) Merge(documentContent, oldContent, newContent string) (string, error) {
	oldSegs := placeholder.Split(oldContent)
	docSegs := placeholder.Split(documentContent)
	if m.Strategy == StrategyAnchored {
		return mergeAnchored(oldSegs, docSegs, placeholder.Split(newContent))
	}
	return mergePositional(oldSegs, docSegs, newContent)
}

func mergePositional(oldSegs, docSegs []string, newContent string) (string, error) {
	// Keyed by original text; a later difference for the same text wins.
	var keys []string
	custom := make(map[string]string)
	for _, c := range diffSegments(oldSegs, docSegs) {
		if c.original == "" {
			return "", fmt.Errorf("%w: text %q was added where the template had an empty segment", ErrUnanchoredCustomization, c.custom)
		}
		if _, seen := custom[c.original]; !seen {
			keys = append(keys, c.original)
		}
		custom[c.original] = c.custom
	}
	if len(keys) == 0 {
		return newContent, nil
	}
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, custom[k])
	}
	return strings.NewReplacer(pairs...).Replace(newContent), nil
}

func mergeAnchored(oldSegs, docSegs, newSegs []string) (string, error) {
	if len(oldSegs) != len(docSegs) {
		return "", fmt.Errorf("%w: template has %d segments, document has %d", ErrSegmentMismatch, len(oldSegs), len(docSegs))
	}
	out := append([]string(nil), newSegs...)
	for _, c := range diffSegments(oldSegs, docSegs) {
		ordinal := occurrence(oldSegs, c.index)
		target := nthIndex(newSegs, c.original, ordinal, c.index%2)
		if target < 0 {
			return "", fmt.Errorf("%w: segment %d (%q)", ErrUnanchoredCustomization, c.index, c.original)
		}
		out[target] = c.custom
	}
	return strings.Join(out, ""), nil
}

// occurrence returns how many segments before idx have the same text and
// parity (literal or placeholder) as segs[idx].
func occurrence(segs []string, idx int) int {
	n := 0
	for i := idx % 2; i < idx; i += 2 {
		if segs[i] == segs[idx] {
			n++
		}
	}
	return n
}

// nthIndex finds the index of the nth segment equal to text among segments
// of the given parity.
func nthIndex(segs []string, text string, n, parity int) int {
	for i := parity; i < len(segs); i += 2 {
		if segs[i] != text {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return -1
}

// ApplyTemplateUpdate merges with the positional strategy.
func ApplyTemplateUpdate(doc *template.Document, oldContent, newContent string) (string, error) {
	return Merger{}.Merge(doc.Content, oldContent, newContent)
}
