// Package lifecycle applies a template edit across the documents linked to
// the template and records the new template version.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jorge-barreto/casedoc/internal/change"
	"github.com/jorge-barreto/casedoc/internal/metrics"
	"github.com/jorge-barreto/casedoc/internal/template"
)

// Change is one edit of a template's content.
type Change struct {
	Type        string // template.ChangeMajor or template.ChangeMinor
	OldContent  string
	NewContent  string
	Description string
}

// Options control propagation of an edit into documents.
type Options struct {
	AutoApplyMinor bool
	ForceUpdate    bool
}

// UpdateResult reports where each linked document ended up. Contents holds the
// merged content for every id in UpdatedDocuments. Per-document failures
// do not clear Success.
type UpdateResult struct {
	Success              bool              `json:"success"`
	Breaking             bool              `json:"breaking"`
	UpdatedDocuments     []string          `json:"updatedDocuments"`
	SkippedDocuments     []string          `json:"skippedDocuments"`
	RequiresManualUpdate []string          `json:"requiresManualUpdate"`
	Contents             map[string]string `json:"-"`
}

// Merger rewrites one document for a new template version. Tests can
// substitute a failing one.
type Merger interface {
	Merge(documentContent, oldContent, newContent string) (string, error)
}

// Manager drives template updates.
type Manager struct {
	Merger  Merger // nil means change.Merger{} (positional)
	Log     zerolog.Logger
	Metrics *metrics.Metrics
}

// HandleTemplateUpdate decides, for every linked document, whether the edit
// is applied, skipped or left for manual review. Documents are not modified;
// merged content is returned in UpdateResult.Contents for the caller to persist.
// A failing merge moves only that document to SkippedDocuments.
func (m *Manager) HandleTemplateUpdate(tpl *template.Template, ch Change, docs []*template.Document, opts Options) UpdateResult {
	res := UpdateResult{
		Success:              true,
		UpdatedDocuments:     []string{},
		SkippedDocuments:     []string{},
		RequiresManualUpdate: []string{},
		Contents:             make(map[string]string),
	}
	log := m.Log.With().Str("template", tpl.ID).Str("change_type", ch.Type).Logger()

	report := change.Analyze(ch.OldContent, ch.NewContent)
	res.Breaking = report.Breaking()
	if res.Breaking {
		m.Metrics.BreakingChange()
		log.Info().
			Strs("removed_variables", report.RemovedVariables).
			Int("old_sections", report.OldSections).
			Int("new_sections", report.NewSections).
			Msg("breaking template change detected")
	}

	switch {
	case (ch.Type == template.ChangeMajor || res.Breaking) && !opts.ForceUpdate:
		for _, d := range docs {
			res.RequiresManualUpdate = append(res.RequiresManualUpdate, d.ID)
		}
	case ch.Type == template.ChangeMinor && opts.AutoApplyMinor:
		for _, d := range docs {
			content, err := m.merge(d, ch)
			if err != nil {
				log.Error().Err(err).Str("document", d.ID).Msg("failed to update document")
				res.SkippedDocuments = append(res.SkippedDocuments, d.ID)
				continue
			}
			res.UpdatedDocuments = append(res.UpdatedDocuments, d.ID)
			res.Contents[d.ID] = content
		}
	default:
		for _, d := range docs {
			res.SkippedDocuments = append(res.SkippedDocuments, d.ID)
		}
	}

	m.Metrics.DocumentOutcome(metrics.OutcomeUpdated, len(res.UpdatedDocuments))
	m.Metrics.DocumentOutcome(metrics.OutcomeSkipped, len(res.SkippedDocuments))
	m.Metrics.DocumentOutcome(metrics.OutcomeManualReview, len(res.RequiresManualUpdate))
	log.Debug().
		Int("updated", len(res.UpdatedDocuments)).
		Int("skipped", len(res.SkippedDocuments)).
		Int("manual", len(res.RequiresManualUpdate)).
		Msg("template update handled")
	return res
}

// merge runs the merger for one document, turning a panic into an error so
// one bad document cannot abort the batch.
func (m *Manager) merge(d *template.Document, ch Change) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("merging document %s: panic: %v", d.ID, r)
		}
	}()
	merger := m.Merger
	if merger == nil {
		merger = change.Merger{}
	}
	return merger.Merge(d.Content, ch.OldContent, ch.NewContent)
}

// Publish appends the edited content as a new template version. It runs
// for every edit, whatever happened to the linked documents.
func (m *Manager) Publish(tpl *template.Template, ch Change, linked []string, now time.Time) template.Version {
	v := tpl.AppendVersion(ch.NewContent, ch.Type, ch.Description, linked, now.UTC())
	m.Metrics.VersionCreated(ch.Type)
	m.Log.Info().
		Str("template", tpl.ID).
		Str("version", v.Number).
		Str("change_type", ch.Type).
		Msg("template version created")
	return v
}
