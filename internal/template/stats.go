package template

// Stats summarizes how a template is used across a tenant's cases.
type Stats struct {
	DocumentCount int
	VersionUsage  map[string][]string // template version number -> document ids
}

// TemplateStats counts the documents built from templateID, grouped by the
// template version each one references.
func (tn *Tenant) TemplateStats(templateID string) Stats {
	s := Stats{VersionUsage: make(map[string][]string)}
	for _, c := range tn.Cases {
		for _, d := range c.Documents {
			if d.TemplateID != templateID {
				continue
			}
			s.DocumentCount++
			s.VersionUsage[d.TemplateVersion] = append(s.VersionUsage[d.TemplateVersion], d.ID)
		}
	}
	return s
}
