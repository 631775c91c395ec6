// Package template holds the tenant data model: variables, templates and
// their immutable versions, cases and the documents generated from them.
package template

import (
	"time"
)

// Change types for a template edit.
const (
	ChangeMajor = "major"
	ChangeMinor = "minor"
)

// Variable is a substitutable name defined system-wide or per tenant.
// Value is an optional default used when case data has no entry.
type Variable struct {
	ID    string `json:"variableId" yaml:"id"`
	Name  string `json:"variableName" yaml:"name"`
	Label string `json:"variableLabel" yaml:"label"`
	Value string `json:"variableValue,omitempty" yaml:"value,omitempty"`
}

// Version is one immutable snapshot of a template's content.
type Version struct {
	ID                string    `json:"versionId"`
	Number            string    `json:"versionNumber"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"createdAt"`
	CreatedBy         string    `json:"createdBy,omitempty"`
	ChangeType        string    `json:"changeType"`
	ChangeDescription string    `json:"changeDescription"`
	LinkedDocuments   []string  `json:"linkedDocuments,omitempty"`
}

// Template is a tenant-owned document template with its version history.
type Template struct {
	ID             string    `json:"templateId"`
	Name           string    `json:"templateName"`
	PolicyType     string    `json:"policyType"`
	CurrentVersion string    `json:"currentVersion"`
	Versions       []Version `json:"versions"`
	LastModified   time.Time `json:"lastModified"`
}

// Document is an instance generated from a template version. Its content may
// diverge from the template through per-document edits.
type Document struct {
	ID              string    `json:"documentId"`
	Name            string    `json:"documentName"`
	Type            string    `json:"documentType"`
	Version         string    `json:"documentVersion"`
	Content         string    `json:"documentContent"`
	TemplateID      string    `json:"templateId"`
	TemplateVersion string    `json:"templateVersion"`
	CreatedOn       time.Time `json:"documentCreatedOn"`
	Status          string    `json:"documentStatus"`
}

// Case groups the documents and data for one employee case.
type Case struct {
	ID         string            `json:"caseId"`
	EmployeeID string            `json:"employeeId"`
	Name       string            `json:"caseName"`
	Data       map[string]string `json:"caseData"`
	Documents  []Document        `json:"documents"`
}

// Policy lists the documents a policy type requires.
type Policy struct {
	ID                  string   `json:"policyId"`
	Name                string   `json:"policyName"`
	Type                string   `json:"policyType"`
	RequiredDocumentIDs []string `json:"requiredDocumentIds"`
}

// Tenant owns templates, cases and tenant-wide variables.
type Tenant struct {
	ID        string     `json:"tenantId"`
	Name      string     `json:"tenantName"`
	Policies  []Policy   `json:"policies"`
	Templates []Template `json:"templates"`
	Cases     []Case     `json:"cases"`
	Variables []Variable `json:"variables"`
}

// Version returns the version with the given number.
func (t *Template) Version(number string) (*Version, bool) {
	for i := range t.Versions {
		if t.Versions[i].Number == number {
			return &t.Versions[i], true
		}
	}
	return nil, false
}

// Latest returns the last appended version, or nil if there are none.
func (t *Template) Latest() *Version {
	if len(t.Versions) == 0 {
		return nil
	}
	return &t.Versions[len(t.Versions)-1]
}

// Template returns the tenant's template with the given id.
func (tn *Tenant) Template(id string) (*Template, bool) {
	for i := range tn.Templates {
		if tn.Templates[i].ID == id {
			return &tn.Templates[i], true
		}
	}
	return nil, false
}

// Document returns the document with the given id and the case holding it.
func (tn *Tenant) Document(id string) (*Document, *Case, bool) {
	for i := range tn.Cases {
		c := &tn.Cases[i]
		for j := range c.Documents {
			if c.Documents[j].ID == id {
				return &c.Documents[j], c, true
			}
		}
	}
	return nil, nil, false
}

// DocumentsByID returns the tenant's documents whose ids are in ids, in case
// order. Unknown ids are ignored.
func (tn *Tenant) DocumentsByID(ids []string) []*Document {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var docs []*Document
	for i := range tn.Cases {
		for j := range tn.Cases[i].Documents {
			if want[tn.Cases[i].Documents[j].ID] {
				docs = append(docs, &tn.Cases[i].Documents[j])
			}
		}
	}
	return docs
}

// DocumentsForTemplate returns pointers to every document built from the
// template with the given id.
func (tn *Tenant) DocumentsForTemplate(templateID string) []*Document {
	var docs []*Document
	for i := range tn.Cases {
		for j := range tn.Cases[i].Documents {
			if tn.Cases[i].Documents[j].TemplateID == templateID {
				docs = append(docs, &tn.Cases[i].Documents[j])
			}
		}
	}
	return docs
}

// SelectDocuments returns the documents among ids that were built from the
// template with the given id, in case order. Ids that are unknown or belong
// to another template are returned in rejected, in the order given.
func (tn *Tenant) SelectDocuments(templateID string, ids []string) (docs []*Document, rejected []string) {
	linked := make(map[string]bool)
	for _, d := range tn.DocumentsForTemplate(templateID) {
		linked[d.ID] = true
	}
	for _, id := range ids {
		if !linked[id] {
			rejected = append(rejected, id)
		}
	}
	for _, d := range tn.DocumentsByID(ids) {
		if d.TemplateID == templateID {
			docs = append(docs, d)
		}
	}
	return docs, rejected
}
