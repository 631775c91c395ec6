package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/casedoc/internal/config"
	"github.com/jorge-barreto/casedoc/internal/ux"
)

var configTemplate = `name: my-letters
data: .casedoc/data.json
tenant: acme
log-level: info

update:
  auto-apply-minor: false
  force: false
  merge-strategy: positional

system-vars:
  - name: today
    label: Today's date
    value: "2024-01-01"
`

var dataTemplate = `{
  "systemVariables": [
    {"variableId": "sys-company-country", "variableName": "country", "variableLabel": "Country", "variableValue": "Norway"}
  ],
  "tenants": [
    {
      "tenantId": "acme",
      "tenantName": "Acme Corp",
      "policies": [
        {"policyId": "pol-hiring", "policyName": "Hiring", "policyType": "hiring", "requiredDocumentIds": ["tpl-offer"]}
      ],
      "variables": [
        {"variableId": "var-company", "variableName": "company", "variableLabel": "Company", "variableValue": "Acme Corp"},
        {"variableId": "var-signatory", "variableName": "signatory", "variableLabel": "Signatory", "variableValue": ""}
      ],
      "templates": [
        {
          "templateId": "tpl-offer",
          "templateName": "Offer letter",
          "policyType": "hiring",
          "currentVersion": "v1.0",
          "lastModified": "2024-01-01T00:00:00Z",
          "versions": [
            {
              "versionId": "00000000-0000-0000-0000-000000000001",
              "versionNumber": "v1.0",
              "content": "<p>Dear {{name}},</p>\n\n<p>{{company}} is pleased to offer you the role of {{role}} in {{country}}.</p>\n\n<div data-condition-expression=\"relocation == true\"><p>We will cover your relocation to {{city}}.</p></div>\n\n<p>Regards, {{signatory}}</p>",
              "createdAt": "2024-01-01T00:00:00Z",
              "changeType": "major",
              "changeDescription": "Initial version",
              "linkedDocuments": ["doc-offer-alice"]
            }
          ]
        }
      ],
      "cases": [
        {
          "caseId": "case-alice",
          "employeeId": "emp-001",
          "caseName": "Alice hiring",
          "caseData": {"name": "Alice", "role": "Engineer", "relocation": "false"},
          "documents": [
            {
              "documentId": "doc-offer-alice",
              "documentName": "Offer letter - Alice",
              "documentType": "offer",
              "documentVersion": "v1.0",
              "documentContent": "<p>Dear {{name}},</p>\n\n<p>{{company}} is pleased to offer you the role of {{role}} in {{country}}.</p>\n\n<div data-condition-expression=\"relocation == true\"><p>We will cover your relocation to {{city}}.</p></div>\n\n<p>Regards, {{signatory}}</p>",
              "templateId": "tpl-offer",
              "templateVersion": "v1.0",
              "documentCreatedOn": "2024-01-02T00:00:00Z",
              "documentStatus": "draft"
            }
          ]
        }
      ]
    }
  ]
}
`

// Init creates a new .casedoc/ directory with an example config and data file.
func Init(targetDir string, out io.Writer) error {
	dir := filepath.Join(targetDir, config.Dir)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s directory already exists in %s", config.Dir, targetDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", config.Dir, err)
	}

	if err := os.WriteFile(config.Path(targetDir), []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(dataTemplate), 0644); err != nil {
		return fmt.Errorf("writing data.json: %w", err)
	}

	fmt.Fprintf(out, "\n%s%s✓ Initialized %s/ directory%s\n\n", ux.Bold, ux.Green, config.Dir, ux.Reset)
	fmt.Fprintf(out, "  Created:\n")
	fmt.Fprintf(out, "    %s.casedoc/config.yaml%s  project configuration\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "    %s.casedoc/data.json%s    sample tenant, template and case\n\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "  Next steps:\n")
	fmt.Fprintf(out, "    1. Run %scasedoc render doc-offer-alice%s\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "    2. Run %scasedoc docs%s to learn the placeholder and condition syntax\n\n", ux.Cyan, ux.Reset)

	return nil
}
