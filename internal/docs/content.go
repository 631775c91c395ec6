package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with casedoc",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "placeholders",
		Title:   "Placeholders and Variables",
		Summary: "{{name}} syntax and system, tenant, and case variable precedence",
		Content: topicPlaceholders,
	},
	{
		Name:    "conditions",
		Title:   "Conditional Content",
		Summary: "Condition expressions on spans and blocks",
		Content: topicConditions,
	},
	{
		Name:    "versioning",
		Title:   "Template Versions",
		Summary: "Major and minor edits, breaking changes, and document updates",
		Content: topicVersioning,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    casedoc init

   This creates .casedoc/config.yaml and a sample .casedoc/data.json
   with one tenant, one template, and one case.

2. Render the sample document:

    casedoc render doc-offer-alice

   Placeholders are filled from case data, then tenant variables, then
   system variables. Conditional sections that evaluate false are marked
   with the conditional-hidden class.

3. See which variables a document uses and how they resolve:

    casedoc vars doc-offer-alice

4. Edit the template and propagate the edit:

    casedoc template diff tpl-offer --content new.html
    casedoc template update tpl-offer --content new.html --type minor \
        --description "Fix greeting" --auto-apply-minor

Run 'casedoc docs <topic>' for details on each area.
`

const topicConfig = `Configuration Reference
=======================

casedoc reads .casedoc/config.yaml from the nearest ancestor directory
that has one.

    name: hr-letters              # required
    data: .casedoc/data.json      # tenant data file (default shown)
    tenant: acme                  # tenant used when --tenant is not given
    log-level: info               # debug, info, warn, error, disabled
    log-pretty: false             # human-readable logs instead of JSON
    metrics-file: ""              # write Prometheus counters here on exit
    watch-debounce-ms: 200        # quiet period before 'watch' re-renders

    update:
      auto-apply-minor: false     # merge minor edits into documents
      force: false                # propagate major/breaking edits too
      merge-strategy: positional  # positional or anchored

    system-vars:                  # shared by every tenant
      - name: today
        label: Today's date
        value: "2024-01-01"

Relative paths are resolved against the project root. Variable names may
contain letters, digits, '_', '$' and '.', and must not start with a digit.
`

const topicPlaceholders = `Placeholders and Variables
==========================

A placeholder is {{name}}: double braces around a name with no '}' in
it. Whitespace inside the braces is ignored, so {{ name }} and {{name}}
are the same placeholder.

Values come from three places. The first one that has a value wins:

  1. case data          (caseData in data.json)
  2. tenant variables   (a variable with an empty value is ignored)
  3. system variables   (config system-vars and data.json systemVariables)

Substitution is a single pass over the content. A placeholder with no
value is left exactly as written, and a substituted value is never
scanned again, so a value containing {{x}} is inserted literally.
`

const topicConditions = `Conditional Content
===================

Any HTML element can carry a condition:

    <div data-condition-expression="case.status == 'approved'">...</div>
    <span data-condition-expression="bonus > 0">with a bonus</span>

Expressions support:

    literals      numbers, 'single' or "double" quoted strings,
                  true, false, null
    variables     any context name, dots included (case.status is one name)
    operators     ! - * / % + < <= > >= == != && ||
                  and, or, not as word forms
    grouping      ( ... )

Truthiness: false, 0, the empty string and null are false. Every other
value is true, including the string "false"; compare explicitly with
flag == true when a variable holds a boolean.

An expression that fails to parse or evaluate, including one that uses
an unknown variable, shows its content. Failures are logged at warn
level so they can be fixed.

A hidden element also hides everything inside it. 'render' marks
hidden elements with class="conditional-hidden" and keeps them in the
output; 'render --export' removes them.

Try an expression against values with:

    casedoc eval "salary >= 50000 && role != 'intern'" --var salary=60000 --var role=engineer
`

const topicVersioning = `Template Versions
=================

Every template edit appends a new immutable version. Version numbers are
vMAJOR.MINOR: a major edit goes from v2.3 to v3.0, a minor one to v2.4.
A version string that cannot be parsed restarts at v1.0.

An edit is breaking when it removes a placeholder the old content used,
or when the number of blank-line separated sections changes by more than
two. Adding placeholders is not breaking.

What happens to documents built from the template:

  major or breaking, no --force   every document needs review
  minor with --auto-apply-minor   each document is merged; failures skip
  anything else                   every document is skipped

The version is recorded in all three cases.

Merging keeps a document's own edits. With the positional strategy the
text between placeholders is compared with the old template, and each
changed piece replaces every occurrence of the original piece in the new
template. The anchored strategy replaces only the matching occurrence
and refuses documents whose layout no longer matches the old template.
A document that cannot be merged is skipped and left unchanged.
`
