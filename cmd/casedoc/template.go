package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/casedoc/internal/change"
	"github.com/jorge-barreto/casedoc/internal/lifecycle"
	"github.com/jorge-barreto/casedoc/internal/logger"
	"github.com/jorge-barreto/casedoc/internal/template"
	"github.com/jorge-barreto/casedoc/internal/ux"
)

func templateCmd() *cli.Command {
	return &cli.Command{
		Name:  "template",
		Usage: "Manage templates and their versions",
		Commands: []*cli.Command{
			templateUpdateCmd(),
			templateDiffCmd(),
			templateStatsCmd(),
			templateDuplicateCmd(),
		},
	}
}

// loadTemplate resolves the tenant and the template named by the first
// argument.
func loadTemplate(p *project, cmd *cli.Command) (*template.Tenant, *template.Template, error) {
	id := cmd.Args().First()
	if id == "" {
		return nil, nil, fmt.Errorf("template-id argument is required")
	}
	tn, err := p.tenant(cmd)
	if err != nil {
		return nil, nil, err
	}
	tpl, ok := tn.Template(id)
	if !ok {
		return nil, nil, fmt.Errorf("template %q not found in tenant %q", id, tn.ID)
	}
	return &tn, tpl, nil
}

func latestContent(tpl *template.Template) (string, error) {
	latest := tpl.Latest()
	if latest == nil {
		return "", fmt.Errorf("template %q has no versions", tpl.ID)
	}
	return latest.Content, nil
}

func templateUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Publish new template content and propagate it to documents",
		ArgsUsage: "<template-id>",
		Flags: []cli.Flag{
			tenantFlag,
			&cli.StringFlag{Name: "content", Usage: "File holding the new template content", Required: true},
			&cli.StringFlag{Name: "type", Usage: "Change type: major or minor", Value: template.ChangeMinor},
			&cli.StringFlag{Name: "description", Usage: "Change description"},
			&cli.StringSliceFlag{Name: "documents", Usage: "Document ids to propagate to (default: all built from the template)"},
			&cli.BoolFlag{Name: "auto-apply-minor", Usage: "Merge minor edits into documents"},
			&cli.BoolFlag{Name: "force", Usage: "Propagate major or breaking edits without review"},
			&cli.StringFlag{Name: "merge-strategy", Usage: "positional or anchored (default from config)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			changeType := cmd.String("type")
			if changeType != template.ChangeMajor && changeType != template.ChangeMinor {
				return fmt.Errorf("--type must be major or minor, got %q", changeType)
			}
			newContent, err := os.ReadFile(cmd.String("content"))
			if err != nil {
				return fmt.Errorf("reading content: %w", err)
			}

			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			tn, tpl, err := loadTemplate(p, cmd)
			if err != nil {
				return err
			}
			oldContent, err := latestContent(tpl)
			if err != nil {
				return err
			}

			strategyName := cmd.String("merge-strategy")
			if strategyName == "" {
				strategyName = p.cfg.Update.MergeStrategy
			}
			strategy, err := change.ParseStrategy(strategyName)
			if err != nil {
				return err
			}

			var docs []*template.Document
			if ids := cmd.StringSlice("documents"); len(ids) > 0 {
				var rejected []string
				docs, rejected = tn.SelectDocuments(tpl.ID, ids)
				if len(rejected) > 0 {
					return fmt.Errorf("documents not built from template %s: %s", tpl.ID, strings.Join(rejected, ", "))
				}
			} else {
				docs = tn.DocumentsForTemplate(tpl.ID)
			}

			m := &lifecycle.Manager{
				Merger:  change.Merger{Strategy: strategy},
				Log:     logger.Component(p.log, "lifecycle"),
				Metrics: p.metrics,
			}
			ch := lifecycle.Change{
				Type:        changeType,
				OldContent:  oldContent,
				NewContent:  string(newContent),
				Description: cmd.String("description"),
			}
			res := m.HandleTemplateUpdate(tpl, ch, docs, lifecycle.Options{
				AutoApplyMinor: cmd.Bool("auto-apply-minor") || p.cfg.Update.AutoApplyMinor,
				ForceUpdate:    cmd.Bool("force") || p.cfg.Update.Force,
			})
			v := m.Publish(tpl, ch, res.UpdatedDocuments, time.Now())

			for _, d := range docs {
				content, ok := res.Contents[d.ID]
				if !ok {
					continue
				}
				d.Content = content
				d.TemplateVersion = v.Number
			}
			if err := p.store.UpdateTenant(*tn); err != nil {
				return fmt.Errorf("saving tenant: %w", err)
			}

			ux.RenderUpdateResult(os.Stdout, res, v)
			if n := len(res.RequiresManualUpdate); n > 0 {
				ux.Warn(os.Stderr, "%d document(s) need manual review; rerun with --force to propagate", n)
			}
			return nil
		},
	}
}

func templateDiffCmd() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Show whether new content would break existing documents",
		ArgsUsage: "<template-id>",
		Flags: []cli.Flag{
			tenantFlag,
			&cli.StringFlag{Name: "content", Usage: "File holding the new template content", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			newContent, err := os.ReadFile(cmd.String("content"))
			if err != nil {
				return fmt.Errorf("reading content: %w", err)
			}
			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			_, tpl, err := loadTemplate(p, cmd)
			if err != nil {
				return err
			}
			oldContent, err := latestContent(tpl)
			if err != nil {
				return err
			}
			ux.RenderReport(os.Stdout, change.Analyze(oldContent, string(newContent)))
			return nil
		},
	}
}

func templateStatsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show how many documents use each template version",
		ArgsUsage: "<template-id>",
		Flags:     []cli.Flag{tenantFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			tn, tpl, err := loadTemplate(p, cmd)
			if err != nil {
				return err
			}
			ux.RenderStats(os.Stdout, tpl, tn.TemplateStats(tpl.ID))
			return nil
		},
	}
}

func templateDuplicateCmd() *cli.Command {
	return &cli.Command{
		Name:      "duplicate",
		Usage:     "Copy a template's latest content into a new template",
		ArgsUsage: "<template-id>",
		Flags: []cli.Flag{
			tenantFlag,
			&cli.StringFlag{Name: "name", Usage: "Name of the new template", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			tn, tpl, err := loadTemplate(p, cmd)
			if err != nil {
				return err
			}
			dup, err := template.Duplicate(tpl, cmd.String("name"), time.Now().UTC())
			if err != nil {
				return err
			}
			tn.Templates = append(tn.Templates, dup)
			if err := p.store.UpdateTenant(*tn); err != nil {
				return fmt.Errorf("saving tenant: %w", err)
			}
			ux.Done(os.Stdout, "Created template %s (%s) from %s", dup.Name, dup.ID, tpl.Name)
			return nil
		},
	}
}
