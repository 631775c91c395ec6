package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/casedoc/internal/config"
	"github.com/jorge-barreto/casedoc/internal/docs"
	"github.com/jorge-barreto/casedoc/internal/doctor"
	"github.com/jorge-barreto/casedoc/internal/expr"
	"github.com/jorge-barreto/casedoc/internal/logger"
	"github.com/jorge-barreto/casedoc/internal/placeholder"
	"github.com/jorge-barreto/casedoc/internal/scaffold"
	"github.com/jorge-barreto/casedoc/internal/store"
	"github.com/jorge-barreto/casedoc/internal/ux"
	"github.com/jorge-barreto/casedoc/internal/watch"
)

func main() {
	app := &cli.Command{
		Name:        "casedoc",
		Usage:       "Render and version tenant document templates",
		Description: "Run 'casedoc docs' for documentation on placeholders, conditions, versioning, and config.",
		Commands: []*cli.Command{
			initCmd(),
			renderCmd(),
			varsCmd(),
			evalCmd(),
			templateCmd(),
			watchCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .casedoc/ directory with example config and data",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, os.Stdout)
		},
	}
}

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a document with placeholders filled and conditions applied",
		ArgsUsage: "<document-id>",
		Flags: []cli.Flag{
			tenantFlag,
			&cli.BoolFlag{Name: "export", Usage: "Remove hidden sections instead of marking them"},
			&cli.BoolFlag{Name: "raw", Usage: "Substitute placeholders only, ignore conditions"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("document-id argument is required")
			}
			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			out, err := renderDocument(p, cmd, id)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func renderDocument(p *project, cmd *cli.Command, id string) (string, error) {
	tn, err := p.tenant(cmd)
	if err != nil {
		return "", err
	}
	doc, vars, err := p.document(&tn, id)
	if err != nil {
		return "", err
	}
	out, err := p.renderer(cmd.Bool("export"), cmd.Bool("raw")).Render(doc.Content, vars)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", id, err)
	}
	return out, nil
}

func varsCmd() *cli.Command {
	return &cli.Command{
		Name:      "vars",
		Usage:     "List the placeholders of a document and their values",
		ArgsUsage: "<document-id>",
		Flags:     []cli.Flag{tenantFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("document-id argument is required")
			}
			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			tn, err := p.tenant(cmd)
			if err != nil {
				return err
			}
			doc, vars, err := p.document(&tn, id)
			if err != nil {
				return err
			}
			ux.RenderVars(os.Stdout, placeholder.Names(doc.Content), vars)
			return nil
		},
	}
}

func evalCmd() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Evaluate a condition expression",
		ArgsUsage: "<expression>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "var", Usage: "Context value as name=value (repeatable)"},
			&cli.BoolFlag{Name: "strict", Usage: "Report errors instead of failing open"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("expression argument is required")
			}
			expression := strings.Join(cmd.Args().Slice(), " ")
			vars := make(map[string]string)
			for _, kv := range cmd.StringSlice("var") {
				name, value, ok := strings.Cut(kv, "=")
				if !ok || strings.TrimSpace(name) == "" {
					return fmt.Errorf("--var %q: expected name=value", kv)
				}
				vars[strings.TrimSpace(name)] = value
			}

			if cmd.Bool("strict") {
				v, err := expr.Eval(expression, vars)
				if err != nil {
					return err
				}
				fmt.Printf("%s %s(%t)%s\n", v, ux.Dim, v.Truthy(), ux.Reset)
				return nil
			}
			ev := &expr.Evaluator{Log: logger.New(logger.Config{Level: "warn", Pretty: true})}
			fmt.Println(ev.Evaluate(expression, vars))
			return nil
		},
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-render a document whenever the data or config file changes",
		ArgsUsage: "<document-id>",
		Flags: []cli.Flag{
			tenantFlag,
			&cli.BoolFlag{Name: "export", Usage: "Remove hidden sections instead of marking them"},
			&cli.BoolFlag{Name: "raw", Usage: "Substitute placeholders only, ignore conditions"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("document-id argument is required")
			}
			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			out, err := renderDocument(p, cmd, id)
			if err != nil {
				return err
			}
			fmt.Println(out)

			debounce := time.Duration(p.cfg.WatchDebounceMS) * time.Millisecond
			w, err := watch.New([]string{p.cfg.Data, config.Path(p.root)}, debounce, logger.Component(p.log, "watch"))
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Run(ctx, func(ctx context.Context, path string) error {
				// Reload config as well as data; either may have changed.
				cfg, err := config.Load(config.Path(p.root), p.root)
				if err != nil {
					return fmt.Errorf("reloading config: %w", err)
				}
				st, err := store.Open(cfg.Data)
				if err != nil {
					return fmt.Errorf("reloading data: %w", err)
				}
				p.cfg, p.store = cfg, st
				out, err := renderDocument(p, cmd, id)
				if err != nil {
					return err
				}
				ux.Rerendered(os.Stderr, path)
				fmt.Println(out)
				return nil
			})
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check templates and documents for problems",
		Flags: []cli.Flag{tenantFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := openProject()
			if err != nil {
				return err
			}
			defer p.close()

			tn, err := p.tenant(cmd)
			if err != nil {
				return err
			}
			findings := doctor.Check(&tn, p.systemVars())
			doctor.Print(os.Stdout, tn.ID, findings)
			if doctor.HasErrors(findings) {
				return fmt.Errorf("tenant %s has errors", tn.ID)
			}
			return nil
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'casedoc docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
