package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/casedoc/internal/config"
	"github.com/jorge-barreto/casedoc/internal/expr"
	"github.com/jorge-barreto/casedoc/internal/logger"
	"github.com/jorge-barreto/casedoc/internal/metrics"
	"github.com/jorge-barreto/casedoc/internal/render"
	"github.com/jorge-barreto/casedoc/internal/store"
	"github.com/jorge-barreto/casedoc/internal/template"
)

var tenantFlag = &cli.StringFlag{Name: "tenant", Usage: "Tenant id (defaults to 'tenant' in config)"}

// project is the loaded config, data store and ambient services for one
// command invocation.
type project struct {
	root    string
	cfg     *config.Config
	store   *store.FileStore
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func openProject() (*project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(cwd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Path(root), root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	st, err := store.Open(cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	log.Debug().Str("root", root).Str("data", cfg.Data).Msg("project loaded")
	return &project{root: root, cfg: cfg, store: st, log: log, metrics: metrics.New()}, nil
}

// close flushes counters to the configured metrics file.
func (p *project) close() {
	if err := p.metrics.WriteTextfile(p.cfg.MetricsFile); err != nil {
		p.log.Warn().Err(err).Str("path", p.cfg.MetricsFile).Msg("writing metrics file")
	}
}

// tenant resolves --tenant, then the config default, then the only tenant
// in the data file.
func (p *project) tenant(cmd *cli.Command) (template.Tenant, error) {
	id := cmd.String("tenant")
	if id == "" {
		id = p.cfg.Tenant
	}
	if id == "" {
		all := p.store.Tenants()
		if len(all) == 1 {
			return all[0], nil
		}
		return template.Tenant{}, fmt.Errorf("no tenant selected: set 'tenant' in config or pass --tenant")
	}
	return p.store.Tenant(id)
}

// systemVars returns data file system variables followed by config ones, so
// config values win.
func (p *project) systemVars() []template.Variable {
	vars := p.store.SystemVariables()
	return append(vars, p.cfg.SystemVars...)
}

// document finds a document and builds its variable context.
func (p *project) document(tn *template.Tenant, id string) (*template.Document, map[string]string, error) {
	doc, c, ok := tn.Document(id)
	if !ok {
		return nil, nil, fmt.Errorf("document %q not found in tenant %q", id, tn.ID)
	}
	return doc, render.BuildContext(p.systemVars(), tn.Variables, c.Data), nil
}

func (p *project) renderer(export, raw bool) *render.Renderer {
	mode := render.ModeDecorate
	if export {
		mode = render.ModePrune
	}
	return &render.Renderer{
		Resolver: &render.Resolver{
			Evaluator: &expr.Evaluator{Log: logger.Component(p.log, "expr"), Metrics: p.metrics},
			Metrics:   p.metrics,
		},
		Metrics:        p.metrics,
		Mode:           mode,
		SkipVisibility: raw,
	}
}
