package commands

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/config"
	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/metrics"
	"git.home.luguber.info/inful/forumarchive/internal/site"
	"git.home.luguber.info/inful/forumarchive/internal/sink"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Dialect  string `help:"Dialect to render (notes|html|all); defaults to render.dialects"`
	Max      int    `help:"Render at most N documents per collection (overrides render.max_documents)"`
	NotesDir string `name:"notes-dir" help:"Override output.notes_dir"`
	HTMLDir  string `name:"html-dir" help:"Override output.html_dir"`
	Verify   bool   `help:"Verify links in the written output"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	start := time.Now()
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	dialects, err := selectDialects(r.Dialect, cfg)
	if err != nil {
		return err
	}
	r.applyOverrides(cfg)

	arc, err := archive.Load(g.fs(), cfg.Layout(), g.Logger)
	if err != nil {
		return err
	}

	rec := metrics.NewPrometheusRecorder(nil)
	defer finishRun(g, rec, metricsPath(root, cfg), start)

	assembler := site.New(site.Options{
		Origin:       cfg.Site.OriginURL,
		SiteTitle:    cfg.Site.Title,
		Description:  cfg.Site.Description,
		Capture:      cfg.Capture(),
		Sanitize:     cfg.SanitizeHTML(),
		MaxDocuments: cfg.Render.MaxDocuments,
		Clean:        cfg.CleanOutput(),
		Verify:       cfg.Render.Verify,
	}, g.Logger).WithRecorder(rec)

	for _, d := range dialects {
		out := sink.NewFS(g.fs(), cfg.OutputDir(d))
		rep, err := assembler.Assemble(arc, d, out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.out(), "%s: %s\n", out.Root(), rep.Summary())
	}
	return nil
}

func (r *RenderCmd) applyOverrides(cfg *config.Config) {
	if r.Max > 0 {
		cfg.Render.MaxDocuments = r.Max
	}
	if r.NotesDir != "" {
		cfg.Output.NotesDir = r.NotesDir
	}
	if r.HTMLDir != "" {
		cfg.Output.HTMLDir = r.HTMLDir
	}
	if r.Verify {
		cfg.Render.Verify = true
	}
}

// selectDialects resolves a --dialect flag against the configured dialects.
func selectDialects(flag string, cfg *config.Config) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "":
		return cfg.Render.Dialects, nil
	case "all":
		return config.Dialects(), nil
	}
	d, ok := config.NormalizeDialect(flag)
	if !ok {
		return nil, errors.ValidationError("unknown dialect").
			WithContext("dialect", flag).
			Build()
	}
	return []string{d}, nil
}
