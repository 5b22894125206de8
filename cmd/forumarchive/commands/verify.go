package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/forumarchive/internal/metrics"
	"git.home.luguber.info/inful/forumarchive/internal/site"
	"git.home.luguber.info/inful/forumarchive/internal/sink"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Dialect string `help:"Dialect output to verify (notes|html|all); defaults to render.dialects"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	start := time.Now()
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	dialects, err := selectDialects(v.Dialect, cfg)
	if err != nil {
		return err
	}

	rec := metrics.NewPrometheusRecorder(nil)
	defer finishRun(g, rec, metricsPath(root, cfg), start)

	for _, d := range dialects {
		out := sink.NewFS(g.fs(), cfg.OutputDir(d))
		res, err := site.Verify(out, d, cfg.Site.OriginURL)
		if err != nil {
			return err
		}
		rec.AddVerificationProblems(d, len(res.Problems))
		_, _ = fmt.Fprintf(g.out(), "%s: %d files, %d links, %d problems\n", out.Root(), res.Files, res.Links, len(res.Problems))
		for _, p := range res.Problems {
			_, _ = fmt.Fprintf(g.out(), "  %s: %s (%s)\n", p.File, p.Link, p.Reason)
		}
	}
	return nil
}
