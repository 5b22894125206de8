package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
)

// StatsCmd implements the 'stats' command.
type StatsCmd struct{}

func (s *StatsCmd) Run(g *Global, root *CLI) error {
	start := time.Now()
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	arc, err := archive.Load(g.fs(), cfg.Layout(), g.Logger)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	for _, st := range arc.Stats() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", st.Kind.Title(), st.Count)
	}
	_, _ = fmt.Fprintf(tw, "Total\t%d\n", arc.Total())
	_ = tw.Flush()

	finishRun(g, nil, "", start)
	return nil
}
