// Package commands implements the forumarchive subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/forumarchive/internal/config"
	"git.home.luguber.info/inful/forumarchive/internal/logfields"
	"git.home.luguber.info/inful/forumarchive/internal/metrics"
)

// Global is shared state handed to every subcommand.
type Global struct {
	Logger *slog.Logger
	// Fs is the filesystem snapshots are read from and output is written to.
	Fs afero.Fs
	// Out receives user-facing messages.
	Out io.Writer
}

func (g *Global) fs() afero.Fs {
	if g.Fs == nil {
		g.Fs = afero.NewOsFs()
	}
	return g.Fs
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition and global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" help:"Write a Prometheus text exposition of the run to this file"`

	Render RenderCmd `cmd:"" help:"Render the archive into the configured dialects"`
	Verify VerifyCmd `cmd:"" help:"Verify links in previously rendered output"`
	Stats  StatsCmd  `cmd:"" help:"Print per-collection document counts"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; it sets up a default logger until the
// configuration picks the final handler.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(NewLogger(config.LoggingConfig{}, c.Verbose, os.Stderr))
	return nil
}

// NewLogger builds the slog logger for cfg. verbose forces debug level.
func NewLogger(cfg config.LoggingConfig, verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the configuration, switches the global logger to its
// logging settings and reports normalization warnings.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, res, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = NewLogger(cfg.Logging, root.Verbose, os.Stderr)
	slog.SetDefault(g.Logger)
	if res != nil {
		for _, w := range res.Warnings {
			g.Logger.Warn("Config normalization", slog.String("warning", w))
		}
	}
	return cfg, nil
}

// metricsPath picks the textfile target: the flag wins over the config.
func metricsPath(root *CLI, cfg *config.Config) string {
	if root.MetricsFile != "" {
		return root.MetricsFile
	}
	if cfg != nil {
		return cfg.Metrics.Textfile
	}
	return ""
}

// finishRun writes the metrics textfile when requested and prints the run time.
func finishRun(g *Global, rec *metrics.PrometheusRecorder, path string, start time.Time) {
	if path != "" && rec != nil {
		if err := rec.WriteTextfile(path); err != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
		} else {
			g.Logger.Debug("Metrics written", logfields.Path(path))
		}
	}
	_, _ = fmt.Fprintf(g.out(), "Ran in %.2f seconds\n", time.Since(start).Seconds())
}
