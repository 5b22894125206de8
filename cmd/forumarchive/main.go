package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/forumarchive/cmd/forumarchive/commands"
	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("forumarchive"),
		kong.Description("Render a forum and blog archive into a note vault and a static site."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := &commands.Global{Logger: slog.Default()}
	err := parser.Run(global, &cli)
	errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}
