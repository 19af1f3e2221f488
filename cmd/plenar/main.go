package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/plenar/cmd/plenar/commands"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/version"
)

func main() {
	cli := &commands.CLI{}
	kctx := kong.Parse(cli,
		kong.Name("plenar"),
		kong.Description("Analyze Bundestag Plenarprotokolle: download, parse, word analysis, exports and APIs."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	g := commands.NewGlobal()
	if err := kctx.Run(g, cli); err != nil {
		os.Exit(ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err))
	}
}
