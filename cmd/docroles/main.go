package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docroles/cmd/docroles/commands"
	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
	"git.home.luguber.info/inful/docroles/internal/metrics"
	"git.home.luguber.info/inful/docroles/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("docroles"),
		kong.Description("Render and check GitHub link roles in Markdown documentation"),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	var recorder *metrics.PrometheusRecorder
	var rec metrics.Recorder
	if cli.Metrics {
		recorder = metrics.NewPrometheusRecorder(nil)
		rec = recorder
	}

	err = ctx.Run(commands.NewGlobal(os.Stdout, rec), cli)

	if recorder != nil {
		if werr := recorder.WriteText(os.Stderr); werr != nil {
			slog.Warn("Failed to write metrics", "error", werr)
		}
	}

	var status commands.ExitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	return foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(os.Stderr, err)
}
