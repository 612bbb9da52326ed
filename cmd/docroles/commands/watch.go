package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docroles/internal/logfields"
	"git.home.luguber.info/inful/docroles/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory for HTML files. Defaults to output.directory"`
	Debounce time.Duration `default:"300ms" help:"Quiet period after the last change before re-rendering"`
}

// Run renders the documentation tree and re-renders it until interrupted.
func (wc *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadRenderConfig()
	if err != nil {
		return err
	}
	r := newRenderer(cfg, g)

	docs := cfg.DocsRoot()
	outDir := wc.Output
	clean := false
	if outDir == "" {
		outDir = cfg.Resolve(cfg.Output.Directory)
		clean = cfg.Output.Clean
	}

	rebuild := func(context.Context) error {
		stats, err := renderTree(r, cfg, docs, outDir, clean)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(g.Out, "Rendered %d file%s (%d message%s)\n",
			stats.files, plural(stats.files), stats.messages, plural(stats.messages))
		return err
	}

	// The initial render must succeed; later failures only log.
	if err := rebuild(context.Background()); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("Watching for changes", logfields.Path(docs))
	return watch.New(docs, wc.Debounce, rebuild).Run(ctx)
}
