package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docroles/internal/lint"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Path   string `arg:"" optional:"" help:"File or directory to check. Defaults to docs.root"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
}

// Run checks every role usage and exits 2 on errors, 1 on warnings.
func (cc *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadRenderConfig()
	if err != nil {
		return err
	}

	path := cc.Path
	if path == "" {
		path = cfg.DocsRoot()
	}

	checker := lint.NewChecker(&lint.Config{
		Quiet:   cc.Quiet,
		Format:  cc.Format,
		Include: cfg.Docs.Include,
		Exclude: cfg.Docs.Exclude,
	}, newRenderer(cfg, g))

	result, err := checker.CheckPath(path)
	if err != nil {
		return err
	}

	if err := lint.NewFormatter(cc.Format).Format(g.Out, result, path); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	switch {
	case result.HasErrors():
		return ExitStatus(2)
	case result.HasWarnings() && !cc.Quiet:
		return ExitStatus(1)
	}
	return nil
}
