package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docroles/internal/config"
	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
	"git.home.luguber.info/inful/docroles/internal/lint"
	"git.home.luguber.info/inful/docroles/internal/logfields"
	"git.home.luguber.info/inful/docroles/internal/markdown"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Path   string `arg:"" optional:"" help:"Markdown file or directory to render. Defaults to docs.root"`
	Output string `short:"o" help:"Output directory for HTML files. Defaults to output.directory"`
}

// Run renders a single file to stdout or a directory tree to HTML files.
func (rc *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadRenderConfig()
	if err != nil {
		return err
	}
	r := newRenderer(cfg, g)

	path := rc.Path
	if path == "" {
		path = cfg.DocsRoot()
	}
	info, err := os.Stat(path)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryNotFound, "path does not exist").
			WithContext("path", path).
			Build()
	}

	if !info.IsDir() && rc.Output == "" {
		out, err := renderFile(r, path)
		if err != nil {
			return err
		}
		_, err = g.Out.Write(out.HTML)
		return err
	}

	outDir := rc.Output
	clean := false
	if outDir == "" {
		outDir = cfg.Resolve(cfg.Output.Directory)
		clean = cfg.Output.Clean
	}
	if !info.IsDir() {
		return writeHTML(r, path, filepath.Base(path), outDir)
	}

	stats, err := renderTree(r, cfg, path, outDir, clean)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Out, "Rendered %d file%s to %s (%d message%s)\n",
		stats.files, plural(stats.files), outDir, stats.messages, plural(stats.messages))
	return err
}

type treeStats struct {
	files    int
	messages int
}

// renderTree renders every selected document below root into outDir,
// mirroring the source layout.
func renderTree(r *markdown.Renderer, cfg *config.Config, root, outDir string, clean bool) (treeStats, error) {
	var stats treeStats
	files, err := lint.FindDocs(root, cfg.Docs.Include, cfg.Docs.Exclude)
	if err != nil {
		return stats, err
	}

	if clean {
		if err := os.RemoveAll(outDir); err != nil {
			return stats, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to clean output directory").
				WithContext("path", outDir).
				Build()
		}
	}

	for _, rel := range files {
		src := filepath.Join(root, filepath.FromSlash(rel))
		out, err := renderFile(r, src)
		if err != nil {
			return stats, err
		}
		if err := writeOutput(out.HTML, rel, outDir); err != nil {
			return stats, err
		}
		stats.files++
		stats.messages += len(out.Messages)
	}
	return stats, nil
}

func renderFile(r *markdown.Renderer, path string) (*markdown.Output, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read file").
			WithContext("path", path).
			Build()
	}
	out, err := r.Render(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("Rendered file", logfields.File(path), logfields.Messages(len(out.Messages)))
	return out, nil
}

func writeHTML(r *markdown.Renderer, src, rel, outDir string) error {
	out, err := renderFile(r, src)
	if err != nil {
		return err
	}
	return writeOutput(out.HTML, rel, outDir)
}

// writeOutput stores html at outDir/rel with the extension replaced by .html.
func writeOutput(html []byte, rel, outDir string) error {
	target := filepath.Join(outDir, filepath.FromSlash(strings.TrimSuffix(rel, filepath.Ext(rel))+".html"))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", filepath.Dir(target)).
			Build()
	}
	if err := os.WriteFile(target, html, 0o644); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write output file").
			WithContext("path", target).
			Build()
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
