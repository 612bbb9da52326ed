package lint

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
	"git.home.luguber.info/inful/docroles/internal/logfields"
	"git.home.luguber.info/inful/docroles/internal/markdown"
)

// Checker renders documentation files and reports every role problem.
type Checker struct {
	cfg      *Config
	renderer *markdown.Renderer
}

// NewChecker creates a checker that renders through r.
func NewChecker(cfg *Config, r *markdown.Renderer) *Checker {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**/*.md"}
	}
	return &Checker{cfg: cfg, renderer: r}
}

// CheckPath checks a single file or every matching file below a directory.
// A role fault (such as an unreadable project descriptor) stops the check.
func (c *Checker) CheckPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryNotFound, "path does not exist").
			WithContext("path", path).
			Build()
	}

	result := &Result{Issues: []Issue{}}
	if !info.IsDir() {
		result.FilesTotal = 1
		return result, c.checkFile(path, filepath.Base(path), result)
	}

	files, err := FindDocs(path, c.cfg.Include, c.cfg.Exclude)
	if err != nil {
		return nil, err
	}
	for _, rel := range files {
		result.FilesTotal++
		if err := c.checkFile(filepath.Join(path, filepath.FromSlash(rel)), rel, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

// FindDocs returns the slash-separated paths below root that match an
// include glob and no exclude glob, sorted. Hidden entries are skipped.
func FindDocs(root string, include, exclude []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid include pattern").
				WithContext("pattern", pattern).
				Build()
		}
		for _, m := range matches {
			if !IsDocFile(m) || isHidden(m) || excluded(exclude, m) {
				continue
			}
			seen[m] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func excluded(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// isHidden reports whether any element of a slash-separated path starts
// with a dot.
func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func (c *Checker) checkFile(path, display string, result *Result) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read file").
			WithContext("path", path).
			Build()
	}

	out, err := c.renderer.Render(body)
	if err != nil {
		return fmt.Errorf("%s: %w", display, err)
	}

	slog.Debug("Checked file", logfields.File(display), logfields.Messages(len(out.Messages)))
	for _, m := range out.Messages {
		issue := issueFromMessage(display, m)
		if c.cfg.Quiet && issue.Severity != SeverityError {
			continue
		}
		result.Issues = append(result.Issues, issue)
	}
	return nil
}
