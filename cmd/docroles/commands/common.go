package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docroles/internal/config"
	"git.home.luguber.info/inful/docroles/internal/logfields"
	"git.home.luguber.info/inful/docroles/internal/markdown"
	"git.home.luguber.info/inful/docroles/internal/metrics"
	"git.home.luguber.info/inful/docroles/internal/project"
	"git.home.luguber.info/inful/docroles/internal/roles"
)

// Global carries process-wide dependencies bound into every command.
type Global struct {
	Out      io.Writer
	Recorder metrics.Recorder
}

// NewGlobal returns a Global writing to out. A nil recorder disables metrics.
func NewGlobal(out io.Writer, rec metrics.Recorder) *Global {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Global{Out: out, Recorder: rec}
}

// CLI definition & global flags.
type CLI struct {
	Config       string           `short:"c" help:"Configuration file path" default:"docroles.yaml"`
	Verbose      bool             `short:"v" help:"Enable verbose logging"`
	BuildVersion string           `name:"build-version" help:"Override build.version from the configuration" env:"DOCROLES_BUILD_VERSION"`
	Metrics      bool             `help:"Print Prometheus metrics to stderr before exiting"`
	Version      kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render  RenderCmd  `cmd:"" help:"Render Markdown documents with roles to HTML"`
	Check   CheckCmd   `cmd:"" help:"Report invalid and unknown role usages"`
	Watch   WatchCmd   `cmd:"" help:"Re-render the documentation tree on every change"`
	Roles   RolesCmd   `cmd:"" help:"List the registered roles"`
	Mirrors MirrorsCmd `cmd:"" help:"List the CDN mirrors in precedence order"`
	CDNPlan CDNPlanCmd `cmd:"" name:"cdn-plan" help:"Print the CDN uploads a release publishes"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(config.LoggingConfig{}.NewLogger(os.Stderr, c.Verbose))
	return nil
}

// loadConfig reads the configuration file. A missing file at the default
// location falls back to the built-in defaults. The logger is reconfigured
// from the file's logging section.
func (c *CLI) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(c.Config); os.IsNotExist(err) && c.Config == config.DefaultPath {
		slog.Debug("No configuration file; using defaults", logfields.Path(c.Config))
		cfg = config.Default()
	} else {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.BuildVersion != "" {
		cfg.Build.Version = c.BuildVersion
	}
	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr, c.Verbose))
	return cfg, nil
}

// loadRenderConfig is loadConfig plus the checks rendering depends on.
func (c *CLI) loadRenderConfig() (*config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireVersion(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRenderer(cfg *config.Config, g *Global) *markdown.Renderer {
	return markdown.NewRenderer(
		roles.NewDefaultRegistry(),
		cfg.Roles(),
		project.NewFile(cfg.DescriptorPath()),
		markdown.WithRecorder(g.Recorder),
		markdown.WithLogger(slog.Default()),
	)
}

// ExitStatus asks main to exit with the given code without printing an
// error. Commands whose output already explains the failure return it.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}
