package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
	"git.home.luguber.info/inful/docroles/internal/project"
	"git.home.luguber.info/inful/docroles/internal/roles"
)

// DefaultPath is the configuration file the CLI looks for.
const DefaultPath = "docroles.yaml"

// Config represents the application configuration.
type Config struct {
	Repository RepositoryConfig `yaml:"repository"`
	Build      BuildConfig      `yaml:"build"`
	Project    ProjectConfig    `yaml:"project"`
	Docs       DocsConfig       `yaml:"docs"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`

	// baseDir is the directory of the loaded file; relative paths resolve against it.
	baseDir string
}

// RepositoryConfig identifies the GitHub repository the link roles target.
type RepositoryConfig struct {
	URL           string `yaml:"url"`
	DefaultBranch string `yaml:"default_branch,omitempty"`
}

// BuildConfig carries the documentation build version.
type BuildConfig struct {
	Version string `yaml:"version"`
}

// ProjectConfig locates the project descriptor.
type ProjectConfig struct {
	Descriptor string `yaml:"descriptor,omitempty"`
}

// DocsConfig selects the documentation sources.
type DocsConfig struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, foundationerrors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(filepath.Dir(configPath)); err == nil {
		cfg.baseDir = abs
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Repository.URL == "" {
		c.Repository.URL = roles.DefaultRepoURL
	}
	if c.Repository.DefaultBranch == "" {
		c.Repository.DefaultBranch = roles.DefaultBranch
	}
	if c.Project.Descriptor == "" {
		c.Project.Descriptor = project.DefaultFileName
	}
	if c.Docs.Root == "" {
		c.Docs.Root = "docs"
	}
	if len(c.Docs.Include) == 0 {
		c.Docs.Include = []string{"**/*.md"}
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./site"
		c.Output.Clean = true
	}
	c.Logging.Level = string(NormalizeLogLevel(c.Logging.Level))
	c.Logging.Format = string(NormalizeLogFormat(c.Logging.Format))
}

// Roles returns the configuration visible to role handlers.
func (c *Config) Roles() roles.Config {
	return roles.Config{
		RepoURL:       c.Repository.URL,
		Version:       c.Build.Version,
		DefaultBranch: c.Repository.DefaultBranch,
	}
}

// Resolve makes p absolute against the directory of the loaded config file.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// DescriptorPath is the resolved path of the project descriptor.
func (c *Config) DescriptorPath() string {
	return c.Resolve(c.Project.Descriptor)
}

// DocsRoot is the resolved documentation root.
func (c *Config) DocsRoot() string {
	return c.Resolve(c.Docs.Root)
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	example := Config{
		Repository: RepositoryConfig{
			URL:           roles.DefaultRepoURL,
			DefaultBranch: roles.DefaultBranch,
		},
		Build:   BuildConfig{Version: "${DOCROLES_VERSION}"},
		Project: ProjectConfig{Descriptor: project.DefaultFileName},
		Docs: DocsConfig{
			Root:    "docs",
			Include: []string{"**/*.md"},
			Exclude: []string{"**/_build/**"},
		},
		Output:  OutputConfig{Directory: "./site", Clean: true},
		Logging: LoggingConfig{Level: string(LogLevelInfo), Format: string(LogFormatText)},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
