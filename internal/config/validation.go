package config

import (
	"net/url"

	"github.com/bmatcuk/doublestar/v4"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
)

// Validate checks the configuration for values the roles cannot work with.
func (c *Config) Validate() error {
	if err := c.validateRepository(); err != nil {
		return err
	}
	return c.validateDocs()
}

func (c *Config) validateRepository() error {
	u, err := url.Parse(c.Repository.URL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return foundationerrors.ConfigError("repository.url must be an absolute http(s) URL").
			WithContext("url", c.Repository.URL).
			Build()
	}
	return nil
}

func (c *Config) validateDocs() error {
	for _, patterns := range [][]string{c.Docs.Include, c.Docs.Exclude} {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return foundationerrors.ConfigError("invalid docs glob pattern").
					WithContext("pattern", p).
					Build()
			}
		}
	}
	return nil
}

// RequireVersion fails when no build version is configured. Rendering
// bokeh-tree links needs one.
func (c *Config) RequireVersion() error {
	if c.Build.Version == "" {
		return foundationerrors.ConfigError("build.version is not set").Build()
	}
	return nil
}
