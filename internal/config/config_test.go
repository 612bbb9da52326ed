package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
	"git.home.luguber.info/inful/docroles/internal/roles"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "build:\n  version: 3.5.0\n"))
	require.NoError(t, err)

	assert.Equal(t, roles.DefaultRepoURL, cfg.Repository.URL)
	assert.Equal(t, "main", cfg.Repository.DefaultBranch)
	assert.Equal(t, "pyproject.toml", cfg.Project.Descriptor)
	assert.Equal(t, []string{"**/*.md"}, cfg.Docs.Include)
	assert.Equal(t, "./site", cfg.Output.Directory)
	assert.True(t, cfg.Output.Clean)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	assert.Equal(t, roles.Config{
		RepoURL:       roles.DefaultRepoURL,
		Version:       "3.5.0",
		DefaultBranch: "main",
	}, cfg.Roles())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCROLES_TEST_VERSION", "3.6.0-dev4")
	cfg, err := Load(writeConfig(t, "build:\n  version: ${DOCROLES_TEST_VERSION}\n"))
	require.NoError(t, err)
	assert.Equal(t, "3.6.0-dev4", cfg.Build.Version)
}

func TestLoad_ResolvesPathsAgainstConfigDir(t *testing.T) {
	path := writeConfig(t, "project:\n  descriptor: ../pyproject.toml\ndocs:\n  root: docs/source\n")
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "..", "pyproject.toml"), cfg.DescriptorPath())
	assert.Equal(t, filepath.Join(dir, "docs", "source"), cfg.DocsRoot())

	abs := filepath.Join(string(filepath.Separator), "abs", "pyproject.toml")
	assert.Equal(t, abs, cfg.Resolve(abs))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"bad yaml":       "repository: [",
		"relative url":   "repository:\n  url: github.com/bokeh/bokeh\n",
		"bad url scheme": "repository:\n  url: ftp://github.com/bokeh/bokeh\n",
		"bad glob":       "docs:\n  include: ['[']\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			require.Error(t, err)
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
		})
	}
}

func TestRequireVersion(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.RequireVersion())
	cfg.Build.Version = "3.5.0"
	assert.NoError(t, cfg.RequireVersion())
}

func TestInit_WritesLoadableExample(t *testing.T) {
	t.Setenv("DOCROLES_VERSION", "3.5.0")
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3.5.0", cfg.Build.Version)
	assert.Equal(t, []string{"**/_build/**"}, cfg.Docs.Exclude)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	require.NoError(t, Init(path, true))
}

func TestLogging(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("WARNING"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("loud"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat(" json "))

	var buf bytes.Buffer
	logger := LoggingConfig{Level: "error", Format: "json"}.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Error("shown", "role", "bokeh-issue")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"role":"bokeh-issue"`)

	buf.Reset()
	LoggingConfig{Level: "error"}.NewLogger(&buf, true).Debug("debug forced by verbose")
	assert.Contains(t, buf.String(), "debug forced by verbose")
}
