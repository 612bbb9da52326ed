// Package project reads the project descriptor (pyproject.toml) that the
// metadata roles draw from.
package project

import (
	"os"

	"github.com/BurntSushi/toml"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
)

// DefaultFileName is the descriptor file name relative to the repository root.
const DefaultFileName = "pyproject.toml"

// Descriptor is the decoded [project] table of a descriptor file.
type Descriptor struct {
	path string
	raw  pyproject
}

type pyproject struct {
	Project struct {
		Name           string    `toml:"name"`
		RequiresPython *string   `toml:"requires-python"`
		Dependencies   *[]string `toml:"dependencies"`
	} `toml:"project"`
}

// Load reads and decodes the descriptor at path. A missing file or malformed
// TOML yields a fatal project error.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryProject, "read project descriptor").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return Parse(data, path)
}

// Parse decodes descriptor content. path is only used for error context.
func Parse(data []byte, path string) (*Descriptor, error) {
	d := &Descriptor{path: path}
	if _, err := toml.Decode(string(data), &d.raw); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryProject, "parse project descriptor").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return d, nil
}

// Name returns project.name, or "" when unset.
func (d *Descriptor) Name() string {
	return d.raw.Project.Name
}

// RequiresPython returns the project.requires-python constraint verbatim.
func (d *Descriptor) RequiresPython() (string, error) {
	if d.raw.Project.RequiresPython == nil {
		return "", d.missingKey("project.requires-python")
	}
	return *d.raw.Project.RequiresPython, nil
}

// Dependencies returns project.dependencies in file order.
func (d *Descriptor) Dependencies() ([]string, error) {
	if d.raw.Project.Dependencies == nil {
		return nil, d.missingKey("project.dependencies")
	}
	out := make([]string, len(*d.raw.Project.Dependencies))
	copy(out, *d.raw.Project.Dependencies)
	return out, nil
}

func (d *Descriptor) missingKey(key string) error {
	return foundationerrors.ProjectError("project descriptor is missing a required key").
		WithContext("path", d.path).
		WithContext("key", key).
		Build()
}

// File is a descriptor source backed by a path on disk. Every Load call
// re-reads the file; nothing is cached between role invocations.
type File struct {
	Path string
}

// NewFile returns a File source for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the descriptor from disk.
func (f *File) Load() (*Descriptor, error) {
	return Load(f.Path)
}
