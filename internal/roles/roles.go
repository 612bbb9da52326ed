// Package roles implements the inline roles that link documentation to the
// project's GitHub resources and inline metadata from the project descriptor.
//
// The roles are:
//
//	bokeh-commit    link to a specific commit
//	bokeh-issue     link to an issue
//	bokeh-minpy     the minimum supported Python version
//	bokeh-pull      link to a pull request
//	bokeh-requires  bulleted list of the runtime dependencies
//	bokeh-tree      versioned link into the source tree
//
// Handlers are stateless. Everything they need arrives through the Context
// argument, so a Registry may be shared by concurrent renders.
package roles

import (
	"git.home.luguber.info/inful/docroles/internal/project"
)

// Role names registered by Setup.
const (
	RoleCommit   = "bokeh-commit"
	RoleIssue    = "bokeh-issue"
	RoleMinPy    = "bokeh-minpy"
	RolePull     = "bokeh-pull"
	RoleRequires = "bokeh-requires"
	RoleTree     = "bokeh-tree"
)

const (
	// DefaultRepoURL is the repository the link roles point at.
	DefaultRepoURL = "https://github.com/bokeh/bokeh"
	// DefaultBranch is linked by bokeh-tree for development versions.
	DefaultBranch = "main"
)

// Config is the build configuration visible to roles.
type Config struct {
	RepoURL       string
	Version       string
	DefaultBranch string
}

// DescriptorSource supplies the project descriptor.
type DescriptorSource interface {
	Load() (*project.Descriptor, error)
}

// Context is the per-invocation bundle handed to a Handler.
type Context struct {
	Config     Config
	Reporter   Reporter
	Descriptor DescriptorSource
}

// Options are the formatting options a role may receive.
type Options struct {
	Classes []string
}

// Invocation describes one occurrence of a role in a document.
type Invocation struct {
	Name    string
	RawText string
	Text    string
	Line    int
	Options Options
}

// Handler renders one role invocation. A non-nil error is an unrecovered
// fault (e.g. an unreadable descriptor) that aborts the current document;
// authoring mistakes are reported through ctx.Reporter instead.
type Handler func(ctx *Context, inv Invocation) (Result, error)

// Metadata is what Setup reports back about the extension.
type Metadata struct {
	ParallelReadSafe  bool
	ParallelWriteSafe bool
}

// Setup registers all six roles on reg.
func Setup(reg *Registry) (Metadata, error) {
	for _, r := range []struct {
		name    string
		handler Handler
	}{
		{RoleCommit, Commit},
		{RoleIssue, Issue},
		{RoleMinPy, MinPy},
		{RolePull, Pull},
		{RoleRequires, Requires},
		{RoleTree, Tree},
	} {
		if err := reg.Add(r.name, r.handler); err != nil {
			return Metadata{}, err
		}
	}
	return Metadata{ParallelReadSafe: true, ParallelWriteSafe: true}, nil
}

// NewDefaultRegistry returns a Registry with Setup already applied.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	if _, err := Setup(reg); err != nil {
		// Only reachable if a role name were declared twice above.
		panic(err)
	}
	return reg
}

func (c Config) repoURL() string {
	if c.RepoURL == "" {
		return DefaultRepoURL
	}
	return c.RepoURL
}

func (c Config) defaultBranch() string {
	if c.DefaultBranch == "" {
		return DefaultBranch
	}
	return c.DefaultBranch
}
