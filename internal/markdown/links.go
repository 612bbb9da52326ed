package markdown

import "github.com/yuin/goldmark"

// Options controls how Markdown is parsed for analysis.
type Options struct {
	// Extensions are added to the goldmark instance, typically a RoleExtension
	// so that role-produced links are reported too.
	Extensions []goldmark.Extender
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
	// LinkKindRole is a link produced by a role, e.g. {bokeh-issue}`1694`.
	LinkKindRole LinkKind = "role"
)

type Link struct {
	Kind        LinkKind
	Destination string
	// Role is the producing role name for LinkKindRole links.
	Role string
}
