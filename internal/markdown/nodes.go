package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
)

var (
	// KindRole wraps the output of one role invocation.
	KindRole = gmast.NewNodeKind("Role")
	// KindRoleBlock holds a Role lifted out of its paragraph.
	KindRoleBlock = gmast.NewNodeKind("RoleBlock")
	// KindRoleList is a bulleted list produced by a role.
	KindRoleList = gmast.NewNodeKind("RoleList")
	// KindRoleListItem is one item of a RoleList.
	KindRoleListItem = gmast.NewNodeKind("RoleListItem")
	// KindProblematic marks role text that failed validation.
	KindProblematic = gmast.NewNodeKind("Problematic")
)

// Role is the container for the nodes a role produced. It renders only its
// children.
type Role struct {
	gmast.BaseInline
	Name string
}

// NewRole returns an empty Role container.
func NewRole(name string) *Role {
	return &Role{Name: name}
}

// Kind implements ast.Node.
func (n *Role) Kind() gmast.NodeKind { return KindRole }

// Dump implements ast.Node.
func (n *Role) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// RoleBlock stands in for a paragraph whose only content was a role that
// produced block output. Its single child is that Role.
type RoleBlock struct {
	gmast.BaseBlock
}

// Kind implements ast.Node.
func (n *RoleBlock) Kind() gmast.NodeKind { return KindRoleBlock }

// Dump implements ast.Node.
func (n *RoleBlock) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, nil, nil)
}

// RoleList is an unordered list emitted inline by a role.
type RoleList struct {
	gmast.BaseInline
}

// Kind implements ast.Node.
func (n *RoleList) Kind() gmast.NodeKind { return KindRoleList }

// Dump implements ast.Node.
func (n *RoleList) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, nil, nil)
}

// RoleListItem is one entry of a RoleList.
type RoleListItem struct {
	gmast.BaseInline
}

// Kind implements ast.Node.
func (n *RoleListItem) Kind() gmast.NodeKind { return KindRoleListItem }

// Dump implements ast.Node.
func (n *RoleListItem) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, nil, nil)
}

// Problematic replaces a role whose text was rejected. MessageID is the id
// of the system message explaining why.
type Problematic struct {
	gmast.BaseInline
	RawText   string
	MessageID string
}

// Kind implements ast.Node.
func (n *Problematic) Kind() gmast.NodeKind { return KindProblematic }

// Dump implements ast.Node.
func (n *Problematic) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"RawText":   n.RawText,
		"MessageID": n.MessageID,
	}, nil)
}
