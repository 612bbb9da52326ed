package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/docroles/internal/roles"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links, err := ExtractLinks([]byte("See [API](api.md) for details."), Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
}

func TestExtractLinks_ImageLink(t *testing.T) {
	links, err := ExtractLinks([]byte("![Diagram](diagram.png)"), Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, LinkKindImage, links[0].Kind)
	require.Equal(t, "diagram.png", links[0].Destination)
}

func TestExtractLinks_AutoLink(t *testing.T) {
	links, err := ExtractLinks([]byte("<https://example.com/path>"), Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, LinkKindAuto, links[0].Kind)
	require.Equal(t, "https://example.com/path", links[0].Destination)
}

func TestExtractLinks_ReferenceLinkUsageAndDefinition(t *testing.T) {
	src := []byte("See [API][ref].\n\n[ref]: api.md\n")
	links, err := ExtractLinks(src, Options{})
	require.NoError(t, err)

	require.Len(t, links, 2)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
	require.Equal(t, LinkKindReferenceDefinition, links[1].Kind)
	require.Equal(t, "api.md", links[1].Destination)
}

func TestExtractLinks_RoleLinksNeedTheExtension(t *testing.T) {
	src := []byte("Fixed in {bokeh-pull}`1698`, see [notes](notes.md).\n")

	plain, err := ExtractLinks(src, Options{})
	require.NoError(t, err)
	require.Len(t, plain, 1)
	require.Equal(t, "notes.md", plain[0].Destination)

	ext := NewRoleExtension(roles.NewDefaultRegistry(), roles.Config{Version: "3.5.0"}, nil, nil)
	links, err := ExtractLinks(src, Options{Extensions: []goldmark.Extender{ext}})
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.Equal(t, Link{Kind: LinkKindRole, Destination: "https://github.com/bokeh/bokeh/pull/1698", Role: roles.RolePull}, links[0])
	require.Equal(t, LinkKindInline, links[1].Kind)
}

func TestParseBody_WithRoleExtension(t *testing.T) {
	ext := NewRoleExtension(roles.NewDefaultRegistry(), roles.Config{Version: "3.5.0"}, nil, nil)
	root, err := ParseBody([]byte("{bokeh-commit}`bf19bcb`"), Options{Extensions: []goldmark.Extender{ext}})
	require.NoError(t, err)

	para := root.FirstChild()
	require.NotNil(t, para)
	role, ok := para.FirstChild().(*Role)
	require.True(t, ok, "expected *Role, got %T", para.FirstChild())
	require.Equal(t, roles.RoleCommit, role.Name)
}
