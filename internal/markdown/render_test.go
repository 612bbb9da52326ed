package markdown

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
	"git.home.luguber.info/inful/docroles/internal/metrics"
	"git.home.luguber.info/inful/docroles/internal/project"
	"git.home.luguber.info/inful/docroles/internal/roles"
)

type anchor struct {
	Href  string
	Class string
	Text  string
}

// anchors returns every <a> element of a rendered fragment.
func anchors(t *testing.T, fragment []byte) []anchor {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(fragment))
	require.NoError(t, err)

	var out []anchor
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			a := anchor{Text: textOf(n)}
			for _, attr := range n.Attr {
				switch attr.Key {
				case "href":
					a.Href = attr.Val
				case "class":
					a.Class = attr.Val
				}
			}
			out = append(out, a)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

type countingRecorder struct {
	roles     map[string]map[metrics.ResultLabel]int
	documents map[bool]int
	renders   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{roles: map[string]map[metrics.ResultLabel]int{}, documents: map[bool]int{}}
}

func (c *countingRecorder) IncRoleInvocation(role string, result metrics.ResultLabel) {
	if c.roles[role] == nil {
		c.roles[role] = map[metrics.ResultLabel]int{}
	}
	c.roles[role][result]++
}
func (c *countingRecorder) ObserveRenderDuration(time.Duration) { c.renders++ }
func (c *countingRecorder) IncDocumentsRendered(ok bool)        { c.documents[ok]++ }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T, version, descriptor string, opts ...RendererOption) *Renderer {
	t.Helper()
	path := filepath.Join(t.TempDir(), project.DefaultFileName)
	if descriptor != "" {
		require.NoError(t, os.WriteFile(path, []byte(descriptor), 0o600))
	}
	cfg := roles.Config{RepoURL: roles.DefaultRepoURL, Version: version, DefaultBranch: roles.DefaultBranch}
	opts = append([]RendererOption{WithLogger(quietLogger())}, opts...)
	return NewRenderer(roles.NewDefaultRegistry(), cfg, project.NewFile(path), opts...)
}

const descriptor = `[project]
requires-python = ">=3.10"
dependencies = ["numpy", "requests"]
`

func TestRender_LinkRoles(t *testing.T) {
	r := newTestRenderer(t, "3.5.0", descriptor)
	src := "The repo history shows that {bokeh-commit}`bf19bcb` was made in\n" +
		"{bokeh-pull}`1698`, which closed {bokeh-issue}`1694`. See the\n" +
		"{bokeh-tree}`examples` subdirectory.\n"

	out, err := r.Render([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, out.Messages)

	assert.Equal(t, []anchor{
		{Href: "https://github.com/bokeh/bokeh/commit/bf19bcb", Class: "reference external", Text: "commit bf19bcb"},
		{Href: "https://github.com/bokeh/bokeh/pull/1698", Class: "reference external", Text: "pull request 1698"},
		{Href: "https://github.com/bokeh/bokeh/issues/1694", Class: "reference external", Text: "#1694"},
		{Href: "https://github.com/bokeh/bokeh/tree/3.5.0/examples", Class: "reference external", Text: "examples"},
	}, anchors(t, out.HTML))
	assert.Contains(t, string(out.HTML), "was made in\n")
}

func TestRender_DevVersionLinksDefaultBranch(t *testing.T) {
	r := newTestRenderer(t, "3.5.0-dev1", descriptor)
	out, err := r.Render([]byte("{bokeh-tree}`examples`"))
	require.NoError(t, err)
	require.Len(t, anchors(t, out.HTML), 1)
	assert.Equal(t, "https://github.com/bokeh/bokeh/tree/main/examples", anchors(t, out.HTML)[0].Href)
}

func TestRender_InvalidIssueIsProblematic(t *testing.T) {
	rec := newCountingRecorder()
	r := newTestRenderer(t, "3.5.0", descriptor, WithRecorder(rec))

	out, err := r.Render([]byte("First line.\n\nBroken {bokeh-issue}`abc` link.\n"))
	require.NoError(t, err)

	require.Len(t, out.Messages, 1)
	msg := out.Messages[0]
	assert.Equal(t, roles.LevelError, msg.Level)
	assert.Equal(t, 3, msg.Line)
	assert.Contains(t, msg.Text, "abc")

	assert.Equal(t, []anchor{
		{Href: "#" + msg.ID, Class: "problematic", Text: "{bokeh-issue}`abc`"},
	}, anchors(t, out.HTML))

	assert.Equal(t, 1, rec.roles[roles.RoleIssue][metrics.ResultInvalid])
	assert.Equal(t, 1, rec.documents[true])
	assert.Equal(t, 1, rec.renders)
}

func TestRender_MinPyAndRequires(t *testing.T) {
	r := newTestRenderer(t, "3.5.0", descriptor)

	out, err := r.Render([]byte("Bokeh needs Python {bokeh-minpy}`python` or newer.\n"))
	require.NoError(t, err)
	assert.Equal(t, "<p>Bokeh needs Python 3.10 or newer.</p>\n", string(out.HTML))

	out, err = r.Render([]byte("{bokeh-requires}`deps`\n"))
	require.NoError(t, err)
	assert.Equal(t, "<ul class=\"simple\">\n<li>numpy</li>\n<li>requests</li>\n</ul>\n", string(out.HTML))
}

func TestRender_RequiresListPlacement(t *testing.T) {
	r := newTestRenderer(t, "3.5.0", descriptor)

	out, err := r.Render([]byte("Intro.\n\n{bokeh-requires}`deps`\n\n> {bokeh-requires}`deps`\n"))
	require.NoError(t, err)
	assert.Equal(t, "<p>Intro.</p>\n"+
		"<ul class=\"simple\">\n<li>numpy</li>\n<li>requests</li>\n</ul>\n"+
		"<blockquote>\n<ul class=\"simple\">\n<li>numpy</li>\n<li>requests</li>\n</ul>\n</blockquote>\n",
		string(out.HTML))

	// Surrounded by text the role stays inline in its paragraph.
	out, err = r.Render([]byte("Needs {bokeh-requires}`deps` at runtime.\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out.HTML), "<p>Needs <ul class=\"simple\">"))

}

func TestParseBody_ListRoleBecomesBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), project.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(descriptor), 0o600))
	ext := NewRoleExtension(roles.NewDefaultRegistry(), roles.Config{Version: "3.5.0"}, project.NewFile(path), nil)

	root, err := ParseBody([]byte("{bokeh-requires}`deps`\n\nPython {bokeh-minpy}`v`\n"), Options{Extensions: []goldmark.Extender{ext}})
	require.NoError(t, err)
	require.Equal(t, 2, root.ChildCount())

	block, ok := root.FirstChild().(*RoleBlock)
	require.True(t, ok, "expected *RoleBlock, got %T", root.FirstChild())
	role, ok := block.FirstChild().(*Role)
	require.True(t, ok)
	assert.Equal(t, roles.RoleRequires, role.Name)
	assert.Equal(t, KindRoleList, role.FirstChild().Kind())

	_, ok = root.LastChild().(*gmast.Paragraph)
	assert.True(t, ok, "minpy output stays in its paragraph")
}

func TestRender_LinkTextIsVerbatim(t *testing.T) {
	r := newTestRenderer(t, "3.5.0", descriptor)

	out, err := r.Render([]byte("See {bokeh-commit}`a&amp;b` and {bokeh-commit}`c\\*d`.\n"))
	require.NoError(t, err)
	got := anchors(t, out.HTML)
	require.Len(t, got, 2)
	assert.Equal(t, "commit a&amp;b", got[0].Text)
	assert.Equal(t, "commit c\\*d", got[1].Text)
	assert.Contains(t, string(out.HTML), ">commit a&amp;amp;b</a>")
}

func TestRender_MissingDescriptorAborts(t *testing.T) {
	rec := newCountingRecorder()
	r := newTestRenderer(t, "3.5.0", "", WithRecorder(rec))

	out, err := r.Render([]byte("Python {bokeh-minpy}`v`\n"))
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryProject))
	assert.Contains(t, err.Error(), "role bokeh-minpy at line 1")
	assert.Equal(t, 1, rec.roles[roles.RoleMinPy][metrics.ResultFault])
	assert.Equal(t, 1, rec.documents[false])
}

func TestRender_UnknownRoleStaysLiteral(t *testing.T) {
	rec := newCountingRecorder()
	r := newTestRenderer(t, "3.5.0", descriptor, WithRecorder(rec))

	out, err := r.Render([]byte("Try {bokeh-nope}`x` here.\n"))
	require.NoError(t, err)
	assert.Equal(t, "<p>Try {bokeh-nope}`x` here.</p>\n", string(out.HTML))
	require.Len(t, out.Messages, 1)
	assert.Equal(t, roles.LevelWarning, out.Messages[0].Level)
	assert.Equal(t, 1, rec.roles["bokeh-nope"][metrics.ResultUnknown])
}

func TestRender_IgnoresCodeAndPlainBraces(t *testing.T) {
	r := newTestRenderer(t, "3.5.0", descriptor)

	src := "Inline `{bokeh-issue}`1`` code, a {dict} literal and {bokeh-issue} alone.\n\n" +
		"```\n{bokeh-issue}`2`\n```\n"
	out, err := r.Render([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, anchors(t, out.HTML))
	assert.Empty(t, out.Messages)
	assert.Contains(t, string(out.HTML), "{dict} literal")
}

func TestRender_DoubleBacktickText(t *testing.T) {
	r := newTestRenderer(t, "3.5.0", descriptor)
	out, err := r.Render([]byte("{bokeh-tree}`` src/`odd` ``"))
	require.NoError(t, err)
	got := anchors(t, out.HTML)
	require.Len(t, got, 1)
	assert.Equal(t, "src/`odd`", got[0].Text)
}

func TestRender_EscapesProblematicText(t *testing.T) {
	r := newTestRenderer(t, "3.5.0", descriptor)
	out, err := r.Render([]byte("{bokeh-pull}`<b>`"))
	require.NoError(t, err)
	assert.Contains(t, string(out.HTML), "{bokeh-pull}`&lt;b&gt;`")
	assert.NotContains(t, string(out.HTML), "<b>")
}

func TestScanRole(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		name string
		text string
		raw  string
	}{
		{in: "{bokeh-issue}`12` rest", ok: true, name: "bokeh-issue", text: "12", raw: "{bokeh-issue}`12`"},
		{in: "{a}`x`", ok: true, name: "a", text: "x", raw: "{a}`x`"},
		{in: "{ns:role}`` a`b ``", ok: true, name: "ns:role", text: "a`b", raw: "{ns:role}`` a`b ``"},
		{in: "{r}`  `", ok: true, name: "r", text: "  ", raw: "{r}`  `"},
		{in: "{}`x`"},
		{in: "{-bad}`x`"},
		{in: "{has space}`x`"},
		{in: "{role} `x`"},
		{in: "{role}`unterminated"},
		{in: "{role}``x`"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tok, ok := scanRole([]byte(tt.in))
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.name, tok.name)
			assert.Equal(t, tt.text, tok.text)
			assert.Equal(t, tt.raw, tok.raw)
			assert.Equal(t, len(tt.raw), tok.length)
		})
	}
}
