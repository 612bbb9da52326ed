package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docroles/internal/metrics"
	"git.home.luguber.info/inful/docroles/internal/roles"
)

// RoleExtension teaches goldmark the {role-name}`text` inline syntax. Each
// occurrence is dispatched to the handler registered under role-name.
type RoleExtension struct {
	registry   *roles.Registry
	config     roles.Config
	descriptor roles.DescriptorSource
	recorder   metrics.Recorder
}

// NewRoleExtension returns an extension dispatching to reg. A nil recorder
// records nothing.
func NewRoleExtension(reg *roles.Registry, cfg roles.Config, src roles.DescriptorSource, rec metrics.Recorder) *RoleExtension {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &RoleExtension{registry: reg, config: cfg, descriptor: src, recorder: rec}
}

// Extend implements goldmark.Extender.
func (e *RoleExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(util.Prioritized(&roleParser{ext: e}, 150)),
		parser.WithASTTransformers(util.Prioritized(roleBlockTransformer{}, 100)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&roleHTMLRenderer{}, 500),
	))
}

var stateKey = parser.NewContextKey()

// renderState is the per-document state: one message log and the faults
// raised by handlers.
type renderState struct {
	log    *roles.MessageLog
	faults []error
}

func stateFrom(pc parser.Context) *renderState {
	if st, ok := pc.Get(stateKey).(*renderState); ok {
		return st
	}
	st := &renderState{log: roles.NewMessageLog()}
	pc.Set(stateKey, st)
	return st
}

type roleParser struct {
	ext *RoleExtension
}

func (p *roleParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *roleParser) Parse(_ gmast.Node, block text.Reader, pc parser.Context) gmast.Node {
	line, segment := block.PeekLine()
	tok, ok := scanRole(line)
	if !ok {
		return nil
	}
	lineNo := bytes.Count(block.Source()[:segment.Start], []byte{'\n'}) + 1
	block.Advance(tok.length)
	return p.ext.invoke(stateFrom(pc), tok, lineNo)
}

func (e *RoleExtension) invoke(st *renderState, tok roleToken, line int) gmast.Node {
	handler, ok := e.registry.Lookup(tok.name)
	if !ok {
		st.log.Warning(fmt.Sprintf("Unknown interpreted text role %q.", tok.name), line)
		e.recorder.IncRoleInvocation(tok.name, metrics.ResultUnknown)
		return rawString(tok.raw)
	}

	ctx := &roles.Context{
		Config:     e.config,
		Reporter:   st.log,
		Descriptor: e.descriptor,
	}
	res, err := handler(ctx, roles.Invocation{
		Name:    tok.name,
		RawText: tok.raw,
		Text:    tok.text,
		Line:    line,
	})
	if err != nil {
		st.faults = append(st.faults, fmt.Errorf("role %s at line %d: %w", tok.name, line, err))
		e.recorder.IncRoleInvocation(tok.name, metrics.ResultFault)
		return rawString(tok.raw)
	}

	if len(res.Messages) > 0 {
		e.recorder.IncRoleInvocation(tok.name, metrics.ResultInvalid)
	} else {
		e.recorder.IncRoleInvocation(tok.name, metrics.ResultOK)
	}

	container := NewRole(tok.name)
	for _, n := range res.Nodes {
		container.AppendChild(container, toAST(n))
	}
	return container
}

// toAST converts a role output node into goldmark nodes.
func toAST(n roles.Node) gmast.Node {
	switch v := n.(type) {
	case roles.Text:
		return rawString(v.Value)
	case roles.Reference:
		link := gmast.NewLink()
		link.Destination = []byte(v.URI)
		link.SetAttributeString("class", []byte(strings.Join(append([]string{"reference", "external"}, v.Classes...), " ")))
		link.AppendChild(link, rawString(v.Text))
		return link
	case roles.BulletList:
		list := &RoleList{}
		for _, item := range v.Items {
			list.AppendChild(list, toAST(item))
		}
		return list
	case roles.ListItem:
		item := &RoleListItem{}
		for _, child := range v.Children {
			item.AppendChild(item, toAST(child))
		}
		return item
	case roles.Problematic:
		return &Problematic{RawText: v.RawText, MessageID: v.MessageID}
	default:
		return rawString(fmt.Sprintf("%v", v))
	}
}

// rawString is text shown exactly as given. Only HTML special characters
// are escaped; entities and backslash escapes are not resolved.
func rawString(s string) *gmast.String {
	str := gmast.NewString([]byte(s))
	str.SetRaw(true)
	return str
}

// roleBlockTransformer moves a role that produced a list out of its
// paragraph when the role is the paragraph's only content. A list cannot
// be nested in <p>.
type roleBlockTransformer struct{}

func (roleBlockTransformer) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var lift []*gmast.Paragraph
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		para, ok := n.(*gmast.Paragraph)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if soleListRole(para, source) != nil {
			lift = append(lift, para)
		}
		return gmast.WalkSkipChildren, nil
	})

	for _, para := range lift {
		block := &RoleBlock{}
		block.AppendChild(block, soleListRole(para, source))
		parent := para.Parent()
		parent.ReplaceChild(parent, para, block)
	}
}

// soleListRole returns the Role that is para's only non-blank child, if
// that role produced a RoleList.
func soleListRole(para *gmast.Paragraph, source []byte) *Role {
	var role *Role
	for c := para.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok && len(bytes.TrimSpace(t.Segment.Value(source))) == 0 {
			continue
		}
		r, ok := c.(*Role)
		if !ok || role != nil {
			return nil
		}
		role = r
	}
	if role == nil {
		return nil
	}
	for c := role.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == KindRoleList {
			return role
		}
	}
	return nil
}

// roleToken is one scanned {name}`text` occurrence.
type roleToken struct {
	name   string
	text   string
	raw    string
	length int
}

// scanRole matches {name}`text` at the start of line. The text may be
// delimited by any run of backticks, as in a code span; a single space
// padding both ends is stripped.
func scanRole(line []byte) (roleToken, bool) {
	if len(line) < 4 || line[0] != '{' {
		return roleToken{}, false
	}
	end := bytes.IndexByte(line, '}')
	if end < 2 || !validRoleName(line[1:end]) {
		return roleToken{}, false
	}

	open := end + 1
	ticks := 0
	for open+ticks < len(line) && line[open+ticks] == '`' {
		ticks++
	}
	if ticks == 0 {
		return roleToken{}, false
	}

	start := open + ticks
	for i := start; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}
		run := 0
		for i+run < len(line) && line[i+run] == '`' {
			run++
		}
		if run == ticks {
			content := line[start:i]
			if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && len(bytes.TrimSpace(content)) > 0 {
				content = content[1 : len(content)-1]
			}
			return roleToken{
				name:   string(line[1:end]),
				text:   string(content),
				raw:    string(line[:i+run]),
				length: i + run,
			}, true
		}
		i += run
	}
	return roleToken{}, false
}

func validRoleName(name []byte) bool {
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case i > 0 && (c == '-' || c == '_' || c == '.' || c == ':' || c == '+'):
		default:
			return false
		}
	}
	return len(name) > 0
}

type roleHTMLRenderer struct{}

func (r *roleHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindRole, r.renderRole)
	reg.Register(KindRoleBlock, r.renderRole)
	reg.Register(KindRoleList, r.renderList)
	reg.Register(KindRoleListItem, r.renderListItem)
	reg.Register(KindProblematic, r.renderProblematic)
}

func (r *roleHTMLRenderer) renderRole(_ util.BufWriter, _ []byte, _ gmast.Node, _ bool) (gmast.WalkStatus, error) {
	return gmast.WalkContinue, nil
}

func (r *roleHTMLRenderer) renderList(w util.BufWriter, _ []byte, _ gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<ul class=\"simple\">\n")
	} else {
		_, _ = w.WriteString("</ul>\n")
	}
	return gmast.WalkContinue, nil
}

func (r *roleHTMLRenderer) renderListItem(w util.BufWriter, _ []byte, _ gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<li>")
	} else {
		_, _ = w.WriteString("</li>\n")
	}
	return gmast.WalkContinue, nil
}

func (r *roleHTMLRenderer) renderProblematic(w util.BufWriter, _ []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	n := node.(*Problematic)
	_, _ = w.WriteString("<a href=\"#")
	_, _ = w.Write(util.EscapeHTML([]byte(n.MessageID)))
	_, _ = w.WriteString("\" class=\"problematic\">")
	_, _ = w.Write(util.EscapeHTML([]byte(n.RawText)))
	_, _ = w.WriteString("</a>")
	return gmast.WalkSkipChildren, nil
}
