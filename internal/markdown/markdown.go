package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docroles/internal/logfields"
	"git.home.luguber.info/inful/docroles/internal/metrics"
	"git.home.luguber.info/inful/docroles/internal/roles"
)

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte, opts Options) (gmast.Node, error) {
	md := goldmark.New(goldmark.WithExtensions(opts.Extensions...))
	root := md.Parser().Parse(text.NewReader(body))
	return root, nil
}

// ExtractLinks parses a Markdown body and extracts link-like constructs.
//
// This is an analysis API; it does not attempt to re-render Markdown.
func ExtractLinks(body []byte, opts Options) ([]Link, error) {
	md := goldmark.New(goldmark.WithExtensions(opts.Extensions...))
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			if role, ok := node.Parent().(*Role); ok {
				links = append(links, Link{Kind: LinkKindRole, Destination: string(node.Destination), Role: role.Name})
				break
			}
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	return links, nil
}

// Output is a rendered document.
type Output struct {
	HTML     []byte
	Messages []roles.Message
}

// Renderer converts Markdown with roles to HTML.
type Renderer struct {
	md       goldmark.Markdown
	recorder metrics.Recorder
	logger   *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) RendererOption {
	return func(r *Renderer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the logger system messages are written to.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer returns a Renderer dispatching roles to reg.
func NewRenderer(reg *roles.Registry, cfg roles.Config, src roles.DescriptorSource, opts ...RendererOption) *Renderer {
	r := &Renderer{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.md = goldmark.New(goldmark.WithExtensions(NewRoleExtension(reg, cfg, src, r.recorder)))
	return r
}

// Render converts source to HTML. Authoring errors in roles are returned as
// messages alongside the output; a handler fault aborts the document and is
// returned as the error.
func (r *Renderer) Render(source []byte) (*Output, error) {
	start := time.Now()
	defer func() { r.recorder.ObserveRenderDuration(time.Since(start)) }()

	pc := parser.NewContext()
	st := stateFrom(pc)
	doc := r.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	if len(st.faults) > 0 {
		r.recorder.IncDocumentsRendered(false)
		return nil, fmt.Errorf("render aborted: %w", errors.Join(st.faults...))
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		r.recorder.IncDocumentsRendered(false)
		return nil, err
	}

	msgs := st.log.Messages()
	for _, m := range msgs {
		level := slog.LevelWarn
		if m.Level == roles.LevelError {
			level = slog.LevelError
		}
		r.logger.LogAttrs(context.Background(), level, m.Text, logfields.Line(m.Line), slog.String("id", m.ID))
	}
	r.recorder.IncDocumentsRendered(true)
	return &Output{HTML: buf.Bytes(), Messages: msgs}, nil
}
