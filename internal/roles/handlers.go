package roles

import (
	"fmt"
	"strconv"
	"strings"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
	"git.home.luguber.info/inful/docroles/internal/project"
)

// Commit links to a commit. The text is not validated.
func Commit(ctx *Context, inv Invocation) (Result, error) {
	return single(makeLink(ctx.Config.repoURL(), inv.RawText, "commit ", "commit", inv.Text, inv.Options)), nil
}

// Issue links to an issue. The text must be a positive integer.
func Issue(ctx *Context, inv Invocation) (Result, error) {
	return numberedLink(ctx, inv, "issue", "#", "issues"), nil
}

// Pull links to a pull request. The text must be a positive integer.
func Pull(ctx *Context, inv Invocation) (Result, error) {
	return numberedLink(ctx, inv, "pull request", "pull request ", "pull"), nil
}

// MinPy emits the minimum supported Python version with the comparison
// operator stripped, e.g. ">=3.10" becomes "3.10". The text is ignored.
func MinPy(ctx *Context, _ Invocation) (Result, error) {
	d, err := loadDescriptor(ctx)
	if err != nil {
		return Result{}, err
	}
	req, err := d.RequiresPython()
	if err != nil {
		return Result{}, err
	}
	return single(Text{Value: strings.TrimLeft(req, ">=")}), nil
}

// Requires emits the runtime dependencies as a bulleted list, in descriptor
// order. The text is ignored.
func Requires(ctx *Context, _ Invocation) (Result, error) {
	d, err := loadDescriptor(ctx)
	if err != nil {
		return Result{}, err
	}
	deps, err := d.Dependencies()
	if err != nil {
		return Result{}, err
	}
	list := BulletList{Items: make([]ListItem, 0, len(deps))}
	for _, dep := range deps {
		list.Items = append(list.Items, ListItem{Children: []Node{Text{Value: dep}}})
	}
	return single(list), nil
}

// Tree links to a path in the source tree. Release versions link to their
// tag; versions containing "-" are development builds and link to the
// default branch. The visible text is the path itself.
func Tree(ctx *Context, inv Invocation) (Result, error) {
	url := fmt.Sprintf("%s/tree/%s/%s", strings.TrimSuffix(ctx.Config.repoURL(), "/"), treeRef(ctx.Config), inv.Text)
	return single(Reference{
		RawText: inv.RawText,
		Text:    inv.Text,
		URI:     url,
		Classes: inv.Options.classes(),
	}), nil
}

func treeRef(c Config) string {
	if strings.Contains(c.Version, "-") {
		return c.defaultBranch()
	}
	return c.Version
}

// numberedLink validates inv.Text as a positive id and links to
// repo/apiType/id, or reports the failure and returns a problematic node.
func numberedLink(ctx *Context, inv Invocation, resource, kind, apiType string) Result {
	id, diag, ok := parseID(inv.Text, resource).Get()
	if !ok {
		reporter := ctx.Reporter
		if reporter == nil {
			reporter = NewMessageLog()
		}
		msg := reporter.Error(diag, inv.Line)
		return Result{
			Nodes:    []Node{Problematic{RawText: inv.RawText, MessageID: msg.ID}},
			Messages: []Message{msg},
		}
	}
	return single(makeLink(ctx.Config.repoURL(), inv.RawText, kind, apiType, strconv.Itoa(id), inv.Options))
}

// parseID parses a positive base-10 integer. Surrounding whitespace, a
// leading sign and underscores between digits (1_000) are accepted; the
// canonical form is produced by the caller.
func parseID(text, resource string) Outcome[int] {
	n, err := strconv.Atoi(stripDigitSeparators(strings.TrimSpace(text)))
	if err != nil || n <= 0 {
		return Err[int](fmt.Sprintf("Github %s number must be a number greater than or equal to 1; %s is invalid.", resource, quoteText(text)))
	}
	return Ok(n)
}

// stripDigitSeparators drops each underscore that sits between two digits.
// Any other underscore is kept so that parsing rejects it.
func stripDigitSeparators(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// quoteText wraps text in single quotes, or double quotes when it contains a
// single quote. The text itself is never escaped.
func quoteText(text string) string {
	if strings.Contains(text, "'") {
		return `"` + text + `"`
	}
	return "'" + text + "'"
}

// makeLink builds a reference whose text is kind+id and whose target is
// repoURL/apiType/id.
func makeLink(repoURL, rawText, kind, apiType, id string, opts Options) Reference {
	return Reference{
		RawText: rawText,
		Text:    kind + id,
		URI:     fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(repoURL, "/"), apiType, id),
		Classes: opts.classes(),
	}
}

func loadDescriptor(ctx *Context) (*project.Descriptor, error) {
	if ctx.Descriptor == nil {
		return nil, foundationerrors.InternalError("no project descriptor source configured").Build()
	}
	return ctx.Descriptor.Load()
}

func (o Options) classes() []string {
	if len(o.Classes) == 0 {
		return nil
	}
	out := make([]string, len(o.Classes))
	copy(out, o.Classes)
	return out
}
