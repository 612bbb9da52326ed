package roles

// Node is an element of the output tree a role produces.
type Node interface {
	roleNode()
}

// Text is plain inline text.
type Text struct {
	Value string
}

// Reference is a hyperlink. RawText is the role token it replaces.
type Reference struct {
	RawText string
	Text    string
	URI     string
	Classes []string
}

// BulletList is an unordered list.
type BulletList struct {
	Items []ListItem
}

// ListItem is one entry of a BulletList.
type ListItem struct {
	Children []Node
}

// Problematic marks role text that failed validation. MessageID refers to the
// system message describing the failure.
type Problematic struct {
	RawText   string
	MessageID string
}

func (Text) roleNode()        {}
func (Reference) roleNode()   {}
func (BulletList) roleNode()  {}
func (ListItem) roleNode()    {}
func (Problematic) roleNode() {}

// Result is what a role hands back: nodes to insert and system messages.
// Either may be empty.
type Result struct {
	Nodes    []Node
	Messages []Message
}

// single wraps one node in a Result with no messages.
func single(n Node) Result {
	return Result{Nodes: []Node{n}}
}
