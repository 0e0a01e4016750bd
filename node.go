package caret

import "strings"

// Kind classifies a document tree node. The engine dispatches on the kind
// exhaustively: containers hold ordered children, text leaves hold a run of
// characters, and everything else is opaque and skipped by traversal.
type Kind int

const (
	// KindContainer is an ordered, childbearing node with no intrinsic text.
	KindContainer Kind = iota

	// KindText is a leaf node holding an ordered run of characters.
	KindText

	// KindOther is any node the engine does not navigate into. Other nodes
	// are always transparent to traversal and weigh nothing.
	KindOther
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Node is a node of the document tree. The tree is owned by the caller; the
// engine only reads it, except for inserting the reusable placeholder text
// leaf where a caret needs an anchor with no adjacent text.
//
// Text is stored and addressed in runes.
type Node struct {
	kind     Kind
	name     string
	parent   *Node
	children []*Node
	text     []rune

	// singleClosing marks containers with no matching close marker (such as
	// a line break), which occupy one offset unit instead of two.
	singleClosing bool

	// Cached subtree weight, managed by Engine when weight caching is
	// enabled. There is no automatic invalidation; see Engine.InvalidateWeight.
	cachedWeight int
	weightCached bool
}

// NewContainer creates an empty container node with the given tag name.
func NewContainer(name string) *Node {
	return &Node{kind: KindContainer, name: name}
}

// NewVoidContainer creates a single-closing container node, such as a line
// break. It weighs one offset unit instead of two.
func NewVoidContainer(name string) *Node {
	return &Node{kind: KindContainer, name: name, singleClosing: true}
}

// NewText creates a text leaf holding the given content.
func NewText(content string) *Node {
	return &Node{kind: KindText, text: []rune(content)}
}

// NewOther creates an opaque node of the given name. Other nodes are always
// ignored by traversal and weight computation.
func NewOther(name string) *Node {
	return &Node{kind: KindOther, name: name}
}

// Kind returns the node's kind tag.
func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns the node's tag name. Empty for text leaves.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the node's parent, or nil for a detached node or the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// SingleClosing reports whether the node is a single-closing container.
func (n *Node) SingleClosing() bool {
	return n.singleClosing
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the child at index i, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Index returns the node's position among its parent's children, or -1 for a
// node with no parent.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, child := range n.parent.children {
		if child == n {
			return i
		}
	}
	return -1
}

// PrevSibling returns the sibling immediately before this node, or nil.
func (n *Node) PrevSibling() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// NextSibling returns the sibling immediately after this node, or nil.
func (n *Node) NextSibling() *Node {
	i := n.Index()
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// Text returns the text leaf's content. Empty for non-text nodes.
func (n *Node) Text() string {
	return string(n.text)
}

// RuneLen returns the text leaf's content length in runes.
func (n *Node) RuneLen() int {
	return len(n.text)
}

// SetText replaces a text leaf's content. Cached weights on ancestors are
// NOT refreshed; callers that enabled weight caching must invalidate through
// Engine.InvalidateWeight after mutating content.
func (n *Node) SetText(content string) error {
	if n.kind != KindText {
		return ErrNotAText
	}
	n.text = []rune(content)
	return nil
}

// AppendChild adds child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) error {
	if err := n.adoptable(child); err != nil {
		return err
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// InsertChildBefore inserts child immediately before ref among n's children.
func (n *Node) InsertChildBefore(child, ref *Node) error {
	return n.insertChildAt(child, ref, 0)
}

// InsertChildAfter inserts child immediately after ref among n's children.
func (n *Node) InsertChildAfter(child, ref *Node) error {
	return n.insertChildAt(child, ref, 1)
}

func (n *Node) insertChildAt(child, ref *Node, delta int) error {
	if err := n.adoptable(child); err != nil {
		return err
	}
	if ref == nil || ref.parent != n {
		return ErrNotAChild
	}
	child.Detach()
	i := ref.Index() + delta
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	return nil
}

func (n *Node) adoptable(child *Node) error {
	if n.kind != KindContainer {
		return ErrNotAContainer
	}
	if child == nil || child == n {
		return ErrNotAChild
	}
	return nil
}

// Detach removes the node from its parent's child list. A detached node
// keeps its own subtree.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	i := n.Index()
	if i >= 0 {
		n.parent.children = append(n.parent.children[:i], n.parent.children[i+1:]...)
	}
	n.parent = nil
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// ToXML returns an XML-ish rendering of the subtree for debugging and tests.
func ToXML(n *Node) string {
	var b strings.Builder
	writeXML(&b, n)
	return b.String()
}

func writeXML(b *strings.Builder, n *Node) {
	switch n.kind {
	case KindText:
		b.WriteString(xmlEscaper.Replace(string(n.text)))
	case KindContainer:
		if n.singleClosing {
			b.WriteString("<" + n.name + "/>")
			return
		}
		b.WriteString("<" + n.name + ">")
		for _, child := range n.children {
			writeXML(b, child)
		}
		b.WriteString("</" + n.name + ">")
	default:
		b.WriteString("<!--" + n.name + "-->")
	}
}
