package vdom

// Builder assembles a Document fixture without a real HVML parser, for
// tests exercising the scenarios of spec §8.
type Builder struct {
	stack []*Node
	doc   *Document
}

// NewBuilder starts a document rooted at an <hvml> element.
func NewBuilder() *Builder {
	root := &Node{Kind: ElementNode, Tag: "hvml"}
	return &Builder{stack: []*Node{root}, doc: &Document{Root: root}}
}

func (b *Builder) top() *Node { return b.stack[len(b.stack)-1] }

// Open appends a new element child under the current node and descends
// into it.
func (b *Builder) Open(tag string, attrs ...Attr) *Builder {
	n := &Node{Kind: ElementNode, Tag: tag, Attrs: attrs, Parent: b.top()}
	b.top().Children = append(b.top().Children, n)
	b.stack = append(b.stack, n)
	return b
}

// Text appends a text leaf under the current node.
func (b *Builder) Text(s string) *Builder {
	n := &Node{Kind: TextNode, Text: s, Parent: b.top()}
	b.top().Children = append(b.top().Children, n)
	return b
}

// Close ascends back to the parent of the current node.
func (b *Builder) Close() *Builder {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b
}

// Build returns the finished document.
func (b *Builder) Build() *Document { return b.doc }

// A builds a simple "=" attribute with a literal string VCM (a bare string
// constant, never re-evaluated).
func A(name, literal string) Attr {
	return Attr{Name: name, Operator: "=", ValueVCM: literal}
}
