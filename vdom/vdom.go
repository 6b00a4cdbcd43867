// Package vdom defines the immutable parse tree the HVML tokenizer/parser
// produces (spec §1 names that parser out of scope; this package is the
// narrow interface surface the core needs to walk the tree it hands back).
// It also offers a small fluent Builder so tests can construct fixture
// documents without a real parser, grounded in the literal HVML inputs of
// spec §8's end-to-end scenarios.
package vdom

// NodeKind distinguishes element nodes from the comment/text leaves the
// four-phase dispatcher (spec §4.4) must skip when selecting children.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
)

// Attr is one parsed attribute: a name, an operator (=, +=, -=, %=, ~=, ^=,
// $=, spec §6), and the unevaluated VCM tree for its value. PurC-Go treats
// the VCM tree as an opaque interface{} handed to the vcm.Evaluator
// boundary (spec §1's "out of scope" expression evaluator).
type Attr struct {
	Name     string
	Operator string
	ValueVCM interface{}
}

// Node is one node of the vDOM tree: either an Element (with a tag name,
// attributes, and children) or a Text/Comment leaf.
type Node struct {
	Kind     NodeKind
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
	Parent   *Node
}

// Document is the root of a parsed HVML document.
type Document struct {
	Root *Node // the <hvml> element
}

// Attr looks up an attribute by name on an element node.
func (n *Node) Attr(name string) (Attr, bool) {
	if n == nil {
		return Attr{}, false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// FirstElementChild returns the first Children entry that is an ElementNode
// at or after fromIdx, and its index, or (nil, -1).
func (n *Node) FirstElementChild(fromIdx int) (*Node, int) {
	if n == nil {
		return nil, -1
	}
	for i := fromIdx; i < len(n.Children); i++ {
		if n.Children[i].Kind == ElementNode {
			return n.Children[i], i
		}
	}
	return nil, -1
}

// Ancestors returns the chain of element ancestors starting at n itself and
// walking up to the document root (spec §4.2: scoped-variable lookup climbs
// this exact chain).
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}

// FindChildTag returns the first direct element child with the given tag.
func (n *Node) FindChildTag(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Tag == tag {
			return c
		}
	}
	return nil
}
