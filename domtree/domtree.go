// Package domtree implements the output-DOM helpers of spec §4.9: the
// primitives every element's ops use to grow the document the renderer
// mirrors. Each primitive (a) mutates an in-process tree and (b) emits the
// corresponding renderer call, unless the stack is rebuilding without a
// renderer attached.
package domtree

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/renderer"
)

// Node is one node of the in-process output DOM: an element (tag + ordered
// attributes + children) or a text leaf.
type Node struct {
	IsText   bool
	Tag      string
	AttrKeys []string
	Attrs    map[string]string
	Text     string
	Children []*Node
	Parent   *Node
	Handle   renderer.Handle // the renderer's handle for this node, once mirrored
}

// Document owns the output DOM's root <html> element.
type Document struct {
	Root *Node
}

// NewDocument builds the <html><head></head><body></body></html> skeleton
// every HVML document starts with (spec E1).
func NewDocument() *Document {
	root := &Node{Tag: "html", Attrs: map[string]string{}}
	head := &Node{Tag: "head", Attrs: map[string]string{}, Parent: root}
	body := &Node{Tag: "body", Attrs: map[string]string{}, Parent: root}
	root.Children = []*Node{head, body}
	return &Document{Root: root}
}

// Tree is the stateful facade every element op calls through: it owns the
// Document, a renderer.Bridge (nil in rebuild-without-renderer mode), and
// the page handle DOM edits are mirrored against.
type Tree struct {
	Doc          *Document
	Bridge       *renderer.Bridge
	Page         renderer.Handle
	NoRenderMode bool
}

func NewTree(doc *Document, bridge *renderer.Bridge, page renderer.Handle) *Tree {
	return &Tree{Doc: doc, Bridge: bridge, Page: page}
}

func (t *Tree) mirror() bool { return !t.NoRenderMode && t.Bridge != nil }

// AppendElement creates a new element child of parent and mirrors an
// appendChild renderer call.
func (t *Tree) AppendElement(parent *Node, tag string) (*Node, *herr.Info) {
	n := &Node{Tag: tag, Attrs: map[string]string{}, Parent: parent}
	parent.Children = append(parent.Children, n)
	if t.mirror() {
		h, err := t.Bridge.AppendChild(parent.Handle, tag)
		if err != nil {
			return n, err
		}
		n.Handle = h
	}
	return n, nil
}

// AppendContent appends a text node under parent and mirrors appendContent.
func (t *Tree) AppendContent(parent *Node, text string) *herr.Info {
	parent.Children = append(parent.Children, &Node{IsText: true, Text: text, Parent: parent})
	if t.mirror() {
		return t.Bridge.AppendContent(parent.Handle, text)
	}
	return nil
}

// DisplaceContent replaces parent's text children with a single new text
// node and mirrors displaceContent.
func (t *Tree) DisplaceContent(parent *Node, text string) *herr.Info {
	kept := parent.Children[:0]
	for _, c := range parent.Children {
		if !c.IsText {
			kept = append(kept, c)
		}
	}
	parent.Children = append(kept, &Node{IsText: true, Text: text, Parent: parent})
	if t.mirror() {
		return t.Bridge.DisplaceContent(parent.Handle, text)
	}
	return nil
}

// SetAttribute sets elem's attribute key=val and mirrors
// updateElementProperty.
func (t *Tree) SetAttribute(elem *Node, key, val string) *herr.Info {
	if _, exists := elem.Attrs[key]; !exists {
		elem.AttrKeys = append(elem.AttrKeys, key)
	}
	elem.Attrs[key] = val
	if t.mirror() {
		return t.Bridge.UpdateElementProperty(elem.Handle, key, val)
	}
	return nil
}

// AddChildChunk parses chunk as an HTML fragment (using golang.org/x/net/html,
// the teacher's own indirect dependency surface promoted to direct use
// here) inside a hidden wrapper and grafts its children onto parent in
// order, appending after existing children.
func (t *Tree) AddChildChunk(parent *Node, chunk string) *herr.Info {
	return t.graft(parent, chunk, false)
}

// SetChildChunk replaces parent's element children with the parsed chunk's
// children.
func (t *Tree) SetChildChunk(parent *Node, chunk string) *herr.Info {
	return t.graft(parent, chunk, true)
}

func (t *Tree) graft(parent *Node, chunk string, replace bool) *herr.Info {
	wrapper := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(chunk), wrapper)
	if err != nil {
		return herr.New(herr.InvalidValue, herr.AtomWrongDataType, err.Error(), herr.CallSite{})
	}
	var grafted []*Node
	for _, hn := range nodes {
		grafted = append(grafted, convertHTMLNode(hn, parent))
	}
	if replace {
		kept := parent.Children[:0]
		for _, c := range parent.Children {
			if c.IsText {
				kept = append(kept, c)
			}
		}
		parent.Children = append(kept, grafted...)
	} else {
		parent.Children = append(parent.Children, grafted...)
	}
	if t.mirror() {
		op := t.Bridge.AppendChild
		if replace {
			op = t.Bridge.DisplaceChild
		}
		for _, g := range grafted {
			if g.IsText {
				continue
			}
			h, cerr := op(parent.Handle, g.Tag)
			if cerr != nil {
				return cerr
			}
			g.Handle = h
		}
	}
	return nil
}

func convertHTMLNode(hn *html.Node, parent *Node) *Node {
	if hn.Type == html.TextNode {
		return &Node{IsText: true, Text: hn.Data, Parent: parent}
	}
	n := &Node{Tag: hn.Data, Attrs: map[string]string{}, Parent: parent}
	for _, a := range hn.Attr {
		n.AttrKeys = append(n.AttrKeys, a.Key)
		n.Attrs[a.Key] = a.Val
	}
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		n.Children = append(n.Children, convertHTMLNode(c, n))
	}
	return n
}

// Serialize renders the document back to an HTML string, used by tests to
// verify spec §8's renderer-parity property.
func (d *Document) Serialize() string {
	var sb strings.Builder
	serializeNode(&sb, d.Root)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.IsText {
		sb.WriteString(n.Text)
		return
	}
	sb.WriteString("<")
	sb.WriteString(n.Tag)
	for _, k := range n.AttrKeys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(n.Attrs[k])
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	for _, c := range n.Children {
		serializeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteString(">")
}
