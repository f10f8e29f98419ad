package ast

import "strings"

// Destringify splits a string on whitespace into Str and Space nodes.
func Destringify(s string) []Inline {
	words := strings.Fields(s)
	inlines := make([]Inline, 0, len(words)*2)
	for i, word := range words {
		inlines = append(inlines, &Str{Text: word})
		if i != len(words)-1 {
			inlines = append(inlines, &Space{})
		}
	}
	return inlines
}

// Stringify concatenates the text content of the given nodes.
func Stringify(nodes ...Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		Walk(n, func(child Node) {
			switch v := child.(type) {
			case *Str:
				sb.WriteString(v.Text)
			case *Space, *SoftBreak:
				sb.WriteString(" ")
			case *LineBreak:
				sb.WriteString("\n")
			case *Code:
				sb.WriteString(v.Text)
			case *Math:
				sb.WriteString(v.Text)
			}
		})
	}
	return sb.String()
}

// ToInline converts any node to inline element(s). Some information may be
// lost. Block containers collapse to a Span carrying the given classes and
// attributes; a single child collapses without wrapping.
func ToInline(n Node, classes []string, kvs [][2]string) Inline {
	if len(classes) == 0 {
		if a, ok := attrOf(n); ok {
			classes = a.Classes
		}
	}
	if len(kvs) == 0 {
		if a, ok := attrOf(n); ok {
			kvs = a.KVs
		}
	}

	switch v := n.(type) {
	case Inline:
		return v
	case *CodeBlock:
		return &Code{Attr: Attr{Classes: classes, KVs: kvs}, Text: v.Text}
	case *RawBlock:
		return &RawInline{Format: v.Format, Text: v.Text}
	}

	var children []Node
	switch v := n.(type) {
	case *Plain:
		children = inlineNodes(v.Content)
	case *Para:
		children = inlineNodes(v.Content)
	case *Header:
		children = inlineNodes(v.Content)
	case *Div:
		children = blockNodes(v.Content)
	case NodeList:
		children = v
	}

	// don't nest spans more than necessary
	if len(children) == 1 {
		return ToInline(children[0], classes, kvs)
	}

	span := &Span{Attr: Attr{Classes: classes, KVs: kvs}}
	for _, child := range children {
		span.Content = append(span.Content, ToInline(child, classes, kvs))
	}
	return span
}

// NodeList lets a plain slice of nodes take part in ToInline conversion.
type NodeList []Node

func (NodeList) node() {}

func attrOf(n Node) (Attr, bool) {
	switch v := n.(type) {
	case *Code:
		return v.Attr, true
	case *Link:
		return v.Attr, true
	case *Image:
		return v.Attr, true
	case *Span:
		return v.Attr, true
	case *Header:
		return v.Attr, true
	case *CodeBlock:
		return v.Attr, true
	case *Div:
		return v.Attr, true
	}
	return Attr{}, false
}

// AttrPtr returns a pointer to the node's attributes, or nil when the node
// carries none.
func AttrPtr(n Node) *Attr {
	switch v := n.(type) {
	case *Code:
		return &v.Attr
	case *Link:
		return &v.Attr
	case *Image:
		return &v.Attr
	case *Span:
		return &v.Attr
	case *Header:
		return &v.Attr
	case *CodeBlock:
		return &v.Attr
	case *Div:
		return &v.Attr
	}
	return nil
}

// SetIdentifier updates the node's identifier if it carries attributes and
// reports whether it did.
func SetIdentifier(n Node, identifier string) bool {
	if a := AttrPtr(n); a != nil {
		a.Identifier = identifier
		return true
	}
	return false
}

// IsBlock reports whether n is a block-level node. Opaque nodes count as
// blocks since the filter only meets them in block context.
func IsBlock(n Node) bool {
	_, inline := n.(Inline)
	_, block := n.(Block)
	return block && (!inline || isOpaque(n))
}

func isOpaque(n Node) bool {
	_, ok := n.(*Opaque)
	return ok
}

func inlineNodes(inlines []Inline) []Node {
	nodes := make([]Node, len(inlines))
	for i, in := range inlines {
		nodes[i] = in
	}
	return nodes
}

func blockNodes(blocks []Block) []Node {
	nodes := make([]Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b
	}
	return nodes
}
