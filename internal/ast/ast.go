// Package ast implements the pandoc document AST: typed inline and block
// nodes, the JSON wire codec and a splice-capable tree transformer.
//
// Only the node types the mintmod filter produces or inspects are modeled.
// Everything else (tables, citations, ...) round-trips through Opaque nodes
// so unknown content is never lost.
package ast

import "encoding/json"

// Node is any element of the document tree.
type Node interface {
	node()
}

// Inline is an inline-level element (text, math, links, ...).
type Inline interface {
	Node
	inline()
}

// Block is a block-level element (paragraphs, headers, divs, ...).
type Block interface {
	Node
	block()
}

// Math types as used in pandoc JSON.
const (
	InlineMath  = "InlineMath"
	DisplayMath = "DisplayMath"
)

// Str is a text fragment without whitespace.
type Str struct {
	Text string
}

// Space is a single inter-word space.
type Space struct{}

// SoftBreak is a soft line break.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Emph is emphasized text.
type Emph struct {
	Content []Inline
}

// Strong is strongly emphasized text.
type Strong struct {
	Content []Inline
}

// Code is inline verbatim text.
type Code struct {
	Attr Attr
	Text string
}

// Math holds TeX math. Type is InlineMath or DisplayMath.
type Math struct {
	Type string
	Text string
}

// RawInline is raw content in a given format (e.g. "latex", "html").
type RawInline struct {
	Format string
	Text   string
}

// Link is a hyperlink with inline caption.
type Link struct {
	Attr    Attr
	Content []Inline
	Target  string
	Title   string
}

// Image is an image reference with inline description.
type Image struct {
	Attr    Attr
	Content []Inline
	Target  string
	Title   string
}

// Span is a generic inline container carrying attributes.
type Span struct {
	Attr    Attr
	Content []Inline
}

// Quote types as used in pandoc JSON.
const (
	SingleQuote = "SingleQuote"
	DoubleQuote = "DoubleQuote"
)

// Quoted is quoted text.
type Quoted struct {
	QuoteType string
	Content   []Inline
}

// Plain is a block of inlines without paragraph semantics.
type Plain struct {
	Content []Inline
}

// Para is a paragraph.
type Para struct {
	Content []Inline
}

// Header is a section heading of the given level.
type Header struct {
	Level   int
	Attr    Attr
	Content []Inline
}

// CodeBlock is a verbatim block.
type CodeBlock struct {
	Attr Attr
	Text string
}

// RawBlock is a raw block in a given format.
type RawBlock struct {
	Format string
	Text   string
}

// Div is a generic block container carrying attributes.
type Div struct {
	Attr    Attr
	Content []Block
}

// BulletList is an unordered list. Each item is a block list.
type BulletList struct {
	Items [][]Block
}

// ListAttrs describe ordered list numbering.
type ListAttrs struct {
	Start     int
	Style     string
	Delimiter string
}

// DefaultListAttrs returns the pandoc defaults for ordered lists.
func DefaultListAttrs() ListAttrs {
	return ListAttrs{Start: 1, Style: "Decimal", Delimiter: "Period"}
}

// OrderedList is a numbered list.
type OrderedList struct {
	Attrs ListAttrs
	Items [][]Block
}

// Definition is a single term with its definitions.
type Definition struct {
	Term        []Inline
	Definitions [][]Block
}

// DefinitionList is a list of terms and definitions.
type DefinitionList struct {
	Items []Definition
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// Opaque preserves a node type the package does not model. Raw holds the
// original "c" payload verbatim; it is nil for content-less nodes.
// Opaque satisfies both Inline and Block since the wire format does not
// distinguish where it occurred.
type Opaque struct {
	Type string
	Raw  json.RawMessage
}

func (*Str) node()            {}
func (*Space) node()          {}
func (*SoftBreak) node()      {}
func (*LineBreak) node()      {}
func (*Emph) node()           {}
func (*Strong) node()         {}
func (*Code) node()           {}
func (*Math) node()           {}
func (*RawInline) node()      {}
func (*Link) node()           {}
func (*Image) node()          {}
func (*Span) node()           {}
func (*Quoted) node()         {}
func (*Plain) node()          {}
func (*Para) node()           {}
func (*Header) node()         {}
func (*CodeBlock) node()      {}
func (*RawBlock) node()       {}
func (*Div) node()            {}
func (*BulletList) node()     {}
func (*OrderedList) node()    {}
func (*DefinitionList) node() {}
func (*HorizontalRule) node() {}
func (*Opaque) node()         {}

func (*Str) inline()       {}
func (*Space) inline()     {}
func (*SoftBreak) inline() {}
func (*LineBreak) inline() {}
func (*Emph) inline()      {}
func (*Strong) inline()    {}
func (*Code) inline()      {}
func (*Math) inline()      {}
func (*RawInline) inline() {}
func (*Link) inline()      {}
func (*Image) inline()     {}
func (*Span) inline()      {}
func (*Quoted) inline()    {}
func (*Opaque) inline()    {}

func (*Plain) block()          {}
func (*Para) block()           {}
func (*Header) block()         {}
func (*CodeBlock) block()      {}
func (*RawBlock) block()       {}
func (*Div) block()            {}
func (*BulletList) block()     {}
func (*OrderedList) block()    {}
func (*DefinitionList) block() {}
func (*HorizontalRule) block() {}
func (*Opaque) block()         {}

// Doc is a complete pandoc document.
type Doc struct {
	APIVersion []int
	Meta       MetaMap
	Blocks     []Block
}

// DefaultAPIVersion is used when constructing documents from scratch.
var DefaultAPIVersion = []int{1, 22}
