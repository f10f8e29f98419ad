package ast

// MetaValue is a document metadata value.
type MetaValue interface {
	metaValue()
}

// MetaString is a plain string metadata value.
type MetaString string

// MetaBool is a boolean metadata value.
type MetaBool bool

// MetaInlines is a metadata value of inline content.
type MetaInlines []Inline

// MetaBlocks is a metadata value of block content.
type MetaBlocks []Block

// MetaList is a list of metadata values.
type MetaList []MetaValue

// MetaMap is a string-keyed metadata mapping. The document metadata root is
// a MetaMap.
type MetaMap map[string]MetaValue

func (MetaString) metaValue()  {}
func (MetaBool) metaValue()    {}
func (MetaInlines) metaValue() {}
func (MetaBlocks) metaValue()  {}
func (MetaList) metaValue()    {}
func (MetaMap) metaValue()     {}

// String returns the text of a MetaString or MetaInlines value, "" otherwise.
func (m MetaMap) String(key string) string {
	switch v := m[key].(type) {
	case MetaString:
		return string(v)
	case MetaInlines:
		return Stringify(inlinesToNodes(v)...)
	}
	return ""
}

func inlinesToNodes(inlines []Inline) []Node {
	nodes := make([]Node, len(inlines))
	for i, in := range inlines {
		nodes[i] = in
	}
	return nodes
}
