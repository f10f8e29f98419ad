package innodoc

import (
	"fmt"

	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

// ElementIDMap maps element identifiers (headers, divs, spans, images,
// videos, code blocks) to the path of the section containing them. Link
// rewriting resolves reference targets through this map.
func ElementIDMap(sections []*Section, logger logging.Logger) map[string]string {
	m := &idMapper{idMap: make(map[string]string), logger: logger}
	for _, s := range sections {
		m.section(s, "")
	}
	return m.idMap
}

type idMapper struct {
	idMap  map[string]string
	logger logging.Logger
}

func (m *idMapper) section(s *Section, prefix string) {
	path := prefix + s.ID
	for _, n := range s.Content {
		m.node(n, path)
	}
	for _, child := range s.Children {
		m.section(child, path+"/")
	}
}

func (m *idMapper) record(id, path string) {
	if id != "" {
		m.idMap[id] = path
	}
}

func (m *idMapper) node(n any, path string) {
	c, _ := nodeContent(n).([]any)
	switch t := nodeType(n); t {
	case "Header":
		if len(c) == 3 {
			m.record(attrID(c[1]), path)
			m.nodes(c[2], path)
		}
	case "Div", "Span":
		if len(c) == 2 {
			m.record(attrID(c[0]), path)
			m.nodes(c[1], path)
		}
	case "Image", "CodeBlock":
		if len(c) > 0 {
			m.record(attrID(c[0]), path)
		}
	case "Link":
		// only videos carry referencable link identifiers
		if len(c) > 0 && hasClass(attrClasses(c[0]), "video") {
			m.record(attrID(c[0]), path)
		}
	case "Para", "Plain", "Emph", "Strong":
		m.nodes(nodeContent(n), path)
	case "BulletList":
		for _, item := range c {
			m.nodes(item, path)
		}
	case "OrderedList":
		if len(c) == 2 {
			for _, item := range itemList(c[1]) {
				m.nodes(item, path)
			}
		}
	case "Quoted":
		if len(c) == 2 {
			m.nodes(c[1], path)
		}
	case "DefinitionList", "Table":
		// cell structure differs between pandoc versions; a deep scan
		// finds all nested elements regardless
		m.deep(nodeContent(n), path)
	case "Str", "Space", "SoftBreak", "LineBreak", "Math",
		"Code", "RawBlock", "RawInline", "HorizontalRule",
		"AlignLeft", "AlignRight", "AlignCenter", "AlignDefault",
		"ColWidth", "ColWidthDefault":
	default:
		m.logger.Log(logging.LevelWarning,
			fmt.Sprintf("element ID map: unknown element %s in section %s", t, path))
	}
}

func (m *idMapper) nodes(v any, path string) {
	if list, ok := v.([]any); ok {
		for _, n := range list {
			m.node(n, path)
		}
	}
}

// deep walks arbitrarily nested arrays, dispatching every element that looks
// like a tagged pandoc node.
func (m *idMapper) deep(v any, path string) {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			m.deep(item, path)
		}
	case node:
		if _, ok := val["t"]; ok {
			m.node(val, path)
		}
	}
}

func itemList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}
