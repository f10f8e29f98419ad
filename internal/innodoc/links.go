package innodoc

import (
	"fmt"
	"strings"

	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

// RewriteLinks resolves the reference links left by the filter (data-mref,
// data-msref, data-mnref attributes) into section URLs of the form
// /section/<path>#<id>, using the section and element ID maps.
func RewriteLinks(sections []*Section, sectionMap, idMap map[string]string, logger logging.Logger) {
	r := &linkRewriter{sectionMap: sectionMap, idMap: idMap, logger: logger}
	for _, s := range sections {
		r.section(s)
	}
}

type linkRewriter struct {
	sectionMap map[string]string
	idMap      map[string]string
	logger     logging.Logger
}

func (r *linkRewriter) section(s *Section) {
	for _, n := range s.Content {
		r.node(n, s)
	}
	for _, child := range s.Children {
		r.section(child)
	}
}

func (r *linkRewriter) node(n any, s *Section) {
	c, _ := nodeContent(n).([]any)
	switch t := nodeType(n); t {
	case "Link":
		r.link(n, s)
	case "Div":
		if len(c) == 2 {
			r.nodes(c[1], s)
		}
	case "Span":
		r.span(n, s)
	case "Para", "Plain", "Emph", "Strong":
		r.nodes(nodeContent(n), s)
	case "BulletList":
		for _, item := range c {
			r.nodes(item, s)
		}
	case "OrderedList":
		if len(c) == 2 {
			for _, item := range itemList(c[1]) {
				r.nodes(item, s)
			}
		}
	case "Quoted":
		if len(c) == 2 {
			r.nodes(c[1], s)
		}
	case "DefinitionList", "Table":
		r.deep(nodeContent(n), s)
	case "Str", "Space", "SoftBreak", "LineBreak", "Math", "Code",
		"CodeBlock", "Header", "Image", "RawBlock", "RawInline",
		"HorizontalRule",
		"AlignLeft", "AlignRight", "AlignCenter", "AlignDefault",
		"ColWidth", "ColWidthDefault":
	default:
		r.logger.Log(logging.LevelWarning,
			fmt.Sprintf("link rewriting: unknown element %s in section %s", t, s.ID))
	}
}

func (r *linkRewriter) nodes(v any, s *Section) {
	if list, ok := v.([]any); ok {
		for _, n := range list {
			r.node(n, s)
		}
	}
}

func (r *linkRewriter) deep(v any, s *Section) {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			r.deep(item, s)
		}
	case node:
		if _, ok := val["t"]; ok {
			r.node(val, s)
		}
	}
}

func (r *linkRewriter) span(n any, s *Section) {
	c, _ := nodeContent(n).([]any)
	if len(c) != 2 {
		return
	}
	kvs := attrKVs(c[0])
	_, isIndexTerm := kvs["data-index-term"]
	switch {
	case isIndexTerm:
		// index terms stay as they are, even with an empty term value
	case len(kvs) == 0:
		r.nodes(c[1], s)
	case hasClass(attrClasses(c[0]), "question"):
		// question attributes are consumed by the client
	default:
		r.logger.Log(logging.LevelWarning,
			fmt.Sprintf("link rewriting: unknown span in section %s", s.ID))
	}
}

func (r *linkRewriter) link(n any, s *Section) {
	c, _ := nodeContent(n).([]any)
	if len(c) != 3 {
		return
	}
	kvs := attrKVs(c[0])
	switch {
	case kvs["data-mref"] != "":
		// target is an ID; the caption (section or exercise number) is
		// resolved by the client
		r.resolve("MRef", c, s)
		c[1] = []any{}
	case kvs["data-msref"] != "":
		// target is an ID, caption is explicit
		r.resolve("MSRef", c, s)
	case kvs["data-mnref"] != "":
		r.resolve("MNRef", c, s)
		c[1] = []any{}
	}
}

// resolve maps a reference target to a section URL and strips the marker
// attributes. Reports whether the target could be mapped.
func (r *linkRewriter) resolve(cmd string, c []any, s *Section) bool {
	targetPair, ok := c[2].([]any)
	if !ok || len(targetPair) < 1 {
		return false
	}
	target, _ := targetPair[0].(string)
	target = strings.TrimPrefix(target, "#")

	var url string
	if path, ok := r.idMap[target]; ok {
		url = fmt.Sprintf("/section/%s#%s", path, target)
	} else if path, ok := r.sectionMap[target]; ok {
		url = "/section/" + path
	} else {
		r.logger.Log(logging.LevelWarning,
			fmt.Sprintf("found %s: could not map ID=%s in section %s", cmd, target, s.ID))
		return false
	}

	if attr, ok := c[0].([]any); ok && len(attr) == 3 {
		attr[2] = []any{}
	}
	targetPair[0] = url
	r.logger.Log(logging.LevelDebug, fmt.Sprintf("found %s: %q -> %q", cmd, target, url))
	return true
}
