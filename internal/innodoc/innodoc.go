// Package innodoc turns a filtered pandoc document into the innodoc content
// layout: a section tree split at headers, per-section content files, a
// toc.json and a manifest.yml. It operates on the generic JSON form of the
// pandoc AST since it only inspects identifiers and rewrites link targets.
package innodoc

// maxLevels is the deepest header level that becomes its own section
// directory. Deeper headers stay part of their parent's content.
const maxLevels = 3

// Section is one node of the extracted section tree. Title holds pandoc
// inline nodes in generic JSON form. Content is never serialized with the
// tree; it is written to per-section files.
type Section struct {
	ID       string     `json:"id" yaml:"id"`
	Title    []any      `json:"title" yaml:"title"`
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Children []*Section `json:"children,omitempty" yaml:"children,omitempty"`

	Content []any `json:"-" yaml:"-"`
}

// node is a pandoc AST element in generic JSON form.
type node = map[string]any

func nodeType(n any) string {
	if m, ok := n.(node); ok {
		if t, ok := m["t"].(string); ok {
			return t
		}
	}
	return ""
}

func nodeContent(n any) any {
	if m, ok := n.(node); ok {
		return m["c"]
	}
	return nil
}

// attrID extracts the identifier from an attr array [id, [classes], [[k,v]]].
func attrID(attr any) string {
	a, ok := attr.([]any)
	if !ok || len(a) < 1 {
		return ""
	}
	id, _ := a[0].(string)
	return id
}

// attrClasses extracts the class list from an attr array.
func attrClasses(attr any) []string {
	a, ok := attr.([]any)
	if !ok || len(a) < 2 {
		return nil
	}
	raw, ok := a[1].([]any)
	if !ok {
		return nil
	}
	classes := make([]string, 0, len(raw))
	for _, c := range raw {
		if s, ok := c.(string); ok {
			classes = append(classes, s)
		}
	}
	return classes
}

// attrKVs extracts the key/value attributes from an attr array.
func attrKVs(attr any) map[string]string {
	a, ok := attr.([]any)
	if !ok || len(a) < 3 {
		return nil
	}
	raw, ok := a[2].([]any)
	if !ok {
		return nil
	}
	kvs := make(map[string]string, len(raw))
	for _, pair := range raw {
		p, ok := pair.([]any)
		if !ok || len(p) != 2 {
			continue
		}
		k, _ := p[0].(string)
		v, _ := p[1].(string)
		kvs[k] = v
	}
	return kvs
}

func hasClass(classes []string, want string) bool {
	for _, c := range classes {
		if c == want {
			return true
		}
	}
	return false
}

// ConcatenateStrings flattens Str and Space inlines into a plain string,
// used for log output of section titles.
func ConcatenateStrings(inlines []any) string {
	out := ""
	for _, n := range inlines {
		switch nodeType(n) {
		case "Str":
			if s, ok := nodeContent(n).(string); ok {
				out += s
			}
		case "Space":
			out += " "
		}
	}
	return out
}
