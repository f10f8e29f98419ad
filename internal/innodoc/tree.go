package innodoc

import "fmt"

// ExtractSectionTree splits a flat block list into a section tree at level-1
// headers, recursing into deeper levels. The second return value is content
// that precedes the first header at the top level.
func ExtractSectionTree(blocks []any) ([]*Section, []any) {
	return extractTree(blocks, 1)
}

func extractTree(nodes []any, level int) ([]*Section, []any) {
	var (
		sections   []*Section
		current    *Section
		content    []any
		children   []any
		sectionIdx int
	)

	finalize := func() {
		if current == nil {
			return
		}
		if level <= maxLevels {
			subsections, subcontent := extractTree(children, level+1)
			current.Children = subsections
			current.Content = subcontent
		} else {
			current.Content = children
		}
		sections = append(sections, current)
	}

	for _, n := range nodes {
		c, _ := nodeContent(n).([]any)
		if nodeType(n) == "Header" && len(c) == 3 && headerLevel(c[0]) == level {
			finalize()
			children = nil

			current = &Section{Title: inlineList(c[2])}
			classes := attrClasses(c[1])
			switch {
			case hasClass(classes, "exercises"):
				current.Type = "exercises"
			case hasClass(classes, "test"):
				current.Type = "test"
			}

			// sections are numbered so their order stays stable
			num := fmt.Sprintf("%03d", sectionIdx)
			if id := attrID(c[1]); id != "" {
				current.ID = num + "-" + id
			} else {
				current.ID = num
			}
			sectionIdx++
			continue
		}
		if current == nil {
			content = append(content, n)
		} else {
			children = append(children, n)
		}
	}
	finalize()

	return sections, content
}

// headerLevel reads the numeric level of a Header node; JSON numbers decode
// as float64.
func headerLevel(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

func inlineList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

// SectionIDMap maps the original section identifiers (number prefix
// stripped) to slash-separated section paths.
func SectionIDMap(sections []*Section) map[string]string {
	idMap := make(map[string]string)
	var walk func(s *Section, prefix string)
	walk = func(s *Section, prefix string) {
		path := prefix + s.ID
		idMap[stripNumberPrefix(s.ID)] = path
		for _, child := range s.Children {
			walk(child, path+"/")
		}
	}
	for _, s := range sections {
		walk(s, "")
	}
	return idMap
}

// stripNumberPrefix removes the ordering prefix, e.g. "000-foo" -> "foo".
func stripNumberPrefix(sectionID string) string {
	if len(sectionID) < 3 {
		return ""
	}
	id := sectionID[3:]
	if len(id) > 0 && id[0] == '-' {
		id = id[1:]
	}
	return id
}
