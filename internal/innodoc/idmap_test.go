package innodoc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

func collectLogs() (logging.Logger, *[]string) {
	var logs []string
	return logging.Func(func(level, message string) {
		logs = append(logs, level+" "+message)
	}), &logs
}

func attr(id string, classes []string, kvs [][2]string) []any {
	classList := []any{}
	for _, c := range classes {
		classList = append(classList, c)
	}
	kvList := []any{}
	for _, kv := range kvs {
		kvList = append(kvList, []any{kv[0], kv[1]})
	}
	return []any{id, classList, kvList}
}

func TestElementIDMap(t *testing.T) {
	t.Parallel()

	sections := []*Section{{
		ID: "000-intro",
		Content: []any{
			header(3, "content-1", nil, "Content"),
			node{"t": "Div", "c": []any{
				attr("box-1", []string{"info"}, nil),
				[]any{
					node{"t": "Para", "c": []any{
						node{"t": "Span", "c": []any{
							attr("q-1", []string{"question"}, nil), []any{},
						}},
						node{"t": "Image", "c": []any{
							attr("img-1", nil, nil), []any{}, []any{"f.png", ""},
						}},
					}},
				},
			}},
			node{"t": "CodeBlock", "c": []any{attr("code-1", nil, nil), "x"}},
			node{"t": "Para", "c": []any{
				node{"t": "Link", "c": []any{
					attr("vid-1", []string{"video"}, nil), []any{}, []any{"v.mp4", ""},
				}},
				node{"t": "Link", "c": []any{
					attr("plain-link", nil, nil), []any{}, []any{"http://x", ""},
				}},
			}},
		},
		Children: []*Section{{
			ID: "000-basics",
			Content: []any{
				node{"t": "BulletList", "c": []any{
					[]any{node{"t": "Plain", "c": []any{
						node{"t": "Span", "c": []any{attr("deep-1", nil, nil), []any{}}},
					}}},
				}},
			},
		}},
	}}

	logger, logs := collectLogs()
	idMap := ElementIDMap(sections, logger)

	assert.Equal(t, map[string]string{
		"content-1": "000-intro",
		"box-1":     "000-intro",
		"q-1":       "000-intro",
		"img-1":     "000-intro",
		"code-1":    "000-intro",
		"vid-1":     "000-intro",
		"deep-1":    "000-intro/000-basics",
	}, idMap)
	assert.Empty(t, *logs)
}

func TestElementIDMapWarnsOnUnknownElement(t *testing.T) {
	t.Parallel()

	sections := []*Section{{
		ID:      "000-x",
		Content: []any{node{"t": "Mystery", "c": []any{}}},
	}}
	logger, logs := collectLogs()
	ElementIDMap(sections, logger)

	assert.Len(t, *logs, 1)
	assert.Contains(t, (*logs)[0], "unknown element Mystery")
}

func TestElementIDMapTableDeepScan(t *testing.T) {
	t.Parallel()

	// table cell structure varies between pandoc versions; identifiers are
	// picked up regardless of nesting depth
	sections := []*Section{{
		ID: "000-x",
		Content: []any{
			node{"t": "Table", "c": []any{
				[]any{[]any{
					node{"t": "Plain", "c": []any{
						node{"t": "Span", "c": []any{attr("cell-1", nil, nil), []any{}}},
					}},
				}},
			}},
		},
	}}
	logger, _ := collectLogs()
	idMap := ElementIDMap(sections, logger)
	assert.Equal(t, "000-x", idMap["cell-1"])
}
