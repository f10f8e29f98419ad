package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformKeepsNodesOnNil(t *testing.T) {
	t.Parallel()

	doc := &Doc{Blocks: []Block{&Para{Content: Destringify("a b")}}}
	require.NoError(t, doc.Transform(func(Node) ([]Node, error) { return nil, nil }))
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "a b", Stringify(doc.Blocks[0]))
}

func TestTransformDeletesOnEmptySlice(t *testing.T) {
	t.Parallel()

	doc := &Doc{Blocks: []Block{
		&RawBlock{Format: "latex", Text: "drop"},
		&Para{Content: Destringify("keep")},
	}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		if _, ok := n.(*RawBlock); ok {
			return []Node{}, nil
		}
		return nil, nil
	})
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "keep", Stringify(doc.Blocks[0]))
}

func TestTransformSplicesReplacements(t *testing.T) {
	t.Parallel()

	doc := &Doc{Blocks: []Block{&Para{Content: []Inline{
		&Str{Text: "x"},
	}}}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		if s, ok := n.(*Str); ok && s.Text == "x" {
			return []Node{&Str{Text: "y"}, &Space{}, &Str{Text: "z"}}, nil
		}
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "y z", Stringify(doc.Blocks[0]))
}

func TestTransformDoesNotRevisitReplacements(t *testing.T) {
	t.Parallel()

	// a revisit would grow the text on every pass
	doc := &Doc{Blocks: []Block{&Para{Content: []Inline{&Str{Text: "a"}}}}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		if s, ok := n.(*Str); ok {
			return []Node{&Str{Text: s.Text + "!"}}, nil
		}
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a!", Stringify(doc.Blocks[0]))
}

func TestTransformChildrenBeforeParent(t *testing.T) {
	t.Parallel()

	var order []string
	doc := &Doc{Blocks: []Block{&Div{Content: []Block{
		&Para{Content: []Inline{&Str{Text: "inner"}}},
	}}}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		switch n.(type) {
		case *Str:
			order = append(order, "str")
		case *Para:
			order = append(order, "para")
		case *Div:
			order = append(order, "div")
		}
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"str", "para", "div"}, order)
}

func TestTransformDescendsIntoLists(t *testing.T) {
	t.Parallel()

	doc := &Doc{Blocks: []Block{
		&BulletList{Items: [][]Block{
			{&Plain{Content: []Inline{&Str{Text: "old"}}}},
		}},
		&DefinitionList{Items: []Definition{{
			Term:        []Inline{&Str{Text: "old"}},
			Definitions: [][]Block{{&Plain{Content: []Inline{&Str{Text: "old"}}}}},
		}}},
	}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		if s, ok := n.(*Str); ok && s.Text == "old" {
			return []Node{&Str{Text: "new"}}, nil
		}
		return nil, nil
	})
	require.NoError(t, err)

	list := doc.Blocks[0].(*BulletList)
	assert.Equal(t, "new", Stringify(list.Items[0][0]))
	defs := doc.Blocks[1].(*DefinitionList)
	assert.Equal(t, "new", Stringify(defs.Items[0].Term[0]))
	assert.Equal(t, "new", Stringify(defs.Items[0].Definitions[0][0]))
}

func TestTransformDescendsIntoOpaque(t *testing.T) {
	t.Parallel()

	table := &Opaque{Type: "Table", Raw: json.RawMessage(
		`[["",[],[]],[{"t":"Plain","c":[{"t":"Str","c":"old"},{"t":"Space"}]}]]`,
	)}
	doc := &Doc{Blocks: []Block{table}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		if s, ok := n.(*Str); ok && s.Text == "old" {
			return []Node{&Str{Text: "new"}}, nil
		}
		return nil, nil
	})
	require.NoError(t, err)
	assert.Contains(t, string(table.Raw), `"new"`)
	assert.NotContains(t, string(table.Raw), `"old"`)
}

func TestTransformSplicesInsideOpaque(t *testing.T) {
	t.Parallel()

	table := &Opaque{Type: "Table", Raw: json.RawMessage(
		`[{"t":"Para","c":[{"t":"RawInline","c":["latex","\\drop"]}]}]`,
	)}
	doc := &Doc{Blocks: []Block{table}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		if _, ok := n.(*RawInline); ok {
			return []Node{}, nil
		}
		return nil, nil
	})
	require.NoError(t, err)
	assert.NotContains(t, string(table.Raw), "RawInline")
	assert.Contains(t, string(table.Raw), `"Para"`)
}

func TestTransformRejectsBlockInInlineContext(t *testing.T) {
	t.Parallel()

	doc := &Doc{Blocks: []Block{&Para{Content: []Inline{&Str{Text: "x"}}}}}
	err := doc.Transform(func(n Node) ([]Node, error) {
		if _, ok := n.(*Str); ok {
			return []Node{&Para{}}, nil
		}
		return nil, nil
	})
	require.ErrorIs(t, err, ErrBadReplacement)
}

func TestWalkVisitsAllNodes(t *testing.T) {
	t.Parallel()

	var count int
	Walk(&Div{Content: []Block{
		&Para{Content: []Inline{&Str{Text: "a"}, &Space{}, &Str{Text: "b"}}},
		&Header{Level: 1, Content: []Inline{&Str{Text: "h"}}},
	}}, func(Node) { count++ })

	// div + para + 3 inlines + header + 1 inline
	assert.Equal(t, 7, count)
}
