package ast

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadReplacement indicates a transformer returned a node that does not fit
// the surrounding context (e.g. a block inside inline content).
var ErrBadReplacement = errors.New("replacement node does not fit context")

// Transformer rewrites a single node. Returning (nil, nil) keeps the node,
// an empty slice deletes it, any other slice splices the replacements in
// place of the node. Children are transformed before their parent, and
// replacement nodes are not revisited.
type Transformer func(Node) ([]Node, error)

// Transform applies fn to every block in the document tree.
func (d *Doc) Transform(fn Transformer) error {
	blocks, err := TransformBlocks(d.Blocks, fn)
	if err != nil {
		return err
	}
	d.Blocks = blocks
	return nil
}

// TransformBlocks applies fn to a block list, splicing replacements.
func TransformBlocks(blocks []Block, fn Transformer) ([]Block, error) {
	out := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		if err := transformChildren(block, fn); err != nil {
			return nil, err
		}
		repl, err := fn(block)
		if err != nil {
			return nil, err
		}
		if repl == nil {
			out = append(out, block)
			continue
		}
		for _, n := range repl {
			b, ok := n.(Block)
			if !ok {
				return nil, fmt.Errorf("%w: %T in block context", ErrBadReplacement, n)
			}
			out = append(out, b)
		}
	}
	return out, nil
}

// TransformInlines applies fn to an inline list, splicing replacements.
func TransformInlines(inlines []Inline, fn Transformer) ([]Inline, error) {
	out := make([]Inline, 0, len(inlines))
	for _, inline := range inlines {
		if err := transformChildren(inline, fn); err != nil {
			return nil, err
		}
		repl, err := fn(inline)
		if err != nil {
			return nil, err
		}
		if repl == nil {
			out = append(out, inline)
			continue
		}
		for _, n := range repl {
			in, ok := n.(Inline)
			if !ok {
				return nil, fmt.Errorf("%w: %T in inline context", ErrBadReplacement, n)
			}
			out = append(out, in)
		}
	}
	return out, nil
}

func transformChildren(n Node, fn Transformer) error {
	var err error
	switch v := n.(type) {
	case *Emph:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Strong:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Link:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Image:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Span:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Quoted:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Plain:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Para:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Header:
		v.Content, err = TransformInlines(v.Content, fn)
	case *Div:
		v.Content, err = TransformBlocks(v.Content, fn)
	case *BulletList:
		err = transformItems(v.Items, fn)
	case *OrderedList:
		err = transformItems(v.Items, fn)
	case *DefinitionList:
		for i := range v.Items {
			v.Items[i].Term, err = TransformInlines(v.Items[i].Term, fn)
			if err != nil {
				return err
			}
			if err = transformItems(v.Items[i].Definitions, fn); err != nil {
				return err
			}
		}
	case *Opaque:
		err = transformOpaque(v, fn)
	}
	return err
}

// transformOpaque descends into the payload of an unmodeled node so that
// blocks and inlines nested in it (table cells, note bodies) are still
// transformed.
func transformOpaque(v *Opaque, fn Transformer) error {
	if len(v.Raw) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(v.Raw, &payload); err != nil {
		return fmt.Errorf("%w: %s payload: %v", ErrDecode, v.Type, err)
	}
	out, err := transformRaw(payload, fn)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", v.Type, err)
	}
	v.Raw = raw
	return nil
}

// transformRaw walks generic JSON, transforming every recognizable node it
// finds and descending into everything else.
func transformRaw(v any, fn Transformer) (any, error) {
	switch val := v.(type) {
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			nodes, spliced, err := transformRawItem(item, fn)
			if err != nil {
				return nil, err
			}
			if spliced {
				out = append(out, nodes...)
				continue
			}
			sub, err := transformRaw(item, fn)
			if err != nil {
				return nil, err
			}
			out = append(out, sub)
		}
		return out, nil
	case map[string]any:
		if c, ok := val["c"]; ok {
			sub, err := transformRaw(c, fn)
			if err != nil {
				return nil, err
			}
			val["c"] = sub
		}
		return val, nil
	}
	return v, nil
}

// transformRawItem decodes a typed node found inside an opaque payload, runs
// the transformer over it and re-encodes the result. spliced is false when
// the item is not a recognizable node.
func transformRawItem(item any, fn Transformer) (nodes []any, spliced bool, err error) {
	m, ok := item.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	tag, _ := m["t"].(string)
	if !inlineTagSet[tag] && !blockTagSet[tag] {
		return nil, false, nil
	}
	raw := rawNode{T: tag}
	if c, ok := m["c"]; ok {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, false, fmt.Errorf("encoding %s payload: %w", tag, err)
		}
		raw.C = data
	}
	if inlineTagSet[tag] {
		inline, err := decodeInline(raw)
		if err != nil {
			return nil, false, err
		}
		repl, err := TransformInlines([]Inline{inline}, fn)
		if err != nil {
			return nil, false, err
		}
		return EncodeInlines(repl), true, nil
	}
	block, err := decodeBlock(raw)
	if err != nil {
		return nil, false, err
	}
	repl, err := TransformBlocks([]Block{block}, fn)
	if err != nil {
		return nil, false, err
	}
	return EncodeBlocks(repl), true, nil
}

var inlineTagSet = map[string]bool{
	"Str": true, "Space": true, "SoftBreak": true, "LineBreak": true,
	"Emph": true, "Strong": true, "Code": true, "Math": true,
	"RawInline": true, "Link": true, "Image": true, "Span": true,
	"Quoted": true,
}

var blockTagSet = map[string]bool{
	"Plain": true, "Para": true, "Header": true, "CodeBlock": true,
	"RawBlock": true, "Div": true, "BulletList": true, "OrderedList": true,
	"DefinitionList": true, "HorizontalRule": true,
}

func transformItems(items [][]Block, fn Transformer) error {
	for i := range items {
		blocks, err := TransformBlocks(items[i], fn)
		if err != nil {
			return err
		}
		items[i] = blocks
	}
	return nil
}

// Walk visits every node depth-first without modifying the tree.
func Walk(n Node, visit func(Node)) {
	visit(n)
	switch v := n.(type) {
	case *Emph:
		walkInlines(v.Content, visit)
	case *Strong:
		walkInlines(v.Content, visit)
	case *Link:
		walkInlines(v.Content, visit)
	case *Image:
		walkInlines(v.Content, visit)
	case *Span:
		walkInlines(v.Content, visit)
	case *Quoted:
		walkInlines(v.Content, visit)
	case *Plain:
		walkInlines(v.Content, visit)
	case *Para:
		walkInlines(v.Content, visit)
	case *Header:
		walkInlines(v.Content, visit)
	case *Div:
		walkBlocks(v.Content, visit)
	case *BulletList:
		for _, item := range v.Items {
			walkBlocks(item, visit)
		}
	case *OrderedList:
		for _, item := range v.Items {
			walkBlocks(item, visit)
		}
	case *DefinitionList:
		for _, item := range v.Items {
			walkInlines(item.Term, visit)
			for _, d := range item.Definitions {
				walkBlocks(d, visit)
			}
		}
	}
}

func walkBlocks(blocks []Block, visit func(Node)) {
	for _, b := range blocks {
		Walk(b, visit)
	}
}

func walkInlines(inlines []Inline, visit func(Node)) {
	for _, in := range inlines {
		Walk(in, visit)
	}
}
