package ast

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode indicates malformed pandoc JSON input.
var ErrDecode = errors.New("malformed pandoc JSON")

type rawNode struct {
	T string          `json:"t"`
	C json.RawMessage `json:"c,omitempty"`
}

// DecodeDoc parses a complete pandoc JSON document.
func DecodeDoc(data []byte) (*Doc, error) {
	var raw struct {
		APIVersion []int                      `json:"pandoc-api-version"`
		Meta       map[string]json.RawMessage `json:"meta"`
		Blocks     []rawNode                  `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	meta := make(MetaMap, len(raw.Meta))
	for key, val := range raw.Meta {
		mv, err := decodeMetaValue(val)
		if err != nil {
			return nil, fmt.Errorf("meta %q: %w", key, err)
		}
		meta[key] = mv
	}
	blocks, err := decodeBlocks(raw.Blocks)
	if err != nil {
		return nil, err
	}
	version := raw.APIVersion
	if len(version) == 0 {
		version = DefaultAPIVersion
	}
	return &Doc{APIVersion: version, Meta: meta, Blocks: blocks}, nil
}

// EncodeJSON serializes the document back to pandoc JSON.
func (d *Doc) EncodeJSON() ([]byte, error) {
	version := d.APIVersion
	if len(version) == 0 {
		version = DefaultAPIVersion
	}
	meta := make(map[string]any, len(d.Meta))
	for key, val := range d.Meta {
		meta[key] = encodeMetaValue(val)
	}
	doc := map[string]any{
		"pandoc-api-version": version,
		"meta":               meta,
		"blocks":             EncodeBlocks(d.Blocks),
	}
	return json.Marshal(doc)
}

func decodeMetaValue(data json.RawMessage) (MetaValue, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch raw.T {
	case "MetaString":
		var s string
		if err := json.Unmarshal(raw.C, &s); err != nil {
			return nil, fmt.Errorf("%w: MetaString: %v", ErrDecode, err)
		}
		return MetaString(s), nil
	case "MetaBool":
		var b bool
		if err := json.Unmarshal(raw.C, &b); err != nil {
			return nil, fmt.Errorf("%w: MetaBool: %v", ErrDecode, err)
		}
		return MetaBool(b), nil
	case "MetaInlines":
		var nodes []rawNode
		if err := json.Unmarshal(raw.C, &nodes); err != nil {
			return nil, fmt.Errorf("%w: MetaInlines: %v", ErrDecode, err)
		}
		inlines, err := decodeInlines(nodes)
		if err != nil {
			return nil, err
		}
		return MetaInlines(inlines), nil
	case "MetaBlocks":
		var nodes []rawNode
		if err := json.Unmarshal(raw.C, &nodes); err != nil {
			return nil, fmt.Errorf("%w: MetaBlocks: %v", ErrDecode, err)
		}
		blocks, err := decodeBlocks(nodes)
		if err != nil {
			return nil, err
		}
		return MetaBlocks(blocks), nil
	case "MetaList":
		var items []json.RawMessage
		if err := json.Unmarshal(raw.C, &items); err != nil {
			return nil, fmt.Errorf("%w: MetaList: %v", ErrDecode, err)
		}
		list := make(MetaList, len(items))
		for i, item := range items {
			mv, err := decodeMetaValue(item)
			if err != nil {
				return nil, err
			}
			list[i] = mv
		}
		return list, nil
	case "MetaMap":
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw.C, &entries); err != nil {
			return nil, fmt.Errorf("%w: MetaMap: %v", ErrDecode, err)
		}
		m := make(MetaMap, len(entries))
		for key, val := range entries {
			mv, err := decodeMetaValue(val)
			if err != nil {
				return nil, err
			}
			m[key] = mv
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: unknown meta value %q", ErrDecode, raw.T)
}

func encodeMetaValue(mv MetaValue) any {
	switch v := mv.(type) {
	case MetaString:
		return map[string]any{"t": "MetaString", "c": string(v)}
	case MetaBool:
		return map[string]any{"t": "MetaBool", "c": bool(v)}
	case MetaInlines:
		return map[string]any{"t": "MetaInlines", "c": EncodeInlines(v)}
	case MetaBlocks:
		return map[string]any{"t": "MetaBlocks", "c": EncodeBlocks(v)}
	case MetaList:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = encodeMetaValue(item)
		}
		return map[string]any{"t": "MetaList", "c": items}
	case MetaMap:
		entries := make(map[string]any, len(v))
		for key, val := range v {
			entries[key] = encodeMetaValue(val)
		}
		return map[string]any{"t": "MetaMap", "c": entries}
	}
	return nil
}

func decodeBlocks(nodes []rawNode) ([]Block, error) {
	blocks := make([]Block, 0, len(nodes))
	for _, raw := range nodes {
		block, err := decodeBlock(raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func decodeInlines(nodes []rawNode) ([]Inline, error) {
	inlines := make([]Inline, 0, len(nodes))
	for _, raw := range nodes {
		inline, err := decodeInline(raw)
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, inline)
	}
	return inlines, nil
}

func decodeBlock(raw rawNode) (Block, error) {
	switch raw.T {
	case "Plain":
		content, err := decodeInlineContent(raw)
		if err != nil {
			return nil, err
		}
		return &Plain{Content: content}, nil
	case "Para":
		content, err := decodeInlineContent(raw)
		if err != nil {
			return nil, err
		}
		return &Para{Content: content}, nil
	case "Header":
		var parts []json.RawMessage
		if err := tupleOf(raw, 3, &parts); err != nil {
			return nil, err
		}
		var level int
		if err := json.Unmarshal(parts[0], &level); err != nil {
			return nil, fmt.Errorf("%w: Header level: %v", ErrDecode, err)
		}
		attr, err := decodeAttr(parts[1])
		if err != nil {
			return nil, err
		}
		content, err := decodeInlineList(parts[2])
		if err != nil {
			return nil, err
		}
		return &Header{Level: level, Attr: attr, Content: content}, nil
	case "CodeBlock":
		attr, text, err := decodeAttrText(raw)
		if err != nil {
			return nil, err
		}
		return &CodeBlock{Attr: attr, Text: text}, nil
	case "RawBlock":
		format, text, err := decodeStringPair(raw)
		if err != nil {
			return nil, err
		}
		return &RawBlock{Format: format, Text: text}, nil
	case "Div":
		var parts []json.RawMessage
		if err := tupleOf(raw, 2, &parts); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(parts[0])
		if err != nil {
			return nil, err
		}
		content, err := decodeBlockList(parts[1])
		if err != nil {
			return nil, err
		}
		return &Div{Attr: attr, Content: content}, nil
	case "BulletList":
		var items []json.RawMessage
		if err := json.Unmarshal(raw.C, &items); err != nil {
			return nil, fmt.Errorf("%w: BulletList: %v", ErrDecode, err)
		}
		list := &BulletList{}
		for _, item := range items {
			blocks, err := decodeBlockList(item)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, blocks)
		}
		return list, nil
	case "OrderedList":
		var parts []json.RawMessage
		if err := tupleOf(raw, 2, &parts); err != nil {
			return nil, err
		}
		attrs, err := decodeListAttrs(parts[0])
		if err != nil {
			return nil, err
		}
		var items []json.RawMessage
		if err := json.Unmarshal(parts[1], &items); err != nil {
			return nil, fmt.Errorf("%w: OrderedList items: %v", ErrDecode, err)
		}
		list := &OrderedList{Attrs: attrs}
		for _, item := range items {
			blocks, err := decodeBlockList(item)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, blocks)
		}
		return list, nil
	case "DefinitionList":
		var items []json.RawMessage
		if err := json.Unmarshal(raw.C, &items); err != nil {
			return nil, fmt.Errorf("%w: DefinitionList: %v", ErrDecode, err)
		}
		list := &DefinitionList{}
		for _, item := range items {
			var pair []json.RawMessage
			if err := json.Unmarshal(item, &pair); err != nil || len(pair) != 2 {
				return nil, fmt.Errorf("%w: DefinitionList item", ErrDecode)
			}
			term, err := decodeInlineList(pair[0])
			if err != nil {
				return nil, err
			}
			var defs []json.RawMessage
			if err := json.Unmarshal(pair[1], &defs); err != nil {
				return nil, fmt.Errorf("%w: DefinitionList defs: %v", ErrDecode, err)
			}
			def := Definition{Term: term}
			for _, d := range defs {
				blocks, err := decodeBlockList(d)
				if err != nil {
					return nil, err
				}
				def.Definitions = append(def.Definitions, blocks)
			}
			list.Items = append(list.Items, def)
		}
		return list, nil
	case "HorizontalRule":
		return &HorizontalRule{}, nil
	}
	return &Opaque{Type: raw.T, Raw: raw.C}, nil
}

func decodeInline(raw rawNode) (Inline, error) {
	switch raw.T {
	case "Str":
		var text string
		if err := json.Unmarshal(raw.C, &text); err != nil {
			return nil, fmt.Errorf("%w: Str: %v", ErrDecode, err)
		}
		return &Str{Text: text}, nil
	case "Space":
		return &Space{}, nil
	case "SoftBreak":
		return &SoftBreak{}, nil
	case "LineBreak":
		return &LineBreak{}, nil
	case "Emph":
		content, err := decodeInlineContent(raw)
		if err != nil {
			return nil, err
		}
		return &Emph{Content: content}, nil
	case "Strong":
		content, err := decodeInlineContent(raw)
		if err != nil {
			return nil, err
		}
		return &Strong{Content: content}, nil
	case "Code":
		attr, text, err := decodeAttrText(raw)
		if err != nil {
			return nil, err
		}
		return &Code{Attr: attr, Text: text}, nil
	case "Math":
		var parts []json.RawMessage
		if err := tupleOf(raw, 2, &parts); err != nil {
			return nil, err
		}
		var mathType rawNode
		if err := json.Unmarshal(parts[0], &mathType); err != nil {
			return nil, fmt.Errorf("%w: Math type: %v", ErrDecode, err)
		}
		var text string
		if err := json.Unmarshal(parts[1], &text); err != nil {
			return nil, fmt.Errorf("%w: Math text: %v", ErrDecode, err)
		}
		return &Math{Type: mathType.T, Text: text}, nil
	case "RawInline":
		format, text, err := decodeStringPair(raw)
		if err != nil {
			return nil, err
		}
		return &RawInline{Format: format, Text: text}, nil
	case "Link", "Image":
		var parts []json.RawMessage
		if err := tupleOf(raw, 3, &parts); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(parts[0])
		if err != nil {
			return nil, err
		}
		content, err := decodeInlineList(parts[1])
		if err != nil {
			return nil, err
		}
		var target []string
		if err := json.Unmarshal(parts[2], &target); err != nil || len(target) != 2 {
			return nil, fmt.Errorf("%w: %s target", ErrDecode, raw.T)
		}
		if raw.T == "Link" {
			return &Link{Attr: attr, Content: content, Target: target[0], Title: target[1]}, nil
		}
		return &Image{Attr: attr, Content: content, Target: target[0], Title: target[1]}, nil
	case "Span":
		var parts []json.RawMessage
		if err := tupleOf(raw, 2, &parts); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(parts[0])
		if err != nil {
			return nil, err
		}
		content, err := decodeInlineList(parts[1])
		if err != nil {
			return nil, err
		}
		return &Span{Attr: attr, Content: content}, nil
	case "Quoted":
		var parts []json.RawMessage
		if err := tupleOf(raw, 2, &parts); err != nil {
			return nil, err
		}
		var quoteType rawNode
		if err := json.Unmarshal(parts[0], &quoteType); err != nil {
			return nil, fmt.Errorf("%w: Quoted type: %v", ErrDecode, err)
		}
		content, err := decodeInlineList(parts[1])
		if err != nil {
			return nil, err
		}
		return &Quoted{QuoteType: quoteType.T, Content: content}, nil
	}
	return &Opaque{Type: raw.T, Raw: raw.C}, nil
}

func decodeInlineContent(raw rawNode) ([]Inline, error) {
	return decodeInlineList(raw.C)
}

func decodeInlineList(data json.RawMessage) ([]Inline, error) {
	var nodes []rawNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("%w: inline list: %v", ErrDecode, err)
	}
	return decodeInlines(nodes)
}

func decodeBlockList(data json.RawMessage) ([]Block, error) {
	var nodes []rawNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("%w: block list: %v", ErrDecode, err)
	}
	return decodeBlocks(nodes)
}

func decodeAttr(data json.RawMessage) (Attr, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil || len(parts) != 3 {
		return Attr{}, fmt.Errorf("%w: attr", ErrDecode)
	}
	var attr Attr
	if err := json.Unmarshal(parts[0], &attr.Identifier); err != nil {
		return Attr{}, fmt.Errorf("%w: attr identifier: %v", ErrDecode, err)
	}
	if err := json.Unmarshal(parts[1], &attr.Classes); err != nil {
		return Attr{}, fmt.Errorf("%w: attr classes: %v", ErrDecode, err)
	}
	var kvs [][]string
	if err := json.Unmarshal(parts[2], &kvs); err != nil {
		return Attr{}, fmt.Errorf("%w: attr key/values: %v", ErrDecode, err)
	}
	for _, kv := range kvs {
		if len(kv) != 2 {
			return Attr{}, fmt.Errorf("%w: attr key/value pair", ErrDecode)
		}
		attr.KVs = append(attr.KVs, [2]string{kv[0], kv[1]})
	}
	return attr, nil
}

func decodeListAttrs(data json.RawMessage) (ListAttrs, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil || len(parts) != 3 {
		return ListAttrs{}, fmt.Errorf("%w: list attributes", ErrDecode)
	}
	var attrs ListAttrs
	if err := json.Unmarshal(parts[0], &attrs.Start); err != nil {
		return ListAttrs{}, fmt.Errorf("%w: list start: %v", ErrDecode, err)
	}
	var style, delim rawNode
	if err := json.Unmarshal(parts[1], &style); err != nil {
		return ListAttrs{}, fmt.Errorf("%w: list style: %v", ErrDecode, err)
	}
	if err := json.Unmarshal(parts[2], &delim); err != nil {
		return ListAttrs{}, fmt.Errorf("%w: list delimiter: %v", ErrDecode, err)
	}
	attrs.Style = style.T
	attrs.Delimiter = delim.T
	return attrs, nil
}

func decodeAttrText(raw rawNode) (Attr, string, error) {
	var parts []json.RawMessage
	if err := tupleOf(raw, 2, &parts); err != nil {
		return Attr{}, "", err
	}
	attr, err := decodeAttr(parts[0])
	if err != nil {
		return Attr{}, "", err
	}
	var text string
	if err := json.Unmarshal(parts[1], &text); err != nil {
		return Attr{}, "", fmt.Errorf("%w: %s text: %v", ErrDecode, raw.T, err)
	}
	return attr, text, nil
}

func decodeStringPair(raw rawNode) (string, string, error) {
	var pair []string
	if err := json.Unmarshal(raw.C, &pair); err != nil || len(pair) != 2 {
		return "", "", fmt.Errorf("%w: %s", ErrDecode, raw.T)
	}
	return pair[0], pair[1], nil
}

func tupleOf(raw rawNode, n int, parts *[]json.RawMessage) error {
	if err := json.Unmarshal(raw.C, parts); err != nil || len(*parts) != n {
		return fmt.Errorf("%w: %s expects %d fields", ErrDecode, raw.T, n)
	}
	return nil
}

// EncodeBlocks converts blocks to the generic JSON representation.
func EncodeBlocks(blocks []Block) []any {
	out := make([]any, len(blocks))
	for i, b := range blocks {
		out[i] = encodeNode(b)
	}
	return out
}

// EncodeInlines converts inlines to the generic JSON representation.
func EncodeInlines(inlines []Inline) []any {
	out := make([]any, len(inlines))
	for i, in := range inlines {
		out[i] = encodeNode(in)
	}
	return out
}

func encodeNode(n Node) any {
	switch v := n.(type) {
	case *Str:
		return tagged("Str", v.Text)
	case *Space:
		return bare("Space")
	case *SoftBreak:
		return bare("SoftBreak")
	case *LineBreak:
		return bare("LineBreak")
	case *Emph:
		return tagged("Emph", EncodeInlines(v.Content))
	case *Strong:
		return tagged("Strong", EncodeInlines(v.Content))
	case *Code:
		return tagged("Code", []any{encodeAttr(v.Attr), v.Text})
	case *Math:
		return tagged("Math", []any{bare(v.Type), v.Text})
	case *RawInline:
		return tagged("RawInline", []any{v.Format, v.Text})
	case *Link:
		return tagged("Link", []any{encodeAttr(v.Attr), EncodeInlines(v.Content), []any{v.Target, v.Title}})
	case *Image:
		return tagged("Image", []any{encodeAttr(v.Attr), EncodeInlines(v.Content), []any{v.Target, v.Title}})
	case *Span:
		return tagged("Span", []any{encodeAttr(v.Attr), EncodeInlines(v.Content)})
	case *Quoted:
		return tagged("Quoted", []any{bare(v.QuoteType), EncodeInlines(v.Content)})
	case *Plain:
		return tagged("Plain", EncodeInlines(v.Content))
	case *Para:
		return tagged("Para", EncodeInlines(v.Content))
	case *Header:
		return tagged("Header", []any{v.Level, encodeAttr(v.Attr), EncodeInlines(v.Content)})
	case *CodeBlock:
		return tagged("CodeBlock", []any{encodeAttr(v.Attr), v.Text})
	case *RawBlock:
		return tagged("RawBlock", []any{v.Format, v.Text})
	case *Div:
		return tagged("Div", []any{encodeAttr(v.Attr), EncodeBlocks(v.Content)})
	case *BulletList:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = EncodeBlocks(item)
		}
		return tagged("BulletList", items)
	case *OrderedList:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = EncodeBlocks(item)
		}
		listAttrs := v.Attrs
		if listAttrs.Style == "" {
			// lists built in code carry zero attrs; pandoc needs them filled
			listAttrs = DefaultListAttrs()
		}
		attrs := []any{listAttrs.Start, bare(listAttrs.Style), bare(listAttrs.Delimiter)}
		return tagged("OrderedList", []any{attrs, items})
	case *DefinitionList:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			defs := make([]any, len(item.Definitions))
			for j, d := range item.Definitions {
				defs[j] = EncodeBlocks(d)
			}
			items[i] = []any{EncodeInlines(item.Term), defs}
		}
		return tagged("DefinitionList", items)
	case *HorizontalRule:
		return bare("HorizontalRule")
	case *Opaque:
		if v.Raw == nil {
			return bare(v.Type)
		}
		return map[string]any{"t": v.Type, "c": v.Raw}
	}
	return nil
}

func encodeAttr(attr Attr) []any {
	classes := attr.Classes
	if classes == nil {
		classes = []string{}
	}
	kvs := make([][]string, len(attr.KVs))
	for i, kv := range attr.KVs {
		kvs[i] = []string{kv[0], kv[1]}
	}
	return []any{attr.Identifier, classes, kvs}
}

func tagged(t string, c any) map[string]any {
	return map[string]any{"t": t, "c": c}
}

func bare(t string) map[string]any {
	return map[string]any{"t": t}
}
