package ast

// Attr carries identifier, classes and ordered key/value attributes of an
// element. The zero value is an empty attribute set.
type Attr struct {
	Identifier string
	Classes    []string
	KVs        [][2]string
}

// NewAttr builds an Attr from identifier and classes.
func NewAttr(identifier string, classes ...string) Attr {
	return Attr{Identifier: identifier, Classes: classes}
}

// HasClass reports whether class is present.
func (a Attr) HasClass(class string) bool {
	for _, c := range a.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Get returns the value for key and whether it was present.
func (a Attr) Get(key string) (string, bool) {
	for _, kv := range a.KVs {
		if kv[0] == key {
			return kv[1], true
		}
	}
	return "", false
}

// Set replaces the value for key, appending if absent.
func (a *Attr) Set(key, value string) {
	for i, kv := range a.KVs {
		if kv[0] == key {
			a.KVs[i][1] = value
			return
		}
	}
	a.KVs = append(a.KVs, [2]string{key, value})
}

// IsEmpty reports whether the attribute set carries no information.
func (a Attr) IsEmpty() bool {
	return a.Identifier == "" && len(a.Classes) == 0 && len(a.KVs) == 0
}
