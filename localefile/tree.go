// Package localefile implements reading, writing, and editing of per-domain
// JSON locale files.
//
// The expected file format is a nested JSON object with string leaves,
// with all content nested under the domain's own name:
//
//	{
//	  "auth": {
//	    "errors": {
//	      "invalid-email": "Invalid email address"
//	    }
//	  }
//	}
//
// Files are written with 2-space indentation and a trailing newline. Key
// order is significant: the package preserves document order on parse and
// applies the canonical sort order on request, so a written file is stable
// byte-for-byte across runs.
package localefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/r4sheed/nextjs-intrasite-sub000/sortkeys"
)

// Kind discriminates tree node types.
type Kind int

const (
	// Object is a JSON object with ordered fields.
	Object Kind = iota
	// String is a translatable leaf.
	String
	// Raw is any other JSON value (number, bool, null, array), passed
	// through unchanged.
	Raw
)

// Value is one node of a locale tree.
type Value struct {
	Kind   Kind
	Fields []Field // Object
	Str    string  // String
	Bytes  []byte  // Raw, compact JSON
}

// Field is one named member of an object node.
type Field struct {
	Name  string
	Value *Value
}

// NewObject returns an empty object node.
func NewObject() *Value {
	return &Value{Kind: Object}
}

// NewString returns a string leaf.
func NewString(s string) *Value {
	return &Value{Kind: String, Str: s}
}

// Parse decodes JSON data into an ordered tree. The top-level value must
// be an object.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if v.Kind != Object {
		return nil, fmt.Errorf("parsing JSON: top-level value must be an object")
	}

	// Trailing garbage after the document is an error.
	if dec.More() {
		return nil, fmt.Errorf("parsing JSON: unexpected data after document")
	}
	return v, nil
}

// parseValue reads one value from the token stream, preserving object
// field order.
func parseValue(dec *json.Decoder) (*Value, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch tok := t.(type) {
	case json.Delim:
		switch tok {
		case '{':
			obj := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected string key, got %v", kt)
				}
				child, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Fields = append(obj.Fields, Field{Name: key, Value: child})
			}
			// Consume closing '}'.
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			var items [][]byte
			for dec.More() {
				child, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, child.compact())
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return &Value{Kind: Raw, Bytes: joinArray(items)}, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", tok)
		}
	case string:
		return NewString(tok), nil
	case json.Number:
		return &Value{Kind: Raw, Bytes: []byte(tok.String())}, nil
	case bool:
		if tok {
			return &Value{Kind: Raw, Bytes: []byte("true")}, nil
		}
		return &Value{Kind: Raw, Bytes: []byte("false")}, nil
	case nil:
		return &Value{Kind: Raw, Bytes: []byte("null")}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", t)
	}
}

func joinArray(items [][]byte) []byte {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Write(it)
	}
	b.WriteByte(']')
	return b.Bytes()
}

// compact renders a node as single-line JSON, used for array elements.
func (v *Value) compact() []byte {
	switch v.Kind {
	case String:
		return jsonString(v.Str)
	case Raw:
		return v.Bytes
	default:
		var b bytes.Buffer
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Write(jsonString(f.Name))
			b.WriteString(": ")
			b.Write(f.Value.compact())
		}
		b.WriteByte('}')
		return b.Bytes()
	}
}

// Marshal renders the tree with 2-space indentation and a trailing newline.
func (v *Value) Marshal() []byte {
	var b strings.Builder
	writeValue(&b, v, 0)
	b.WriteByte('\n')
	return []byte(b.String())
}

func writeValue(b *strings.Builder, v *Value, depth int) {
	switch v.Kind {
	case String:
		b.Write(jsonString(v.Str))
	case Raw:
		b.Write(v.Bytes)
	case Object:
		if len(v.Fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		indent := strings.Repeat("  ", depth+1)
		for i, f := range v.Fields {
			b.WriteString(indent)
			b.Write(jsonString(f.Name))
			b.WriteString(": ")
			writeValue(b, f.Value, depth+1)
			if i < len(v.Fields)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteByte('}')
	}
}

// jsonString encodes a string with JSON escaping.
func jsonString(s string) []byte {
	out, _ := json.Marshal(s)
	return out
}

// field returns the field named name, or nil.
func (v *Value) field(name string) *Field {
	for i := range v.Fields {
		if v.Fields[i].Name == name {
			return &v.Fields[i]
		}
	}
	return nil
}

// Get walks the tree along path and returns the node it ends at.
func (v *Value) Get(path []string) (*Value, bool) {
	cur := v
	for _, seg := range path {
		if cur.Kind != Object {
			return nil, false
		}
		f := cur.field(seg)
		if f == nil {
			return nil, false
		}
		cur = f.Value
	}
	return cur, true
}

// Sort reorders every object's fields recursively using the canonical
// comparator for its path ("labels" groups use the suffix-priority order).
// Non-object nodes pass through unchanged.
func (v *Value) Sort(path []string) {
	if v.Kind != Object {
		return
	}
	sortShallow(v, path)
	for _, f := range v.Fields {
		f.Value.Sort(append(path, f.Name))
	}
}

// sortShallow reorders one object's immediate fields without recursing.
func sortShallow(v *Value, path []string) {
	cmp := sortkeys.ForPath(path)
	sort.SliceStable(v.Fields, func(i, j int) bool {
		return cmp(v.Fields[i].Name, v.Fields[j].Name) < 0
	})
}

// Pair is one flattened (dotted-key, value) pair.
type Pair struct {
	Key   string
	Value string
}

// Flatten returns the tree's string leaves as dotted-key pairs in document
// order. Non-string leaves are skipped.
func (v *Value) Flatten() []Pair {
	var pairs []Pair
	flatten(v, "", &pairs)
	return pairs
}

func flatten(v *Value, prefix string, out *[]Pair) {
	if v.Kind != Object {
		return
	}
	for _, f := range v.Fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		switch f.Value.Kind {
		case String:
			*out = append(*out, Pair{Key: path, Value: f.Value.Str})
		case Object:
			flatten(f.Value, path, out)
		}
	}
}
