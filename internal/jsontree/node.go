package jsontree

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// Node is one value of a JSON document. Object keys keep the order in which
// they were first inserted.
type Node struct {
	kind Kind

	// scalar holds the decoded string value or the raw number literal.
	scalar  string
	boolean bool

	keys   []string
	fields map[string]*Node
	items  []*Node
}

// NewNull returns a null node.
func NewNull() *Node { return &Node{kind: Null} }

// NewBool returns a boolean node.
func NewBool(v bool) *Node { return &Node{kind: Bool, boolean: v} }

// NewString returns a string node.
func NewString(s string) *Node { return &Node{kind: String, scalar: s} }

// NewObject returns an empty object node.
func NewObject() *Node { return &Node{kind: Object, fields: make(map[string]*Node)} }

// NewArray returns an array node holding items.
func NewArray(items ...*Node) *Node {
	return &Node{kind: Array, items: append([]*Node(nil), items...)}
}

// Parse decodes a JSON document. Key order of every object is preserved.
func Parse(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidFormat
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// MustParse is like Parse but panics on invalid input. Intended for literals.
func MustParse(s string) *Node {
	n, err := Parse([]byte(s))
	if err != nil {
		panic("jsontree: invalid literal: " + s)
	}
	return n
}

func fromResult(r gjson.Result) *Node {
	switch r.Type {
	case gjson.False:
		return NewBool(false)
	case gjson.True:
		return NewBool(true)
	case gjson.Number:
		return &Node{kind: Number, scalar: strings.TrimSpace(r.Raw)}
	case gjson.String:
		return NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			n := NewArray()
			r.ForEach(func(_, value gjson.Result) bool {
				n.items = append(n.items, fromResult(value))
				return true
			})
			return n
		}
		n := NewObject()
		r.ForEach(func(key, value gjson.Result) bool {
			n.Set(key.Str, fromResult(value))
			return true
		})
		return n
	default:
		return NewNull()
	}
}

// Kind returns the variant of the node. A nil node reports Null.
func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

// IsObject reports whether n is an object.
func (n *Node) IsObject() bool { return n.Kind() == Object }

// IsArray reports whether n is an array.
func (n *Node) IsArray() bool { return n.Kind() == Array }

// Get returns the value stored under key, or nil when n is not an object or
// the key is absent.
func (n *Node) Get(key string) *Node {
	if n.Kind() != Object {
		return nil
	}
	return n.fields[key]
}

// Set stores v under key. Existing keys keep their position.
func (n *Node) Set(key string, v *Node) {
	if v == nil {
		v = NewNull()
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = v
}

// Delete removes key from the object n.
func (n *Node) Delete(key string) {
	if n.Kind() != Object {
		return
	}
	if _, ok := n.fields[key]; !ok {
		return
	}
	delete(n.fields, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the object's keys in insertion order.
func (n *Node) Keys() []string {
	if n.Kind() != Object {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Items returns the elements of an array node.
func (n *Node) Items() []*Node {
	if n.Kind() != Array {
		return nil
	}
	return append([]*Node(nil), n.items...)
}

// Len returns the number of keys of an object or elements of an array.
func (n *Node) Len() int {
	switch n.Kind() {
	case Object:
		return len(n.keys)
	case Array:
		return len(n.items)
	default:
		return 0
	}
}

// Str returns the value of a string node. Other scalars are rendered as
// their JSON text; containers and nil return "".
func (n *Node) Str() string {
	switch n.Kind() {
	case String, Number:
		return n.scalar
	case Bool:
		return strconv.FormatBool(n.boolean)
	default:
		return ""
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{kind: n.kind, scalar: n.scalar, boolean: n.boolean}
	switch n.kind {
	case Object:
		c.fields = make(map[string]*Node, len(n.fields))
		c.keys = append([]string(nil), n.keys...)
		for k, v := range n.fields {
			c.fields[k] = v.Clone()
		}
	case Array:
		c.items = make([]*Node, len(n.items))
		for i, v := range n.items {
			c.items[i] = v.Clone()
		}
	}
	return c
}

// Interface converts n into the generic Go representation used by
// encoding/json: map[string]any, []any, json.Number, string, bool or nil.
func (n *Node) Interface() any {
	switch n.Kind() {
	case Bool:
		return n.boolean
	case Number:
		return json.Number(n.scalar)
	case String:
		return n.scalar
	case Object:
		m := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			m[k] = n.fields[k].Interface()
		}
		return m
	case Array:
		s := make([]any, len(n.items))
		for i, v := range n.items {
			s[i] = v.Interface()
		}
		return s
	default:
		return nil
	}
}

// MarshalJSON encodes n compactly, keeping object key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	switch n.Kind() {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(n.boolean))
	case Number:
		buf.WriteString(n.scalar)
	case String:
		if err := encodeString(buf, n.scalar); err != nil {
			return err
		}
	case Object:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := n.fields[k].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, v := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// encodeString writes s as a JSON string literal without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// Indent is the indentation used by Pretty.
const Indent = "    "

// Pretty returns n as indented JSON followed by a newline.
func (n *Node) Pretty() []byte {
	b, _ := n.MarshalJSON()
	return PrettyBytes(b)
}

// PrettyBytes reformats a JSON document with the package indentation.
func PrettyBytes(b []byte) []byte {
	opts := *pretty.DefaultOptions
	opts.Indent = Indent
	return pretty.PrettyOptions(b, &opts)
}

// String implements fmt.Stringer with the compact encoding.
func (n *Node) String() string {
	b, _ := n.MarshalJSON()
	return string(b)
}
