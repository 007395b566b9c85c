package jsontree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	n, err := Parse([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "two"]}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, n.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a"}, n.Get("alpha").Keys()); diff != "" {
		t.Errorf("nested Keys() mismatch (-want +got):\n%s", diff)
	}
	if got := n.String(); got != `{"zeta":1,"alpha":{"b":true,"a":null},"mid":[1,"two"]}` {
		t.Errorf("String() = %s", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "{", `{"a":}`, "not json", `{"a": 1,}`} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse([]byte(input)); err != ErrInvalidFormat {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", input, err)
			}
		})
	}
}

func TestNode_Kinds(t *testing.T) {
	n := MustParse(`{"s": "x", "n": 4.5, "b": false, "z": null, "o": {}, "a": []}`)

	tests := map[string]Kind{
		"s": String,
		"n": Number,
		"b": Bool,
		"z": Null,
		"o": Object,
		"a": Array,
	}
	for key, want := range tests {
		if got := n.Get(key).Kind(); got != want {
			t.Errorf("Get(%q).Kind() = %s, want %s", key, got, want)
		}
	}

	if got := n.Get("n").Str(); got != "4.5" {
		t.Errorf("number Str() = %q, want %q", got, "4.5")
	}
	if n.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
	if got := n.Get("missing").Kind(); got != Null {
		t.Errorf("nil node Kind() = %s, want null", got)
	}
}

func TestNode_SetKeepsPosition(t *testing.T) {
	n := NewObject()
	n.Set("a", NewString("1"))
	n.Set("b", NewString("2"))
	n.Set("a", NewString("3"))

	if diff := cmp.Diff([]string{"a", "b"}, n.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if got := n.Get("a").Str(); got != "3" {
		t.Errorf("a = %q, want %q", got, "3")
	}

	n.Delete("a")
	if diff := cmp.Diff([]string{"b"}, n.Keys()); diff != "" {
		t.Errorf("Keys() after Delete mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_CloneIsDeep(t *testing.T) {
	orig := MustParse(`{"list": [1], "obj": {"k": "v"}}`)
	c := orig.Clone()
	c.Get("obj").Set("k", NewString("changed"))
	Merge(c.Get("list"), MustParse(`[2]`))

	if got := orig.String(); got != `{"list":[1],"obj":{"k":"v"}}` {
		t.Errorf("original mutated through clone: %s", got)
	}
}

func TestNode_Interface(t *testing.T) {
	n := MustParse(`{"a": [1, "x", true, null], "b": {"c": "d"}}`)
	want := map[string]any{
		"a": []any{json.Number("1"), "x", true, nil},
		"b": map[string]any{"c": "d"},
	}
	if diff := cmp.Diff(want, n.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_MarshalEscapes(t *testing.T) {
	n := NewObject()
	n.Set(`Acme\A`, NewString("quote \" and \\ backslash"))

	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	back, err := Parse(b)
	if err != nil {
		t.Fatalf("re-Parse error: %v", err)
	}
	if got := back.Get(`Acme\A`).Str(); got != "quote \" and \\ backslash" {
		t.Errorf("round trip value = %q", got)
	}
}

func TestNode_Pretty(t *testing.T) {
	out := string(MustParse(`{"a":{"b":"c"}}`).Pretty())
	if !strings.Contains(out, "\n    \"a\": {\n        \"b\": \"c\"") {
		t.Errorf("Pretty() output not indented with four spaces:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Pretty() output should end with a newline")
	}
}
