package jsontree

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"zeta": "Z", "alpha": "A", "mid": {"y": "1", "b": "2"}}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if v.Kind() != KindObject {
		t.Fatalf("kind = %v, want object", v.Kind())
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, v.Object().Keys()); diff != "" {
		t.Fatalf("top-level keys (-want +got):\n%s", diff)
	}
	mid, ok := v.Object().Get("mid")
	if !ok {
		t.Fatal("missing key mid")
	}
	if diff := cmp.Diff([]string{"y", "b"}, mid.Object().Keys()); diff != "" {
		t.Fatalf("nested keys (-want +got):\n%s", diff)
	}
}

func TestParse_ScalarKinds(t *testing.T) {
	v, err := Parse([]byte(`{"s": "x", "n": 1.50, "t": true, "f": false, "z": null, "a": ["x", 1]}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	obj := v.Object()

	tests := []struct {
		key  string
		kind Kind
	}{
		{"s", KindString},
		{"n", KindNumber},
		{"t", KindBool},
		{"f", KindBool},
		{"z", KindNull},
		{"a", KindArray},
	}
	for _, tc := range tests {
		got, ok := obj.Get(tc.key)
		if !ok {
			t.Fatalf("missing key %q", tc.key)
		}
		if got.Kind() != tc.kind {
			t.Errorf("%s: kind = %v, want %v", tc.key, got.Kind(), tc.kind)
		}
	}

	n, _ := obj.Get("n")
	if n.Str() != "1.50" {
		t.Errorf("number literal = %q, want %q", n.Str(), "1.50")
	}
	a, _ := obj.Get("a")
	if len(a.Elems()) != 2 {
		t.Errorf("array has %d elements, want 2", len(a.Elems()))
	}
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	v, err := Parse([]byte(`{"a": "1", "b": "2", "a": "3"}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, v.Object().Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	a, _ := v.Object().Get("a")
	if a.Str() != "3" {
		t.Fatalf("a = %q, want %q", a.Str(), "3")
	}
}

func TestParse_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"k": "v"}`)...)
	v, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if v.Object().Len() != 1 {
		t.Fatalf("expected 1 key, got %d", v.Object().Len())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace only", "  \n"},
		{"truncated object", `{"broken":`},
		{"truncated array", `{"a": [1, 2`},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"trailing garbage", `{"a": 1}x`},
		{"bare word", `hello`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Fatalf("expected error for %q", tc.data)
			}
		})
	}
}

func TestParseFile_ReturnsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"broken":`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := ParseFile(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Path != path {
		t.Fatalf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}

func TestFormat_TwoSpaceIndent(t *testing.T) {
	v, err := Parse([]byte(`{"hello":"Bonjour","count":3,"nested":{"bye":"Au revoir"},"list":[1,"a"],"empty":{},"none":[]}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := `{
  "hello": "Bonjour",
  "count": 3,
  "nested": {
    "bye": "Au revoir"
  },
  "list": [
    1,
    "a"
  ],
  "empty": {},
  "none": []
}
`
	if diff := cmp.Diff(want, string(Format(v))); diff != "" {
		t.Fatalf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_NoHTMLEscaping(t *testing.T) {
	obj := NewObject()
	obj.Set("link", String(`<a href="x">Tom & Jerry</a>`))
	obj.Set("unicode", String("Привет, 世界"))

	out := string(Format(ObjectValue(obj)))
	if !strings.Contains(out, `"<a href=\"x\">Tom & Jerry</a>"`) {
		t.Fatalf("HTML characters were escaped: %s", out)
	}
	if !strings.Contains(out, "Привет, 世界") {
		t.Fatalf("unicode was escaped: %s", out)
	}
}

func TestFormat_RoundTripIsStable(t *testing.T) {
	src := []byte(`{"a": 1e3, "b": -0.0, "c": {"d": [true, null, {"e": "f"}]}}`)
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	first := Format(v)

	v2, err := Parse(first)
	if err != nil {
		t.Fatalf("re-Parse error: %v", err)
	}
	if diff := cmp.Diff(string(first), string(Format(v2))); diff != "" {
		t.Fatalf("second Format differs (-first +second):\n%s", diff)
	}
	if !strings.Contains(string(first), `"a": 1e3`) || !strings.Contains(string(first), `"b": -0.0`) {
		t.Fatalf("number literals not preserved: %s", first)
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte("old content that is longer than the new one"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := WriteFile(path, String("new")); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "\"new\"\n" {
		t.Fatalf("file content = %q", got)
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if v.Kind() != KindNull {
		t.Fatalf("zero Value kind = %v, want null", v.Kind())
	}
	if string(Format(v)) != "null\n" {
		t.Fatalf("Format(zero) = %q", Format(v))
	}
}
