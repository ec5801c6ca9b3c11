// Package jsontree implements an order-preserving model of i18next-style
// JSON localization documents.
//
// A document is a tree of objects whose leaves are strings, numbers,
// booleans, nulls or arrays:
//
//	{
//	    "hello": "Hello",
//	    "count": 3,
//	    "nested": { "bye": "Goodbye" }
//	}
//
// Object keys keep the order they had in the source file so that generated
// files stay readable and diff cleanly. Numbers keep their exact source
// literal. Arrays are kept as values but are never descended into by
// translation.
package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a single JSON value. The zero Value is null.
type Value struct {
	kind  Kind
	str   string // string text, or number literal
	b     bool
	elems []Value
	obj   *Object
}

// Null returns a JSON null.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a JSON number with the given literal, e.g. "3" or "1.50".
// The literal is written back verbatim.
func Number(literal string) Value { return Value{kind: KindNumber, str: literal} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns a JSON array holding elems.
func Array(elems ...Value) Value { return Value{kind: KindArray, elems: elems} }

// ObjectValue wraps o as a Value. A nil o is treated as an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Str returns the text of a string value, or the literal of a number.
func (v Value) Str() string { return v.str }

// BoolValue returns the value of a boolean.
func (v Value) BoolValue() bool { return v.b }

// Elems returns the elements of an array.
func (v Value) Elems() []Value { return v.elems }

// Object returns the object held by v, or nil if v is not an object.
func (v Value) Object() *Object { return v.obj }

// Object is a JSON object that remembers key insertion order.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseError reports a document that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile reads and parses a JSON document. Invalid content is reported
// as a *ParseError.
func ParseFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, fmt.Errorf("reading %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return Value{}, &ParseError{Path: path, Err: err}
	}
	return v, nil
}

// Parse decodes a single JSON document, preserving object key order.
func Parse(data []byte) (Value, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	t, err := dec.Token()
	if err == io.EOF {
		return Value{}, errors.New("empty document")
	}
	if err != nil {
		return Value{}, err
	}
	v, err := decodeToken(dec, t)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, err
		}
		return Value{}, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// next reads the next token inside a container, where EOF is never valid.
func next(dec *json.Decoder) (json.Token, error) {
	t, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return t, err
}

func decodeToken(dec *json.Decoder, t json.Token) (Value, error) {
	switch tok := t.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected %q", rune(tok))
	case string:
		return String(tok), nil
	case json.Number:
		return Number(string(tok)), nil
	case bool:
		return Bool(tok), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", t)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for dec.More() {
		kt, err := next(dec)
		if err != nil {
			return Value{}, err
		}
		key, ok := kt.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string key, got %T", kt)
		}

		vt, err := next(dec)
		if err != nil {
			return Value{}, err
		}
		v, err := decodeToken(dec, vt)
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		obj.Set(key, v)
	}
	// Closing brace.
	if _, err := next(dec); err != nil {
		return Value{}, err
	}
	return ObjectValue(obj), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	elems := []Value{}
	for dec.More() {
		t, err := next(dec)
		if err != nil {
			return Value{}, err
		}
		v, err := decodeToken(dec, t)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	if _, err := next(dec); err != nil {
		return Value{}, err
	}
	return Array(elems...), nil
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// WriteFile writes v to path as pretty-printed JSON, replacing any existing
// file.
func WriteFile(path string, v Value) error {
	return os.WriteFile(path, Format(v), 0644)
}

// Format renders v with 2-space indentation and a trailing newline, the
// layout produced by JSON.stringify(v, null, 2).
func Format(v Value) []byte {
	var b bytes.Buffer
	writeValue(&b, v, 0)
	b.WriteByte('\n')
	return b.Bytes()
}

func writeValue(b *bytes.Buffer, v Value, depth int) {
	switch v.kind {
	case KindObject:
		if v.obj == nil || v.obj.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		keys := v.obj.Keys()
		for i, k := range keys {
			writeIndent(b, depth+1)
			b.WriteString(jsonString(k))
			b.WriteString(": ")
			writeValue(b, v.obj.vals[k], depth+1)
			if i < len(keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	case KindArray:
		if len(v.elems) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, e := range v.elems {
			writeIndent(b, depth+1)
			writeValue(b, e, depth+1)
			if i < len(v.elems)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	case KindString:
		b.WriteString(jsonString(v.str))
	case KindNumber:
		b.WriteString(v.str)
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	default:
		b.WriteString("null")
	}
}

func writeIndent(b *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// jsonString returns s as a JSON string literal without HTML escaping.
func jsonString(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return string(bytes.TrimSuffix(b.Bytes(), []byte("\n")))
}
