package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind identifies the variant held by a [Value].
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
		return "boolean"
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

// Value is a decoded JSON value. It is a closed sum type: the only
// implementations are [Null], [Bool], [Number], [String], [Array] and
// [Object]. Values are never mutated after decoding; coercion reads them and
// builds the typed record separately.
type Value interface {
	Kind() Kind
	sealed()
}

type (
	// Null is JSON null.
	Null struct{}
	// Bool is a JSON boolean.
	Bool bool
	// Number keeps the literal text of a JSON number.
	Number json.Number
	// String is a JSON string.
	String string
	// Array is a JSON array.
	Array []Value
)

// Object is a JSON object that remembers key order. Duplicate keys keep
// their first position and their last value.
type Object struct {
	keys   []string
	fields map[string]Value
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Null) sealed()   {}
func (Bool) sealed()   {}
func (Number) sealed() {}
func (String) sealed() {}
func (Array) sealed()  {}
func (Object) sealed() {}

// Keys returns the object keys in document order.
func (o Object) Keys() []string { return o.keys }

// Len returns the number of distinct keys.
func (o Object) Len() int { return len(o.keys) }

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Lookup finds a field by name, falling back to a loose match that ignores
// case, underscores, hyphens and spaces ("review_channel" finds
// "reviewChannel").
func (o Object) Lookup(name string) (Value, bool) {
	if v, ok := o.fields[name]; ok {
		return v, true
	}
	want := looseKey(name)
	for _, k := range o.keys {
		if looseKey(k) == want {
			return o.fields[k], true
		}
	}
	return nil, false
}

func looseKey(k string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(k))
}

func (o *Object) set(key string, v Value) {
	if o.fields == nil {
		o.fields = make(map[string]Value)
	}
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Interface converts v into the plain Go shapes produced by encoding/json
// (map[string]any, []any, json.Number, string, bool, nil).
func Interface(v Value) any {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Number:
		return json.Number(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Interface(item)
		}
		return out
	case Object:
		out := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			out[k] = Interface(t.fields[k])
		}
		return out
	default:
		return nil
	}
}

// Decode parses text as exactly one strict JSON value.
func Decode(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected content after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var obj Object
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Array{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
