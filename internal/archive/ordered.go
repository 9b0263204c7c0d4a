package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ordered is a string-keyed map that remembers insertion order and keeps it
// through a JSON round trip. The zero value is ready to use.
type ordered[V any] struct {
	keys []string
	m    map[string]V
}

// set stores v under key. A new key goes to the end; an existing key keeps
// its position and gets the new value.
func (o *ordered[V]) set(key string, v V) {
	if o.m == nil {
		o.m = make(map[string]V)
	}
	if _, ok := o.m[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.m[key] = v
}

// Get returns the value stored under key.
func (o *ordered[V]) Get(key string) (V, bool) {
	v, ok := o.m[key]
	return v, ok
}

// Has reports whether key is present.
func (o *ordered[V]) Has(key string) bool {
	_, ok := o.m[key]
	return ok
}

// Len returns the number of keys.
func (o *ordered[V]) Len() int { return len(o.keys) }

// Keys returns a copy of the keys in insertion order.
func (o *ordered[V]) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (o *ordered[V]) Each(fn func(key string, v V)) {
	for _, k := range o.keys {
		fn(k, o.m[k])
	}
}

// MarshalJSON writes the entries as a JSON object in insertion order.
// HTML characters are left unescaped so titles stay readable on disk.
func (o ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalRaw(k)
		if err != nil {
			return nil, err
		}
		vb, err := marshalRaw(o.m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the document's key order.
// A repeated key keeps its first position and its last value.
func (o *ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	o.keys = nil
	o.m = make(map[string]V)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		o.set(key, v)
	}
	// closing '}'
	_, err = dec.Token()
	return err
}

func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
