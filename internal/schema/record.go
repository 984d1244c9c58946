package schema

import (
	"bytes"
	"encoding/json"
)

// Field is one key/value pair of a canonicalized record.
type Field struct {
	Key   string
	Value any
}

// Record is a metadata record whose keys carry a defined order. Go maps are
// unordered, so canonical output is kept as a slice and marshalled manually
// to preserve the schema order on the wire.
type Record []Field

// MarshalJSON emits the record as a JSON object with keys in slice order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns the record's keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value stored under key, if present.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// ToMap flattens the record back into a plain map, losing key order.
func (r Record) ToMap() map[string]any {
	m := make(map[string]any, len(r))
	for _, f := range r {
		m[f.Key] = f.Value
	}
	return m
}
