package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
)

// Mapping is an insertion-ordered mapping from category title to job ids.
// It is the payload of the export file, so its JSON form keeps key order:
// keys are written in insertion order and read back in document order.
//
// Setting a title that already exists replaces its ids and keeps the
// original position.
//
// The zero value is not usable; create mappings with NewMapping.
type Mapping struct {
	keys   []string
	values map[string][]string
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{
		keys:   make([]string, 0),
		values: make(map[string][]string),
	}
}

// Set inserts or replaces the job ids for title.
func (m *Mapping) Set(title string, ids []string) {
	if _, ok := m.values[title]; !ok {
		m.keys = append(m.keys, title)
	}
	if ids == nil {
		ids = []string{}
	}
	m.values[title] = append(make([]string, 0, len(ids)), ids...)
}

// Get returns the job ids for title.
func (m *Mapping) Get(title string) ([]string, bool) {
	ids, ok := m.values[title]
	return ids, ok
}

// Len returns the number of categories in the mapping.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the category titles in insertion order.
func (m *Mapping) Keys() []string {
	return append(make([]string, 0, len(m.keys)), m.keys...)
}

// All iterates over the mapping in insertion order.
func (m *Mapping) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
// Whether HTML characters such as "&" are escaped is up to the encoder:
// json.Marshal escapes them, an Encoder with SetEscapeHTML(false) does not.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalNoEscape(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the mapping, keeping document order.
// A JSON null leaves the mapping empty.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	m.keys = make([]string, 0)
	m.values = make(map[string][]string)

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("mapping must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected mapping key %v", tok)
		}

		var ids []string
		if err := dec.Decode(&ids); err != nil {
			return fmt.Errorf("failed to decode job ids for %q: %w", key, err)
		}
		m.Set(key, ids)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// marshalNoEscape encodes v like json.Marshal but without HTML escaping.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
