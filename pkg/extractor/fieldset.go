package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldSet is an ordered, multi-valued record of field name to values.
// A metadata record and every logical document of a Result is a FieldSet.
// Insertion order is preserved and reflected in the JSON encoding.
type FieldSet struct {
	names  []string
	values map[string][]any
}

func NewFieldSet() *FieldSet {
	return &FieldSet{
		values: map[string][]any{},
	}
}

// Add appends a value to the list stored for name.
func (s *FieldSet) Add(name string, value any) *FieldSet {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}

	s.values[name] = append(s.values[name], value)

	return s
}

// Set overwrites the values stored for name with a single value.
func (s *FieldSet) Set(name string, value any) *FieldSet {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}

	s.values[name] = []any{value}

	return s
}

// Get returns all values stored for name, in the order they were added.
func (s *FieldSet) Get(name string) []any {
	return s.values[name]
}

// First returns the first value stored for name.
func (s *FieldSet) First(name string) (any, bool) {
	values := s.values[name]

	if len(values) == 0 {
		return nil, false
	}

	return values[0], true
}

// Names returns the field names in insertion order.
func (s *FieldSet) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)

	return names
}

func (s *FieldSet) Len() int {
	return len(s.names)
}

// MarshalJSON encodes the set as an object in insertion order.
// A field holding a single value is encoded as a scalar, multiple
// values as an array.
func (s *FieldSet) MarshalJSON() ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')

	for i, name := range s.names {
		if i > 0 {
			buf = append(buf, ',')
		}

		key, err := json.Marshal(name)

		if err != nil {
			return nil, err
		}

		buf = append(buf, key...)
		buf = append(buf, ':')

		values := s.values[name]

		var val []byte

		if len(values) == 1 {
			val, err = json.Marshal(values[0])
		} else {
			val, err = json.Marshal(values)
		}

		if err != nil {
			return nil, err
		}

		buf = append(buf, val...)
	}

	buf = append(buf, '}')

	return buf, nil
}

// UnmarshalJSON decodes an object, preserving its key order.
func (s *FieldSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	order, err := objectKeys(data)

	if err != nil {
		return err
	}

	s.names = nil
	s.values = map[string][]any{}

	for _, name := range order {
		var list []any

		if err := json.Unmarshal(raw[name], &list); err == nil {
			for _, v := range list {
				s.Add(name, v)
			}

			continue
		}

		var value any

		if err := json.Unmarshal(raw[name], &value); err != nil {
			return err
		}

		s.Add(name, value)
	}

	return nil
}

func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()

	if err != nil {
		return nil, err
	}

	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string

	for dec.More() {
		tok, err := dec.Token()

		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)

		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		keys = append(keys, key)

		var skip json.RawMessage

		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}

	return keys, nil
}
