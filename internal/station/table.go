package station

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key of a Table together with its positional values
type Entry struct {
	Key    string
	Values []string
}

// Table is an ordered mapping of station keys to positional string lists.
// Keys keep their first insertion position.
type Table struct {
	keys   []string
	values map[string][]string
}

// NewTable creates an empty Table
func NewTable() *Table {
	return &Table{
		keys:   []string{},
		values: make(map[string][]string),
	}
}

// Set stores values under key. An existing key is overwritten in place.
func (t *Table) Set(key string, values []string) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = values
}

// Get returns the values stored under key
func (t *Table) Get(key string) ([]string, bool) {
	values, ok := t.values[key]
	return values, ok
}

// Has reports whether key is present
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Keys returns a copy of the keys in insertion order
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Len returns the number of keys
func (t *Table) Len() int {
	return len(t.keys)
}

// Entries returns all entries in insertion order
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, Entry{Key: k, Values: t.values[k]})
	}
	return entries
}

// MarshalJSON encodes the table as a JSON object in insertion order.
// HTML characters are left unescaped so URLs survive byte for byte.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encoder.Encode(k); err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", k, err)
		}
		buf.WriteByte(':')

		values := t.values[k]
		if values == nil {
			// nil would encode as null
			values = []string{}
		}
		if err := encoder.Encode(values); err != nil {
			return nil, fmt.Errorf("encoding values of %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
