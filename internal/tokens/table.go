package tokens

import (
	"encoding/json"
	"iter"
	"strings"
)

// Table is a flat, ordered mapping from hyphen-joined token keys to literal values.
type Table struct {
	keys   []string
	values map[string]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{values: make(map[string]string)}
}

// Set stores value under key. An existing key keeps its position and takes the new value.
func (t *Table) Set(key, value string) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value for key and whether it exists.
func (t *Table) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	value, ok := t.values[key]
	return value, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// All iterates entries in insertion order.
func (t *Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if t == nil {
			return
		}
		for _, key := range t.keys {
			if !yield(key, t.values[key]) {
				return
			}
		}
	}
}

// Merge returns a new table holding t's entries overlaid with overlay's.
// Neither input is modified.
func (t *Table) Merge(overlay *Table) *Table {
	merged := NewTable()
	for key, value := range t.All() {
		merged.Set(key, value)
	}
	for key, value := range overlay.All() {
		merged.Set(key, value)
	}
	return merged
}

// WithPrefix returns the entries whose key starts with prefix, prefix stripped.
func (t *Table) WithPrefix(prefix string) *Table {
	filtered := NewTable()
	for key, value := range t.All() {
		if rest, ok := strings.CutPrefix(key, prefix); ok && rest != "" {
			filtered.Set(rest, value)
		}
	}
	return filtered
}

// Map copies the table into a plain map.
func (t *Table) Map() map[string]string {
	out := make(map[string]string, t.Len())
	for key, value := range t.All() {
		out[key] = value
	}
	return out
}

// MarshalJSON encodes the table as a JSON object preserving entry order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for key, value := range t.All() {
		if !first {
			b.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
