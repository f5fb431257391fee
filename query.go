package querystring

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"sort"
)

// undefined is the type of the Undefined sentinel.
type undefined struct{}

// Undefined marks a value, or a slice item, that Stringify omits entirely.
// Parse never produces it.
var Undefined = undefined{}

func isUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Query is an insertion-ordered mapping from keys to values. Values produced
// by Parse are nil, string, float64, bool or []any holding those.
//
// The zero value is an empty Query ready to use. A nil *Query reads as empty.
type Query struct {
	keys   []string
	values map[string]any
}

// NewQuery returns an empty Query.
func NewQuery() *Query {
	return &Query{}
}

// FromMap returns a Query holding the entries of m with keys sorted, the
// same order url.Values.Encode uses.
func FromMap[V any](m map[string]V) *Query {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := NewQuery()
	for _, k := range keys {
		q.Set(k, m[k])
	}
	return q
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position.
func (q *Query) Set(key string, v any) {
	if q.values == nil {
		q.values = make(map[string]any)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = v
}

// Get returns the value stored under key.
func (q *Query) Get(key string) (any, bool) {
	if q == nil {
		return nil, false
	}
	v, ok := q.values[key]
	return v, ok
}

// Has reports whether key is present, including bare keys holding nil.
func (q *Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Del removes key.
func (q *Query) Del(key string) {
	if q == nil {
		return
	}
	if _, ok := q.values[key]; !ok {
		return
	}
	delete(q.values, key)
	q.keys = slices.DeleteFunc(q.keys, func(k string) bool { return k == key })
}

// Len returns the number of keys.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Keys returns the keys in insertion order.
func (q *Query) Keys() []string {
	if q == nil {
		return nil
	}
	return slices.Clone(q.keys)
}

// All iterates over the entries in insertion order.
func (q *Query) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if q == nil {
			return
		}
		for _, k := range q.keys {
			if !yield(k, q.values[k]) {
				return
			}
		}
	}
}

// Map returns the entries as a plain map, losing the key order.
func (q *Query) Map() map[string]any {
	m := make(map[string]any, q.Len())
	for k, v := range q.All() {
		m[k] = v
	}
	return m
}

// MarshalJSON writes the Query as a JSON object, keys in insertion order.
func (q *Query) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range q.All() {
		if isUndefined(v) {
			continue
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		i++

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
