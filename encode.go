package querystring

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Marshaler is the interface implemented by types that can render themselves
// as a query value.
type Marshaler interface {
	MarshalQuery() (string, error)
}

// Stringify renders q as the query component of a URL, keys in insertion
// order.
//
// Per key: [Undefined] is omitted; nil writes the bare key unless
// [WithSkipNull]; "" writes "key=" unless [WithSkipEmptyString]; slices are
// written according to [WithArrayFormat] after dropping Undefined items, and
// contribute nothing when no item survives. Other values are written through
// their textual form: numbers and booleans as Go formats them (floats in
// plain decimal, so 1e21 is written as 1000000000000000000000), [Marshaler]
// and [fmt.Stringer] values through their methods, and anything else, such
// as nested maps or structs, through its default fmt representation.
//
// Stringify returns a *ConfigError for invalid options.
func Stringify(q *Query, opts ...Option) (string, error) {
	c := newConfig(opts...)
	if err := c.validate(); err != nil {
		return "", err
	}
	return c.stringify(q)
}

func (c *config) stringify(q *Query) (string, error) {
	var parts []string
	for key, v := range q.All() {
		v = normalize(v)
		if isUndefined(v) {
			continue
		}

		if items, ok := asSlice(v); ok {
			frags, err := c.stringifySlice(key, items)
			if err != nil {
				return "", err
			}
			parts = append(parts, frags...)
			continue
		}

		frag, ok, err := c.pair(key, v)
		if err != nil {
			return "", err
		}
		if ok {
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, "&"), nil
}

func (c *config) stringifySlice(key string, items []any) ([]string, error) {
	switch c.arrayFormat {
	case FormatComma:
		return c.stringifyComma(key, items)
	case FormatBracket:
		key = bracketKey(key)
	}

	var frags []string
	for _, item := range items {
		item = normalize(item)
		if isUndefined(item) {
			continue
		}
		frag, ok, err := c.pair(key, item)
		if err != nil {
			return nil, err
		}
		if ok {
			frags = append(frags, frag)
		}
	}
	return frags, nil
}

// stringifyComma joins the encoded items with literal commas. nil and empty
// items are dropped since the comma format cannot represent them.
func (c *config) stringifyComma(key string, items []any) ([]string, error) {
	var encoded []string
	for _, item := range items {
		item = normalize(item)
		if item == nil || isUndefined(item) {
			continue
		}
		s, err := textOf(key, item)
		if err != nil {
			return nil, err
		}
		if s = c.encodeText(s); s != "" {
			encoded = append(encoded, s)
		}
	}
	if len(encoded) == 0 {
		return nil, nil
	}
	return []string{c.encodeText(key) + "=" + strings.Join(encoded, ",")}, nil
}

// pair renders a single scalar. ok is false when the value is skipped.
func (c *config) pair(key string, v any) (frag string, ok bool, err error) {
	if v == nil {
		if c.skipNull {
			return "", false, nil
		}
		return c.encodeText(key), true, nil
	}

	s, err := textOf(key, v)
	if err != nil {
		return "", false, err
	}
	if s == "" && c.skipEmptyString {
		return "", false, nil
	}
	return c.encodeText(key) + "=" + c.encodeText(s), true, nil
}

func (c *config) encodeText(s string) string {
	if !c.encode {
		return s
	}
	return Encode(s)
}

// textOf returns the textual form of a scalar.
func textOf(key string, v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case Marshaler:
		s, err := v.MarshalQuery()
		if err != nil {
			return "", fmt.Errorf("query: marshal value of %q: %w", key, err)
		}
		return s, nil
	case fmt.Stringer:
		return v.String(), nil
	case error:
		return v.Error(), nil
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// normalize dereferences pointers that do not render themselves. A nil
// pointer becomes nil.
func normalize(v any) any {
	for {
		if v == nil {
			return nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
		if _, ok := v.(Marshaler); ok || rv.Kind() != reflect.Pointer {
			return v
		}
		v = rv.Elem().Interface()
	}
}

// asSlice reports whether v is a list of values. Byte slices are text.
func asSlice(v any) ([]any, bool) {
	switch v := v.(type) {
	case []any:
		return v, true
	case []byte, Marshaler:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
