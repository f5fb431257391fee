package querystring

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Unmarshaler is the interface implemented by types that can parse a query
// value of themselves. Fields implementing it are declared as strings.
type Unmarshaler interface {
	UnmarshalQuery(string) error
}

// DecodeString is a convenience function that parses the query string s and
// stores the result in the struct pointed to by v.
func DecodeString(s string, v any, opts ...Option) error {
	return Unmarshal([]byte(s), v, opts...)
}

// Unmarshal parses the query string in data and stores the result in the
// struct pointed to by v. If v is nil, not a pointer or does not point to a
// struct, Unmarshal returns an [InvalidUnmarshalError].
//
// Keys are matched against the "query" struct tag, or the field name when
// the tag is absent. Field types declare the type of their key: strings,
// numbers, booleans, and slices of strings or numbers. Types passed through
// [WithTypes] take priority. Keys absent from the input, and bare keys, leave
// their field untouched.
func Unmarshal(data []byte, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}
	rv = rv.Elem()

	fs, err := fields(rv.Type())
	if err != nil {
		return err
	}

	types := make(Types, len(fs))
	for _, f := range fs {
		types[f.Name] = f.Type
	}

	q, err := ParseBytes(data, append([]Option{WithTypes(types)}, opts...)...)
	if err != nil {
		return err
	}

	for _, f := range fs {
		val, ok := q.Get(f.Name)
		if !ok {
			continue
		}
		if err := assign(rv.Field(f.Index), val); err != nil {
			return fmt.Errorf("query: field %s: %w", f.Name, err)
		}
	}
	return nil
}

// assign stores a parsed value in v.
func assign(v reflect.Value, val any) error {
	if val == nil {
		return nil
	}
	v = derefAlloc(v)

	if u, ok := asUnmarshaler(v); ok {
		s, err := textOf("", val)
		if err != nil {
			return err
		}
		return u.UnmarshalQuery(s)
	}

	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8 {
		items, ok := val.([]any)
		if !ok {
			items = []any{val}
		}
		slice := reflect.MakeSlice(v.Type(), 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := assign(elem, item); err != nil {
				return err
			}
			slice = reflect.Append(slice, elem)
		}
		v.Set(slice)
		return nil
	}

	return setScalar(v, val)
}

// dereference a pointer value, allocating a new value if needed.
func derefAlloc(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	return v
}

func setScalar(v reflect.Value, val any) error {
	switch v.Kind() {
	case reflect.String:
		s, err := textOf("", val)
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Slice:
		s, err := textOf("", val)
		if err != nil {
			return err
		}
		v.SetBytes([]byte(s))
	case reflect.Bool:
		b, ok := val.(bool)
		if !ok {
			return mismatch(v, val)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := val.(float64)
		if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || v.OverflowInt(int64(f)) {
			return mismatch(v, val)
		}
		v.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := val.(float64)
		if !ok || f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || v.OverflowUint(uint64(f)) {
			return mismatch(v, val)
		}
		v.SetUint(uint64(f))
	case reflect.Float32, reflect.Float64:
		f, ok := val.(float64)
		if !ok || v.OverflowFloat(f) {
			return mismatch(v, val)
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported type: %v", v.Type())
	}
	return nil
}

func mismatch(v reflect.Value, val any) error {
	return fmt.Errorf("cannot assign %#v to %v: %w", val, v.Type(), ErrTypeMismatch)
}

func asUnmarshaler(v reflect.Value) (Unmarshaler, bool) {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	if u, ok := v.Interface().(Unmarshaler); ok {
		return u, true
	}
	return nil, false
}

// EncodeToString is a convenience function that returns the query encoding
// of v as a string.
func EncodeToString(v any, opts ...Option) (string, error) {
	b, err := Marshal(v, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Marshal returns the query encoding of v, which must be a struct, a pointer
// to a struct, or a map with string keys. Struct fields are written in
// declaration order and map entries in key order. Fields tagged omitempty are
// skipped when empty; nil pointers are skipped.
func Marshal(v any, opts ...Option) ([]byte, error) {
	if v == nil {
		return []byte{}, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return []byte{}, nil
		}
		rv = rv.Elem()
	}

	var (
		q   *Query
		err error
	)
	switch rv.Kind() {
	case reflect.Struct:
		q, err = structQuery(rv)
	case reflect.Map:
		q, err = mapQuery(rv)
	default:
		err = fmt.Errorf("query: top-level value must be struct or map")
	}
	if err != nil {
		return nil, err
	}

	s, err := Stringify(q, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func structQuery(rv reflect.Value) (*Query, error) {
	fs, err := fields(rv.Type())
	if err != nil {
		return nil, err
	}

	q := NewQuery()
	for _, f := range fs {
		fv := rv.Field(f.Index)
		if f.Omit && isEmptyValue(fv) {
			continue
		}
		q.Set(f.Name, fieldValue(fv))
	}
	return q, nil
}

func mapQuery(rv reflect.Value) (*Query, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("query: map keys must be strings")
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	q := NewQuery()
	for _, k := range keys {
		q.Set(k.String(), fieldValue(rv.MapIndex(k)))
	}
	return q, nil
}

// fieldValue returns the value Stringify renders for v. Nil pointers and
// interfaces are Undefined.
func fieldValue(v reflect.Value) any {
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return Undefined
	}
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			return m
		}
	}
	return v.Interface()
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
