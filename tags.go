package querystring

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// cache of struct fields to avoid repeated reflection over the same struct
// type. The key is the [reflect.Type] of the struct, and the value is a
// fieldsResult.
//
// This cache is safe for concurrent use.
var structFieldCache sync.Map

type fieldsResult struct {
	fields []field
	err    error
}

// field describes a struct field bound to a query key.
type field struct {
	Name  string
	Index int
	Omit  bool
	Type  ValueType
}

type tag struct {
	Name   string
	Omit   bool
	Ignore bool
}

var (
	marshalerType   = reflect.TypeFor[Marshaler]()
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
)

func fields(tt reflect.Type) ([]field, error) {
	if cached, ok := structFieldCache.Load(tt); ok {
		r := cached.(fieldsResult)
		return r.fields, r.err
	}

	fs, err := buildFields(tt)
	structFieldCache.Store(tt, fieldsResult{fields: fs, err: err})
	return fs, err
}

func buildFields(tt reflect.Type) ([]field, error) {
	var fs []field
	for i := 0; i < tt.NumField(); i++ {
		f := tt.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := parseTag(f.Tag.Get("query"))
		if tag.Ignore {
			continue
		}
		if tag.Name == "" {
			tag.Name = f.Name
		}

		t, ok := declaredType(f.Type)
		if !ok {
			return nil, fmt.Errorf("query: unsupported type %v for field %s", f.Type, f.Name)
		}
		fs = append(fs, field{Name: tag.Name, Index: i, Omit: tag.Omit, Type: t})
	}
	return fs, nil
}

// declaredType maps a Go type onto the declared type used when parsing into
// it. Nested structs and maps are not representable.
func declaredType(t reflect.Type) (ValueType, bool) {
	if selfRendering(t) {
		return String, true
	}
	if t.Kind() == reflect.Pointer {
		return declaredType(t.Elem())
	}

	switch t.Kind() {
	case reflect.String:
		return String, true
	case reflect.Bool:
		return Boolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number, true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return String, true
		}
		elem, ok := declaredType(t.Elem())
		if !ok || elem.Array || elem.Kind == KindBoolean {
			return ValueType{}, false
		}
		return ValueType{Kind: elem.Kind, Array: true}, true
	}
	return ValueType{}, false
}

func selfRendering(t reflect.Type) bool {
	return t.Implements(marshalerType) ||
		t.Implements(unmarshalerType) ||
		reflect.PointerTo(t).Implements(unmarshalerType)
}

func parseTag(str string) *tag {
	str = strings.TrimSpace(str)
	if str == "-" {
		return &tag{Ignore: true}
	}

	parts := strings.Split(str, ",")
	t := &tag{}

	// The first part of the tag is the name of the field. If the first part is
	// a hyphen, then the field should be ignored.
	switch name := strings.TrimSpace(parts[0]); name {
	case "-":
		t.Ignore = true
	default:
		t.Name = name
	}

	// The remaining parts of the tag are flags that modify the behaviour of the
	// field.
	for _, p := range parts[1:] {
		switch strings.TrimSpace(p) {
		case "omitempty":
			t.Omit = true
		case "ignore":
			t.Ignore = true
		}
	}

	return t
}
