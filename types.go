package querystring

import (
	"strconv"
	"strings"
)

// ScalarKind is the base kind of a declared value type.
type ScalarKind int

const (
	// KindString keeps the decoded text.
	KindString ScalarKind = iota + 1
	// KindNumber casts to float64.
	KindNumber
	// KindBoolean casts "true" and "false" to bool.
	KindBoolean
)

func (k ScalarKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "ScalarKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ValueType is a type declared for a key. A scalar type casts the value of
// the key; an array type casts every element and always yields a slice.
//
// The zero ValueType is not valid.
type ValueType struct {
	Kind  ScalarKind
	Array bool
}

// The declared types understood by Parse.
var (
	String      = ValueType{Kind: KindString}
	Number      = ValueType{Kind: KindNumber}
	Boolean     = ValueType{Kind: KindBoolean}
	StringArray = ValueType{Kind: KindString, Array: true}
	NumberArray = ValueType{Kind: KindNumber, Array: true}
)

// ParseValueType parses the textual form of a declared type: "string",
// "number", "boolean", "string[]" or "number[]".
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "string":
		return String, nil
	case "number":
		return Number, nil
	case "boolean":
		return Boolean, nil
	case "string[]":
		return StringArray, nil
	case "number[]":
		return NumberArray, nil
	}
	return ValueType{}, &ConfigError{Option: "type", Value: s, Err: ErrInvalidValueType}
}

func (t ValueType) valid() bool {
	switch t {
	case String, Number, Boolean, StringArray, NumberArray:
		return true
	}
	return false
}

func (t ValueType) String() string {
	if t.Array {
		return t.Kind.String() + "[]"
	}
	return t.Kind.String()
}

// MarshalText implements [encoding.TextMarshaler].
func (t ValueType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, &ConfigError{Option: "type", Value: t.String(), Err: ErrInvalidValueType}
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *ValueType) UnmarshalText(text []byte) error {
	v, err := ParseValueType(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Types maps keys to their declared types.
type Types map[string]ValueType

func (t Types) clone() Types {
	out := make(Types, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// TypeErrorPolicy decides what happens to a value that fails its declared
// type.
type TypeErrorPolicy int

const (
	// OnTypeErrorKeep leaves the original text (or nil) in place. This is
	// the default.
	OnTypeErrorKeep TypeErrorPolicy = iota

	// OnTypeErrorThrow aborts Parse with a *TypeError.
	OnTypeErrorThrow

	// OnTypeErrorDrop removes the failing element from an array-typed key,
	// or the whole key when it is scalar-typed.
	OnTypeErrorDrop
)

func (p TypeErrorPolicy) String() string {
	switch p {
	case OnTypeErrorKeep:
		return "keep"
	case OnTypeErrorThrow:
		return "throw"
	case OnTypeErrorDrop:
		return "drop"
	default:
		return "TypeErrorPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

func (p TypeErrorPolicy) valid() bool {
	return p >= OnTypeErrorKeep && p <= OnTypeErrorDrop
}

// MarshalText implements [encoding.TextMarshaler].
func (p TypeErrorPolicy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, &ConfigError{Option: "onTypeError", Value: p.String(), Err: ErrInvalidTypeErrorPolicy}
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *TypeErrorPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "keep":
		*p = OnTypeErrorKeep
	case "throw":
		*p = OnTypeErrorThrow
	case "drop":
		*p = OnTypeErrorDrop
	default:
		return &ConfigError{Option: "onTypeError", Value: string(text), Err: ErrInvalidTypeErrorPolicy}
	}
	return nil
}
