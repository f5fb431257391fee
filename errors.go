package querystring

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArrayFormat is wrapped by a ConfigError for an unknown ArrayFormat.
	ErrInvalidArrayFormat = errors.New("invalid array format")
	// ErrInvalidCommaEncoding is wrapped by a ConfigError for an unknown CommaEncoding.
	ErrInvalidCommaEncoding = errors.New("invalid comma encoding")
	// ErrInvalidTypeErrorPolicy is wrapped by a ConfigError for an unknown TypeErrorPolicy.
	ErrInvalidTypeErrorPolicy = errors.New("invalid onTypeError policy")
	// ErrInvalidValueType is wrapped by a ConfigError for an unknown declared type.
	ErrInvalidValueType = errors.New("invalid value type")
	// ErrTypeMismatch is matched by every TypeError.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ConfigError reports an invalid option. It is returned before any input is
// processed.
type ConfigError struct {
	Option string
	Value  string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("query: %v: %q", e.Err, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TypeError reports a value that failed its declared type under
// [OnTypeErrorThrow].
type TypeError struct {
	Key   string
	Type  ValueType
	Value string

	// Missing is set when the key had no value at all (a bare key).
	Missing bool
}

func (e *TypeError) Error() string {
	if e.Missing {
		return fmt.Sprintf("query: expected a value for key %q of type %v", e.Key, e.Type)
	}
	return fmt.Sprintf("query: expected %v for key %q, got %q", e.Type.Kind, e.Key, e.Value)
}

func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

// InvalidUnmarshalError describes an invalid argument passed to [Unmarshal].
// (The argument to [Unmarshal] must be a non-nil pointer to a struct.)
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "query: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "query: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	if e.Type.Elem().Kind() != reflect.Struct {
		return "query: Unmarshal(pointer to non-struct " + e.Type.String() + ")"
	}
	return "query: Unmarshal(nil " + e.Type.String() + ")"
}
