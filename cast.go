package querystring

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// castNumber converts s the way a numeric literal is read from text:
// surrounding whitespace is ignored, decimal and scientific notation are
// accepted, as are unsigned 0x, 0o and 0b integers. Empty input and results
// that are not finite (NaN, Infinity, overflow) fail.
func castNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return castRadix(s[2:], base)
		}
	}

	// strconv reads signed hexadecimal floats and digit separators, numeric
	// literals do not.
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func castRadix(digits string, base int) (float64, bool) {
	if digits == "" || digits[0] == '+' || digits[0] == '-' || strings.ContainsRune(digits, '_') {
		return 0, false
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// castBoolean accepts exactly "true" and "false".
func castBoolean(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// castScalar converts s to kind. ok is false on a cast failure.
func castScalar(s string, kind ScalarKind) (any, bool) {
	switch kind {
	case KindNumber:
		if f, ok := castNumber(s); ok {
			return f, true
		}
		return nil, false
	case KindBoolean:
		if b, ok := castBoolean(s); ok {
			return b, true
		}
		return nil, false
	default:
		return s, true
	}
}

// infer applies the global inference flags to a raw token. Booleans are
// tested before null, and null before numbers; unmatched tokens stay strings.
func (c *config) infer(s string) any {
	if c.parseBoolean {
		if b, ok := castBoolean(s); ok {
			return b
		}
	}
	if c.parseNull && s == "null" {
		return nil
	}
	if c.parseNumber {
		if f, ok := castNumber(s); ok {
			return f
		}
	}
	return s
}

// castDeclared casts a raw element against a declared type. A nil element
// (bare key) is a missing value and always fails.
func castDeclared(key string, raw *string, t ValueType) (any, *TypeError) {
	if raw == nil {
		return nil, &TypeError{Key: key, Type: t, Missing: true}
	}
	v, ok := castScalar(*raw, t.Kind)
	if !ok {
		return nil, &TypeError{Key: key, Type: t, Value: *raw}
	}
	return v, nil
}
