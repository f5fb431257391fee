package querystring

import (
	"strconv"
	"strings"
)

// ArrayFormat selects the wire convention for keys carrying several values.
type ArrayFormat int

const (
	// FormatRepeat writes one pair per value: a=1&a=2. This is the default.
	FormatRepeat ArrayFormat = iota

	// FormatBracket writes one pair per value with a "[]" key suffix:
	// a[]=1&a[]=2. Parsing strips the suffix.
	FormatBracket

	// FormatComma joins the values into a single pair: a=1,2.
	FormatComma
)

func (f ArrayFormat) String() string {
	switch f {
	case FormatRepeat:
		return "repeat"
	case FormatBracket:
		return "bracket"
	case FormatComma:
		return "comma"
	default:
		return "ArrayFormat(" + strconv.Itoa(int(f)) + ")"
	}
}

func (f ArrayFormat) valid() bool {
	return f >= FormatRepeat && f <= FormatComma
}

// MarshalText implements [encoding.TextMarshaler].
func (f ArrayFormat) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, &ConfigError{Option: "array format", Value: f.String(), Err: ErrInvalidArrayFormat}
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *ArrayFormat) UnmarshalText(text []byte) error {
	switch string(text) {
	case "repeat":
		*f = FormatRepeat
	case "bracket":
		*f = FormatBracket
	case "comma":
		*f = FormatComma
	default:
		return &ConfigError{Option: "array format", Value: string(text), Err: ErrInvalidArrayFormat}
	}
	return nil
}

// CommaEncoding decides, when parsing the comma format, whether a
// percent-encoded comma (%2C or %2c) is data or a second delimiter. It has no
// effect on Stringify, which always escapes commas inside values.
type CommaEncoding int

const (
	// CommaPreserve splits on literal commas only; %2C decodes to a comma
	// inside the value. This is the default.
	CommaPreserve CommaEncoding = iota

	// CommaSplit splits on literal commas and on %2C/%2c.
	CommaSplit
)

func (e CommaEncoding) String() string {
	switch e {
	case CommaPreserve:
		return "preserve"
	case CommaSplit:
		return "split"
	default:
		return "CommaEncoding(" + strconv.Itoa(int(e)) + ")"
	}
}

func (e CommaEncoding) valid() bool {
	return e == CommaPreserve || e == CommaSplit
}

// MarshalText implements [encoding.TextMarshaler].
func (e CommaEncoding) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, &ConfigError{Option: "comma encoding", Value: e.String(), Err: ErrInvalidCommaEncoding}
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *CommaEncoding) UnmarshalText(text []byte) error {
	switch string(text) {
	case "preserve":
		*e = CommaPreserve
	case "split":
		*e = CommaSplit
	default:
		return &ConfigError{Option: "comma encoding", Value: string(text), Err: ErrInvalidCommaEncoding}
	}
	return nil
}

// splitComma splits a raw (still encoded) value into its comma-separated
// segments. Segments are trimmed and empty ones dropped.
func splitComma(raw string, enc CommaEncoding) []string {
	var segs []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}

	start := 0
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] == ',':
			add(raw[start:i])
			start = i + 1
		case enc == CommaSplit && isEncodedComma(raw[i:]):
			add(raw[start:i])
			i += 2
			start = i + 1
		}
	}
	add(raw[start:])
	return segs
}

func isEncodedComma(s string) bool {
	return len(s) >= 3 && s[0] == '%' && s[1] == '2' && (s[2] == 'C' || s[2] == 'c')
}
