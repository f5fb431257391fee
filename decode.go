package querystring

import (
	"log/slog"
	"strings"
)

// Parse parses the query component of a URL into a [Query].
//
// Surrounding whitespace and one leading '?', '#' or '&' are ignored, as are
// empty pairs. A key without '=' is a bare key and parses to nil. Repeated
// keys, bracket keys and comma-joined values are collected into []any
// according to [WithArrayFormat]. Values stay strings unless a declared type
// or an inference flag converts them.
//
// Parse returns a *ConfigError for invalid options, and a *TypeError when a
// value fails its declared type under [OnTypeErrorThrow]. No partial result
// is returned with an error.
func Parse(s string, opts ...Option) (*Query, error) {
	c := newConfig(opts...)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c.parse(s)
}

// ParseBytes is like Parse but reads its input from a byte slice.
func ParseBytes(data []byte, opts ...Option) (*Query, error) {
	return Parse(string(data), opts...)
}

// accumulator collects the raw elements of every key in order of first
// appearance. Each occurrence of a key contributes one group of elements; a
// nil element is a bare key.
type accumulator struct {
	keys   []string
	groups map[string][][]*string
}

func (a *accumulator) push(key string, group []*string) {
	if a.groups == nil {
		a.groups = make(map[string][][]*string)
	}
	if _, ok := a.groups[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.groups[key] = append(a.groups[key], group)
}

func (c *config) parse(s string) (*Query, error) {
	q := NewQuery()

	s = strings.TrimSpace(s)
	if s != "" && strings.ContainsRune("?#&", rune(s[0])) {
		s = s[1:]
	}
	if s == "" {
		return q, nil
	}

	var acc accumulator
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawVal, hasValue := splitOnFirst(pair, "=")
		key := c.decodeText(rawKey)
		if c.arrayFormat == FormatBracket {
			key = trimBracket(key)
		}

		if !hasValue {
			acc.push(key, []*string{nil})
			continue
		}
		acc.push(key, c.route(key, rawVal))
	}

	for _, key := range acc.keys {
		v, keep, err := c.finalize(key, acc.groups[key])
		if err != nil {
			return nil, err
		}
		if keep {
			q.Set(key, v)
		}
	}
	return q, nil
}

// route turns the raw value of one occurrence into its decoded elements.
// The comma format splits before decoding so that the delimiter test sees
// the text as written.
func (c *config) route(key, raw string) []*string {
	if c.arrayFormat != FormatComma {
		return []*string{ptr(c.decodeText(raw))}
	}

	// Scalar-typed keys keep their value whole.
	if t, ok := c.types[key]; ok && !t.Array {
		return []*string{ptr(c.decodeText(raw))}
	}

	segs := splitComma(raw, c.commaEncoding)
	if len(segs) == 0 {
		return []*string{ptr("")}
	}
	group := make([]*string, len(segs))
	for i, seg := range segs {
		group[i] = ptr(c.decodeText(seg))
	}
	return group
}

// finalize resolves the groups collected for key into its final value. keep
// is false when the key is dropped.
func (c *config) finalize(key string, groups [][]*string) (v any, keep bool, err error) {
	t, declared := c.types[key]
	switch {
	case declared && t.Array:
		return c.finalizeArray(key, t, flatten(groups))
	case declared:
		last := groups[len(groups)-1]
		return c.finalizeScalar(key, t, last[len(last)-1])
	}

	if len(groups) == 1 && len(groups[0]) == 1 {
		return c.inferElem(groups[0][0]), true, nil
	}
	elems := flatten(groups)
	out := make([]any, len(elems))
	for i, e := range elems {
		out[i] = c.inferElem(e)
	}
	return out, true, nil
}

func (c *config) finalizeArray(key string, t ValueType, elems []*string) (any, bool, error) {
	out := make([]any, 0, len(elems))
	for _, e := range elems {
		v, terr := castDeclared(key, e, t)
		if terr == nil {
			out = append(out, v)
			continue
		}
		switch c.onTypeError {
		case OnTypeErrorThrow:
			return nil, false, terr
		case OnTypeErrorDrop:
			c.logCastFailure(terr, "dropped element")
		default:
			c.logCastFailure(terr, "kept element")
			out = append(out, deref(e))
		}
	}
	return out, true, nil
}

func (c *config) finalizeScalar(key string, t ValueType, e *string) (any, bool, error) {
	v, terr := castDeclared(key, e, t)
	if terr == nil {
		return v, true, nil
	}
	switch c.onTypeError {
	case OnTypeErrorThrow:
		return nil, false, terr
	case OnTypeErrorDrop:
		c.logCastFailure(terr, "dropped key")
		return nil, false, nil
	default:
		c.logCastFailure(terr, "kept value")
		return deref(e), true, nil
	}
}

func (c *config) inferElem(e *string) any {
	if e == nil {
		return nil
	}
	return c.infer(*e)
}

func (c *config) decodeText(s string) string {
	if !c.decode {
		return s
	}
	out, ok := unescape(s)
	if !ok {
		c.logger.Debug("query: malformed percent-encoding left as is", slog.String("text", s))
		return s
	}
	return out
}

func (c *config) logCastFailure(err *TypeError, action string) {
	c.logger.Debug("query: cast failure",
		slog.String("action", action),
		slog.String("key", err.Key),
		slog.String("type", err.Type.String()),
		slog.Bool("missing", err.Missing),
		slog.String("value", err.Value),
	)
}

func flatten(groups [][]*string) []*string {
	var out []*string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// deref returns the element as a value: nil for a bare key, the string
// otherwise.
func deref(e *string) any {
	if e == nil {
		return nil
	}
	return *e
}

func ptr(s string) *string {
	return &s
}
