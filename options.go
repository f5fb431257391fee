package querystring

import (
	"log/slog"
)

// config is the resolved configuration of a single Parse or Stringify call.
// It is built fresh for every call and never shared.
type config struct {
	decode bool
	encode bool

	arrayFormat   ArrayFormat
	commaEncoding CommaEncoding

	parseNumber  bool
	parseBoolean bool
	parseNull    bool
	types        Types
	onTypeError  TypeErrorPolicy

	skipNull        bool
	skipEmptyString bool

	logger *slog.Logger
}

// Option configures Parse, Stringify and the functions built on them.
// Options that only concern one direction are ignored by the other.
type Option func(*config)

func defaultConfig() config {
	return config{
		decode:        true,
		encode:        true,
		arrayFormat:   FormatRepeat,
		commaEncoding: CommaPreserve,
		onTypeError:   OnTypeErrorKeep,
		logger:        slog.New(slog.DiscardHandler),
	}
}

func newConfig(opts ...Option) *config {
	c := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return &c
}

func (c *config) validate() error {
	if !c.arrayFormat.valid() {
		return &ConfigError{Option: "array format", Value: c.arrayFormat.String(), Err: ErrInvalidArrayFormat}
	}
	if !c.commaEncoding.valid() {
		return &ConfigError{Option: "comma encoding", Value: c.commaEncoding.String(), Err: ErrInvalidCommaEncoding}
	}
	if !c.onTypeError.valid() {
		return &ConfigError{Option: "onTypeError", Value: c.onTypeError.String(), Err: ErrInvalidTypeErrorPolicy}
	}
	for key, t := range c.types {
		if !t.valid() {
			return &ConfigError{Option: "type of " + key, Value: t.String(), Err: ErrInvalidValueType}
		}
	}
	return nil
}

// WithDecode controls percent-decoding of keys and values by Parse. It is on
// by default.
func WithDecode(decode bool) Option {
	return func(c *config) {
		c.decode = decode
	}
}

// WithEncode controls percent-encoding of keys and values by Stringify. It is
// on by default.
func WithEncode(encode bool) Option {
	return func(c *config) {
		c.encode = encode
	}
}

// WithArrayFormat sets the wire convention for keys with several values.
//
// Example:
//
//	q, err := querystring.Parse("ids=1,2,3",
//		querystring.WithArrayFormat(querystring.FormatComma))
func WithArrayFormat(f ArrayFormat) Option {
	return func(c *config) {
		c.arrayFormat = f
	}
}

// WithCommaEncoding sets how Parse treats %2C in the comma format.
func WithCommaEncoding(e CommaEncoding) Option {
	return func(c *config) {
		c.commaEncoding = e
	}
}

// WithParseNumber converts values that read as finite numbers into float64
// for keys without a declared type.
func WithParseNumber() Option {
	return func(c *config) {
		c.parseNumber = true
	}
}

// WithParseBoolean converts the exact values "true" and "false" into bool for
// keys without a declared type.
func WithParseBoolean() Option {
	return func(c *config) {
		c.parseBoolean = true
	}
}

// WithParseNull converts the exact value "null" into nil for keys without a
// declared type.
func WithParseNull() Option {
	return func(c *config) {
		c.parseNull = true
	}
}

// WithTypes declares value types per key. Declared types take priority over
// the inference flags. The map is copied.
func WithTypes(types Types) Option {
	return func(c *config) {
		merged := c.types.clone()
		for k, v := range types {
			merged[k] = v
		}
		c.types = merged
	}
}

// WithType declares the value type of a single key.
func WithType(key string, t ValueType) Option {
	return WithTypes(Types{key: t})
}

// WithTypeErrorPolicy sets how values failing their declared type are
// handled.
func WithTypeErrorPolicy(p TypeErrorPolicy) Option {
	return func(c *config) {
		c.onTypeError = p
	}
}

// WithSkipNull makes Stringify omit nil values instead of writing bare keys.
func WithSkipNull() Option {
	return func(c *config) {
		c.skipNull = true
	}
}

// WithSkipEmptyString makes Stringify omit empty string values.
func WithSkipEmptyString() Option {
	return func(c *config) {
		c.skipEmptyString = true
	}
}

// WithLogger sets the logger receiving debug records about recovered
// anomalies, such as malformed percent sequences or values failing their
// declared type. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
