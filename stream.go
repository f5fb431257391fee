package querystring

import (
	"fmt"
	"io"
)

// Decoder reads a query string from an [io.Reader] and parses it.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder creates a new [Decoder] that reads from r. The options apply to
// every call to Decode.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads all remaining data from the underlying [io.Reader] and parses
// it as a query string.
func (d *Decoder) Decode() (*Query, error) {
	body, err := io.ReadAll(d.r)
	if err != nil {
		return nil, fmt.Errorf("query: failed to read body: %w", err)
	}

	return ParseBytes(body, d.opts...)
}

// Encoder writes query strings to an [io.Writer].
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder creates a new [Encoder] that writes to w. The options apply to
// every call to Encode.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode stringifies q and writes the result to the underlying [io.Writer].
func (e *Encoder) Encode(q *Query) error {
	s, err := Stringify(q, e.opts...)
	if err != nil {
		return err
	}

	_, err = io.WriteString(e.w, s)
	return err
}
