package querystring_test

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tomasbasham/querystring"
)

// kv is a single Query entry, used to compare queries including key order.
type kv struct {
	Key   string
	Value any
}

func entries(q *querystring.Query) []kv {
	var out []kv
	for k, v := range q.All() {
		out = append(out, kv{Key: k, Value: v})
	}
	return out
}

func queryOf(pairs ...kv) *querystring.Query {
	q := querystring.NewQuery()
	for _, p := range pairs {
		q.Set(p.Key, p.Value)
	}
	return q
}

var equateEmpty = cmpopts.EquateEmpty()

func diffQuery(want []kv, got *querystring.Query) string {
	return cmp.Diff(want, entries(got), equateEmpty)
}

type Person struct {
	Name     string   `query:"name"`
	Age      int      `query:"age,omitempty"`
	Pronouns []string `query:"pronouns"`
}

type Search struct {
	Term     string   `query:"q"`
	Page     uint16   `query:"page,omitempty"`
	Ratio    float32  `query:"ratio,omitempty"`
	IDs      []int64  `query:"ids,omitempty"`
	Exact    bool     `query:"exact,omitempty"`
	Sort     *string  `query:"sort,omitempty"`
	Animal   Animal   `query:"animal,omitempty"`
	Private  string   `query:"-"`
	NoTag    string   `query:",omitempty"`
	internal string
}

type Animal int

const (
	Unknown Animal = iota
	Gopher
	Zebra
)

func (a Animal) MarshalQuery() (string, error) {
	switch a {
	case Gopher:
		return "gopher", nil
	case Zebra:
		return "zebra", nil
	default:
		return "unknown", nil
	}
}

func (a *Animal) UnmarshalQuery(value string) error {
	switch value {
	case "gopher":
		*a = Gopher
	case "zebra":
		*a = Zebra
	default:
		*a = Unknown
	}
	return nil
}

type failingMarshaler struct{}

func (failingMarshaler) MarshalQuery() (string, error) {
	return "", errors.New("boom")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func ptrTo[T any](v T) *T {
	return &v
}
