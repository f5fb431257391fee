package querystring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasbasham/querystring"
)

const yamlSchema = `
array_format: comma
comma_encoding: split
on_type_error: drop
parse_boolean: true
skip_null: true
types:
  ids: number[]
  page: number
  search: string
`

const tomlSchema = `
array_format = "comma"
comma_encoding = "split"
on_type_error = "drop"
parse_boolean = true
skip_null = true

[types]
ids = "number[]"
page = "number"
search = "string"
`

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	want := &querystring.Schema{
		ArrayFormat:   querystring.FormatComma,
		CommaEncoding: querystring.CommaSplit,
		OnTypeError:   querystring.OnTypeErrorDrop,
		ParseBoolean:  true,
		SkipNull:      true,
		Types: querystring.Types{
			"ids":    querystring.NumberArray,
			"page":   querystring.Number,
			"search": querystring.String,
		},
	}

	tests := map[string]func([]byte) (*querystring.Schema, error){
		"yaml": querystring.LoadSchemaYAML,
		"toml": querystring.LoadSchemaTOML,
	}
	inputs := map[string]string{"yaml": yamlSchema, "toml": tomlSchema}

	for name, load := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := load([]byte(inputs[name]))
			require.NoError(t, err)
			assert.Equal(t, want, got)

			q, err := querystring.Parse("ids=1,x%2C2&page=abc&search=a,b&flag=true", got.Options()...)
			require.NoError(t, err)
			assert.Equal(t, []kv{
				{"ids", []any{1.0, 2.0}},
				{"search", "a,b"},
				{"flag", true},
			}, entries(q))

			s, err := querystring.Stringify(queryOf(kv{"a", nil}, kv{"ids", []any{1, 2}}), got.Options()...)
			require.NoError(t, err)
			assert.Equal(t, "ids=1,2", s)
		})
	}
}

func TestLoadSchema_Defaults(t *testing.T) {
	t.Parallel()

	got, err := querystring.LoadSchemaYAML([]byte("types:\n  a: boolean\n"))
	require.NoError(t, err)
	assert.Equal(t, querystring.FormatRepeat, got.ArrayFormat)
	assert.Equal(t, querystring.OnTypeErrorKeep, got.OnTypeError)

	q, err := querystring.Parse("a=true&b=1", got.Options()...)
	require.NoError(t, err)
	assert.Equal(t, []kv{{"a", true}, {"b", "1"}}, entries(q))
}

func TestLoadSchema_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		load  func([]byte) (*querystring.Schema, error)
		input string
	}{
		"yaml invalid array format": {
			load:  querystring.LoadSchemaYAML,
			input: "array_format: brackets\n",
		},
		"yaml invalid type": {
			load:  querystring.LoadSchemaYAML,
			input: "types:\n  a: boolean[]\n",
		},
		"yaml invalid policy": {
			load:  querystring.LoadSchemaYAML,
			input: "on_type_error: ignore\n",
		},
		"yaml malformed": {
			load:  querystring.LoadSchemaYAML,
			input: "types: [",
		},
		"toml invalid comma encoding": {
			load:  querystring.LoadSchemaTOML,
			input: "comma_encoding = \"both\"\n",
		},
		"toml invalid type": {
			load:  querystring.LoadSchemaTOML,
			input: "[types]\na = \"date\"\n",
		},
		"toml malformed": {
			load:  querystring.LoadSchemaTOML,
			input: "array_format = ",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, got)
		})
	}
}
