package querystring_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/querystring"
)

func TestParseValueType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		want    querystring.ValueType
		wantErr bool
	}{
		"string":    {want: querystring.String},
		"number":    {want: querystring.Number},
		"boolean":   {want: querystring.Boolean},
		"string[]":  {want: querystring.StringArray},
		"number[]":  {want: querystring.NumberArray},
		"boolean[]": {wantErr: true},
		"Number":    {wantErr: true},
		"":          {wantErr: true},
	}
	for input, tt := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got, err := querystring.ParseValueType(input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if tt.wantErr {
				if !errors.Is(err, querystring.ErrInvalidValueType) {
					t.Errorf("expected ErrInvalidValueType, got: %v", err)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if got.String() != input {
				t.Errorf("String() = %q, want %q", got.String(), input)
			}
		})
	}
}

func TestMarshalText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   interface{ MarshalText() ([]byte, error) }
		want    string
		wantErr error
	}{
		"repeat":          {input: querystring.FormatRepeat, want: "repeat"},
		"bracket":         {input: querystring.FormatBracket, want: "bracket"},
		"comma":           {input: querystring.FormatComma, want: "comma"},
		"invalid format":  {input: querystring.ArrayFormat(3), wantErr: querystring.ErrInvalidArrayFormat},
		"preserve":        {input: querystring.CommaPreserve, want: "preserve"},
		"split":           {input: querystring.CommaSplit, want: "split"},
		"invalid comma":   {input: querystring.CommaEncoding(2), wantErr: querystring.ErrInvalidCommaEncoding},
		"keep":            {input: querystring.OnTypeErrorKeep, want: "keep"},
		"throw":           {input: querystring.OnTypeErrorThrow, want: "throw"},
		"drop":            {input: querystring.OnTypeErrorDrop, want: "drop"},
		"invalid policy":  {input: querystring.TypeErrorPolicy(-1), wantErr: querystring.ErrInvalidTypeErrorPolicy},
		"number array":    {input: querystring.NumberArray, want: "number[]"},
		"zero value type": {input: querystring.ValueType{}, wantErr: querystring.ErrInvalidValueType},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.input.MarshalText()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got: %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	var f querystring.ArrayFormat
	err := f.UnmarshalText([]byte("brackets"))

	var cerr *querystring.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got: %v", err)
	}
	if cerr.Option != "array format" || cerr.Value != "brackets" {
		t.Errorf("unexpected error fields: %+v", cerr)
	}
	if got, want := err.Error(), `query: invalid array format: "brackets"`; got != want {
		t.Errorf("expected message %q, got: %q", want, got)
	}
}
