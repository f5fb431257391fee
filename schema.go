package querystring

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Schema is a declarative description of how a query is parsed and
// stringified, suitable for configuration files:
//
//	array_format: comma
//	comma_encoding: split
//	on_type_error: drop
//	types:
//	  ids: number[]
//	  page: number
//
// Unset fields keep their defaults.
type Schema struct {
	ArrayFormat     ArrayFormat     `yaml:"array_format" toml:"array_format"`
	CommaEncoding   CommaEncoding   `yaml:"comma_encoding" toml:"comma_encoding"`
	OnTypeError     TypeErrorPolicy `yaml:"on_type_error" toml:"on_type_error"`
	ParseNumber     bool            `yaml:"parse_number" toml:"parse_number"`
	ParseBoolean    bool            `yaml:"parse_boolean" toml:"parse_boolean"`
	ParseNull       bool            `yaml:"parse_null" toml:"parse_null"`
	SkipNull        bool            `yaml:"skip_null" toml:"skip_null"`
	SkipEmptyString bool            `yaml:"skip_empty_string" toml:"skip_empty_string"`
	Types           Types           `yaml:"types" toml:"types"`
}

// LoadSchemaYAML decodes a Schema from YAML.
func LoadSchemaYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("query: invalid yaml schema: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSchemaTOML decodes a Schema from TOML.
func LoadSchemaTOML(data []byte) (*Schema, error) {
	var s Schema
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("query: invalid toml schema: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) validate() error {
	return newConfig(s.Options()...).validate()
}

// Options returns the options described by s. Options passed after them
// take priority.
func (s *Schema) Options() []Option {
	opts := []Option{
		WithArrayFormat(s.ArrayFormat),
		WithCommaEncoding(s.CommaEncoding),
		WithTypeErrorPolicy(s.OnTypeError),
	}
	if s.ParseNumber {
		opts = append(opts, WithParseNumber())
	}
	if s.ParseBoolean {
		opts = append(opts, WithParseBoolean())
	}
	if s.ParseNull {
		opts = append(opts, WithParseNull())
	}
	if s.SkipNull {
		opts = append(opts, WithSkipNull())
	}
	if s.SkipEmptyString {
		opts = append(opts, WithSkipEmptyString())
	}
	if len(s.Types) > 0 {
		opts = append(opts, WithTypes(s.Types))
	}
	return opts
}
