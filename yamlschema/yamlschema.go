// Package yamlschema compiles declarative YAML schema documents into
// framegate schemas. Custom checks cannot be expressed in YAML; attach them
// through the dsl package instead.
//
// Document shape:
//
//	columns:
//	  - name: col1
//	    dtype: int
//	  - name: col3
//	    dtype: float
//	    gt: 0
//	index:
//	  - name: id
//	    dtype: int
//	config:
//	  strict: true
//	  check_index_name: true
package yamlschema

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/frame"
)

// Document is the YAML representation of one schema.
type Document struct {
	Columns []Column `yaml:"columns"`
	Index   []Column `yaml:"index,omitempty"`
	Config  Config   `yaml:"config,omitempty"`
}

// Column is the YAML representation of one column or index level.
type Column struct {
	Name     string `yaml:"name"`
	DType    string `yaml:"dtype"`
	Alias    string `yaml:"alias,omitempty"`
	Regex    bool   `yaml:"regex,omitempty"`
	Nullable bool   `yaml:"nullable,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
	Unique   bool   `yaml:"unique,omitempty"`
	Coerce   bool   `yaml:"coerce,omitempty"`

	Gt *float64 `yaml:"gt,omitempty"`
	Ge *float64 `yaml:"ge,omitempty"`
	Lt *float64 `yaml:"lt,omitempty"`
	Le *float64 `yaml:"le,omitempty"`

	IsIn  []any `yaml:"isin,omitempty"`
	NotIn []any `yaml:"notin,omitempty"`

	StartsWith *string `yaml:"starts_with,omitempty"`
	EndsWith   *string `yaml:"ends_with,omitempty"`
	Contains   *string `yaml:"contains,omitempty"`
}

// Config is the YAML representation of schema-level flags.
type Config struct {
	Strict         bool `yaml:"strict,omitempty"`
	Filter         bool `yaml:"filter,omitempty"`
	Coerce         bool `yaml:"coerce,omitempty"`
	CheckIndexName bool `yaml:"check_index_name,omitempty"`
	IndexSorted    bool `yaml:"index_sorted,omitempty"`
	IndexUnique    bool `yaml:"index_unique,omitempty"`
}

// Parse decodes a YAML schema document (strict: unknown keys are an error)
// and compiles it. Definition problems surface as *framegate.DefinitionError.
func Parse(data []byte) (*framegate.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("yamlschema: %w", err)
	}
	return Compile(doc)
}

// ParseFile is Parse over the contents of a file.
func ParseFile(path string) (*framegate.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlschema: %w", err)
	}
	return Parse(data)
}

// Compile turns a decoded Document into a compiled schema.
func Compile(doc Document) (*framegate.Schema, error) {
	fields, err := compileColumns(doc.Columns, "columns")
	if err != nil {
		return nil, err
	}
	index, err := compileColumns(doc.Index, "index")
	if err != nil {
		return nil, err
	}
	cfg := framegate.Config{
		Strict:         doc.Config.Strict,
		Filter:         doc.Config.Filter,
		Coerce:         doc.Config.Coerce,
		CheckIndexName: doc.Config.CheckIndexName,
		IndexSorted:    doc.Config.IndexSorted,
		IndexUnique:    doc.Config.IndexUnique,
	}
	return framegate.NewSchema(fields, index, cfg)
}

func compileColumns(cols []Column, section string) ([]framegate.Field, error) {
	var out []framegate.Field
	for i, c := range cols {
		dt, ok := frame.ParseDType(c.DType)
		if !ok {
			return nil, fmt.Errorf("yamlschema: %s[%d] %q: unknown dtype %q", section, i, c.Name, c.DType)
		}
		out = append(out, framegate.Field{
			Name:          c.Name,
			Type:          dt,
			Alias:         c.Alias,
			Regex:         c.Regex,
			Nullable:      c.Nullable,
			Optional:      c.Optional,
			Unique:        c.Unique,
			Coerce:        c.Coerce,
			Gt:            c.Gt,
			Ge:            c.Ge,
			Lt:            c.Lt,
			Le:            c.Le,
			IsIn:          c.IsIn,
			NotIn:         c.NotIn,
			StrStartsWith: c.StartsWith,
			StrEndsWith:   c.EndsWith,
			StrContains:   c.Contains,
		})
	}
	return out, nil
}
