// Package jsonschema exports a compiled schema as a minimal JSON Schema
// document describing one record of the table. Bounds, membership sets and
// string constraints map onto their draft 2020-12 counterparts; tabular-only
// concerns (index levels, uniqueness, custom checks) have no JSON Schema
// equivalent and are omitted.
package jsonschema

import (
	j "github.com/goccy/go-json"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/frame"
)

// Schema is the exported document shape.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	Minimum          *float64 `json:"minimum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	Enum             []any    `json:"enum,omitempty"`
	Pattern          string   `json:"pattern,omitempty"`
}

// Export renders the record shape of a compiled schema.
func Export(s *framegate.Schema) *Schema {
	out := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}
	for _, fld := range s.Fields() {
		out.Properties[fld.Name] = exportField(fld)
		if !fld.Optional {
			out.Required = append(out.Required, fld.Name)
		}
	}
	if s.Config().Strict {
		out.AdditionalProperties = false
	}
	return out
}

// JSON renders the document with go-json, the same codec the loaders use.
func (s *Schema) JSON() ([]byte, error) {
	return j.MarshalIndent(s, "", "  ")
}

func exportField(fld framegate.Field) *Schema {
	out := &Schema{}
	switch fld.Type {
	case frame.Int:
		out.Type = "integer"
	case frame.Float:
		out.Type = "number"
	case frame.Bool:
		out.Type = "boolean"
	case frame.Datetime:
		out.Type = "string"
		out.Format = "date-time"
	default:
		out.Type = "string"
	}
	out.ExclusiveMinimum = fld.Gt
	out.Minimum = fld.Ge
	out.ExclusiveMaximum = fld.Lt
	out.Maximum = fld.Le
	out.Enum = append([]any(nil), fld.IsIn...)
	return out
}
