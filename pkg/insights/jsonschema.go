package insights

import (
	"github.com/invopop/jsonschema"
)

const draft202012 = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema renders the schema as a Draft 2020-12 document describing one
// output record. Insights fields are all optional and nullable; time-series
// columns are all required.
func (s *Schema) JSONSchema() *jsonschema.Schema {
	doc := &jsonschema.Schema{
		Version:              draft202012,
		Type:                 "object",
		Title:                "insights " + s.kind.String() + " record",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}

	if s.kind == KindTimeSeries {
		for _, c := range s.columns {
			t := "string"
			if c.Type == ColumnTypeDouble {
				t = "number"
			}
			doc.Properties.Set(c.Name, &jsonschema.Schema{Type: t})
			doc.Required = append(doc.Required, c.Name)
		}
		return doc
	}

	for _, f := range s.fields {
		doc.Properties.Set(f.Name, fieldJSONSchema(f))
	}
	return doc
}

func fieldJSONSchema(f SchemaField) *jsonschema.Schema {
	var base *jsonschema.Schema
	switch f.Category {
	case CategoryNestedRecord:
		base = actionStatJSONSchema()
	case CategoryArrayOfNestedRecord:
		base = &jsonschema.Schema{Type: "array", Items: actionStatJSONSchema()}
	default:
		base = &jsonschema.Schema{Type: "string"}
	}
	if !f.Nullable {
		return base
	}
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{base, {Type: "null"}}}
}

func actionStatJSONSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 "object",
		Title:                "ActionStat",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	for _, name := range actionStatOrder {
		s.Properties.Set(name, &jsonschema.Schema{Type: "string"})
	}
	return s
}
