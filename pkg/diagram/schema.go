package diagram

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// specSchema is deliberately permissive: it pins the shape of the fields
// the pipeline reads and ignores everything else the model invents.
// Type tags are open strings here; Normalize clamps them afterwards.
const specSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"diagram_type": {"type": "string"},
		"orientation": {"type": "string"},
		"elements": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"},
					"label": {"type": "string"},
					"type": {"type": "string"},
					"group": {"type": "string"},
					"style": {"type": "string"}
				},
				"required": ["id"]
			}
		},
		"edges": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"source": {"type": "string"},
					"target": {"type": "string"},
					"label": {"type": "string"},
					"direction": {"type": "string"}
				},
				"required": ["source", "target"]
			}
		},
		"groups": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"},
					"label": {"type": "string"}
				},
				"required": ["id"]
			}
		},
		"notes": {"type": "string"}
	}
}`

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaOnce sync.Once
	compiledSchemaErr  error
)

func getSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(specSchema))
		if err != nil {
			compiledSchemaErr = fmt.Errorf("parse spec schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("spec.json", doc); err != nil {
			compiledSchemaErr = fmt.Errorf("add spec schema: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile("spec.json")
	})
	return compiledSchema, compiledSchemaErr
}

// ValidateSpecJSON checks a JSON object string against the spec schema.
func ValidateSpecJSON(jsonBlock string) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}

	value, err := jsonschema.UnmarshalJSON(strings.NewReader(jsonBlock))
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	return schema.Validate(value)
}
