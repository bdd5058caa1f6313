package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// responseSchema pairs a schema name with its JSON Schema definition.
// Definitions stay deliberately shallow: they pin the shape this client
// actually reads, not everything the service might send.
type responseSchema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw JSON against the schema and returns the
// validation error, or nil. A nil schema validates everything.
func validateResponse(schema *responseSchema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and
// caches it.
func getCompiledSchema(schema *responseSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

var generateSchema = &responseSchema{
	Name: "generate_psychometric_assessment",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions_by_category"},
		"properties": map[string]any{
			"questions_by_category": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"question", "options"},
						"properties": map[string]any{
							"id":       map[string]any{"type": "string"},
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 1,
							},
						},
					},
				},
			},
		},
	},
}

var analyzeSchema = &responseSchema{
	Name: "analyze_complete_assessment",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"individual_results", "subject_recommendations"},
		"properties": map[string]any{
			"individual_results": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"top_careers": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"dominant_traits": map[string]any{
							"type":                 "object",
							"additionalProperties": map[string]any{"type": "number"},
						},
					},
				},
			},
			"subject_recommendations": map[string]any{
				"type":     "object",
				"required": []any{"core"},
				"properties": map[string]any{
					"core": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 1,
					},
					"electives": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

var activitiesSchema = &responseSchema{
	Name: "generate_activities",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"activities"},
		"properties": map[string]any{
			"activities": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "title", "instructions"},
					"properties": map[string]any{
						"id":           map[string]any{"type": "string"},
						"title":        map[string]any{"type": "string"},
						"instructions": map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

var evaluateSchema = &responseSchema{
	Name: "evaluate_activity",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"evaluation"},
		"properties": map[string]any{
			"evaluation": map[string]any{
				"type":     "object",
				"required": []any{"overall"},
				"properties": map[string]any{
					"overall": map[string]any{
						"type":     "object",
						"required": []any{"score"},
						"properties": map[string]any{
							"score": map[string]any{"type": "number"},
						},
					},
				},
			},
		},
	},
}
