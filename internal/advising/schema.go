package advising

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const resourcesSchemaURL = "schema://learning-resources.json"

// resourcesSchema accepts a bare array of {title, type, url} records.
// Extra fields are allowed; the service may grow them.
var resourcesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"title", "type", "url"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"type":  map[string]any{"type": "string"},
			"url":   map[string]any{"type": "string"},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledResourcesSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(resourcesSchemaURL, resourcesSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(resourcesSchemaURL)
	})
	return compiled, compileErr
}

// validateResources checks a learning-resources body before decoding.
func validateResources(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}
	sch, err := compiledResourcesSchema()
	if err != nil {
		return fmt.Errorf("compile resources schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
