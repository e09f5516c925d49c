// Package schema validates caller-supplied JSON Schema documents before
// they are attached to a request.
package schema

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
)

// Parse decodes raw as a JSON object and checks that it compiles as a JSON
// Schema. Returns the decoded document, or an error when the input is
// malformed; callers drop the corresponding field instead of failing.
func Parse(raw string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	if _, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw)); err != nil {
		return nil, err
	}
	return doc, nil
}

// EmptyObject is the fallback parameter schema for function tools declared
// without one.
func EmptyObject() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}
