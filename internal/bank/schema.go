package bank

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://fincert-bank.json"

// bankSchema describes a JSON bank file: an array of question records.
var bankSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": []any{"integer", "string"}},
			"category": map[string]any{"type": "string"},
			"type":     map[string]any{"type": "string"},
			"question": map[string]any{"type": "string", "minLength": 1},
			"context":  map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
			},
			"answer":      map[string]any{"type": []any{"integer", "string"}},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []any{"id", "question", "answer"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bankSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateSchema checks a decoded JSON document against the bank schema.
func validateSchema(doc any) []Issue {
	sch, err := compiledSchema()
	if err != nil {
		return []Issue{{Index: -1, Message: fmt.Sprintf("bank schema unavailable: %v", err)}}
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Issue{{Index: -1, Message: err.Error()}}
	}

	var issues []Issue
	for _, leaf := range leaves(ve) {
		issues = append(issues, Issue{
			Index:   indexFromLocation(leaf.InstanceLocation),
			Message: fmt.Sprintf("schema: /%s: %s", strings.Join(leaf.InstanceLocation, "/"), leaf.Error()),
		})
	}
	return issues
}

func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}

func indexFromLocation(loc []string) int {
	if len(loc) == 0 {
		return -1
	}
	var n int
	if _, err := fmt.Sscanf(loc[0], "%d", &n); err != nil {
		return -1
	}
	return n
}
