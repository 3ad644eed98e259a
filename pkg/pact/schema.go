package pact

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed contract_schema.json
var contractSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the embedded contract schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("contract.json", strings.NewReader(contractSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to register contract schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("contract.json")
	})
	return schema, schemaErr
}

// ValidateDocument checks raw contract file content against the embedded
// schema. It validates document shape only: contract parties, interaction
// request method/path, response status, and the two provider-state
// declaration forms. Request or response bodies are never validated.
func ValidateDocument(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("%s", flattenValidationError(verr))
		}
		return err
	}
	return nil
}

// flattenValidationError reports the deepest cause, which names the actual
// offending field instead of the document root.
func flattenValidationError(err *jsonschema.ValidationError) string {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	loc := err.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, err.Message)
}
