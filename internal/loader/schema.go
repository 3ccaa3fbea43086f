package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "catalog.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// CatalogSchema reflects the JSON Schema of CatalogDocument
func CatalogSchema() *invopop.Schema {
	reflector := invopop.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(CatalogDocument))
	schema.Title = "Industrial Ascension Catalog"
	schema.Description = "Resources, buildings and technologies loaded at startup."
	return schema
}

// CatalogSchemaJSON returns the indented schema document
func CatalogSchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(CatalogSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		data, err := json.Marshal(CatalogSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks raw catalog YAML against the catalog schema
func ValidateDocument(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number and
	// map[string]any values only.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to normalize catalog: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to normalize catalog: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}
