package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor reflects a JSON Schema (Draft 2020-12) from a Go struct type,
// for attaching to Struct pins with WithSchema. Struct definitions are
// expanded inline so the schema is self-contained.
func SchemaFor[T any]() (string, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	var zero T
	schema := reflector.Reflect(&zero)

	jsonBytes, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(jsonBytes), nil
}

// MustSchemaFor is SchemaFor for package-level pin declarations, where a
// reflection failure is a programming error.
func MustSchemaFor[T any]() string {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// WithSchemaFor attaches a schema reflected from T to the pin.
func WithSchemaFor[T any](p PinDefinition) PinDefinition {
	return p.WithSchema(MustSchemaFor[T]())
}
