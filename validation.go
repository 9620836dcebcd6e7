package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = validator.New()

// definitionRules mirrors NodeDefinition with validation tags. Definitions
// are validated at registration time so a malformed node fails fast instead
// of producing a definition the host rejects.
type definitionRules struct {
	Name       string `validate:"required"`
	Category   string `validate:"required"`
	ABIVersion uint32 `validate:"eq=1"`
}

type pinRules struct {
	Name     string `validate:"required"`
	PinType  string `validate:"required,oneof=Input Output"`
	DataType string `validate:"required,oneof=Exec String I64 F64 Bool Generic Bytes Date PathBuf Struct"`
}

// ValidateDefinition checks a node definition for registration: required
// identity fields, known pin and data types, and unique pin names.
func ValidateDefinition(def NodeDefinition) error {
	rules := definitionRules{
		Name:       def.Name,
		Category:   def.Category,
		ABIVersion: def.ABIVersion,
	}
	if err := validate.Struct(rules); err != nil {
		return fmt.Errorf("node %q: %w", def.Name, err)
	}

	seen := make(map[string]struct{}, len(def.Pins))
	for _, pin := range def.Pins {
		pr := pinRules{
			Name:     pin.Name,
			PinType:  string(pin.PinType),
			DataType: string(pin.DataType),
		}
		if err := validate.Struct(pr); err != nil {
			return fmt.Errorf("node %q pin %q: %w", def.Name, pin.Name, err)
		}
		if _, dup := seen[pin.Name]; dup {
			return fmt.Errorf("node %q: duplicate pin name %q", def.Name, pin.Name)
		}
		seen[pin.Name] = struct{}{}
	}
	return nil
}

// UnmarshalInputStruct decodes a pin's raw JSON value into a tagged struct
// and runs validation on it. For nodes that take a Struct pin with a schema
// attached.
func UnmarshalInputStruct(raw string, target interface{}) error {
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("failed to unmarshal input struct: %w", err)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}
	return nil
}
