package server

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed order.schema.json
var orderSchemaJSON []byte

// orderSchema compiles the embedded schema on first use.
var orderSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(orderSchemaJSON))
})

// SchemaProblem is one violation of the order schema.
type SchemaProblem struct {
	Field       string
	Description string
}

func (p SchemaProblem) String() string { return p.Field + ": " + p.Description }

// ValidateOrderPayload checks a raw order body against the order schema.
// A non-nil error means the body could not be checked at all.
func ValidateOrderPayload(body []byte) ([]SchemaProblem, error) {
	schema, err := orderSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling order schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("validating order payload: %w", err)
	}

	var problems []SchemaProblem
	for _, e := range result.Errors() {
		field := e.Field()
		// required errors are reported on the parent object
		if prop, ok := e.Details()["property"].(string); ok && e.Type() == "required" {
			if field == "(root)" {
				field = prop
			} else {
				field += "." + prop
			}
		}
		problems = append(problems, SchemaProblem{Field: field, Description: e.Description()})
	}
	return problems, nil
}
