package executors

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// SchemaValidatorExecutor validates its "value" input against a JSON schema
// read from inputs["_data"]["schema"], grounded on the teacher's
// SchemaValidatorExecutor. In strict mode (inputs["_data"]["strict"] ==
// true) a failed validation returns an error instead of a lenient
// valid:false result.
type SchemaValidatorExecutor struct{}

func (SchemaValidatorExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	value, ok := inputs["value"]
	if !ok {
		return nil, fmt.Errorf("%w: schema-validator requires a \"value\" input", ErrMissingInput)
	}

	schema, ok := dataMap(inputs)["schema"]
	if !ok {
		return nil, fmt.Errorf("%w: schema-validator requires a \"schema\" in _data", ErrMissingInput)
	}
	strict, _ := boolField(inputs, "strict")

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("schema-validator: invalid schema: %w", err)
	}
	valueBytes, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("schema-validator: failed to serialize value: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaBytes), gojsonschema.NewBytesLoader(valueBytes))
	if err != nil {
		return nil, fmt.Errorf("schema-validator: validation failed: %w", err)
	}

	if result.Valid() {
		return map[string]interface{}{"valid": true, "data": value}, nil
	}

	validationErrors := make([]map[string]interface{}, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		validationErrors = append(validationErrors, map[string]interface{}{
			"field":       e.Field(),
			"type":        e.Type(),
			"description": e.Description(),
			"value":       e.Value(),
		})
	}

	if strict {
		return nil, fmt.Errorf("schema-validator: validation failed: %d errors found", len(validationErrors))
	}
	return map[string]interface{}{"valid": false, "data": value, "errors": validationErrors}, nil
}
