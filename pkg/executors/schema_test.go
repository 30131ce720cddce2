package executors

import (
	"context"
	"errors"
	"testing"
)

func TestSchemaValidatorExecutor_RequiresValue(t *testing.T) {
	inputs := map[string]interface{}{
		"_data": map[string]interface{}{"schema": map[string]interface{}{"type": "string"}},
	}
	_, err := SchemaValidatorExecutor{}.Execute(context.Background(), "n-1", inputs, nil, nil)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestSchemaValidatorExecutor_RequiresSchema(t *testing.T) {
	inputs := map[string]interface{}{"value": "x"}
	_, err := SchemaValidatorExecutor{}.Execute(context.Background(), "n-1", inputs, nil, nil)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestSchemaValidatorExecutor_Valid(t *testing.T) {
	inputs := map[string]interface{}{
		"value": "hello",
		"_data": map[string]interface{}{"schema": map[string]interface{}{"type": "string"}},
	}
	out, err := SchemaValidatorExecutor{}.Execute(context.Background(), "n-1", inputs, nil, nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out["valid"] != true {
		t.Errorf("valid = %v, want true", out["valid"])
	}
}

func TestSchemaValidatorExecutor_InvalidLenient(t *testing.T) {
	inputs := map[string]interface{}{
		"value": 5,
		"_data": map[string]interface{}{"schema": map[string]interface{}{"type": "string"}},
	}
	out, err := SchemaValidatorExecutor{}.Execute(context.Background(), "n-1", inputs, nil, nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out["valid"] != false {
		t.Errorf("valid = %v, want false", out["valid"])
	}
}

func TestSchemaValidatorExecutor_InvalidStrict(t *testing.T) {
	inputs := map[string]interface{}{
		"value": 5,
		"_data": map[string]interface{}{
			"schema": map[string]interface{}{"type": "string"},
			"strict": true,
		},
	}
	_, err := SchemaValidatorExecutor{}.Execute(context.Background(), "n-1", inputs, nil, nil)
	if err == nil {
		t.Fatal("expected an error in strict mode for an invalid value")
	}
}
