package executors

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// TextInputExecutor returns a constant string value: inputs["_data"]["text"]
// if present, otherwise the "text" input port, grounded on original_source's
// execute_text_input and the teacher's executeTextInputNode.
type TextInputExecutor struct{}

func (TextInputExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	text, _ := stringField(inputs, "text")
	return map[string]interface{}{"text": text}, nil
}

// TextOutputExecutor passes its "text" input through unchanged; it is a
// terminal sink node whose only purpose is to surface a value at the edge
// of a graph.
type TextOutputExecutor struct{}

func (TextOutputExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	text, ok := stringField(inputs, "text")
	if !ok {
		return nil, fmt.Errorf("%w: text-output requires a \"text\" input", ErrMissingInput)
	}
	return map[string]interface{}{"text": text}, nil
}

// BooleanInputExecutor returns a constant boolean value.
type BooleanInputExecutor struct{}

func (BooleanInputExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	value, _ := boolField(inputs, "value")
	return map[string]interface{}{"value": value}, nil
}

// NumberInputExecutor returns a constant numeric value.
type NumberInputExecutor struct{}

func (NumberInputExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	value, ok := numberField(inputs, "value")
	if !ok {
		return nil, fmt.Errorf("%w: number-input requires a numeric \"value\"", ErrMissingInput)
	}
	return map[string]interface{}{"value": value}, nil
}
