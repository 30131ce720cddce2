package middleware

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// NodeValidator validates a task's inputs before execution. The caller
// supplies the implementation; pkg/validator checks whole graphs and does
// not implement this interface.
type NodeValidator interface {
	Validate(taskID string, inputs map[string]interface{}) error
}

// ValidationMiddleware validates task inputs before execution.
type ValidationMiddleware struct {
	validator NodeValidator
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(validator NodeValidator) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validator,
	}
}

// Process validates the task before execution
func (m *ValidationMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	if m.validator != nil {
		if err := m.validator.Validate(taskID, inputs); err != nil {
			return nil, fmt.Errorf("task %q validation failed: %w", taskID, err)
		}
	}

	return next(ctx, taskID, inputs, ctxHandle, ext)
}

// Name returns the middleware name
func (m *ValidationMiddleware) Name() string {
	return "Validation"
}

// InputValidationMiddleware validates coarse input shape before execution:
// input count and string sizes, independent of any node-type-specific rules.
type InputValidationMiddleware struct {
	maxInputSize int64 // Maximum size for a single string input, in bytes
	maxInputs    int   // Maximum number of input entries
}

// NewInputValidationMiddleware creates a new input validation middleware
func NewInputValidationMiddleware(maxInputSize int64) *InputValidationMiddleware {
	return &InputValidationMiddleware{
		maxInputSize: maxInputSize,
		maxInputs:    100,
	}
}

// Process validates inputs before execution
func (m *InputValidationMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	if len(inputs) > m.maxInputs {
		return nil, fmt.Errorf("task %q has too many inputs: %d (max %d)", taskID, len(inputs), m.maxInputs)
	}

	for key, input := range inputs {
		if str, ok := input.(string); ok {
			if m.maxInputSize > 0 && int64(len(str)) > m.maxInputSize {
				return nil, fmt.Errorf("task %q input %q too large: %d bytes (max %d)", taskID, key, len(str), m.maxInputSize)
			}
		}
	}

	return next(ctx, taskID, inputs, ctxHandle, ext)
}

// Name returns the middleware name
func (m *InputValidationMiddleware) Name() string {
	return "InputValidation"
}
