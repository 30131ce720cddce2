package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// TimeoutMiddleware enforces execution timeouts for tasks, cancelling the
// context passed downstream if a task runs too long.
type TimeoutMiddleware struct {
	defaultTimeout time.Duration
}

// NewTimeoutMiddleware creates a new timeout middleware with default timeout
func NewTimeoutMiddleware(defaultTimeout time.Duration) *TimeoutMiddleware {
	return &TimeoutMiddleware{
		defaultTimeout: defaultTimeout,
	}
}

// Process enforces execution timeout using context cancellation
func (m *TimeoutMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	if m.defaultTimeout <= 0 {
		return next(ctx, taskID, inputs, ctxHandle, ext)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, m.defaultTimeout)
	defer cancel()

	type outcome struct {
		result map[string]interface{}
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := next(timeoutCtx, taskID, inputs, ctxHandle, ext)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-timeoutCtx.Done():
		return nil, fmt.Errorf("task %q timed out after %v", taskID, m.defaultTimeout)
	}
}

// Name returns the middleware name
func (m *TimeoutMiddleware) Name() string {
	return "Timeout"
}
