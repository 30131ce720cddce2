package middleware

import (
	"context"
	"time"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
	"github.com/yesoreyeram/nodeflow/backend/pkg/logging"
)

// LoggingMiddleware logs task execution start and completion.
// It records execution time and logs errors if execution fails.
type LoggingMiddleware struct {
	logger *logging.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *logging.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Process logs task execution
func (m *LoggingMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	taskLogger := m.logger.WithNodeID(taskID)

	taskLogger.Debug("task execution started")
	startTime := time.Now()

	result, err := next(ctx, taskID, inputs, ctxHandle, ext)

	duration := time.Since(startTime)

	if err != nil {
		taskLogger.
			WithError(err).
			WithField("duration_ms", duration.Milliseconds()).
			Error("task execution failed")
	} else {
		taskLogger.
			WithField("duration_ms", duration.Milliseconds()).
			Debug("task execution completed")
	}

	return result, err
}

// Name returns the middleware name
func (m *LoggingMiddleware) Name() string {
	return "Logging"
}
