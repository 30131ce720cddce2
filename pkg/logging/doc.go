// Package logging provides structured logging capabilities for the workflow engine.
//
// # Overview
//
// The logging package wraps the standard library's log/slog with helpers
// that attach workflow, execution and node identifiers as structured
// fields, and with a way to carry a logger in a context.Context.
//
// # Features
//
//   - Structured logging: JSON (default) and slog's text format
//   - Log levels: debug, info, warn, error
//   - Scoped fields: WithWorkflowID, WithExecutionID, WithNodeID,
//     WithNodeType, WithField, WithFields and WithError
//   - Context embedding: WithContext stores a logger in a context and
//     FromContext retrieves it
//   - Thread-safe: Safe for concurrent use
//   - Flexible output: Write to any io.Writer
//
// # Log Levels
//
// Config.Level takes one of these strings:
//
//   - "debug": Detailed diagnostic information
//   - "info": General informational messages
//   - "warn" (or "warning"): Warning messages for potential issues
//   - "error": Error messages for failures
//
// Any other value, including the empty string, selects "info".
//
// # Basic Usage
//
//	import "github.com/yesoreyeram/nodeflow/backend/pkg/logging"
//
//	// Create logger
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: os.Stdout,
//	})
//
//	// Log messages
//	logger.WithWorkflowID("wf-123").
//	    WithField("node_count", 42).
//	    Info("Workflow started")
//
//	logger.WithNodeID("node-5").WithError(err).Error("Execution failed")
//
//	logger.Infof("processed %d nodes", count)
//
// # Context Integration
//
// A logger can travel in a context:
//
//	ctx = logger.WithExecutionID("exec-456").WithContext(ctx)
//	logging.FromContext(ctx).Info("Node executing")
//
// FromContext returns a logger built from DefaultConfig when the context
// carries none. Fields come only from the With* methods; nothing is read
// from other context values.
//
// # Structured Fields
//
// WithFields attaches several fields at once:
//
//	logger.WithFields(map[string]interface{}{
//	    "method":      "GET",
//	    "url":         "https://api.example.com",
//	    "status":      200,
//	    "duration_ms": 145,
//	}).Info("HTTP request completed")
//
// # Output Formats
//
// JSON Format (Pretty false):
//
//	{"time":"2024-01-15T10:30:00.123Z","level":"INFO","msg":"Workflow started","workflow_id":"wf-123","execution_id":"exec-456"}
//
// Text Format (Pretty true):
//
//	time=2024-01-15T10:30:00.123Z level=INFO msg="Workflow started" workflow_id=wf-123 execution_id=exec-456
//
// # Configuration
//
// Logger configuration options:
//
//	config := logging.Config{
//	    Level:         "debug",   // Minimum level to log
//	    Output:        os.Stdout, // Where to write logs (nil selects os.Stdout)
//	    Pretty:        false,     // true selects the text format
//	    IncludeCaller: true,      // Include source file:line
//	}
//
// Fatal and Fatalf log at error level and then call os.Exit(1).
// GetSlogLogger returns the underlying *slog.Logger.
//
// # Best Practices
//
//   - Use structured fields instead of string formatting
//   - Include execution context (workflow_id, node_id, etc.)
//   - Log at appropriate levels (avoid debug in production)
//   - Add timing information for performance analysis
//   - Include error context (not just error message)
//   - Use consistent field names across the codebase
//
// # Thread Safety
//
// All logger operations are thread-safe and can be used concurrently
// from multiple goroutines without additional synchronization. Each With*
// call returns a new Logger and leaves the receiver unchanged.
//
// # Testing
//
// For testing, use a logger with a buffer:
//
//	buf := &bytes.Buffer{}
//	logger := logging.New(logging.Config{
//	    Level:  "debug",
//	    Output: buf,
//	})
//
//	// Execute code
//	// Verify log output
//	assert.Contains(t, buf.String(), "expected message")
package logging
