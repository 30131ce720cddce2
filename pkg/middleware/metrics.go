package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// MetricsCollector defines the interface for metrics collection, keyed by
// the resolved node type (e.g. "text-input", "model-inference").
type MetricsCollector interface {
	RecordNodeExecution(nodeType string, duration time.Duration, success bool)
	RecordNodeError(nodeType string, errorType string)
}

// MetricsMiddleware collects execution metrics for tasks.
// It records execution time, success/failure rates, and error types.
type MetricsMiddleware struct {
	collector MetricsCollector
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(collector MetricsCollector) *MetricsMiddleware {
	return &MetricsMiddleware{
		collector: collector,
	}
}

// Process records metrics for task execution
func (m *MetricsMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	startTime := time.Now()

	result, err := next(ctx, taskID, inputs, ctxHandle, ext)

	duration := time.Since(startTime)
	success := err == nil

	if m.collector != nil {
		nodeType := resolveNodeType(taskID, inputs)
		m.collector.RecordNodeExecution(nodeType, duration, success)
		if err != nil {
			m.collector.RecordNodeError(nodeType, err.Error())
		}
	}

	return result, err
}

// Name returns the middleware name
func (m *MetricsMiddleware) Name() string {
	return "Metrics"
}

// resolveNodeType mirrors registry.ResolveNodeType without importing
// pkg/registry, which would create an import cycle (registry wraps
// executors built from this package).
func resolveNodeType(taskID string, inputs map[string]interface{}) string {
	if data, ok := inputs["_data"].(map[string]interface{}); ok {
		if nodeType, ok := data["node_type"].(string); ok && nodeType != "" {
			return nodeType
		}
	}
	for i := len(taskID) - 1; i > 0; i-- {
		if taskID[i] == '-' {
			return taskID[:i]
		}
	}
	return taskID
}

// InMemoryMetricsCollector is a simple in-memory metrics collector for testing.
type InMemoryMetricsCollector struct {
	mu             sync.RWMutex
	executionCount map[string]int64
	successCount   map[string]int64
	failureCount   map[string]int64
	totalDuration  map[string]time.Duration
	errorCount     map[string]int64
}

// NewInMemoryMetricsCollector creates a new in-memory metrics collector
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{
		executionCount: make(map[string]int64),
		successCount:   make(map[string]int64),
		failureCount:   make(map[string]int64),
		totalDuration:  make(map[string]time.Duration),
		errorCount:     make(map[string]int64),
	}
}

// RecordNodeExecution records a node execution
func (c *InMemoryMetricsCollector) RecordNodeExecution(nodeType string, duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.executionCount[nodeType]++
	c.totalDuration[nodeType] += duration

	if success {
		c.successCount[nodeType]++
	} else {
		c.failureCount[nodeType]++
	}
}

// RecordNodeError records a node error
func (c *InMemoryMetricsCollector) RecordNodeError(nodeType string, errorType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorCount[errorType]++
}

// GetExecutionCount returns the total execution count for a node type
func (c *InMemoryMetricsCollector) GetExecutionCount(nodeType string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.executionCount[nodeType]
}

// GetSuccessCount returns the success count for a node type
func (c *InMemoryMetricsCollector) GetSuccessCount(nodeType string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.successCount[nodeType]
}

// GetFailureCount returns the failure count for a node type
func (c *InMemoryMetricsCollector) GetFailureCount(nodeType string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failureCount[nodeType]
}

// GetAverageDuration returns the average execution duration for a node type
func (c *InMemoryMetricsCollector) GetAverageDuration(nodeType string) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := c.executionCount[nodeType]
	if count == 0 {
		return 0
	}

	return c.totalDuration[nodeType] / time.Duration(count)
}

// GetErrorCount returns the count for a specific error type
func (c *InMemoryMetricsCollector) GetErrorCount(errorType string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errorCount[errorType]
}

// Reset clears all metrics
func (c *InMemoryMetricsCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.executionCount = make(map[string]int64)
	c.successCount = make(map[string]int64)
	c.failureCount = make(map[string]int64)
	c.totalDuration = make(map[string]time.Duration)
	c.errorCount = make(map[string]int64)
}
