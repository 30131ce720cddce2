package middleware

import (
	"context"
	"strings"
	"testing"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
)

func fixedHandler(value interface{}) Handler {
	return func(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		return map[string]interface{}{"value": value}, nil
	}
}

func TestSizeLimitMiddleware_InputSizeLimit(t *testing.T) {
	config := SizeLimitConfig{
		MaxInputSize:     100,
		EnforceInputSize: true,
	}

	m := NewSizeLimitMiddlewareWithConfig(config)
	inputs := map[string]interface{}{"text": strings.Repeat("x", 200)}

	_, err := m.Process(context.Background(), "test", inputs, nil, nil, fixedHandler("ok"))
	if err == nil {
		t.Error("expected error for large input, got nil")
	}
	if !strings.Contains(err.Error(), "input size limit exceeded") {
		t.Errorf("expected size limit error, got: %v", err)
	}
}

func TestSizeLimitMiddleware_ResultSizeLimit(t *testing.T) {
	config := SizeLimitConfig{
		MaxResultSize:     100,
		EnforceResultSize: true,
	}

	m := NewSizeLimitMiddlewareWithConfig(config)

	largeResult := strings.Repeat("x", 200)
	handler := func(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		return map[string]interface{}{"value": largeResult}, nil
	}

	_, err := m.Process(context.Background(), "test", nil, nil, nil, handler)
	if err == nil {
		t.Error("expected error for large result, got nil")
	}
	if !strings.Contains(err.Error(), "result size limit exceeded") {
		t.Errorf("expected result size limit error, got: %v", err)
	}
}

func TestSizeLimitMiddleware_StringLengthLimit(t *testing.T) {
	config := SizeLimitConfig{
		MaxInputSize:     1000,
		MaxStringLength:  50,
		EnforceInputSize: true,
	}

	m := NewSizeLimitMiddlewareWithConfig(config)
	inputs := map[string]interface{}{"text": strings.Repeat("x", 100)}

	_, err := m.Process(context.Background(), "test", inputs, nil, nil, fixedHandler("ok"))
	if err == nil {
		t.Error("expected error for long string, got nil")
	}
	if !strings.Contains(err.Error(), "string length") {
		t.Errorf("expected string length error, got: %v", err)
	}
}

func TestSizeLimitMiddleware_ArrayLengthLimit(t *testing.T) {
	config := SizeLimitConfig{
		MaxInputSize:     10000,
		MaxArrayLength:   10,
		EnforceInputSize: true,
	}

	m := NewSizeLimitMiddlewareWithConfig(config)

	longArray := make([]interface{}, 20)
	for i := 0; i < 20; i++ {
		longArray[i] = i
	}
	inputs := map[string]interface{}{"items": longArray}

	_, err := m.Process(context.Background(), "test", inputs, nil, nil, fixedHandler("ok"))
	if err == nil {
		t.Error("expected error for long array, got nil")
	}
	if !strings.Contains(err.Error(), "array length") {
		t.Errorf("expected array length error, got: %v", err)
	}
}

func TestSizeLimitMiddleware_AllowedInputs(t *testing.T) {
	m := NewSizeLimitMiddleware()
	inputs := map[string]interface{}{"a": "hello", "b": 42, "c": true}

	executionCount := 0
	handler := func(ctx context.Context, taskID string, in map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		executionCount++
		return map[string]interface{}{"value": "ok"}, nil
	}

	result, err := m.Process(context.Background(), "test", inputs, nil, nil, handler)
	if err != nil {
		t.Errorf("expected no error for valid inputs, got: %v", err)
	}
	if result["value"] != "ok" {
		t.Errorf("expected 'ok', got %v", result["value"])
	}
	if executionCount != 1 {
		t.Errorf("expected handler to be called once, got %d", executionCount)
	}
}

func TestSizeLimitMiddleware_DisabledLimits(t *testing.T) {
	config := SizeLimitConfig{
		MaxInputSize:      10,
		MaxResultSize:     10,
		EnforceInputSize:  false,
		EnforceResultSize: false,
	}

	m := NewSizeLimitMiddlewareWithConfig(config)
	inputs := map[string]interface{}{"text": strings.Repeat("x", 100)}
	largeResult := strings.Repeat("y", 100)

	handler := func(ctx context.Context, taskID string, in map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		return map[string]interface{}{"value": largeResult}, nil
	}

	result, err := m.Process(context.Background(), "test", inputs, nil, nil, handler)
	if err != nil {
		t.Errorf("expected no error with disabled limits, got: %v", err)
	}
	if result["value"] != largeResult {
		t.Error("result should be returned even if large when limits disabled")
	}
}

func TestSizeLimitMiddleware_Name(t *testing.T) {
	m := NewSizeLimitMiddleware()

	if m.Name() != "SizeLimit" {
		t.Errorf("expected 'SizeLimit', got %s", m.Name())
	}
}

func TestValidateWorkflowSize_NodeCount(t *testing.T) {
	config := SizeLimitConfig{
		MaxNodeCount: 5,
	}

	nodes := make([]graph.Node, 10)
	for i := 0; i < 10; i++ {
		nodes[i] = graph.Node{ID: string(rune('a' + i)), NodeType: "number-input"}
	}

	err := ValidateWorkflowSize(nodes, []graph.Edge{}, config)
	if err == nil {
		t.Error("expected error for too many nodes, got nil")
	}
	if !strings.Contains(err.Error(), "nodes") {
		t.Errorf("expected node count error, got: %v", err)
	}
}

func TestValidateWorkflowSize_EdgeCount(t *testing.T) {
	config := SizeLimitConfig{
		MaxEdgeCount: 5,
	}

	nodes := []graph.Node{
		{ID: "1", NodeType: "number-input"},
		{ID: "2", NodeType: "number-input"},
	}

	edges := make([]graph.Edge, 10)
	for i := 0; i < 10; i++ {
		edges[i] = graph.Edge{ID: string(rune('a' + i)), Source: "1", Target: "2"}
	}

	err := ValidateWorkflowSize(nodes, edges, config)
	if err == nil {
		t.Error("expected error for too many edges, got nil")
	}
	if !strings.Contains(err.Error(), "edges") {
		t.Errorf("expected edge count error, got: %v", err)
	}
}

func TestValidateWorkflowSize_ValidWorkflow(t *testing.T) {
	config := DefaultSizeLimitConfig()

	nodes := []graph.Node{
		{ID: "1", NodeType: "number-input"},
		{ID: "2", NodeType: "number-input"},
		{ID: "3", NodeType: "number-input"},
	}

	edges := []graph.Edge{
		{ID: "e1", Source: "1", Target: "2"},
		{ID: "e2", Source: "2", Target: "3"},
	}

	err := ValidateWorkflowSize(nodes, edges, config)
	if err != nil {
		t.Errorf("expected no error for valid workflow, got: %v", err)
	}
}

func TestSizeLimitMiddleware_NestedStructures(t *testing.T) {
	config := SizeLimitConfig{
		MaxInputSize:     1000,
		MaxStringLength:  20,
		EnforceInputSize: true,
	}

	m := NewSizeLimitMiddlewareWithConfig(config)

	inputs := map[string]interface{}{
		"outer": map[string]interface{}{
			"inner": strings.Repeat("x", 50),
		},
	}

	_, err := m.Process(context.Background(), "test", inputs, nil, nil, fixedHandler("ok"))
	if err == nil {
		t.Error("expected error for nested string exceeding limit, got nil")
	}
}
