package middleware

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// mockMiddleware records execution order for testing
type mockMiddleware struct {
	name       string
	order      *[]string
	shouldFail bool
}

func (m *mockMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	*m.order = append(*m.order, m.name+":pre")

	if m.shouldFail {
		return nil, errors.New(m.name + " failed")
	}

	result, err := next(ctx, taskID, inputs, ctxHandle, ext)

	*m.order = append(*m.order, m.name+":post")
	return result, err
}

func (m *mockMiddleware) Name() string {
	return m.name
}

func resultHandler(order *[]string, value string) Handler {
	return func(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		*order = append(*order, "handler")
		return map[string]interface{}{"value": value}, nil
	}
}

func TestChain_SingleMiddleware(t *testing.T) {
	order := []string{}

	chain := NewChain()
	chain.Use(&mockMiddleware{name: "M1", order: &order})

	result, err := chain.Execute(context.Background(), "test", nil, nil, nil, resultHandler(&order, "result"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result["value"] != "result" {
		t.Errorf("expected 'result', got %v", result["value"])
	}

	expected := []string{"M1:pre", "handler", "M1:post"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d executions, got %d", len(expected), len(order))
	}
	for i, exp := range expected {
		if order[i] != exp {
			t.Errorf("execution %d: expected %s, got %s", i, exp, order[i])
		}
	}
}

func TestChain_MultipleMiddleware(t *testing.T) {
	order := []string{}

	chain := NewChain()
	chain.Use(&mockMiddleware{name: "M1", order: &order})
	chain.Use(&mockMiddleware{name: "M2", order: &order})
	chain.Use(&mockMiddleware{name: "M3", order: &order})

	result, err := chain.Execute(context.Background(), "test", nil, nil, nil, resultHandler(&order, "result"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result["value"] != "result" {
		t.Errorf("expected 'result', got %v", result["value"])
	}

	expected := []string{
		"M1:pre", "M2:pre", "M3:pre", "handler", "M3:post", "M2:post", "M1:post",
	}
	if len(order) != len(expected) {
		t.Fatalf("expected %d executions, got %d: %v", len(expected), len(order), order)
	}
	for i, exp := range expected {
		if order[i] != exp {
			t.Errorf("execution %d: expected %s, got %s", i, exp, order[i])
		}
	}
}

func TestChain_EmptyChain(t *testing.T) {
	order := []string{}

	chain := NewChain()

	result, err := chain.Execute(context.Background(), "test", nil, nil, nil, resultHandler(&order, "result"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result["value"] != "result" {
		t.Errorf("expected 'result', got %v", result["value"])
	}

	if len(order) != 1 || order[0] != "handler" {
		t.Errorf("expected [handler], got %v", order)
	}
}

func TestChain_ErrorPropagation(t *testing.T) {
	order := []string{}

	chain := NewChain()
	chain.Use(&mockMiddleware{name: "M1", order: &order})
	chain.Use(&mockMiddleware{name: "M2", order: &order, shouldFail: true})
	chain.Use(&mockMiddleware{name: "M3", order: &order})

	result, err := chain.Execute(context.Background(), "test", nil, nil, nil, resultHandler(&order, "result"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "M2 failed" {
		t.Errorf("expected 'M2 failed', got %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result on error, got %v", result)
	}

	// M2 fails before calling M3 or the handler, but M1:post still runs.
	expected := []string{"M1:pre", "M2:pre", "M1:post"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d executions, got %d: %v", len(expected), len(order), order)
	}
	for i, exp := range expected {
		if order[i] != exp {
			t.Errorf("execution %d: expected %s, got %s", i, exp, order[i])
		}
	}
}

func TestChain_HandlerError(t *testing.T) {
	order := []string{}

	chain := NewChain()
	chain.Use(&mockMiddleware{name: "M1", order: &order})
	chain.Use(&mockMiddleware{name: "M2", order: &order})

	handler := func(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		order = append(order, "handler")
		return nil, errors.New("handler failed")
	}

	_, err := chain.Execute(context.Background(), "test", nil, nil, nil, handler)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "handler failed" {
		t.Errorf("expected 'handler failed', got %v", err)
	}

	expected := []string{"M1:pre", "M2:pre", "handler", "M2:post", "M1:post"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d executions, got %d: %v", len(expected), len(order), order)
	}
}

func TestChain_Len(t *testing.T) {
	chain := NewChain()

	if chain.Len() != 0 {
		t.Errorf("expected length 0, got %d", chain.Len())
	}

	chain.Use(&mockMiddleware{name: "M1", order: &[]string{}})
	if chain.Len() != 1 {
		t.Errorf("expected length 1, got %d", chain.Len())
	}

	chain.Use(&mockMiddleware{name: "M2", order: &[]string{}})
	chain.Use(&mockMiddleware{name: "M3", order: &[]string{}})
	if chain.Len() != 3 {
		t.Errorf("expected length 3, got %d", chain.Len())
	}
}

func TestChain_Middlewares(t *testing.T) {
	chain := NewChain()

	m1 := &mockMiddleware{name: "M1", order: &[]string{}}
	m2 := &mockMiddleware{name: "M2", order: &[]string{}}

	chain.Use(m1).Use(m2)

	middlewares := chain.Middlewares()
	if len(middlewares) != 2 {
		t.Fatalf("expected 2 middleware, got %d", len(middlewares))
	}
	if middlewares[0].Name() != "M1" {
		t.Errorf("expected M1, got %s", middlewares[0].Name())
	}
	if middlewares[1].Name() != "M2" {
		t.Errorf("expected M2, got %s", middlewares[1].Name())
	}
}

// shortCircuitMiddleware demonstrates middleware that short-circuits execution
type shortCircuitMiddleware struct {
	returnValue map[string]interface{}
}

func (m *shortCircuitMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	return m.returnValue, nil
}

func (m *shortCircuitMiddleware) Name() string {
	return "ShortCircuit"
}

func TestChain_ShortCircuit(t *testing.T) {
	order := []string{}

	chain := NewChain()
	chain.Use(&mockMiddleware{name: "M1", order: &order})
	chain.Use(&shortCircuitMiddleware{returnValue: map[string]interface{}{"value": "cached"}})
	chain.Use(&mockMiddleware{name: "M3", order: &order})

	result, err := chain.Execute(context.Background(), "test", nil, nil, nil, resultHandler(&order, "fresh"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result["value"] != "cached" {
		t.Errorf("expected 'cached', got %v", result["value"])
	}

	expected := []string{"M1:pre", "M1:post"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d executions, got %d: %v", len(expected), len(order), order)
	}
}

// modifyingMiddleware appends a prefix to the "value" output key
type modifyingMiddleware struct {
	prefix string
}

func (m *modifyingMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error) {
	result, err := next(ctx, taskID, inputs, ctxHandle, ext)
	if err != nil {
		return result, err
	}

	if str, ok := result["value"].(string); ok {
		result["value"] = m.prefix + str
	}
	return result, nil
}

func (m *modifyingMiddleware) Name() string {
	return "Modifying"
}

func TestChain_ResultModification(t *testing.T) {
	chain := NewChain()
	chain.Use(&modifyingMiddleware{prefix: "A:"})
	chain.Use(&modifyingMiddleware{prefix: "B:"})

	handler := func(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		return map[string]interface{}{"value": "result"}, nil
	}

	result, err := chain.Execute(context.Background(), "test", nil, nil, nil, handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Post-processing runs in reverse: B wraps first, then A wraps B's output.
	expected := "A:B:result"
	if result["value"] != expected {
		t.Errorf("expected %s, got %v", expected, result["value"])
	}
}

func BenchmarkChain_NoMiddleware(b *testing.B) {
	chain := NewChain()
	order := []string{}
	handler := resultHandler(&order, "result")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = chain.Execute(context.Background(), "test", nil, nil, nil, handler)
	}
}

func BenchmarkChain_SingleMiddleware(b *testing.B) {
	order := []string{}
	chain := NewChain()
	chain.Use(&mockMiddleware{name: "M1", order: &order})
	handler := resultHandler(&order, "result")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = chain.Execute(context.Background(), "test", nil, nil, nil, handler)
	}
}

func BenchmarkChain_FiveMiddleware(b *testing.B) {
	order := []string{}
	chain := NewChain()
	for i := 0; i < 5; i++ {
		chain.Use(&mockMiddleware{name: fmt.Sprintf("M%d", i), order: &order})
	}
	handler := resultHandler(&order, "result")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = chain.Execute(context.Background(), "test", nil, nil, nil, handler)
	}
}
