// Package middleware provides the Chain of Responsibility pattern implementation
// for node execution middleware. This enables cross-cutting concerns like logging,
// metrics, validation, and timeouts to be added without modifying executor logic.
package middleware

import (
	"context"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// Handler is a function that executes one task and returns its outputs.
// This is the function signature that both registry.NodeExecutor and
// middleware use, so a Chain can wrap any NodeExecutor transparently.
type Handler func(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error)

// Middleware defines the interface for execution middleware.
// Middleware can inspect, modify, or short-circuit task execution.
//
// Built-in middleware implementations:
//   - LoggingMiddleware: logs execution start/end
//   - MetricsMiddleware: records performance metrics
//   - ValidationMiddleware: validates inputs before execution
//   - TimeoutMiddleware: enforces execution timeouts
//   - RetryMiddleware: retries failed executions
//   - RateLimitMiddleware: enforces rate limits
//   - SizeLimitMiddleware: enforces input/result size limits
type Middleware interface {
	// Process handles the task execution, optionally calling next() to continue the chain.
	// The middleware can:
	//   - Pre-process: modify inputs before calling next
	//   - Execute: call next to continue the chain
	//   - Post-process: inspect or modify outputs after next returns
	//   - Short-circuit: return without calling next
	Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next Handler) (map[string]interface{}, error)

	// Name returns the middleware name for logging and debugging
	Name() string
}

// Chain represents an ordered chain of middleware.
// Middleware are executed in the order they were added.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a new middleware chain
func NewChain() *Chain {
	return &Chain{
		middlewares: make([]Middleware, 0),
	}
}

// Use adds middleware to the chain.
// Middleware are executed in the order they are added.
func (c *Chain) Use(middleware Middleware) *Chain {
	c.middlewares = append(c.middlewares, middleware)
	return c
}

// Execute runs the middleware chain followed by the final handler.
//
// Example execution flow with 3 middleware:
//
//	M1.Process(pre) -> M2.Process(pre) -> M3.Process(pre) -> handler() ->
//	M3.Process(post) -> M2.Process(post) -> M1.Process(post) -> return
func (c *Chain) Execute(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, handler Handler) (map[string]interface{}, error) {
	if len(c.middlewares) == 0 {
		return handler(ctx, taskID, inputs, ctxHandle, ext)
	}

	// Build the chain from the end to the beginning: each middleware wraps the next.
	index := 0
	var next Handler
	next = func(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
		if index >= len(c.middlewares) {
			return handler(ctx, taskID, inputs, ctxHandle, ext)
		}
		m := c.middlewares[index]
		index++
		return m.Process(ctx, taskID, inputs, ctxHandle, ext, next)
	}

	return next(ctx, taskID, inputs, ctxHandle, ext)
}

// Len returns the number of middleware in the chain
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Middlewares returns all middleware in the chain
func (c *Chain) Middlewares() []Middleware {
	result := make([]Middleware, len(c.middlewares))
	copy(result, c.middlewares)
	return result
}

// NodeExecutor is the subset of registry.NodeExecutor that Chain wraps.
// Declared locally to avoid an import cycle with pkg/registry.
type NodeExecutor interface {
	Execute(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error)
}

// WrappedExecutor adapts a Chain + inner NodeExecutor into a single
// NodeExecutor, so registry.Register can take it directly as a factory
// target.
type WrappedExecutor struct {
	chain *Chain
	inner NodeExecutor
}

// Wrap returns a NodeExecutor that runs inner through chain on every call.
func Wrap(chain *Chain, inner NodeExecutor) *WrappedExecutor {
	return &WrappedExecutor{chain: chain, inner: inner}
}

// Execute implements NodeExecutor (and registry.NodeExecutor by extension).
func (w *WrappedExecutor) Execute(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
	return w.chain.Execute(ctx, taskID, inputs, ctxHandle, ext, w.inner.Execute)
}
