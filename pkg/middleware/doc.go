// Package middleware implements the Chain of Responsibility pattern around
// task execution, letting cross-cutting concerns - logging, metrics, rate
// limiting, retries, timeouts, size limits - wrap any registry.NodeExecutor
// without the executor itself knowing about them.
//
// # Usage
//
//	chain := middleware.NewChain().
//	    Use(middleware.NewLoggingMiddleware(logger)).
//	    Use(middleware.NewSizeLimitMiddleware()).
//	    Use(middleware.NewTimeoutMiddleware(30 * time.Second))
//
//	taskExec := registry.NewTaskExecutor(reg).Use(chain)
//
// Every dispatched task now runs through the chain before reaching its
// registered registry.NodeExecutor. A single executor can also be wrapped
// directly with Wrap, for cases that need per-node-type middleware instead
// of one chain applied uniformly across an entire registry.
//
// # Writing custom middleware
//
//	type auditMiddleware struct{}
//
//	func (m *auditMiddleware) Name() string { return "Audit" }
//
//	func (m *auditMiddleware) Process(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions, next middleware.Handler) (map[string]interface{}, error) {
//	    result, err := next(ctx, taskID, inputs, ctxHandle, ext)
//	    audit.Log(taskID, err)
//	    return result, err
//	}
//
// Middleware execute in the order added, wrapping inward: the first Use'd
// middleware runs its pre-processing first and its post-processing last.
package middleware
