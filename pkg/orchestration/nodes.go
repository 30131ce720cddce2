package orchestration

import "fmt"

// ExecutionResult is what executing a single orchestration node produces:
// which handle to follow next, any context updates to apply, and an
// optional human-readable message for logging/events.
type ExecutionResult struct {
	NextHandle     string
	ContextUpdates map[string]interface{}
	Message        string
}

// Next builds a result that continues via the "next" handle.
func Next() ExecutionResult {
	return ExecutionResult{NextHandle: "next", ContextUpdates: make(map[string]interface{})}
}

// Handle builds a result that continues via an arbitrary handle.
func Handle(handle string) ExecutionResult {
	return ExecutionResult{NextHandle: handle, ContextUpdates: make(map[string]interface{})}
}

// WithUpdates attaches a full set of context updates to the result.
func (r ExecutionResult) WithUpdates(updates map[string]interface{}) ExecutionResult {
	r.ContextUpdates = updates
	return r
}

// WithUpdate attaches a single context update to the result.
func (r ExecutionResult) WithUpdate(key string, value interface{}) ExecutionResult {
	if r.ContextUpdates == nil {
		r.ContextUpdates = make(map[string]interface{})
	}
	r.ContextUpdates[key] = value
	return r
}

// WithMessage attaches a message to the result.
func (r ExecutionResult) WithMessage(message string) ExecutionResult {
	r.Message = message
	return r
}

// ExecuteStart passes through to the next node unconditionally.
func ExecuteStart(node *Node, ctx *Context) (ExecutionResult, error) {
	return Next().WithMessage("orchestration started"), nil
}

// ExecuteEnd signals completion: an empty NextHandle tells the executor
// loop to stop.
func ExecuteEnd(node *Node, ctx *Context) (ExecutionResult, error) {
	return Handle("").WithMessage("orchestration completed"), nil
}

// ExecuteCondition evaluates a boolean condition against the context and
// routes to "true" or "false".
func ExecuteCondition(node *Node, ctx *Context) (ExecutionResult, error) {
	cfg, err := ConditionConfigFromMap(node.Config)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("invalid condition config for node %q: %w", node.ID, err)
	}

	value, present := ctx.Get(cfg.ConditionKey)
	var conditionMet bool
	switch {
	case !present:
		conditionMet = false
	case cfg.HasExpected:
		conditionMet = valuesEqual(value, cfg.ExpectedValue)
	default:
		conditionMet = isTruthy(value)
	}

	handle := "false"
	if conditionMet {
		handle = "true"
	}
	return Handle(handle).WithMessage(fmt.Sprintf("condition %q evaluated to %v", cfg.ConditionKey, conditionMet)), nil
}

// ExecuteLoop advances a loop node's iteration counter, completing once
// the configured max iterations or exit condition is reached.
func ExecuteLoop(node *Node, ctx *Context) (ExecutionResult, error) {
	cfg := LoopConfigFromMap(node.Config)

	iteration := ctx.IncrementLoopIteration(node.ID)

	if cfg.MaxIterations > 0 && iteration > cfg.MaxIterations {
		ctx.ResetLoopIteration(node.ID)
		return Handle("complete").WithMessage(fmt.Sprintf("loop completed after %d iterations (max reached)", iteration-1)), nil
	}

	if cfg.ExitConditionKey != "" {
		if exitValue, ok := ctx.Get(cfg.ExitConditionKey); ok && isTruthy(exitValue) {
			ctx.ResetLoopIteration(node.ID)
			return Handle("complete").WithMessage(fmt.Sprintf("loop completed after %d iterations (exit condition met)", iteration-1)), nil
		}
	}

	return Handle("iteration").
		WithUpdate(cfg.IterationKey, iteration).
		WithMessage(fmt.Sprintf("loop iteration %d", iteration)), nil
}

// ExecuteMerge passes through to the next node; its purpose is purely to
// give multiple incoming paths a single join point.
func ExecuteMerge(node *Node, ctx *Context) (ExecutionResult, error) {
	return Next().WithMessage("paths merged"), nil
}

// PrepareDataGraphExecution parses a DataGraph node's config. The actual
// data graph run is handled by OrchestrationExecutor, which has access to
// a DataGraphExecutor.
func PrepareDataGraphExecution(node *Node) (DataGraphConfig, error) {
	cfg, err := DataGraphConfigFromMap(node.Config)
	if err != nil {
		return DataGraphConfig{}, fmt.Errorf("invalid data graph config for node %q: %w", node.ID, err)
	}
	return cfg, nil
}

// ExecuteNode dispatches to the handler for node's type. DataGraph nodes
// return a placeholder result; OrchestrationExecutor intercepts that
// node type before calling ExecuteNode.
func ExecuteNode(node *Node, ctx *Context) (ExecutionResult, error) {
	switch node.NodeType {
	case NodeStart:
		return ExecuteStart(node, ctx)
	case NodeEnd:
		return ExecuteEnd(node, ctx)
	case NodeCondition:
		return ExecuteCondition(node, ctx)
	case NodeLoop:
		return ExecuteLoop(node, ctx)
	case NodeMerge:
		return ExecuteMerge(node, ctx)
	case NodeDataGraph:
		return Next().WithMessage("data graph execution pending"), nil
	default:
		return ExecutionResult{}, fmt.Errorf("%w: %q", ErrUnknownNodeType, node.NodeType)
	}
}

func isTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v != "" && v != "false" && v != "0"
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

func valuesEqual(a, b interface{}) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
