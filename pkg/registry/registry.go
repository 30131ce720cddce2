// Package registry maps node type strings to metadata and executors,
// replacing a hardcoded type-switch dispatch with a dynamic, composable
// table that plugins and FFI callers can extend at runtime.
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
	"github.com/yesoreyeram/nodeflow/backend/pkg/middleware"
)

// NodeExecutor handles exactly one node type, unlike engine.TaskExecutor
// which handles dispatch across every registered type.
type NodeExecutor interface {
	Execute(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error)
}

// ExecutorFactory creates or returns a shared NodeExecutor. Most
// registrations use a factory that always returns the same instance;
// SharedExecutorFactory covers that case.
type ExecutorFactory interface {
	CreateExecutor() NodeExecutor
}

type sharedExecutorFactory struct {
	executor NodeExecutor
}

func (f sharedExecutorFactory) CreateExecutor() NodeExecutor { return f.executor }

// SharedExecutorFactory wraps a single executor instance in an
// ExecutorFactory.
func SharedExecutorFactory(executor NodeExecutor) ExecutorFactory {
	return sharedExecutorFactory{executor: executor}
}

type registryEntry struct {
	metadata graph.NodeDefinition
	factory  ExecutorFactory
}

// Registry maps node_type strings to metadata (ports, category, label)
// and an optional executor factory. Entries with no factory are
// metadata-only, useful for listing a node palette without being able to
// run it.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Register adds a node type with metadata and an executor factory.
func (r *Registry) Register(metadata graph.NodeDefinition, factory ExecutorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[metadata.NodeType] = registryEntry{metadata: metadata, factory: factory}
}

// RegisterMetadata adds a node type with metadata only - no executor, for
// UI-palette-only registrations.
func (r *Registry) RegisterMetadata(metadata graph.NodeDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[metadata.NodeType] = registryEntry{metadata: metadata}
}

// CallbackFunc is a synchronous node implementation used by
// RegisterCallback; this is the shape FFI-bridged executors (Elixir,
// WASM, etc.) would implement.
type CallbackFunc func(ctx context.Context, taskID string, inputs map[string]interface{}) (map[string]interface{}, error)

type callbackExecutor struct {
	fn CallbackFunc
}

func (c callbackExecutor) Execute(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
	return c.fn(ctx, taskID, inputs)
}

// RegisterCallback registers a node type backed by a plain function,
// without requiring callers to implement the NodeExecutor interface.
func (r *Registry) RegisterCallback(metadata graph.NodeDefinition, fn CallbackFunc) {
	r.Register(metadata, SharedExecutorFactory(callbackExecutor{fn: fn}))
}

// GetMetadata returns the metadata registered for nodeType, if any.
func (r *Registry) GetMetadata(nodeType string) (graph.NodeDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[nodeType]
	return e.metadata, ok
}

// AllMetadata returns every registered node type's metadata.
func (r *Registry) AllMetadata() []graph.NodeDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]graph.NodeDefinition, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.metadata)
	}
	return out
}

// MetadataByCategory groups every registered node type's metadata by
// category, for palette display.
func (r *Registry) MetadataByCategory() map[graph.NodeCategory][]graph.NodeDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	grouped := make(map[graph.NodeCategory][]graph.NodeDefinition)
	for _, e := range r.entries {
		grouped[e.metadata.Category] = append(grouped[e.metadata.Category], e.metadata)
	}
	return grouped
}

// GetExecutor returns the executor that nodeType's factory produces (the
// same shared instance on every call for SharedExecutorFactory
// registrations), or nil if the type is unregistered or metadata-only.
func (r *Registry) GetExecutor(nodeType string) NodeExecutor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[nodeType]
	if !ok || e.factory == nil {
		return nil
	}
	return e.factory.CreateExecutor()
}

// HasNodeType reports whether nodeType is registered at all (metadata-only
// counts).
func (r *Registry) HasNodeType(nodeType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[nodeType]
	return ok
}

// NodeTypes lists every registered node type string.
func (r *Registry) NodeTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for t := range r.entries {
		out = append(out, t)
	}
	return out
}

// Merge copies every entry of other into r, with other's entries
// overriding r's on node-type collisions.
func (r *Registry) Merge(other *Registry) {
	other.mu.RLock()
	defer other.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	for t, e := range other.entries {
		r.entries[t] = e
	}
}

// ResolveNodeType extracts the node type for a task: preferring an
// explicit "_data.node_type" in inputs, and falling back to the prefix of
// taskID before its last "-" (so "text-input-1" resolves to
// "text-input"). A taskID with no separator is used verbatim.
func ResolveNodeType(taskID string, inputs map[string]interface{}) string {
	if data, ok := inputs["_data"].(map[string]interface{}); ok {
		if nodeType, ok := data["node_type"].(string); ok && nodeType != "" {
			return nodeType
		}
	}
	if idx := strings.LastIndex(taskID, "-"); idx > 0 {
		return taskID[:idx]
	}
	return taskID
}

// TaskExecutor bridges engine.TaskExecutor to a Registry: it resolves
// each task's node type via ResolveNodeType and dispatches to whatever
// NodeExecutor is registered for it. An optional middleware chain wraps
// every dispatch, giving cross-cutting concerns (logging, metrics, rate
// limiting, timeouts) a single point of entry regardless of node type.
type TaskExecutor struct {
	registry *Registry
	chain    *middleware.Chain
}

// NewTaskExecutor wraps registry as an engine.TaskExecutor.
func NewTaskExecutor(registry *Registry) *TaskExecutor {
	return &TaskExecutor{registry: registry}
}

// Registry returns the underlying registry.
func (t *TaskExecutor) Registry() *Registry { return t.registry }

// Use installs a middleware chain that wraps every ExecuteTask dispatch.
func (t *TaskExecutor) Use(chain *middleware.Chain) *TaskExecutor {
	t.chain = chain
	return t
}

func (t *TaskExecutor) ExecuteTask(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
	nodeType := ResolveNodeType(taskID, inputs)

	executor := t.registry.GetExecutor(nodeType)
	if executor == nil {
		return nil, fmt.Errorf("%w: %q (task %q)", ErrUnregisteredType, nodeType, taskID)
	}

	if t.chain == nil {
		return executor.Execute(ctx, taskID, inputs, ctxHandle, ext)
	}
	return t.chain.Execute(ctx, taskID, inputs, ctxHandle, ext, executor.Execute)
}
