// Package workflow wires pkg/graph, pkg/engine, and pkg/observer into a
// single executor: the one object a server handler or CLI command holds
// for a running workflow.
//
// The embedded graph is not safe for concurrent use - it is mutated by
// UpdateNodeData/AddNode/AddEdge and read by Demand in the same pass - so
// every method that demands or mutates takes the writer lock for its whole
// duration; SendEvent, GraphSnapshot and CacheStats take the read lock. This matches the demand engine's
// own statelessness: DemandEngine has no lock of its own, and relies on
// exactly this kind of single caller-held lock per top-level call.
package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
	"github.com/yesoreyeram/nodeflow/backend/pkg/observer"
)

// WorkflowExecutor bundles a graph, a demand engine, a task executor, and
// the shared context/extensions/event-sink a running workflow needs.
type WorkflowExecutor struct {
	mu sync.RWMutex

	graph       *graph.Graph
	demandEng   *engine.DemandEngine
	taskExec    engine.TaskExecutor
	ctxHandle   *engine.ContextHandle
	extensions  *engine.Extensions
	eventSink   observer.Sink
	executionID string
}

// New creates a WorkflowExecutor over g, dispatching node execution
// through taskExec (typically a *registry.TaskExecutor). A NullSink is
// used until SetEventSink is called.
func New(executionID string, g *graph.Graph, taskExec engine.TaskExecutor) *WorkflowExecutor {
	return NewWithExtensions(executionID, g, taskExec, engine.NewExtensions())
}

// NewWithExtensions is New, seeded with an Extensions registry the caller
// already populated - typically a process-wide registry holding shared
// collaborator clients (model servers, vector stores) that every
// execution of every graph should see.
func NewWithExtensions(executionID string, g *graph.Graph, taskExec engine.TaskExecutor, ext *engine.Extensions) *WorkflowExecutor {
	if ext == nil {
		ext = engine.NewExtensions()
	}
	return &WorkflowExecutor{
		graph:       g,
		demandEng:   engine.NewDemandEngine(executionID),
		taskExec:    taskExec,
		ctxHandle:   engine.NewContextHandle(),
		extensions:  ext,
		eventSink:   observer.NullSink{},
		executionID: executionID,
	}
}

// ExecutionID returns the id this executor's demand engine was created
// with.
func (w *WorkflowExecutor) ExecutionID() string { return w.executionID }

// Context returns the shared, run-scoped key/value store.
func (w *WorkflowExecutor) Context() *engine.ContextHandle { return w.ctxHandle }

// Extensions returns the typed extension registry.
func (w *WorkflowExecutor) Extensions() *engine.Extensions { return w.extensions }

// SetEventSink replaces the sink events are sent to.
func (w *WorkflowExecutor) SetEventSink(sink observer.Sink) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.eventSink = sink
}

// SendEvent forwards event to the current sink, ignoring send errors -
// observability must never fail a workflow run.
func (w *WorkflowExecutor) SendEvent(ctx context.Context, event observer.WorkflowEvent) {
	w.mu.RLock()
	sink := w.eventSink
	w.mu.RUnlock()
	_ = sink.Send(ctx, event)
}

// Demand resolves nodeID's output, recursively demanding any
// dependencies whose cache is stale. The demand engine itself emits no
// TaskFailed event on executor error - as the top-level caller of the
// engine, Demand emits it here, for whichever node's NodeExecutionError
// is reported.
func (w *WorkflowExecutor) Demand(ctx context.Context, nodeID string) (map[string]interface{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out, err := w.demandEng.Demand(ctx, nodeID, w.graph, w.taskExec, w.ctxHandle, w.eventSink, w.extensions)
	if err != nil {
		w.emitTaskFailed(ctx, err)
	}
	return out, err
}

// DemandMultiple resolves several node outputs against a single graph
// snapshot, sequentially in the order given.
func (w *WorkflowExecutor) DemandMultiple(ctx context.Context, nodeIDs []string) (map[string]map[string]interface{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out, err := w.demandEng.DemandMultiple(ctx, nodeIDs, w.graph, w.taskExec, w.ctxHandle, w.eventSink, w.extensions)
	if err != nil {
		w.emitTaskFailed(ctx, err)
	}
	return out, err
}

// emitTaskFailed sends a TaskFailed event for the node named in err, if
// err is (or wraps) a NodeExecutionError. Errors that never reached a
// node's executor - an unregistered type, a cycle, a missing node - have
// no single failing task to attribute the event to, so they're left to
// surface only as the workflow-level failure event.
func (w *WorkflowExecutor) emitTaskFailed(ctx context.Context, err error) {
	var nodeErr *engine.NodeExecutionError
	if errors.As(err, &nodeErr) {
		_ = w.eventSink.Send(ctx, observer.WorkflowEvent{
			Kind:   observer.EventTaskFailed,
			TaskID: nodeErr.NodeID,
			Error:  nodeErr.Err.Error(),
		})
	}
}

// MarkModified invalidates nodeID's cache entry, forcing its own and
// every downstream node's next Demand to recompute.
func (w *WorkflowExecutor) MarkModified(nodeID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.demandEng.MarkModified(nodeID)
}

// UpdateNodeData replaces a node's Data payload and marks it modified,
// the combination a UI edit to a node's configuration performs.
func (w *WorkflowExecutor) UpdateNodeData(nodeID string, data interface{}) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	node := w.graph.FindNode(nodeID)
	if node == nil {
		return false
	}
	node.Data = data
	w.demandEng.MarkModified(nodeID)
	return true
}

// AddNode appends a node to the graph. New nodes have no cached output,
// so no explicit invalidation is needed.
func (w *WorkflowExecutor) AddNode(node graph.Node) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.graph.AddNode(node)
}

// AddEdge appends an edge and marks its target modified, since the
// target now has a new input.
func (w *WorkflowExecutor) AddEdge(edge graph.Edge) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.graph.AddEdge(edge)
	w.demandEng.MarkModified(edge.Target)
}

// RemoveEdge deletes an edge by id and marks its target modified.
func (w *WorkflowExecutor) RemoveEdge(edgeID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	edge := w.graph.FindEdge(edgeID)
	if edge == nil {
		return false
	}
	target := edge.Target
	removed := w.graph.RemoveEdge(edgeID)
	if removed {
		w.demandEng.MarkModified(target)
	}
	return removed
}

// GraphSnapshot returns a deep copy of the current graph, safe to hold
// onto after the call returns.
func (w *WorkflowExecutor) GraphSnapshot() *graph.Graph {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.Clone()
}

// RestoreGraphSnapshot replaces the live graph with a deep copy of
// snapshot and clears every cached node output, since cached outputs
// were computed against the graph being replaced.
func (w *WorkflowExecutor) RestoreGraphSnapshot(snapshot *graph.Graph) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.graph = snapshot.Clone()
	w.demandEng.ClearCache()
}

// CacheStats reports the demand engine's current cache occupancy.
func (w *WorkflowExecutor) CacheStats() engine.CacheStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.demandEng.CacheStats()
}
