// Package engine implements demand-driven lazy evaluation with
// version-tracked caching: outputs are only computed when demanded, and
// only recomputed when their inputs have actually changed.
//
// Go's goroutine stacks grow on demand, so the recursive traversal in
// demandInternal needs none of the boxed-future indirection an
// async-recursion implementation requires in Rust - a plain recursive
// method call is enough.
package engine

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
	"github.com/yesoreyeram/nodeflow/backend/pkg/observer"
)

// TaskExecutor executes a single node given its resolved inputs. This is
// the seam between the demand engine and however a node type actually
// runs - a registry dispatch (pkg/registry), a direct function call, or
// an FFI callback.
type TaskExecutor interface {
	ExecuteTask(ctx context.Context, taskID string, inputs map[string]interface{}, ctxHandle *ContextHandle, ext *Extensions) (map[string]interface{}, error)
}

// CachedOutput is a node's most recently computed output, tagged with the
// input version it was computed against.
type CachedOutput struct {
	Version uint64
	Value   map[string]interface{}
}

// CacheStats summarizes the demand engine's cache for diagnostics.
type CacheStats struct {
	CachedNodes    int
	TotalVersions  int
	GlobalVersion  uint64
}

// DemandEngine is the pull-based lazy evaluator: Demand walks backward
// from a requested node to its unresolved dependencies, executing only
// what is missing or stale and caching everything it computes.
//
// DemandEngine itself holds no lock; callers (pkg/workflow) serialize
// access by holding a writer lock for the duration of one top-level
// Demand call, per the engine's reader/writer concurrency model.
type DemandEngine struct {
	versions      map[string]uint64
	cache         map[string]CachedOutput
	globalVersion uint64
	executionID   string
}

// NewDemandEngine creates an empty demand engine for one execution run.
func NewDemandEngine(executionID string) *DemandEngine {
	return &DemandEngine{
		versions:    make(map[string]uint64),
		cache:       make(map[string]CachedOutput),
		executionID: executionID,
	}
}

// ExecutionID returns the engine's execution id.
func (e *DemandEngine) ExecutionID() string { return e.executionID }

// MarkModified records that a node changed externally (e.g. a user edited
// its data), bumping the global version and dropping the node's own
// cached output. Downstream nodes invalidate lazily on their next demand,
// once their computed input version no longer matches their cache.
func (e *DemandEngine) MarkModified(nodeID string) {
	e.globalVersion++
	e.versions[nodeID] = e.globalVersion
	delete(e.cache, nodeID)
}

// ComputeInputVersion sums the versions of a node's direct dependencies.
// Wrapping addition means a node with enough modifications can in theory
// collide with an older version number; see the design notes on this
// tradeoff - it is accepted as vanishingly unlikely in practice.
func (e *DemandEngine) ComputeInputVersion(nodeID string, g *graph.Graph) uint64 {
	var version uint64
	for _, dep := range g.Dependencies(nodeID) {
		version += e.versions[dep]
	}
	return version
}

// GetCached returns a node's cached output if its input version still
// matches what it was computed against.
func (e *DemandEngine) GetCached(nodeID string, g *graph.Graph) (map[string]interface{}, bool) {
	cached, ok := e.cache[nodeID]
	if !ok {
		return nil, false
	}
	if cached.Version != e.ComputeInputVersion(nodeID, g) {
		return nil, false
	}
	return cached.Value, true
}

// CacheOutput stores a computed output against the node's current input
// version.
func (e *DemandEngine) CacheOutput(nodeID string, value map[string]interface{}, g *graph.Graph) {
	e.cache[nodeID] = CachedOutput{Version: e.ComputeInputVersion(nodeID, g), Value: value}
}

// ClearCache drops every cached output, keeping version history intact.
func (e *DemandEngine) ClearCache() {
	e.cache = make(map[string]CachedOutput)
}

// CacheStats reports cache occupancy and version counters.
func (e *DemandEngine) CacheStats() CacheStats {
	return CacheStats{
		CachedNodes:   len(e.cache),
		TotalVersions: len(e.versions),
		GlobalVersion: e.globalVersion,
	}
}

// Demand computes (or returns the cached) output of nodeID, recursively
// resolving every upstream dependency first.
func (e *DemandEngine) Demand(
	ctx context.Context,
	nodeID string,
	g *graph.Graph,
	executor TaskExecutor,
	ctxHandle *ContextHandle,
	sink observer.Sink,
	ext *Extensions,
) (map[string]interface{}, error) {
	computing := make(map[string]bool)
	return e.demandInternal(ctx, nodeID, g, executor, ctxHandle, sink, ext, computing)
}

func (e *DemandEngine) demandInternal(
	ctx context.Context,
	nodeID string,
	g *graph.Graph,
	executor TaskExecutor,
	ctxHandle *ContextHandle,
	sink observer.Sink,
	ext *Extensions,
	computing map[string]bool,
) (map[string]interface{}, error) {
	if computing[nodeID] {
		return nil, fmt.Errorf("%w: %q", ErrCycleDetected, nodeID)
	}
	computing[nodeID] = true
	defer delete(computing, nodeID)

	// 1. Resolve every dependency first so their versions are current
	// before we check our own cache validity.
	inputs := make(map[string]interface{})
	dependencies := g.Dependencies(nodeID)
	incoming := g.Incoming(nodeID)

	for _, depID := range dependencies {
		depOutputs, err := e.demandInternal(ctx, depID, g, executor, ctxHandle, sink, ext, computing)
		if err != nil {
			return nil, err
		}
		for _, edge := range incoming {
			if edge.Source != depID {
				continue
			}
			if value, ok := depOutputs[edge.SourceHandle]; ok {
				inputs[edge.TargetHandle] = value
			}
		}
	}

	// 2. Compute the input version now that dependencies are resolved.
	inputVersion := e.ComputeInputVersion(nodeID, g)

	// 3. A matching cache entry means we're done.
	if cached, ok := e.cache[nodeID]; ok && cached.Version == inputVersion {
		return cached.Value, nil
	}

	// 4. Cache miss - fold in the node's own static config under _data.
	if node := g.FindNode(nodeID); node != nil && node.Data != nil {
		inputs["_data"] = node.Data
	}

	if sink != nil {
		_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskStarted, TaskID: nodeID})
	}

	outputs, err := executor.ExecuteTask(ctx, nodeID, inputs, ctxHandle, ext)
	if err != nil {
		// TaskFailed is emitted by the caller, not here - see
		// NodeExecutionError's doc comment.
		return nil, &NodeExecutionError{NodeID: nodeID, Err: err}
	}

	if sink != nil {
		_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskCompleted, TaskID: nodeID, Output: outputs})
	}

	// 6. Cache under this input version.
	e.cache[nodeID] = CachedOutput{Version: inputVersion, Value: outputs}

	// 7. Bump this node's version to mark it fresh for its dependents.
	e.globalVersion++
	e.versions[nodeID] = e.globalVersion

	return outputs, nil
}

// DemandMultiple demands each of nodeIDs in turn. Independent subgraph
// parallelization is a known future optimization, not implemented here -
// the same simplification the original engine documents.
func (e *DemandEngine) DemandMultiple(
	ctx context.Context,
	nodeIDs []string,
	g *graph.Graph,
	executor TaskExecutor,
	ctxHandle *ContextHandle,
	sink observer.Sink,
	ext *Extensions,
) (map[string]map[string]interface{}, error) {
	results := make(map[string]map[string]interface{}, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		output, err := e.Demand(ctx, nodeID, g, executor, ctxHandle, sink, ext)
		if err != nil {
			return nil, err
		}
		results[nodeID] = output
	}
	return results, nil
}

// InvalidateDownstream drops the cache for nodeID and every node
// reachable from it, for forcing re-execution of a subgraph the version
// system can't otherwise detect as stale.
func (e *DemandEngine) InvalidateDownstream(nodeID string, g *graph.Graph) {
	toInvalidate := []string{nodeID}
	invalidated := make(map[string]bool)

	for len(toInvalidate) > 0 {
		current := toInvalidate[len(toInvalidate)-1]
		toInvalidate = toInvalidate[:len(toInvalidate)-1]

		if invalidated[current] {
			continue
		}
		invalidated[current] = true
		delete(e.cache, current)

		toInvalidate = append(toInvalidate, g.Dependents(current)...)
	}
}
