package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/yesoreyeram/nodeflow/backend/pkg/observer"
)

// DataGraphExecutor abstracts running a single data graph to its outputs,
// so OrchestrationExecutor never needs to know how a DataGraph node's
// referenced graph is actually evaluated - that is pkg/workflow's job.
type DataGraphExecutor interface {
	ExecuteDataGraph(ctx context.Context, graphID string, inputs map[string]interface{}, sink observer.Sink) (map[string]interface{}, error)
}

// Executor runs an orchestration Graph to completion, stepping from node
// to node along the edges selected by each node's execution result.
type Executor struct {
	dataExecutor DataGraphExecutor
	maxNodes     int
	executionID  string
}

// NewExecutor creates an orchestration executor over a DataGraphExecutor,
// with a default 1000-node step budget protecting against runaway loops.
func NewExecutor(dataExecutor DataGraphExecutor, executionID string) *Executor {
	return &Executor{dataExecutor: dataExecutor, maxNodes: 1000, executionID: executionID}
}

// WithMaxNodes overrides the step budget.
func (e *Executor) WithMaxNodes(maxNodes int) *Executor {
	e.maxNodes = maxNodes
	return e
}

// Execute runs graph from its Start node until an End node (or the step
// budget) is reached.
func (e *Executor) Execute(ctx context.Context, graph *Graph, initialData map[string]interface{}, sink observer.Sink) (Result, error) {
	if sink == nil {
		sink = observer.NullSink{}
	}
	start := time.Now()
	nodesExecuted := 0
	orchCtx := NewContextWithData(initialData)

	_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventWorkflowStarted, Message: graph.ID})

	startNode := graph.FindStartNode()
	if startNode == nil {
		_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventWorkflowFailed, Message: graph.ID, Error: ErrNoStartNode.Error()})
		return Result{}, ErrNoStartNode
	}

	currentNodeID := startNode.ID

	for {
		if nodesExecuted >= e.maxNodes {
			elapsed := time.Since(start).Milliseconds()
			errMsg := fmt.Sprintf("execution limit reached (%d nodes)", e.maxNodes)
			_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventWorkflowFailed, Message: graph.ID, Error: errMsg})
			return Result{Success: false, Error: errMsg, NodesExecuted: nodesExecuted, ExecutionTimeMs: elapsed}, nil
		}

		node := graph.FindNode(currentNodeID)
		if node == nil {
			return Result{}, fmt.Errorf("%w: %q", ErrNodeNotFound, currentNodeID)
		}

		_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskStarted, TaskID: node.ID})
		nodesExecuted++

		var result ExecutionResult
		var err error
		if node.NodeType == NodeDataGraph {
			result, err = e.executeDataGraphNode(ctx, graph, node, orchCtx, sink)
		} else {
			result, err = ExecuteNode(node, orchCtx)
		}
		if err != nil {
			return Result{}, err
		}

		for key, value := range result.ContextUpdates {
			orchCtx.Set(key, value)
		}

		_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskCompleted, TaskID: node.ID, Message: result.Message})

		switch node.NodeType {
		case NodeCondition:
			_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskProgress, TaskID: node.ID, Progress: 1.0, Message: fmt.Sprintf("condition: %s", result.NextHandle)})
		case NodeLoop:
			if result.NextHandle == "iteration" {
				iteration := orchCtx.LoopIteration(node.ID)
				_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskProgress, TaskID: node.ID, Progress: 0.0, Message: fmt.Sprintf("loop iteration: %d", iteration)})
			}
		}

		if result.NextHandle == "" {
			elapsed := time.Since(start).Milliseconds()
			_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventWorkflowCompleted, Message: graph.ID})
			return Result{Success: true, Outputs: orchCtx.Data(), NodesExecuted: nodesExecuted, ExecutionTimeMs: elapsed}, nil
		}

		nextNodeID, err := e.findNextNode(graph, node.ID, result.NextHandle)
		if err != nil {
			return Result{}, err
		}
		currentNodeID = nextNodeID
	}
}

func (e *Executor) executeDataGraphNode(ctx context.Context, graph *Graph, node *Node, orchCtx *Context, sink observer.Sink) (ExecutionResult, error) {
	cfg, err := PrepareDataGraphExecution(node)
	if err != nil {
		return ExecutionResult{}, err
	}

	dataGraphID := cfg.DataGraphID
	if id, ok := graph.DataGraphID(node.ID); ok {
		dataGraphID = id
	}

	_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskProgress, TaskID: node.ID, Progress: 0.0, Message: fmt.Sprintf("starting data graph: %s", dataGraphID)})

	inputs := make(map[string]interface{})
	for contextKey, portName := range cfg.InputMappings {
		if value, ok := orchCtx.Get(contextKey); ok {
			inputs[portName] = value
		}
	}

	outputs, err := e.dataExecutor.ExecuteDataGraph(ctx, dataGraphID, inputs, sink)
	if err != nil {
		_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskFailed, TaskID: node.ID, Error: err.Error()})
		return Handle("error").
			WithUpdate(node.ID+".error", err.Error()).
			WithMessage(fmt.Sprintf("data graph %q failed: %v", dataGraphID, err)), nil
	}

	contextUpdates := make(map[string]interface{})
	for portName, contextKey := range cfg.OutputMappings {
		if value, ok := outputs[portName]; ok {
			contextUpdates[contextKey] = value
		}
	}
	for portName, value := range outputs {
		contextUpdates[node.ID+"."+portName] = value
	}

	_ = sink.Send(ctx, observer.WorkflowEvent{Kind: observer.EventTaskProgress, TaskID: node.ID, Progress: 1.0, Message: fmt.Sprintf("completed data graph: %s", dataGraphID)})

	return Handle("next").
		WithUpdates(contextUpdates).
		WithMessage(fmt.Sprintf("data graph %q completed", dataGraphID)), nil
}

func (e *Executor) findNextNode(graph *Graph, sourceID, sourceHandle string) (string, error) {
	for _, edge := range graph.OutgoingEdges(sourceID) {
		if edge.SourceHandle == sourceHandle {
			return edge.Target, nil
		}
	}
	return "", fmt.Errorf("%w: node %q handle %q", ErrNoEdgeForHandle, sourceID, sourceHandle)
}
