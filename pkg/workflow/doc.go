// Package workflow is the top-level handle a caller holds for one running
// workflow: a graph, a demand engine, a node dispatcher, and the shared
// context/extensions/event-sink state a node execution needs. See
// WorkflowExecutor.
package workflow
