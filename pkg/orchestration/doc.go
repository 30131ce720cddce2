// Package orchestration sequences data graphs with control flow:
// Start/End/Condition/Loop/Merge/DataGraph nodes wired by handle-routed
// edges, stepped one node at a time by Executor until an End node (or
// the step budget) is reached.
package orchestration
