// Package engine implements the demand-driven evaluation core that
// pkg/workflow wraps: DemandEngine for pull-based execution with
// version-tracked caching, ContextHandle for run-scoped shared state, and
// Extensions for typed, non-serializable dependencies.
//
// # Demand-driven evaluation
//
// Rather than eagerly executing every node in topological order,
// DemandEngine.Demand walks backward from a requested node, resolving
// only the dependencies actually needed and skipping any whose cached
// output is still valid for the current input version:
//
//	eng := engine.NewDemandEngine("exec-1")
//	output, err := eng.Demand(ctx, "output-node", g, executor, ctxHandle, sink, ext)
//
// A node's input version is the sum of its dependencies' versions;
// MarkModified bumps a node's own version and drops its cache entry,
// which makes every downstream node's cached version comparison fail the
// next time it is demanded.
package engine
