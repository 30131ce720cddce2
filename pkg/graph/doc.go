// Package graph provides graph algorithms and utilities for workflow execution.
//
// # Overview
//
// The graph package holds the data-graph model (nodes, edges, ports, groups)
// and the structural queries the workflow engine uses for dependency
// resolution, cycle detection, and execution ordering.
//
// # Key Algorithms
//
// Topological Sort:
//   - Implements Kahn's algorithm for topological ordering
//   - Orders nodes so that every edge's source precedes its target
//   - Detects cycles in the workflow graph
//   - Starts from the zero-in-degree nodes sorted by id, so the order is
//     deterministic for a given edge list
//
// Cycle Detection:
//   - DetectCycles runs the topological sort and returns ErrCycleDetected
//     when the graph is not acyclic
//   - It does not report which nodes form the cycle
//
// Dependency Queries:
//   - Dependencies and Dependents return a node's direct upstream and
//     downstream node ids, in edge-list order
//   - Incoming and Outgoing return the edges themselves
//   - TerminalNodes returns the nodes with no outgoing edges
//   - Transitive dependencies, subgraphs and parallel levels are not
//     computed by this package
//
// # Graph Representation
//
// Workflows are represented as directed graphs where:
//
//   - Nodes represent workflow operations
//   - Edges represent data dependencies
//   - Direction indicates data flow (source → target)
//   - Multiple edges can connect the same nodes
//
// # Topological Sort Usage
//
//	import "github.com/yesoreyeram/nodeflow/backend/pkg/graph"
//
//	edges := []graph.Edge{
//	    {ID: "e1", Source: "A", Target: "B"},
//	    {ID: "e2", Source: "B", Target: "C"},
//	}
//	g := graph.New("wf", "Example", nodes, edges)
//
//	// Perform topological sort
//	sorted, err := g.TopologicalSort()
//	if errors.Is(err, graph.ErrCycleDetected) {
//	    // Handle cycle
//	}
//
//	// Execute in sorted order
//	for _, nodeID := range sorted {
//	    execute(nodeID)
//	}
//
// # Cycle Detection
//
//	if err := g.DetectCycles(); err != nil {
//	    fmt.Println("graph has a cycle")
//	}
//
// # Performance Characteristics
//
//   - Topological sort: O(V + E) where V=nodes, E=edges
//   - Cycle detection: O(V + E), the same pass as the sort
//   - FindNode, FindEdge and the dependency queries: a linear scan
//
// # Error Handling
//
// ErrCycleDetected is the only error the algorithms return. An empty graph
// sorts to an empty slice with no error, edges whose source or target is
// not a node of the graph are ignored by the sort, and nodes without
// connections are ordinary zero-in-degree nodes.
//
// # Algorithm Details
//
// Kahn's Algorithm (Topological Sort):
//  1. Calculate in-degree for all nodes
//  2. Add zero in-degree nodes to queue
//  3. Process queue: remove node, decrement neighbor in-degrees
//  4. Add newly zero in-degree nodes to queue
//  5. If processed count != node count, cycle exists
//
// # Use Cases
//
//   - Workflow execution ordering
//   - Dependency resolution
//   - Build systems
//   - Task scheduling
//   - Data pipeline orchestration
//
// # Design Principles
//
//   - Efficiency: Optimized for large graphs
//   - Clarity: Clear, well-documented algorithms
//   - Correctness: Extensively tested edge cases
//   - Flexibility: Generic graph operations
//
// # Thread Safety
//
// A Graph has no internal locking. The query methods and algorithms only
// read, so multiple goroutines can analyze the same graph simultaneously;
// AddNode, AddEdge, AddGroup and RemoveEdge must not run concurrently
// with them.
package graph
