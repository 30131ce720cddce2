package graph

import (
	"fmt"
	"testing"
)

// Benchmark topological sort with different graph sizes and structures

// BenchmarkTopologicalSort_Linear benchmarks linear chains
func BenchmarkTopologicalSort_Linear(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			nodes, edges := generateLinearChain(size)
			g := New("wf", "bench", nodes, edges)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := g.TopologicalSort()
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// BenchmarkTopologicalSort_Wide benchmarks wide graphs (many parallel branches)
func BenchmarkTopologicalSort_Wide(b *testing.B) {
	sizes := []int{10, 100, 1000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			nodes, edges := generateWideGraph(size)
			g := New("wf", "bench", nodes, edges)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := g.TopologicalSort()
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// BenchmarkTopologicalSort_Dense benchmarks dense graphs
func BenchmarkTopologicalSort_Dense(b *testing.B) {
	sizes := []int{10, 50, 100, 500}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			nodes, edges := generateDenseDAG(size)
			g := New("wf", "bench", nodes, edges)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := g.TopologicalSort()
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// BenchmarkTopologicalSort_Tree benchmarks tree structures
func BenchmarkTopologicalSort_Tree(b *testing.B) {
	sizes := []int{15, 31, 63, 127, 255, 511, 1023} // Binary tree sizes: 2^n - 1

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			nodes, edges := generateBinaryTree(size)
			g := New("wf", "bench", nodes, edges)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := g.TopologicalSort()
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// BenchmarkTopologicalSort_Diamond benchmarks diamond-shaped graphs
func BenchmarkTopologicalSort_Diamond(b *testing.B) {
	sizes := []int{10, 50, 100, 500}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%d_layers", size), func(b *testing.B) {
			nodes, edges := generateDiamondGraph(size)
			g := New("wf", "bench", nodes, edges)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := g.TopologicalSort()
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// BenchmarkTopologicalSort_RealWorld benchmarks realistic workflow patterns
func BenchmarkTopologicalSort_RealWorld(b *testing.B) {
	scenarios := []struct {
		name  string
		nodes []Node
		edges []Edge
	}{
		{
			name:  "simple_pipeline",
			nodes: generatePipelineNodes(20, 5), // 20 stages, 5 parallel per stage
			edges: generatePipelineEdges(20, 5),
		},
		{
			name:  "complex_pipeline",
			nodes: generatePipelineNodes(50, 10), // 50 stages, 10 parallel per stage
			edges: generatePipelineEdges(50, 10),
		},
		{
			name:  "fan_out_fan_in",
			nodes: generateFanOutFanInNodes(100),
			edges: generateFanOutFanInEdges(100),
		},
	}

	for _, scenario := range scenarios {
		b.Run(scenario.name, func(b *testing.B) {
			g := New("wf", "bench", scenario.nodes, scenario.edges)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := g.TopologicalSort()
				if err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// BenchmarkNew tests graph creation performance
func BenchmarkNew(b *testing.B) {
	nodes, edges := generateLinearChain(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = New("wf", "bench", nodes, edges)
	}
}

// Helper functions to generate test graphs

func generateLinearChain(size int) ([]Node, []Edge) {
	nodes := make([]Node, size)
	edges := make([]Edge, size-1)

	for i := 0; i < size; i++ {
		nodes[i] = Node{
			ID:       fmt.Sprintf("node-%d", i),
			NodeType: "operation",
		}
	}

	for i := 0; i < size-1; i++ {
		edges[i] = Edge{
			ID:     fmt.Sprintf("edge-%d", i),
			Source: nodes[i].ID,
			Target: nodes[i+1].ID,
		}
	}

	return nodes, edges
}

func generateWideGraph(size int) ([]Node, []Edge) {
	// Create a graph with one root, many parallel branches, and one sink
	nodes := make([]Node, size+2) // +2 for root and sink
	edges := make([]Edge, 0, size*2)

	nodes[0] = Node{ID: "root", NodeType: "operation"}
	nodes[size+1] = Node{ID: "sink", NodeType: "operation"}

	for i := 0; i < size; i++ {
		nodes[i+1] = Node{
			ID:       fmt.Sprintf("node-%d", i),
			NodeType: "operation",
		}
		edges = append(edges, Edge{ID: fmt.Sprintf("e-root-%d", i), Source: "root", Target: nodes[i+1].ID})
		edges = append(edges, Edge{ID: fmt.Sprintf("e-sink-%d", i), Source: nodes[i+1].ID, Target: "sink"})
	}

	return nodes, edges
}

func generateDenseDAG(size int) ([]Node, []Edge) {
	nodes := make([]Node, size)
	edges := make([]Edge, 0)

	for i := 0; i < size; i++ {
		nodes[i] = Node{
			ID:       fmt.Sprintf("node-%d", i),
			NodeType: "operation",
		}
	}

	// Add edges from each node to several later nodes
	for i := 0; i < size; i++ {
		// Connect to next 3 nodes (or fewer if near the end)
		for j := 1; j <= 3 && i+j < size; j++ {
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("e-%d-%d", i, j),
				Source: nodes[i].ID,
				Target: nodes[i+j].ID,
			})
		}
	}

	return nodes, edges
}

func generateBinaryTree(size int) ([]Node, []Edge) {
	nodes := make([]Node, size)
	edges := make([]Edge, 0, size-1)

	for i := 0; i < size; i++ {
		nodes[i] = Node{
			ID:       fmt.Sprintf("node-%d", i),
			NodeType: "operation",
		}
	}

	// Binary tree: node i has children at 2i+1 and 2i+2
	for i := 0; i < size; i++ {
		left := 2*i + 1
		right := 2*i + 2

		if left < size {
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("e-%d-l", i),
				Source: nodes[i].ID,
				Target: nodes[left].ID,
			})
		}
		if right < size {
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("e-%d-r", i),
				Source: nodes[i].ID,
				Target: nodes[right].ID,
			})
		}
	}

	return nodes, edges
}

func generateDiamondGraph(layers int) ([]Node, []Edge) {
	// Each layer has 2 nodes, creating diamond patterns
	numNodes := layers * 2
	nodes := make([]Node, numNodes)
	edges := make([]Edge, 0)

	for i := 0; i < numNodes; i++ {
		nodes[i] = Node{
			ID:       fmt.Sprintf("node-%d", i),
			NodeType: "operation",
		}
	}

	for layer := 0; layer < layers-1; layer++ {
		// Connect both nodes in current layer to both nodes in next layer
		curr1 := layer * 2
		curr2 := layer*2 + 1
		next1 := (layer + 1) * 2
		next2 := (layer+1)*2 + 1

		edges = append(edges,
			Edge{ID: fmt.Sprintf("e-%d-a", layer), Source: nodes[curr1].ID, Target: nodes[next1].ID},
			Edge{ID: fmt.Sprintf("e-%d-b", layer), Source: nodes[curr1].ID, Target: nodes[next2].ID},
			Edge{ID: fmt.Sprintf("e-%d-c", layer), Source: nodes[curr2].ID, Target: nodes[next1].ID},
			Edge{ID: fmt.Sprintf("e-%d-d", layer), Source: nodes[curr2].ID, Target: nodes[next2].ID},
		)
	}

	return nodes, edges
}

func generatePipelineNodes(stages, parallelPerStage int) []Node {
	nodes := make([]Node, stages*parallelPerStage)

	for i := 0; i < stages; i++ {
		for j := 0; j < parallelPerStage; j++ {
			idx := i*parallelPerStage + j
			nodes[idx] = Node{
				ID:       fmt.Sprintf("stage-%d-node-%d", i, j),
				NodeType: "operation",
			}
		}
	}

	return nodes
}

func generatePipelineEdges(stages, parallelPerStage int) []Edge {
	edges := make([]Edge, 0)

	for i := 0; i < stages-1; i++ {
		// Connect each node in current stage to all nodes in next stage
		for j := 0; j < parallelPerStage; j++ {
			for k := 0; k < parallelPerStage; k++ {
				edges = append(edges, Edge{
					ID:     fmt.Sprintf("e-%d-%d-%d", i, j, k),
					Source: fmt.Sprintf("stage-%d-node-%d", i, j),
					Target: fmt.Sprintf("stage-%d-node-%d", i+1, k),
				})
			}
		}
	}

	return edges
}

func generateFanOutFanInNodes(branchCount int) []Node {
	nodes := make([]Node, branchCount+2) // +2 for root and sink

	nodes[0] = Node{ID: "root", NodeType: "operation"}
	nodes[branchCount+1] = Node{ID: "sink", NodeType: "operation"}

	for i := 0; i < branchCount; i++ {
		nodes[i+1] = Node{
			ID:       fmt.Sprintf("branch-%d", i),
			NodeType: "operation",
		}
	}

	return nodes
}

func generateFanOutFanInEdges(branchCount int) []Edge {
	edges := make([]Edge, 0, branchCount*2)

	for i := 0; i < branchCount; i++ {
		// Fan out from root
		edges = append(edges, Edge{
			ID:     fmt.Sprintf("e-out-%d", i),
			Source: "root",
			Target: fmt.Sprintf("branch-%d", i),
		})
		// Fan in to sink
		edges = append(edges, Edge{
			ID:     fmt.Sprintf("e-in-%d", i),
			Source: fmt.Sprintf("branch-%d", i),
			Target: "sink",
		})
	}

	return edges
}
