package graph

// Graph holds a data graph's nodes, edges, and groups. Nodes and edges are
// kept in insertion order (RemoveEdge closes the gap it leaves) so that dependency order
// (see Dependencies) matches edge insertion order, as required by
// demand's visiting order.
type Graph struct {
	ID     string
	Name   string
	nodes  []Node
	edges  []Edge
	groups []Group
}

// New creates a graph from a fixed node and edge set.
func New(id, name string, nodes []Node, edges []Edge) *Graph {
	return &Graph{ID: id, Name: name, nodes: nodes, edges: edges}
}

// Nodes returns the graph's nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the graph's edges in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// Groups returns the graph's UI groups.
func (g *Graph) Groups() []Group { return g.groups }

// AddGroup appends a group to the graph.
func (g *Graph) AddGroup(group Group) { g.groups = append(g.groups, group) }

// FindNode returns the node with the given id, or nil.
func (g *Graph) FindNode(id string) *Node {
	for i := range g.nodes {
		if g.nodes[i].ID == id {
			return &g.nodes[i]
		}
	}
	return nil
}

// FindEdge returns the edge with the given id, or nil.
func (g *Graph) FindEdge(id string) *Edge {
	for i := range g.edges {
		if g.edges[i].ID == id {
			return &g.edges[i]
		}
	}
	return nil
}

// Incoming returns all edges whose target is the given node, in edge order.
func (g *Graph) Incoming(nodeID string) []Edge {
	var edges []Edge
	for _, e := range g.edges {
		if e.Target == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// Outgoing returns all edges whose source is the given node, in edge order.
func (g *Graph) Outgoing(nodeID string) []Edge {
	var edges []Edge
	for _, e := range g.edges {
		if e.Source == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// Dependencies returns the source node ids of every edge incoming to
// nodeID, preserving edge-list order. This order is what determines the
// sequence in which the demand engine visits a node's upstream
// dependencies.
func (g *Graph) Dependencies(nodeID string) []string {
	var deps []string
	for _, e := range g.edges {
		if e.Target == nodeID {
			deps = append(deps, e.Source)
		}
	}
	return deps
}

// Dependents returns the target node ids of every edge outgoing from
// nodeID, preserving edge-list order.
func (g *Graph) Dependents(nodeID string) []string {
	var deps []string
	for _, e := range g.edges {
		if e.Source == nodeID {
			deps = append(deps, e.Target)
		}
	}
	return deps
}

// AddNode appends a node to the graph. It does not check for duplicate
// ids; callers that need that guarantee should validate first.
func (g *Graph) AddNode(node Node) {
	g.nodes = append(g.nodes, node)
}

// AddEdge appends an edge to the graph.
func (g *Graph) AddEdge(edge Edge) {
	g.edges = append(g.edges, edge)
}

// RemoveEdge deletes the edge with the given id and reports whether it
// was found.
func (g *Graph) RemoveEdge(id string) bool {
	for i := range g.edges {
		if g.edges[i].ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the graph, used for snapshot/restore.
func (g *Graph) Clone() *Graph {
	nodes := make([]Node, len(g.nodes))
	copy(nodes, g.nodes)
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	groups := make([]Group, len(g.groups))
	copy(groups, g.groups)
	return &Graph{ID: g.ID, Name: g.Name, nodes: nodes, edges: edges, groups: groups}
}

// TopologicalSort orders nodes using Kahn's algorithm: repeatedly drain
// zero-in-degree nodes. If fewer nodes drain than exist in the graph, the
// remainder participate in a cycle. Edges whose source or target is not a
// node of the graph are ignored.
//
// Optimizations carried from the original implementation: pre-allocated
// maps sized to the node count, a queue pre-sized to the node count and
// walked by head/tail indices to avoid slice reslicing, and insertion sort
// over the (typically small) initial zero-in-degree set for a
// deterministic starting order.
func (g *Graph) TopologicalSort() ([]string, error) {
	numNodes := len(g.nodes)
	if numNodes == 0 {
		return []string{}, nil
	}

	inDegree := make(map[string]int, numNodes)
	adjacency := make(map[string][]string, numNodes)

	for i := range g.nodes {
		inDegree[g.nodes[i].ID] = 0
	}
	for i := range g.edges {
		edge := &g.edges[i]
		if _, ok := inDegree[edge.Source]; !ok {
			continue
		}
		if _, ok := inDegree[edge.Target]; !ok {
			continue
		}
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
		inDegree[edge.Target]++
	}

	orphanNodes := make([]string, 0, numNodes)
	for nodeID, degree := range inDegree {
		if degree == 0 {
			orphanNodes = append(orphanNodes, nodeID)
		}
	}
	insertionSort(orphanNodes)

	queue := make([]string, numNodes)
	queueStart := 0
	queueEnd := len(orphanNodes)
	copy(queue, orphanNodes)

	order := make([]string, 0, numNodes)

	for queueStart < queueEnd {
		current := queue[queueStart]
		queueStart++
		order = append(order, current)

		for _, neighbor := range adjacency[current] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue[queueEnd] = neighbor
				queueEnd++
			}
		}
	}

	if len(order) != numNodes {
		return nil, ErrCycleDetected
	}
	return order, nil
}

// insertionSort sorts a slice of strings in place. Faster than the
// standard library sort for the small orphan-node sets typical here.
func insertionSort(arr []string) {
	for i := 1; i < len(arr); i++ {
		key := arr[i]
		j := i - 1
		for j >= 0 && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}

// DetectCycles reports ErrCycleDetected if the graph is not acyclic.
func (g *Graph) DetectCycles() error {
	_, err := g.TopologicalSort()
	return err
}

// TerminalNodes returns the ids of nodes with no outgoing edges.
func (g *Graph) TerminalNodes() []string {
	terminal := make(map[string]bool, len(g.nodes))
	for _, node := range g.nodes {
		terminal[node.ID] = true
	}
	for _, edge := range g.edges {
		terminal[edge.Source] = false
	}
	result := make([]string, 0)
	for _, node := range g.nodes {
		if terminal[node.ID] {
			result = append(result, node.ID)
		}
	}
	return result
}
