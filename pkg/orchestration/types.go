// Package orchestration implements the control-flow layer above data
// graphs: Start/End/Condition/Loop/Merge/DataGraph nodes that sequence
// one or more pkg/graph data graphs into a larger run.
package orchestration

// NodeType is the control-flow role of an orchestration node.
type NodeType string

const (
	NodeStart     NodeType = "start"
	NodeEnd       NodeType = "end"
	NodeCondition NodeType = "condition"
	NodeLoop      NodeType = "loop"
	NodeDataGraph NodeType = "data_graph"
	NodeMerge     NodeType = "merge"
)

// OutputHandles lists the handle names a node of this type may route to.
func (t NodeType) OutputHandles() []string {
	switch t {
	case NodeStart:
		return []string{"next"}
	case NodeEnd:
		return []string{}
	case NodeCondition:
		return []string{"true", "false"}
	case NodeLoop:
		return []string{"iteration", "complete"}
	case NodeDataGraph:
		return []string{"next", "error"}
	case NodeMerge:
		return []string{"next"}
	default:
		return nil
	}
}

// InputHandles lists the handle names a node of this type accepts edges on.
func (t NodeType) InputHandles() []string {
	switch t {
	case NodeStart:
		return []string{}
	case NodeEnd:
		return []string{"input"}
	case NodeCondition:
		return []string{"input"}
	case NodeLoop:
		return []string{"input", "loop_back"}
	case NodeDataGraph:
		return []string{"input"}
	case NodeMerge:
		return []string{"a", "b", "c", "d"}
	default:
		return nil
	}
}

// Label returns a human-readable name for this node type.
func (t NodeType) Label() string {
	switch t {
	case NodeStart:
		return "Start"
	case NodeEnd:
		return "End"
	case NodeCondition:
		return "Condition"
	case NodeLoop:
		return "Loop"
	case NodeDataGraph:
		return "Data Graph"
	case NodeMerge:
		return "Merge"
	default:
		return string(t)
	}
}

// Node is one control-flow step in an orchestration graph.
type Node struct {
	ID       string
	NodeType NodeType
	Position [2]float64
	Config   map[string]interface{}
}

// Edge connects one orchestration node's output handle to another's input
// handle.
type Edge struct {
	ID           string
	Source       string
	SourceHandle string
	Target       string
	TargetHandle string
}

// Graph is a full orchestration: its control-flow nodes and edges, plus
// the mapping from DataGraph node ids to the data graph ids they run.
type Graph struct {
	ID          string
	Name        string
	Description string
	Nodes       []Node
	Edges       []Edge
	DataGraphs  map[string]string
}

// New creates an empty orchestration graph.
func New(id, name string) *Graph {
	return &Graph{ID: id, Name: name, DataGraphs: make(map[string]string)}
}

// FindNode returns the node with the given id, or nil.
func (g *Graph) FindNode(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// FindStartNode returns the graph's single Start node, or nil.
func (g *Graph) FindStartNode() *Node {
	for i := range g.Nodes {
		if g.Nodes[i].NodeType == NodeStart {
			return &g.Nodes[i]
		}
	}
	return nil
}

// FindEndNodes returns every End node in the graph.
func (g *Graph) FindEndNodes() []*Node {
	var ends []*Node
	for i := range g.Nodes {
		if g.Nodes[i].NodeType == NodeEnd {
			ends = append(ends, &g.Nodes[i])
		}
	}
	return ends
}

// OutgoingEdges returns every edge leaving nodeID.
func (g *Graph) OutgoingEdges(nodeID string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Source == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// IncomingEdges returns every edge entering nodeID.
func (g *Graph) IncomingEdges(nodeID string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Target == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// DataGraphID returns the data graph id a DataGraph node references, if
// the graph's DataGraphs map overrides the node's own config.
func (g *Graph) DataGraphID(nodeID string) (string, bool) {
	id, ok := g.DataGraphs[nodeID]
	return id, ok
}

// ConditionConfig configures a Condition node: which context key to read,
// and optionally what value it must equal (otherwise any truthy value
// passes).
type ConditionConfig struct {
	ConditionKey  string
	ExpectedValue interface{}
	HasExpected   bool
}

// ConditionConfigFromMap parses a Condition node's raw Config map.
func ConditionConfigFromMap(cfg map[string]interface{}) (ConditionConfig, error) {
	key, ok := cfg["conditionKey"].(string)
	if !ok || key == "" {
		return ConditionConfig{}, ErrInvalidConfig
	}
	expected, hasExpected := cfg["expectedValue"]
	return ConditionConfig{ConditionKey: key, ExpectedValue: expected, HasExpected: hasExpected}, nil
}

// LoopConfig configures a Loop node's iteration bound and exit condition.
type LoopConfig struct {
	MaxIterations   int
	ExitConditionKey string
	IterationKey    string
}

const defaultIterationKey = "loop_iteration"

// LoopConfigFromMap parses a Loop node's raw Config map, filling in
// defaults (10 max iterations, "loop_iteration" as the counter key) for
// anything left unspecified.
func LoopConfigFromMap(cfg map[string]interface{}) LoopConfig {
	out := LoopConfig{MaxIterations: 10, IterationKey: defaultIterationKey}
	if cfg == nil {
		return out
	}
	if max, ok := cfg["maxIterations"].(int); ok {
		out.MaxIterations = max
	} else if maxF, ok := cfg["maxIterations"].(float64); ok {
		out.MaxIterations = int(maxF)
	}
	if key, ok := cfg["exitConditionKey"].(string); ok {
		out.ExitConditionKey = key
	}
	if key, ok := cfg["iterationKey"].(string); ok && key != "" {
		out.IterationKey = key
	}
	return out
}

// DataGraphConfig configures a DataGraph node: which data graph to run
// and how orchestration context maps onto its input/output ports.
type DataGraphConfig struct {
	DataGraphID    string
	InputMappings  map[string]string
	OutputMappings map[string]string
}

// DataGraphConfigFromMap parses a DataGraph node's raw Config map.
func DataGraphConfigFromMap(cfg map[string]interface{}) (DataGraphConfig, error) {
	id, ok := cfg["dataGraphId"].(string)
	if !ok || id == "" {
		return DataGraphConfig{}, ErrInvalidConfig
	}
	out := DataGraphConfig{
		DataGraphID:    id,
		InputMappings:  stringMap(cfg["inputMappings"]),
		OutputMappings: stringMap(cfg["outputMappings"]),
	}
	return out, nil
}

func stringMap(v interface{}) map[string]string {
	raw, ok := v.(map[string]interface{})
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Result summarizes a completed orchestration run.
type Result struct {
	Success         bool
	Outputs         map[string]interface{}
	Error           string
	NodesExecuted   int
	ExecutionTimeMs int64
}
