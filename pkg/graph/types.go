// Package graph provides the typed graph model shared by data graphs and
// orchestration graphs: nodes, edges, ports, and adjacency queries. It has
// no knowledge of execution — that lives in pkg/engine, pkg/workflow, and
// pkg/orchestration.
package graph

// PortDataType is the fixed vocabulary of port data types a node's inputs
// and outputs are declared against.
type PortDataType string

const (
	PortAny            PortDataType = "any"
	PortString         PortDataType = "string"
	PortImage          PortDataType = "image"
	PortAudio          PortDataType = "audio"
	PortComponent      PortDataType = "component"
	PortStream         PortDataType = "stream"
	PortPrompt         PortDataType = "prompt"
	PortTools          PortDataType = "tools"
	PortEmbedding      PortDataType = "embedding"
	PortDocument       PortDataType = "document"
	PortJSON           PortDataType = "json"
	PortBoolean        PortDataType = "boolean"
	PortNumber         PortDataType = "number"
	PortVectorDB       PortDataType = "vector_db"
	PortModelHandle    PortDataType = "model_handle"
	PortEmbeddingHandle PortDataType = "embedding_handle"
	PortDatabaseHandle PortDataType = "database_handle"
	PortVector         PortDataType = "vector"
	PortTensor         PortDataType = "tensor"
	PortAudioSamples   PortDataType = "audio_samples"
)

// IsCompatibleWith reports whether a value of this port type may flow into
// a port declared with the other type. Any matches everything; Prompt and
// String are mutually compatible; otherwise the types must be identical.
func (t PortDataType) IsCompatibleWith(other PortDataType) bool {
	if t == PortAny || other == PortAny {
		return true
	}
	if (t == PortPrompt && other == PortString) || (t == PortString && other == PortPrompt) {
		return true
	}
	return t == other
}

// PortDefinition describes one input or output slot on a node type.
type PortDefinition struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	DataType     PortDataType `json:"dataType"`
	Required     bool         `json:"required"`
	Multiple     bool         `json:"multiple"`
	DefaultValue interface{}  `json:"defaultValue,omitempty"`
}

// RequiredPort builds a required port definition.
func RequiredPort(id, label string, dataType PortDataType) PortDefinition {
	return PortDefinition{ID: id, Label: label, DataType: dataType, Required: true}
}

// OptionalPort builds an optional port definition.
func OptionalPort(id, label string, dataType PortDataType) PortDefinition {
	return PortDefinition{ID: id, Label: label, DataType: dataType, Required: false}
}

// WithMultiple marks a port as accepting multiple incoming edges.
func (p PortDefinition) WithMultiple() PortDefinition {
	p.Multiple = true
	return p
}

// WithDefault attaches a default value to an optional port.
func (p PortDefinition) WithDefault(value interface{}) PortDefinition {
	p.DefaultValue = value
	return p
}

// NodeCategory groups node types for palette display.
type NodeCategory string

const (
	CategoryInput      NodeCategory = "input"
	CategoryOutput     NodeCategory = "output"
	CategoryProcessing NodeCategory = "processing"
	CategoryControl    NodeCategory = "control"
	CategoryTool       NodeCategory = "tool"
)

// ExecutionMode describes when a node type is expected to run.
type ExecutionMode string

const (
	ModeBatch    ExecutionMode = "batch"
	ModeStream   ExecutionMode = "stream"
	ModeReactive ExecutionMode = "reactive"
	ModeManual   ExecutionMode = "manual"
)

// NodeDefinition is the registered metadata for a node type: its category,
// display label, port list, and execution mode. This is the "metadata"
// half of a registry entry (see pkg/registry).
type NodeDefinition struct {
	NodeType      string           `json:"nodeType"`
	Category      NodeCategory     `json:"category"`
	Label         string           `json:"label"`
	Description   string           `json:"description"`
	Inputs        []PortDefinition `json:"inputs"`
	Outputs       []PortDefinition `json:"outputs"`
	ExecutionMode ExecutionMode    `json:"executionMode"`
}

// Node is one instance in a graph: a stable id, a type key into the node
// registry, an opaque configuration tree, and a UI position.
type Node struct {
	ID       string      `json:"id"`
	NodeType string      `json:"nodeType"`
	Data     interface{} `json:"data,omitempty"`
	Position [2]float64  `json:"position"`
}

// Edge connects an output port on a source node to an input port on a
// target node.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

// Group bundles nodes and edges under exposed ports for the UI. The engine
// never executes groups; they are expanded by the editor before execution
// and are carried here purely so graphs round-trip through JSON intact.
type Group struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NodeIDs      []string `json:"nodeIds"`
	EdgeIDs      []string `json:"edgeIds"`
	ExposedPorts []string `json:"exposedPorts,omitempty"`
}

// ContainsNode reports whether the given node id belongs to this group.
func (g Group) ContainsNode(nodeID string) bool {
	for _, id := range g.NodeIDs {
		if id == nodeID {
			return true
		}
	}
	return false
}
