// Package validator checks data graphs and orchestration graphs for
// structural problems before they are ever demanded or executed: dangling
// edges, cycles, unregistered node types, unconnected required inputs,
// and malformed Start/End topology.
package validator

import (
	"fmt"

	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
	"github.com/yesoreyeram/nodeflow/backend/pkg/orchestration"
	"github.com/yesoreyeram/nodeflow/backend/pkg/registry"
)

// ErrorKind classifies one validation failure.
type ErrorKind string

const (
	KindCycleDetected            ErrorKind = "cycle_detected"
	KindUnknownNodeType          ErrorKind = "unknown_node_type"
	KindUnconnectedRequiredInput ErrorKind = "unconnected_required_input"
	KindIncompatiblePortTypes    ErrorKind = "incompatible_port_types"
	KindUnknownNode              ErrorKind = "unknown_node"
	KindOrphanedNode             ErrorKind = "orphaned_node"
	KindMissingStartNode         ErrorKind = "missing_start_node"
	KindMissingEndNode           ErrorKind = "missing_end_node"
	KindMultipleStartNodes       ErrorKind = "multiple_start_nodes"
	KindMissingRequiredHandle    ErrorKind = "missing_required_handle"
)

// Error is one structural problem found in a graph, carrying whichever
// of NodeID/EdgeID/PortID/NodeType/Handle/SourceType/TargetType apply to
// its Kind.
type Error struct {
	Kind       ErrorKind
	NodeID     string
	EdgeID     string
	PortID     string
	NodeType   string
	Handle     string
	SourceType string
	TargetType string
}

func (e Error) Error() string {
	switch e.Kind {
	case KindCycleDetected:
		return "cycle detected in graph"
	case KindUnknownNodeType:
		return fmt.Sprintf("unknown node type %q for node %q", e.NodeType, e.NodeID)
	case KindUnconnectedRequiredInput:
		return fmt.Sprintf("required input %q on node %q is not connected", e.PortID, e.NodeID)
	case KindIncompatiblePortTypes:
		return fmt.Sprintf("edge %q connects incompatible types: %s -> %s", e.EdgeID, e.SourceType, e.TargetType)
	case KindUnknownNode:
		return fmt.Sprintf("edge %q references unknown node %q", e.EdgeID, e.NodeID)
	case KindOrphanedNode:
		return fmt.Sprintf("node %q has no connections", e.NodeID)
	case KindMissingStartNode:
		return "orchestration graph has no Start node"
	case KindMissingEndNode:
		return "orchestration graph has no End node"
	case KindMultipleStartNodes:
		return "orchestration graph has multiple Start nodes"
	case KindMissingRequiredHandle:
		return fmt.Sprintf("node %q is missing required handle %q", e.NodeID, e.Handle)
	default:
		return string(e.Kind)
	}
}

// ValidateWorkflow checks a data graph's structure, returning every error
// found rather than stopping at the first. Passing a non-nil registry
// additionally checks node types and required-input connectivity.
func ValidateWorkflow(g *graph.Graph, reg *registry.Registry) []Error {
	var errs []Error

	validateEdgeReferences(g, &errs)
	detectCycles(g, &errs)

	if reg != nil {
		validateNodeTypes(g, reg, &errs)
		validateRequiredInputs(g, reg, &errs)
	}

	return errs
}

// ValidateOrchestration checks an orchestration graph's Start/End
// topology and cycle-freedom.
func ValidateOrchestration(g *orchestration.Graph) []Error {
	var errs []Error

	validateStartEndPresence(g, &errs)
	detectOrchestrationCycles(g, &errs)

	return errs
}

func validateEdgeReferences(g *graph.Graph, errs *[]Error) {
	nodeIDs := make(map[string]bool, len(g.Nodes()))
	for _, n := range g.Nodes() {
		nodeIDs[n.ID] = true
	}

	for _, e := range g.Edges() {
		if !nodeIDs[e.Source] {
			*errs = append(*errs, Error{Kind: KindUnknownNode, EdgeID: e.ID, NodeID: e.Source})
		}
		if !nodeIDs[e.Target] {
			*errs = append(*errs, Error{Kind: KindUnknownNode, EdgeID: e.ID, NodeID: e.Target})
		}
	}
}

func detectCycles(g *graph.Graph, errs *[]Error) {
	if err := g.DetectCycles(); err != nil {
		*errs = append(*errs, Error{Kind: KindCycleDetected})
	}
}

func validateNodeTypes(g *graph.Graph, reg *registry.Registry, errs *[]Error) {
	for _, n := range g.Nodes() {
		if !reg.HasNodeType(n.NodeType) {
			*errs = append(*errs, Error{Kind: KindUnknownNodeType, NodeID: n.ID, NodeType: n.NodeType})
		}
	}
}

type inputKey struct {
	nodeID string
	portID string
}

func validateRequiredInputs(g *graph.Graph, reg *registry.Registry, errs *[]Error) {
	connected := make(map[inputKey]bool)
	for _, e := range g.Edges() {
		connected[inputKey{nodeID: e.Target, portID: e.TargetHandle}] = true
	}

	for _, n := range g.Nodes() {
		metadata, ok := reg.GetMetadata(n.NodeType)
		if !ok {
			continue
		}
		for _, port := range metadata.Inputs {
			if !port.Required || connected[inputKey{nodeID: n.ID, portID: port.ID}] {
				continue
			}
			if hasDataValue(n.Data, port.ID) {
				continue
			}
			*errs = append(*errs, Error{Kind: KindUnconnectedRequiredInput, NodeID: n.ID, PortID: port.ID})
		}
	}
}

func hasDataValue(data interface{}, portID string) bool {
	m, ok := data.(map[string]interface{})
	if !ok {
		return false
	}
	_, present := m[portID]
	return present
}

func validateStartEndPresence(g *orchestration.Graph, errs *[]Error) {
	startCount, endCount := 0, 0
	for _, n := range g.Nodes {
		switch n.NodeType {
		case orchestration.NodeStart:
			startCount++
		case orchestration.NodeEnd:
			endCount++
		}
	}

	if startCount == 0 {
		*errs = append(*errs, Error{Kind: KindMissingStartNode})
	} else if startCount > 1 {
		*errs = append(*errs, Error{Kind: KindMultipleStartNodes})
	}
	if endCount == 0 {
		*errs = append(*errs, Error{Kind: KindMissingEndNode})
	}
}

func detectOrchestrationCycles(g *orchestration.Graph, errs *[]Error) {
	inDegree := make(map[string]int, len(g.Nodes))
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range g.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		inDegree[e.Target]++
	}

	queue := make([]string, 0, len(g.Nodes))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range adjacency[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited < len(g.Nodes) {
		*errs = append(*errs, Error{Kind: KindCycleDetected})
	}
}
