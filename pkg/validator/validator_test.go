package validator

import (
	"testing"

	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
	"github.com/yesoreyeram/nodeflow/backend/pkg/orchestration"
	"github.com/yesoreyeram/nodeflow/backend/pkg/registry"
)

func testRegistry() *registry.Registry {
	r := registry.New()
	r.RegisterMetadata(graph.NodeDefinition{
		NodeType: "text-input",
		Category: graph.CategoryInput,
		Label:    "Text Input",
		Outputs:  []graph.PortDefinition{graph.OptionalPort("text", "Text", graph.PortString)},
	})
	r.RegisterMetadata(graph.NodeDefinition{
		NodeType: "text-output",
		Category: graph.CategoryOutput,
		Label:    "Text Output",
		Inputs:   []graph.PortDefinition{graph.RequiredPort("text", "Text", graph.PortString)},
	})
	return r
}

func hasKind(errs []Error, kind ErrorKind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestValidateWorkflowValidGraph(t *testing.T) {
	g := graph.New("wf", "Test",
		[]graph.Node{{ID: "a", NodeType: "text-input"}, {ID: "b", NodeType: "text-output"}},
		[]graph.Edge{{ID: "e1", Source: "a", SourceHandle: "text", Target: "b", TargetHandle: "text"}},
	)

	errs := ValidateWorkflow(g, testRegistry())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateWorkflowDetectsCycle(t *testing.T) {
	g := graph.New("wf", "Cyclic",
		[]graph.Node{{ID: "a", NodeType: "text-input"}, {ID: "b", NodeType: "text-input"}},
		[]graph.Edge{
			{ID: "e1", Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "in"},
			{ID: "e2", Source: "b", SourceHandle: "out", Target: "a", TargetHandle: "in"},
		},
	)

	errs := ValidateWorkflow(g, nil)
	if !hasKind(errs, KindCycleDetected) {
		t.Fatalf("expected a cycle error, got %v", errs)
	}
}

func TestValidateWorkflowNoCycleLinear(t *testing.T) {
	g := graph.New("wf", "Linear",
		[]graph.Node{{ID: "a", NodeType: "text-input"}, {ID: "b", NodeType: "text-input"}, {ID: "c", NodeType: "text-input"}},
		[]graph.Edge{
			{ID: "e1", Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "in"},
			{ID: "e2", Source: "b", SourceHandle: "out", Target: "c", TargetHandle: "in"},
		},
	)

	errs := ValidateWorkflow(g, nil)
	if hasKind(errs, KindCycleDetected) {
		t.Fatalf("expected no cycle error, got %v", errs)
	}
}

func TestValidateWorkflowUnknownNodeType(t *testing.T) {
	g := graph.New("wf", "Test", []graph.Node{{ID: "a", NodeType: "unknown-type"}}, nil)

	errs := ValidateWorkflow(g, testRegistry())
	if !hasKind(errs, KindUnknownNodeType) {
		t.Fatalf("expected an unknown-node-type error, got %v", errs)
	}
}

func TestValidateWorkflowUnconnectedRequiredInput(t *testing.T) {
	g := graph.New("wf", "Test", []graph.Node{{ID: "b", NodeType: "text-output"}}, nil)

	errs := ValidateWorkflow(g, testRegistry())
	if !hasKind(errs, KindUnconnectedRequiredInput) {
		t.Fatalf("expected an unconnected-required-input error, got %v", errs)
	}
}

func TestValidateWorkflowRequiredInputSatisfiedByData(t *testing.T) {
	g := graph.New("wf", "Test", []graph.Node{
		{ID: "b", NodeType: "text-output", Data: map[string]interface{}{"text": "hello"}},
	}, nil)

	errs := ValidateWorkflow(g, testRegistry())
	if hasKind(errs, KindUnconnectedRequiredInput) {
		t.Fatalf("expected the static data value to satisfy the required input, got %v", errs)
	}
}

func TestValidateWorkflowEdgeReferencesMissingNode(t *testing.T) {
	g := graph.New("wf", "Test",
		[]graph.Node{{ID: "a", NodeType: "text-input"}},
		[]graph.Edge{{ID: "e1", Source: "a", SourceHandle: "out", Target: "missing", TargetHandle: "in"}},
	)

	errs := ValidateWorkflow(g, nil)
	if !hasKind(errs, KindUnknownNode) {
		t.Fatalf("expected an unknown-node error, got %v", errs)
	}
}

func TestValidateWorkflowCollectsMultipleErrors(t *testing.T) {
	g := graph.New("wf", "Test",
		[]graph.Node{{ID: "a", NodeType: "unknown-type-1"}, {ID: "b", NodeType: "unknown-type-2"}},
		[]graph.Edge{
			{ID: "e1", Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "in"},
			{ID: "e2", Source: "b", SourceHandle: "out", Target: "a", TargetHandle: "in"},
		},
	)

	errs := ValidateWorkflow(g, testRegistry())
	if len(errs) < 2 {
		t.Fatalf("expected both a cycle and unknown-type error, got %v", errs)
	}
}

func TestValidateOrchestrationMissingStart(t *testing.T) {
	g := orchestration.New("orch", "Test")
	g.Nodes = append(g.Nodes, orchestration.Node{ID: "end", NodeType: orchestration.NodeEnd})

	errs := ValidateOrchestration(g)
	if !hasKind(errs, KindMissingStartNode) {
		t.Fatalf("expected a missing-start error, got %v", errs)
	}
}

func TestValidateOrchestrationMissingEnd(t *testing.T) {
	g := orchestration.New("orch", "Test")
	g.Nodes = append(g.Nodes, orchestration.Node{ID: "start", NodeType: orchestration.NodeStart})

	errs := ValidateOrchestration(g)
	if !hasKind(errs, KindMissingEndNode) {
		t.Fatalf("expected a missing-end error, got %v", errs)
	}
}

func TestValidateOrchestrationMultipleStarts(t *testing.T) {
	g := orchestration.New("orch", "Test")
	g.Nodes = append(g.Nodes,
		orchestration.Node{ID: "start1", NodeType: orchestration.NodeStart},
		orchestration.Node{ID: "start2", NodeType: orchestration.NodeStart},
		orchestration.Node{ID: "end", NodeType: orchestration.NodeEnd},
	)

	errs := ValidateOrchestration(g)
	if !hasKind(errs, KindMultipleStartNodes) {
		t.Fatalf("expected a multiple-start-nodes error, got %v", errs)
	}
}

func TestValidateOrchestrationValid(t *testing.T) {
	g := orchestration.New("orch", "Valid")
	g.Nodes = append(g.Nodes,
		orchestration.Node{ID: "start", NodeType: orchestration.NodeStart},
		orchestration.Node{ID: "end", NodeType: orchestration.NodeEnd},
	)
	g.Edges = append(g.Edges, orchestration.Edge{ID: "e1", Source: "start", SourceHandle: "next", Target: "end", TargetHandle: "input"})

	errs := ValidateOrchestration(g)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
