// Command demo-conditional-execution shows the orchestration package
// routing a run down one branch of a control-flow graph while leaving
// the other branch's steps unexecuted.
package main

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/nodeflow/backend/pkg/observer"
	"github.com/yesoreyeram/nodeflow/backend/pkg/orchestration"
)

// stepExecutor is a stand-in DataGraphExecutor: instead of running a real
// data graph it returns a canned message per graph id, so the demo can
// show which steps ran without wiring up pkg/workflow.
type stepExecutor struct {
	messages map[string]string
}

func (s stepExecutor) ExecuteDataGraph(ctx context.Context, graphID string, inputs map[string]interface{}, sink observer.Sink) (map[string]interface{}, error) {
	msg, ok := s.messages[graphID]
	if !ok {
		return nil, fmt.Errorf("no such step: %q", graphID)
	}
	return map[string]interface{}{"message": msg}, nil
}

func main() {
	fmt.Println("=================================================")
	fmt.Println("Conditional Execution Demo")
	fmt.Println("=================================================")
	fmt.Println()

	demo1AgeBasedRouting()
	demo2StatusCodeRouting()
	demo3NestedConditions()
}

func demo1AgeBasedRouting() {
	fmt.Println("DEMO 1: Age-Based API Routing")
	fmt.Println("----------------------------------")
	fmt.Println("Scenario: If age >= 18, call profile API -> sports API")
	fmt.Println("          If age < 18, call education API")
	fmt.Println()

	exec := stepExecutor{messages: map[string]string{
		"profile-api":   "fetched user profile",
		"sports-api":    "registered for sports",
		"education-api": "registered for education",
	}}

	for _, age := range []float64{25, 15} {
		fmt.Printf("Testing with age = %.0f:\n", age)

		g := orchestration.New("age-routing", "Age-based routing")
		g.Nodes = append(g.Nodes,
			orchestration.Node{ID: "start", NodeType: orchestration.NodeStart},
			orchestration.Node{ID: "age_check", NodeType: orchestration.NodeCondition, Config: map[string]interface{}{"conditionKey": "is_adult"}},
			orchestration.Node{ID: "profile_api", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "profile-api"}},
			orchestration.Node{ID: "sports_api", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "sports-api"}},
			orchestration.Node{ID: "education_api", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "education-api"}},
			orchestration.Node{ID: "end", NodeType: orchestration.NodeEnd},
		)
		g.Edges = append(g.Edges,
			orchestration.Edge{ID: "e1", Source: "start", SourceHandle: "next", Target: "age_check", TargetHandle: "input"},
			orchestration.Edge{ID: "e2", Source: "age_check", SourceHandle: "true", Target: "profile_api", TargetHandle: "input"},
			orchestration.Edge{ID: "e3", Source: "profile_api", SourceHandle: "next", Target: "sports_api", TargetHandle: "input"},
			orchestration.Edge{ID: "e4", Source: "sports_api", SourceHandle: "next", Target: "end", TargetHandle: "input"},
			orchestration.Edge{ID: "e5", Source: "age_check", SourceHandle: "false", Target: "education_api", TargetHandle: "input"},
			orchestration.Edge{ID: "e6", Source: "education_api", SourceHandle: "next", Target: "end", TargetHandle: "input"},
		)

		result, err := orchestration.NewExecutor(exec, "demo1").Execute(
			context.Background(), g, map[string]interface{}{"is_adult": age >= 18}, nil,
		)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		printRan(result, []string{"profile_api", "sports_api", "education_api"})
		fmt.Println()
	}
	fmt.Println()
}

func demo2StatusCodeRouting() {
	fmt.Println("DEMO 2: HTTP Status Code Routing")
	fmt.Println("------------------------------------------------")
	fmt.Println("Scenario: Route to a different handler per status-code class")
	fmt.Println()

	exec := stepExecutor{messages: map[string]string{
		"success-handler":   "processed successful response",
		"not-found-handler": "handled not found",
		"error-handler":     "logged server error",
		"other-handler":     "other status code",
	}}

	for _, code := range []float64{200, 404, 500, 301} {
		fmt.Printf("Testing with status_code = %.0f:\n", code)

		g := orchestration.New("status-routing", "Status code routing")
		g.Nodes = append(g.Nodes,
			orchestration.Node{ID: "start", NodeType: orchestration.NodeStart},
			orchestration.Node{ID: "is_200", NodeType: orchestration.NodeCondition, Config: map[string]interface{}{"conditionKey": "is_200"}},
			orchestration.Node{ID: "is_404", NodeType: orchestration.NodeCondition, Config: map[string]interface{}{"conditionKey": "is_404"}},
			orchestration.Node{ID: "is_5xx", NodeType: orchestration.NodeCondition, Config: map[string]interface{}{"conditionKey": "is_5xx"}},
			orchestration.Node{ID: "success_handler", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "success-handler"}},
			orchestration.Node{ID: "not_found_handler", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "not-found-handler"}},
			orchestration.Node{ID: "error_handler", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "error-handler"}},
			orchestration.Node{ID: "other_handler", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "other-handler"}},
			orchestration.Node{ID: "end", NodeType: orchestration.NodeEnd},
		)
		g.Edges = append(g.Edges,
			orchestration.Edge{ID: "e1", Source: "start", SourceHandle: "next", Target: "is_200", TargetHandle: "input"},
			orchestration.Edge{ID: "e2", Source: "is_200", SourceHandle: "true", Target: "success_handler", TargetHandle: "input"},
			orchestration.Edge{ID: "e3", Source: "is_200", SourceHandle: "false", Target: "is_404", TargetHandle: "input"},
			orchestration.Edge{ID: "e4", Source: "is_404", SourceHandle: "true", Target: "not_found_handler", TargetHandle: "input"},
			orchestration.Edge{ID: "e5", Source: "is_404", SourceHandle: "false", Target: "is_5xx", TargetHandle: "input"},
			orchestration.Edge{ID: "e6", Source: "is_5xx", SourceHandle: "true", Target: "error_handler", TargetHandle: "input"},
			orchestration.Edge{ID: "e7", Source: "is_5xx", SourceHandle: "false", Target: "other_handler", TargetHandle: "input"},
			orchestration.Edge{ID: "e8", Source: "success_handler", SourceHandle: "next", Target: "end", TargetHandle: "input"},
			orchestration.Edge{ID: "e9", Source: "not_found_handler", SourceHandle: "next", Target: "end", TargetHandle: "input"},
			orchestration.Edge{ID: "e10", Source: "error_handler", SourceHandle: "next", Target: "end", TargetHandle: "input"},
			orchestration.Edge{ID: "e11", Source: "other_handler", SourceHandle: "next", Target: "end", TargetHandle: "input"},
		)

		initial := map[string]interface{}{
			"is_200": code == 200,
			"is_404": code == 404,
			"is_5xx": code >= 500,
		}
		result, err := orchestration.NewExecutor(exec, "demo2").Execute(context.Background(), g, initial, nil)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		printRan(result, []string{"success_handler", "not_found_handler", "error_handler", "other_handler"})
		fmt.Println()
	}
	fmt.Println()
}

func demo3NestedConditions() {
	fmt.Println("DEMO 3: Nested Conditional Logic")
	fmt.Println("------------------------------------")
	fmt.Println("Scenario: adult + US -> special offer")
	fmt.Println("          adult + non-US -> standard offer")
	fmt.Println("          minor -> parental consent")
	fmt.Println()

	exec := stepExecutor{messages: map[string]string{
		"special-offer":    "US special offer applied",
		"standard-offer":   "standard offer applied",
		"parental-consent": "parental consent required",
	}}

	testCases := []struct {
		age     float64
		country string
	}{
		{25, "US"},
		{25, "UK"},
		{15, "US"},
	}

	for _, tc := range testCases {
		fmt.Printf("Testing with age = %.0f, country = %s:\n", tc.age, tc.country)

		g := orchestration.New("nested-conditions", "Nested conditions")
		g.Nodes = append(g.Nodes,
			orchestration.Node{ID: "start", NodeType: orchestration.NodeStart},
			orchestration.Node{ID: "age_check", NodeType: orchestration.NodeCondition, Config: map[string]interface{}{"conditionKey": "is_adult"}},
			orchestration.Node{ID: "country_check", NodeType: orchestration.NodeCondition, Config: map[string]interface{}{"conditionKey": "country", "expectedValue": "US"}},
			orchestration.Node{ID: "special_offer", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "special-offer"}},
			orchestration.Node{ID: "standard_offer", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "standard-offer"}},
			orchestration.Node{ID: "parental_consent", NodeType: orchestration.NodeDataGraph, Config: map[string]interface{}{"dataGraphId": "parental-consent"}},
			orchestration.Node{ID: "end", NodeType: orchestration.NodeEnd},
		)
		g.Edges = append(g.Edges,
			orchestration.Edge{ID: "e1", Source: "start", SourceHandle: "next", Target: "age_check", TargetHandle: "input"},
			orchestration.Edge{ID: "e2", Source: "age_check", SourceHandle: "true", Target: "country_check", TargetHandle: "input"},
			orchestration.Edge{ID: "e3", Source: "country_check", SourceHandle: "true", Target: "special_offer", TargetHandle: "input"},
			orchestration.Edge{ID: "e4", Source: "country_check", SourceHandle: "false", Target: "standard_offer", TargetHandle: "input"},
			orchestration.Edge{ID: "e5", Source: "age_check", SourceHandle: "false", Target: "parental_consent", TargetHandle: "input"},
			orchestration.Edge{ID: "e6", Source: "special_offer", SourceHandle: "next", Target: "end", TargetHandle: "input"},
			orchestration.Edge{ID: "e7", Source: "standard_offer", SourceHandle: "next", Target: "end", TargetHandle: "input"},
			orchestration.Edge{ID: "e8", Source: "parental_consent", SourceHandle: "next", Target: "end", TargetHandle: "input"},
		)

		initial := map[string]interface{}{"is_adult": tc.age >= 18, "country": tc.country}
		result, err := orchestration.NewExecutor(exec, "demo3").Execute(context.Background(), g, initial, nil)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		printRan(result, []string{"special_offer", "standard_offer", "parental_consent"})
		fmt.Println()
	}
}

func printRan(result orchestration.Result, steps []string) {
	fmt.Println("  ran:")
	for _, id := range steps {
		if msg, ok := result.Outputs[id+".message"]; ok {
			fmt.Printf("    - %s: %v\n", id, msg)
		}
	}
	fmt.Println("  skipped:")
	for _, id := range steps {
		if _, ok := result.Outputs[id+".message"]; !ok {
			fmt.Printf("    - %s\n", id)
		}
	}
}
