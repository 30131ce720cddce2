package executors

import (
	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
	"github.com/yesoreyeram/nodeflow/backend/pkg/registry"
)

// DefaultRegistry builds a Registry with every built-in data-graph node
// type registered, grounded on the teacher's engine.DefaultRegistry
// grouping-by-category pattern. fileSandboxRoot confines read-file/
// write-file to a directory; an empty string leaves paths unconfined.
func DefaultRegistry(fileSandboxRoot string) *registry.Registry {
	reg := registry.New()

	reg.Register(graph.NodeDefinition{
		NodeType:      "text-input",
		Category:      graph.CategoryInput,
		Label:         "Text Input",
		Description:   "Provides a constant text value.",
		Outputs:       []graph.PortDefinition{graph.RequiredPort("text", "Text", graph.PortString)},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(TextInputExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:      "text-output",
		Category:      graph.CategoryOutput,
		Label:         "Text Output",
		Description:   "Surfaces a text value at the edge of a graph.",
		Inputs:        []graph.PortDefinition{graph.RequiredPort("text", "Text", graph.PortString)},
		Outputs:       []graph.PortDefinition{graph.RequiredPort("text", "Text", graph.PortString)},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(TextOutputExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:      "boolean-input",
		Category:      graph.CategoryInput,
		Label:         "Boolean Input",
		Description:   "Provides a constant boolean value.",
		Outputs:       []graph.PortDefinition{graph.RequiredPort("value", "Value", graph.PortBoolean)},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(BooleanInputExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:      "number-input",
		Category:      graph.CategoryInput,
		Label:         "Number Input",
		Description:   "Provides a constant numeric value.",
		Outputs:       []graph.PortDefinition{graph.RequiredPort("value", "Value", graph.PortNumber)},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(NumberInputExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "conditional",
		Category:    graph.CategoryControl,
		Label:       "Conditional",
		Description: "Routes a value to true_out or false_out based on condition.",
		Inputs: []graph.PortDefinition{
			graph.RequiredPort("condition", "Condition", graph.PortBoolean),
			graph.RequiredPort("value", "Value", graph.PortAny),
		},
		Outputs: []graph.PortDefinition{
			graph.OptionalPort("true_out", "True", graph.PortAny),
			graph.OptionalPort("false_out", "False", graph.PortAny),
		},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(ConditionalExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "merge",
		Category:    graph.CategoryProcessing,
		Label:       "Merge",
		Description: "Joins string or string-array inputs with a newline.",
		Inputs:      []graph.PortDefinition{graph.RequiredPort("inputs", "Inputs", graph.PortAny).WithMultiple()},
		Outputs: []graph.PortDefinition{
			graph.RequiredPort("merged", "Merged", graph.PortString),
			graph.RequiredPort("count", "Count", graph.PortNumber),
		},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(MergeExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "json-filter",
		Category:    graph.CategoryProcessing,
		Label:       "JSON Filter",
		Description: "Extracts a value from JSON using a dot/bracket path expression.",
		Inputs:      []graph.PortDefinition{graph.RequiredPort("json", "JSON", graph.PortJSON)},
		Outputs: []graph.PortDefinition{
			graph.RequiredPort("value", "Value", graph.PortAny),
			graph.RequiredPort("found", "Found", graph.PortBoolean),
		},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(JSONFilterExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "schema-validator",
		Category:    graph.CategoryProcessing,
		Label:       "Schema Validator",
		Description: "Validates a value against a JSON schema.",
		Inputs:      []graph.PortDefinition{graph.RequiredPort("value", "Value", graph.PortAny)},
		Outputs: []graph.PortDefinition{
			graph.RequiredPort("valid", "Valid", graph.PortBoolean),
			graph.RequiredPort("data", "Data", graph.PortAny),
		},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(SchemaValidatorExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "model-inference",
		Category:    graph.CategoryTool,
		Label:       "Model Inference",
		Description: "Completes a prompt against an OpenAI-shaped model server.",
		Inputs:      []graph.PortDefinition{graph.RequiredPort("prompt", "Prompt", graph.PortPrompt)},
		Outputs: []graph.PortDefinition{
			graph.RequiredPort("response", "Response", graph.PortString),
			graph.RequiredPort("model_ref", "Model Ref", graph.PortModelHandle),
		},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(ModelInferenceExecutor{}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "read-file",
		Category:    graph.CategoryTool,
		Label:       "Read File",
		Description: "Reads a file relative to the configured sandbox root.",
		Inputs:      []graph.PortDefinition{graph.RequiredPort("path", "Path", graph.PortString)},
		Outputs:     []graph.PortDefinition{graph.RequiredPort("content", "Content", graph.PortString)},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(ReadFileExecutor{Root: fileSandboxRoot}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "write-file",
		Category:    graph.CategoryTool,
		Label:       "Write File",
		Description: "Writes a file relative to the configured sandbox root.",
		Inputs: []graph.PortDefinition{
			graph.RequiredPort("path", "Path", graph.PortString),
			graph.RequiredPort("content", "Content", graph.PortString),
		},
		Outputs:       []graph.PortDefinition{graph.RequiredPort("success", "Success", graph.PortBoolean)},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(WriteFileExecutor{Root: fileSandboxRoot}))

	reg.Register(graph.NodeDefinition{
		NodeType:    "vector-search",
		Category:    graph.CategoryTool,
		Label:       "Vector Search",
		Description: "Embeds a query and returns the nearest rows from a vector store class.",
		Inputs:      []graph.PortDefinition{graph.RequiredPort("query", "Query", graph.PortString)},
		Outputs:     []graph.PortDefinition{graph.RequiredPort("results", "Results", graph.PortJSON)},
		ExecutionMode: graph.ModeBatch,
	}, registry.SharedExecutorFactory(VectorSearchExecutor{}))

	return reg
}
