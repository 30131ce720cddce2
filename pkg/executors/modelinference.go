package executors

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
	"github.com/yesoreyeram/nodeflow/backend/pkg/modelserver"
)

// ModelInferenceExecutor calls an OpenAI-shaped model server for prompt
// completion, replacing original_source's execute_ollama_inference raw
// HTTP POST with the richer pkg/modelserver client. The client is pulled
// from Extensions rather than constructed per call, so one pooled client,
// built once per process by the server, serves every model-inference node
// in every run.
type ModelInferenceExecutor struct{}

func (ModelInferenceExecutor) Execute(ctx context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
	prompt, ok := stringField(inputs, "prompt")
	if !ok {
		return nil, fmt.Errorf("%w: model-inference requires a \"prompt\" input", ErrMissingInput)
	}
	model, _ := stringField(inputs, "model")
	systemPrompt, _ := stringField(inputs, "system_prompt")

	client, ok := engine.Get[*modelserver.Client](ext)
	if !ok || client == nil {
		return nil, ErrNoModelServer
	}

	response, err := client.ChatCompletion(ctx, modelserver.ChatRequest{
		Model:        model,
		Prompt:       prompt,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("model-inference: %w", err)
	}

	return map[string]interface{}{
		"response":   response,
		"model_used": model,
		"model_ref":  map[string]interface{}{"engine": "modelserver", "model_id": model},
	}, nil
}
