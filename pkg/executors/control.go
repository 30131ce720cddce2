package executors

import (
	"context"
	"strings"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// ConditionalExecutor routes "value" to either "true_out" or "false_out"
// based on the "condition" input, grounded on original_source's
// execute_conditional. The non-taken port receives nil so a downstream node
// wired to it sees an explicit empty value rather than a stale one.
type ConditionalExecutor struct{}

func (ConditionalExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	condition, _ := boolField(inputs, "condition")
	value := inputs["value"]

	if condition {
		return map[string]interface{}{"true_out": value, "false_out": nil}, nil
	}
	return map[string]interface{}{"true_out": nil, "false_out": value}, nil
}

// MergeExecutor joins the string or string-array input "inputs" with "\n",
// dropping blank entries, grounded on original_source's execute_merge.
type MergeExecutor struct{}

func (MergeExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	var values []string

	switch v := inputs["inputs"].(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				values = append(values, s)
			}
		}
	case string:
		if strings.TrimSpace(v) != "" {
			values = append(values, v)
		}
	}

	return map[string]interface{}{
		"merged": strings.Join(values, "\n"),
		"count":  len(values),
	}, nil
}
