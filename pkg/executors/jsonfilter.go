package executors

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
)

// JSONFilterExecutor extracts a value from its "json" input using a
// dot/bracket path expression read from inputs["_data"]["path"] (e.g.
// "field.sub", "items[1].x"), grounded on original_source's
// execute_json_filter / extract_json_path.
type JSONFilterExecutor struct{}

func (JSONFilterExecutor) Execute(_ context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, _ *engine.Extensions) (map[string]interface{}, error) {
	json, ok := inputs["json"]
	if !ok {
		return nil, fmt.Errorf("%w: json-filter requires a \"json\" input", ErrMissingInput)
	}
	path, _ := stringField(inputs, "path")

	value, found := extractJSONPath(json, path)
	return map[string]interface{}{"value": value, "found": found}, nil
}

// extractJSONPath walks a decoded JSON value (map[string]interface{},
// []interface{}, or a scalar) following a path of ".field" and "[N]"
// segments. Ported from original_source's extract_json_path, adapted to
// Go's JSON decoding (map[string]interface{} rather than serde_json::Value).
func extractJSONPath(value interface{}, path string) (interface{}, bool) {
	if path == "" {
		return value, true
	}

	current := value
	remaining := path

	for remaining != "" {
		if strings.HasPrefix(remaining, "[") {
			end := strings.Index(remaining, "]")
			if end < 0 {
				return nil, false
			}
			index, err := strconv.Atoi(remaining[1:end])
			if err != nil {
				return nil, false
			}
			arr, ok := current.([]interface{})
			if !ok || index < 0 || index >= len(arr) {
				return nil, false
			}
			current = arr[index]
			remaining = remaining[end+1:]
			remaining = strings.TrimPrefix(remaining, ".")
			continue
		}

		dotPos := strings.Index(remaining, ".")
		bracketPos := strings.Index(remaining, "[")

		var field, rest string
		switch {
		case dotPos < 0 && bracketPos < 0:
			field, rest = remaining, ""
		case dotPos >= 0 && (bracketPos < 0 || dotPos < bracketPos):
			field, rest = remaining[:dotPos], remaining[dotPos+1:]
		default:
			field, rest = remaining[:bracketPos], remaining[bracketPos:]
		}

		if field != "" {
			obj, ok := current.(map[string]interface{})
			if !ok {
				return nil, false
			}
			val, ok := obj[field]
			if !ok {
				return nil, false
			}
			current = val
		}
		remaining = rest
	}

	return current, true
}
