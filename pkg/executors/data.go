package executors

// dataMap returns inputs["_data"] as a map, or an empty map if absent or
// not an object - every executor's config lookup goes through this.
func dataMap(inputs map[string]interface{}) map[string]interface{} {
	if d, ok := inputs["_data"].(map[string]interface{}); ok {
		return d
	}
	return map[string]interface{}{}
}

// stringField reads key from data, falling back to a same-named input
// port, matching original_source's "_data first, then live port" pattern
// for nodes whose config value can also be fed by an upstream edge.
func stringField(inputs map[string]interface{}, key string) (string, bool) {
	if s, ok := dataMap(inputs)[key].(string); ok {
		return s, true
	}
	if s, ok := inputs[key].(string); ok {
		return s, true
	}
	return "", false
}

func boolField(inputs map[string]interface{}, key string) (bool, bool) {
	if b, ok := dataMap(inputs)[key].(bool); ok {
		return b, true
	}
	if b, ok := inputs[key].(bool); ok {
		return b, true
	}
	return false, false
}

func numberField(inputs map[string]interface{}, key string) (float64, bool) {
	if n, ok := dataMap(inputs)[key].(float64); ok {
		return n, true
	}
	if n, ok := inputs[key].(float64); ok {
		return n, true
	}
	return 0, false
}
