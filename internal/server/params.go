package server

// StringParam reads a string argument with a default.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

// IntParam reads a numeric argument with a default. MCP arguments arrive as
// float64 after JSON decoding.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// BoolParam reads a boolean argument with a default.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// HasParam reports whether the argument was supplied at all.
func HasParam(params map[string]interface{}, key string) bool {
	_, ok := params[key]
	return ok
}
