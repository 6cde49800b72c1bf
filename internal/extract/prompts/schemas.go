package prompts

import "sort"

func EnumSchema(values ...string) map[string]any {
	arr := make([]any, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return map[string]any{"type": "string", "enum": arr}
}

func NumberSchema(min, max float64) map[string]any {
	return map[string]any{"type": "number", "minimum": min, "maximum": max}
}

func StringSchema(maxLength int) map[string]any {
	s := map[string]any{"type": "string"}
	if maxLength > 0 {
		s["maxLength"] = maxLength
	}
	return s
}

func ArraySchema(items map[string]any, maxItems int) map[string]any {
	s := map[string]any{"type": "array", "items": items}
	if maxItems > 0 {
		s["maxItems"] = maxItems
	}
	return s
}

// StrictObject builds an object schema rejecting extra fields; every
// property is required, which is what the strict json_schema response
// format expects.
func StrictObject(properties map[string]any) map[string]any {
	req := make([]string, 0, len(properties))
	for k := range properties {
		req = append(req, k)
	}
	sort.Strings(req)
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             req,
		"additionalProperties": false,
	}
}
