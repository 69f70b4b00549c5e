package mcp

import (
	"fmt"
	"math"

	"caselaw/internal/caselawerr"
)

// validateArgs checks tool arguments against the tool's declared input
// schema: required fields, types, string lengths, array sizes, numeric
// ranges, and enum membership. A violation rejects the call before the
// handler runs.
func validateArgs(schema map[string]interface{}, args map[string]interface{}) error {
	properties, _ := schema["properties"].(map[string]interface{})

	if required, ok := schema["required"].([]string); ok {
		for _, field := range required {
			if _, present := args[field]; !present {
				return caselawerr.Missing(field)
			}
		}
	}

	for name, value := range args {
		propSchema, known := properties[name].(map[string]interface{})
		if !known {
			continue
		}
		if err := validateValue(name, value, propSchema); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(name string, value interface{}, schema map[string]interface{}) error {
	switch schema["type"] {
	case "string":
		s, ok := value.(string)
		if !ok {
			return caselawerr.Invalid(name, "must be a string")
		}
		return validateString(name, s, schema)
	case "number", "integer":
		n, ok := value.(float64)
		if !ok {
			return caselawerr.Invalid(name, "must be a number")
		}
		if schema["type"] == "integer" && n != math.Trunc(n) {
			return caselawerr.Invalid(name, "must be an integer")
		}
		return validateNumber(name, n, schema)
	case "boolean":
		if _, ok := value.(bool); !ok {
			return caselawerr.Invalid(name, "must be a boolean")
		}
	case "array":
		items, ok := value.([]interface{})
		if !ok {
			return caselawerr.Invalid(name, "must be an array")
		}
		return validateArray(name, items, schema)
	}
	return nil
}

func validateString(name, s string, schema map[string]interface{}) error {
	if min, ok := schema["minLength"].(int); ok && len(s) < min {
		return caselawerr.Invalid(name, fmt.Sprintf("must be at least %d characters", min))
	}
	if max, ok := schema["maxLength"].(int); ok && len(s) > max {
		return caselawerr.Invalid(name, fmt.Sprintf("must be at most %d characters", max))
	}
	if enum, ok := schema["enum"].([]string); ok {
		for _, allowed := range enum {
			if s == allowed {
				return nil
			}
		}
		return caselawerr.Invalid(name, fmt.Sprintf("must be one of %v", enum)).
			WithContext("value", s)
	}
	return nil
}

func validateNumber(name string, n float64, schema map[string]interface{}) error {
	if min, ok := numericBound(schema["minimum"]); ok && n < min {
		return caselawerr.Invalid(name, fmt.Sprintf("must be at least %v", min))
	}
	if max, ok := numericBound(schema["maximum"]); ok && n > max {
		return caselawerr.Invalid(name, fmt.Sprintf("must be at most %v", max))
	}
	return nil
}

func validateArray(name string, items []interface{}, schema map[string]interface{}) error {
	if min, ok := schema["minItems"].(int); ok && len(items) < min {
		return caselawerr.Invalid(name, fmt.Sprintf("must have at least %d items", min))
	}
	if max, ok := schema["maxItems"].(int); ok && len(items) > max {
		return caselawerr.Invalid(name, fmt.Sprintf("must have at most %d items", max))
	}
	itemSchema, ok := schema["items"].(map[string]interface{})
	if !ok {
		return nil
	}
	for i, item := range items {
		if err := validateValue(fmt.Sprintf("%s[%d]", name, i), item, itemSchema); err != nil {
			return err
		}
	}
	return nil
}

// numericBound accepts the int and float forms a schema literal can take.
func numericBound(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
