package tools

import "fmt"

// Tool arguments arrive as map[string]interface{} decoded by
// encoding/json, so every number is a float64.

func uintArg(args map[string]interface{}, key string) (uint, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required and must be an integer", key)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return uint(v), nil
}

func optionalUintArg(args map[string]interface{}, key string) *uint {
	if v, ok := args[key].(float64); ok && v >= 0 {
		id := uint(v)
		return &id
	}
	return nil
}

func intArg(args map[string]interface{}, key string) (int, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required and must be an integer", key)
	}
	return int(v), nil
}

func optionalIntArg(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok {
		return "", fmt.Errorf("%s is required and must be a string", key)
	}
	return v, nil
}

func optionalStringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}
