// Package config holds the configuration plumbing shared by the config
// store adapters: value coercion, .env loading and environment overrides.
package config

import (
	"strconv"
	"strings"
)

// AsString returns v as a string, or "" for any other type.
func AsString(v any) string {
	if str, ok := v.(string); ok {
		return str
	}
	return ""
}

// AsInt returns v as an int. TOML integers decode as int64.
func AsInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// AsFloat returns v as a float64. Numeric strings are accepted so that
// environment overrides can carry numbers.
func AsFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// AsBool returns v as a bool, or false for any other type.
func AsBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

// AsStringSlice returns v as a string slice. TOML arrays decode as []any;
// a plain string is split on whitespace.
func AsStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case string:
		return strings.Fields(s)
	default:
		return nil
	}
}
