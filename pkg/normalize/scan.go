package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Helpers for crawling loosely-typed backend JSON. Every accessor degrades
// to a zero value on a shape mismatch; nothing in this package panics or
// returns an error.

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

// getString returns the first non-empty string found under any of the keys
func getString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := m[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// getNumber returns the first numeric value found under any of the keys.
// Numeric strings are accepted because some backend shapes quote amounts.
func getNumber(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch value := m[key].(type) {
		case float64:
			return value, true
		case int:
			return float64(value), true
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// getBool returns the boolean under key, or def when absent or mistyped
func getBool(m map[string]interface{}, key string, def bool) bool {
	if value, ok := m[key].(bool); ok {
		return value
	}
	return def
}

// getSlice returns the first slice found under any of the keys
func getSlice(m map[string]interface{}, keys ...string) []interface{} {
	for _, key := range keys {
		if s, ok := asSlice(m[key]); ok {
			return s
		}
	}
	return nil
}

// walkMaps visits every JSON object reachable from v, depth first. The
// visitor returns false to stop descending into the current object.
// Object children are visited in sorted key order, so "first match wins"
// extractions resolve the same way on every call.
func walkMaps(v interface{}, visit func(map[string]interface{}) bool) {
	switch node := v.(type) {
	case map[string]interface{}:
		if !visit(node) {
			return
		}
		keys := make([]string, 0, len(node))
		for key := range node {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			walkMaps(node[key], visit)
		}
	case []interface{}:
		for _, child := range node {
			walkMaps(child, visit)
		}
	}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseTime tries the known backend datetime layouts; zero time on failure
func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
