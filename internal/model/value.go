package model

import (
	"reflect"
	"strings"
)

// IsEmptyValue reports whether a raw source value counts as "not filled in":
// nil, blank strings, empty slices/arrays and empty maps. false and 0 are values.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case bool, int, int64, float64:
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmptyValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Array:
		return rv.Len() == 0
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	}
	return false
}

// CompletionOf maps a raw leaf value to its completion.
func CompletionOf(v any) Completion {
	if IsEmptyValue(v) {
		return CompletionEmpty
	}
	return CompletionComplete
}
