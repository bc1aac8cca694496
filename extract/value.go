package extract

import "strconv"

// Total accessors over the weakly typed catalog JSON. Each checks the
// container shape it expects and returns a zero value on any mismatch,
// so callers never branch on type assertions themselves.

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// mapAt returns m[key] if it is an object, nil otherwise.
func mapAt(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	child, _ := asMap(m[key])
	return child
}

// listAt returns m[key] if it is an array, nil otherwise.
func listAt(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	items, _ := asList(m[key])
	return items
}

// firstMap returns the first element of items if it is an object.
func firstMap(items []any) map[string]any {
	if len(items) == 0 {
		return nil
	}
	m, _ := asMap(items[0])
	return m
}

// textAt coerces m[key] to text.
func textAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	return Text(m[key])
}

// Text coerces a scalar JSON value to its textual form. Containers and
// null coerce to the empty string.
func Text(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}
