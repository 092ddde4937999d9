package handlers

import (
	"strconv"
	"strings"
)

// messageText coerces a decoded JSON value the way the web client expects:
// falsy values are empty, everything else is stringified like a JS String().
func messageText(v any) string {
	if !truthy(v) {
		return ""
	}
	return jsString(v)
}

// jsString renders arrays as comma-joined elements (null elements empty)
// and objects as "[object Object]".
func jsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = jsString(e)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// truthy reports JSON truthiness: false, 0, "" and null are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
