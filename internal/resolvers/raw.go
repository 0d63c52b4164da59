package resolvers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// rawKind is the JSON type of a raw value, named the way clients of the
// API see it in error messages.
func rawKind(raw json.RawMessage) string {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return "NoneType"
	}
	switch b[0] {
	case '"':
		return "str"
	case '{':
		return "dict"
	case '[':
		return "list"
	case 't', 'f':
		return "bool"
	case 'n':
		return "NoneType"
	}
	if bytes.ContainsAny(b, ".eE") {
		return "float"
	}
	return "int"
}

// IsNull reports whether raw is a JSON null.
func IsNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// literal renders raw for an error message: strings unquoted, anything
// else compact.
func literal(raw json.RawMessage) string {
	var s string
	if rawKind(raw) == "str" && json.Unmarshal(raw, &s) == nil {
		return s
	}
	var buf bytes.Buffer
	if json.Compact(&buf, raw) == nil {
		return buf.String()
	}
	return strings.TrimSpace(string(raw))
}

// scalarText returns the text of a JSON string, number or boolean.
func scalarText(raw json.RawMessage) (string, bool) {
	switch rawKind(raw) {
	case "str":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case "int", "float":
		return string(bytes.TrimSpace(raw)), true
	case "bool":
		return strconv.FormatBool(string(bytes.TrimSpace(raw)) == "true"), true
	}
	return "", false
}
