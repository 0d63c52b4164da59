// Package serializers validates request bodies into service inputs and
// renders stored objects into response bodies.
package serializers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/thenoetrevino/tasktracker/internal/resolvers"
)

// ErrMalformedBody is returned by ParsePayload for bodies that are not JSON.
var ErrMalformedBody = errors.New("JSON parse error")

// Payload is a request body decoded one level deep.
type Payload map[string]json.RawMessage

// ParsePayload decodes a JSON object body. An empty body is an empty payload.
// A JSON value that is not an object yields ValidationErrors.
func ParsePayload(body []byte) (Payload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Payload{}, nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w - %v", ErrMalformedBody, err)
	}
	if _, ok := v.(map[string]any); !ok {
		return nil, ValidationErrors{
			NonFieldErrors: {fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonTypeName(v))},
		}
	}

	p := Payload{}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w - %v", ErrMalformedBody, err)
	}
	return p, nil
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case []any:
		return "list"
	case string:
		return "str"
	case float64:
		return "float"
	case bool:
		return "bool"
	default:
		return "NoneType"
	}
}

// NonFieldErrors is the key for errors not tied to one field.
const NonFieldErrors = "non_field_errors"

// ValidationErrors maps a field name to its client-facing messages.
type ValidationErrors map[string][]string

// Add records the messages carried by a field error.
func (v ValidationErrors) Add(field string, err error) {
	if msgs, ok := resolvers.Messages(err); ok {
		v[field] = append(v[field], msgs...)
		return
	}
	v[field] = append(v[field], err.Error())
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(v[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// errOrNil returns v as an error, or nil when it is empty.
func (v ValidationErrors) errOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// decodeField validates one field of p. ok is true when the field was
// submitted and decoded cleanly. Client errors are recorded in errs; the
// returned error is reserved for storage failures.
func decodeField[T any](ctx context.Context, p Payload, name string, required bool, decode func(context.Context, json.RawMessage) (T, error), errs ValidationErrors) (v T, ok bool, err error) {
	raw, present := p[name]
	if !present {
		if required {
			errs.Add(name, resolvers.Required())
		}
		return v, false, nil
	}
	if resolvers.IsNull(raw) {
		errs.Add(name, resolvers.Null())
		return v, false, nil
	}

	v, err = decode(ctx, raw)
	if err != nil {
		if _, isField := resolvers.Messages(err); isField {
			errs.Add(name, err)
			return v, false, nil
		}
		return v, false, err
	}
	return v, true, nil
}
