package resolvers

import (
	"context"
	"encoding/json"
	"errors"
)

// Resolver maps between a stored value and its wire representation.
// Decode returns a *FieldError (or Errors) for bad client input and any
// other error for a storage failure.
type Resolver[T any] interface {
	Encode(v T) any
	Decode(ctx context.Context, raw json.RawMessage) (T, error)
}

// Many lifts a Resolver to a JSON list of values. Decode collects every
// element failure instead of stopping at the first.
type Many[T any] struct {
	Child Resolver[T]
}

// Encode renders vs as a list; nil renders as [].
func (m Many[T]) Encode(vs []T) any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, m.Child.Encode(v))
	}
	return out
}

func (m Many[T]) Decode(ctx context.Context, raw json.RawMessage) ([]T, error) {
	if kind := rawKind(raw); kind != "list" {
		return nil, InvalidType("Expected a list of items but got type %q.", kind)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, InvalidType("Expected a list of items but got type %q.", rawKind(raw))
	}

	out := make([]T, 0, len(items))
	var failures Errors
	for _, item := range items {
		v, err := m.Child.Decode(ctx, item)
		if err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				failures = append(failures, fe)
				continue
			}
			return nil, err
		}
		out = append(out, v)
	}
	if len(failures) > 0 {
		return nil, failures
	}
	return out, nil
}
