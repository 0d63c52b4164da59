// Package resolvers converts between stored objects and their wire values:
// a project is written as its name, a task as its id, and so on.
package resolvers

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a field error.
type Kind int

const (
	// KindInvalid is a value of the right type that breaks a rule.
	KindInvalid Kind = iota
	// KindNull is an explicit JSON null where a value is required.
	KindNull
	// KindRequired is a field missing from a full write.
	KindRequired
	// KindNotFound is a well-formed reference to a row that does not exist.
	KindNotFound
	// KindInvalidType is a value of the wrong JSON type or shape.
	KindInvalidType
)

// FieldError is a client-facing validation failure on one value.
type FieldError struct {
	Kind    Kind
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Errors is every failure collected from a list-valued field.
type Errors []*FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Null is the error for an explicit null.
func Null() *FieldError {
	return &FieldError{Kind: KindNull, Message: "This field may not be null."}
}

// Required is the error for a missing field.
func Required() *FieldError {
	return &FieldError{Kind: KindRequired, Message: "This field is required."}
}

// NotFound is the error for a reference to a missing object.
func NotFound(object string, key any) *FieldError {
	return &FieldError{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", object, key)}
}

// InvalidType is the error for a value of the wrong type.
func InvalidType(format string, args ...any) *FieldError {
	return &FieldError{Kind: KindInvalidType, Message: fmt.Sprintf(format, args...)}
}

// Invalid is the error for a value that breaks a rule.
func Invalid(format string, args ...any) *FieldError {
	return &FieldError{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// Messages returns the client-facing messages carried by err. ok is false
// when err is not a validation failure, e.g. a storage error.
func Messages(err error) (msgs []string, ok bool) {
	var list Errors
	if errors.As(err, &list) {
		for _, fe := range list {
			msgs = append(msgs, fe.Message)
		}
		return msgs, true
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return []string{fe.Message}, true
	}
	return nil, false
}
