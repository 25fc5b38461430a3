package review

import (
	"errors"
	"fmt"
)

// The review pipeline fails in exactly three ways. Callers branch on the
// type, not the message: validation failures are rejected before any model
// call, inference failures mean the provider could not be reached or timed
// out, and schema violations mean the model responded with output that does
// not conform to the review contract. Nothing is retried automatically and
// no partial review is ever returned.

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

type InferenceError struct {
	Op  string
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference %s: %v", e.Op, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

type SchemaViolation struct {
	Reason string
	Err    error
}

func (e *SchemaViolation) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema violation: %s: %v", e.Reason, e.Err)
	}
	return "schema violation: " + e.Reason
}

func (e *SchemaViolation) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsInference(err error) bool {
	var ie *InferenceError
	return errors.As(err, &ie)
}

func IsSchemaViolation(err error) bool {
	var sv *SchemaViolation
	return errors.As(err, &sv)
}
