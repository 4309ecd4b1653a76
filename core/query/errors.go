package query

import "fmt"

// UnpopulatedFieldError is returned when a field referenced by a predicate is
// absent from a record's populated set. It aborts the whole evaluation pass,
// not just the offending record.
type UnpopulatedFieldError struct {
	Field string
}

// Error returns the error message for an UnpopulatedFieldError.
func (e *UnpopulatedFieldError) Error() string {
	return fmt.Sprintf("field %q is not populated on a record in the sequence", e.Field)
}

// FieldNotFoundError is returned when a record type does not expose the
// requested field at all, as opposed to exposing it without a value.
type FieldNotFoundError struct {
	Field string
}

// Error returns the error message for a FieldNotFoundError.
func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q does not exist on the record", e.Field)
}

// ErrNoFieldSelected is returned by group and reduce terminals when no key
// field was selected before the terminal call.
var ErrNoFieldSelected = fmt.Errorf("no field selected: call ByField before the terminal operation")
