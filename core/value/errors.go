package value

import "fmt"

// UnsupportedComparisonError is returned when two non-null values of
// different kinds, or values of a kind with no defined ordering, are compared.
type UnsupportedComparisonError struct {
	Left  Kind
	Right Kind
}

// Error returns the error message for an UnsupportedComparisonError.
func (e *UnsupportedComparisonError) Error() string {
	return fmt.Sprintf("unsupported comparison between %s and %s", e.Left, e.Right)
}

// UnsupportedContainmentError is returned when the operand of a containment
// check is not a list.
type UnsupportedContainmentError struct {
	Operand Kind
}

// Error returns the error message for an UnsupportedContainmentError.
func (e *UnsupportedContainmentError) Error() string {
	return fmt.Sprintf("containment requires a list operand, got %s", e.Operand)
}

// InvalidNumericFormatError is returned when a string value cannot be parsed
// as a number during numeric conversion.
type InvalidNumericFormatError struct {
	Value string
}

// Error returns the error message for an InvalidNumericFormatError.
func (e *InvalidNumericFormatError) Error() string {
	return fmt.Sprintf("cannot parse %q as a number", e.Value)
}

// UnsupportedValueTypeError is returned when a value of a non-numeric,
// non-string kind is passed to a numeric conversion.
type UnsupportedValueTypeError struct {
	Kind Kind
}

// Error returns the error message for an UnsupportedValueTypeError.
func (e *UnsupportedValueTypeError) Error() string {
	return fmt.Sprintf("value of kind %s is not numeric", e.Kind)
}
