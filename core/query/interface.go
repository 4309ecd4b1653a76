// Package query implements an in-memory predicate engine over sequences of
// dynamic records. Callers assemble boolean predicate expressions through a
// fluent builder and trigger a single streaming pass that filters, groups,
// or reduces the matching records.
package query

import (
	"context"

	"github.com/asaidimu/go-sift/core/value"
)

// FieldDescriptor is an opaque handle identifying one field of a record type.
// The engine identifies a field solely by its Name, so two descriptors naming
// the same field are interchangeable.
type FieldDescriptor interface {
	// Name returns the field name. It is used for field identity, populated
	// checks, and error messages.
	Name() string
}

// Record is the capability contract a host record type exposes to the engine.
// The engine never assumes a concrete record shape.
type Record interface {
	// Field returns the value of the field identified by the descriptor. It
	// fails with FieldNotFoundError when the record type has no such field.
	Field(field FieldDescriptor) (value.Value, error)

	// PopulatedFields returns the set of field names that carry a value on
	// this record. A field can exist on the record type yet be absent here.
	PopulatedFields() map[string]struct{}
}

// Iterator is a forward, read-once cursor over a record sequence. The
// contract mirrors database/sql rows: Next advances, Record returns the
// current record, Err reports the first iteration failure after Next returns
// false, and Close releases any underlying resources.
type Iterator interface {
	Next() bool
	Record() Record
	Err() error
	Close() error
}

// Source produces the record sequence a Dataset evaluates. Open may be called
// once per terminal operation; sources that cannot be re-opened make chained
// terminal calls on the same Dataset undefined, which is the caller's
// responsibility to avoid.
type Source interface {
	Open(ctx context.Context) (Iterator, error)
}
