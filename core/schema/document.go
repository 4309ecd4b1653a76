// Package schema provides the default binding of the query engine's record
// capability contracts: a Document is a dynamic map of named fields, and a
// Field is a string descriptor identifying one of them.
package schema

import (
	"context"
	"fmt"

	"github.com/asaidimu/go-sift/core/query"
	"github.com/asaidimu/go-sift/core/value"
	"github.com/asaidimu/go-sift/utils"
)

// Field is a string field descriptor. Two Fields with the same name identify
// the same field.
type Field string

// Name returns the field name.
func (f Field) Name() string {
	return string(f)
}

// Document represents a single dynamic record as a map of field names to
// native Go values.
type Document map[string]any

// DocumentRecord adapts a Document to the engine's Record contract. The
// document's native values are converted to query values on access. A key
// present with a nil value exists on the record but is not populated.
type DocumentRecord struct {
	doc Document
}

// NewRecord wraps a document as a Record.
func NewRecord(doc Document) *DocumentRecord {
	return &DocumentRecord{doc: doc}
}

// Document returns the underlying document.
func (r *DocumentRecord) Document() Document {
	return r.doc
}

// Field returns the value of the named field, failing with FieldNotFoundError
// when the document has no such key.
func (r *DocumentRecord) Field(field query.FieldDescriptor) (value.Value, error) {
	raw, ok := r.doc[field.Name()]
	if !ok {
		return value.Null(), &query.FieldNotFoundError{Field: field.Name()}
	}
	v, err := value.FromAny(raw)
	if err != nil {
		return value.Null(), fmt.Errorf("field %q: %w", field.Name(), err)
	}
	return v, nil
}

// PopulatedFields returns the names of the keys carrying a non-nil value.
func (r *DocumentRecord) PopulatedFields() map[string]struct{} {
	populated := make(map[string]struct{}, len(r.doc))
	for name, raw := range r.doc {
		if raw != nil {
			populated[name] = struct{}{}
		}
	}
	return populated
}

// RecordFromStruct converts a struct into a DocumentRecord through its JSON
// field mapping.
func RecordFromStruct[T any](record T) (*DocumentRecord, error) {
	doc, err := utils.StructToMap(record)
	if err != nil {
		return nil, err
	}
	return NewRecord(doc), nil
}

// DocumentSource is a re-iterable in-memory record source over a slice of
// documents. Every Open starts a fresh pass from the beginning, so chained
// terminal calls over the same source are safe.
type DocumentSource struct {
	records []query.Record
}

// NewSource creates a source over the given documents, preserving their
// order.
func NewSource(docs []Document) *DocumentSource {
	records := make([]query.Record, len(docs))
	for i, doc := range docs {
		records[i] = NewRecord(doc)
	}
	return &DocumentSource{records: records}
}

// NewRecordSource creates a source over pre-built records, for callers that
// bind their own Record implementation.
func NewRecordSource(records []query.Record) *DocumentSource {
	out := make([]query.Record, len(records))
	copy(out, records)
	return &DocumentSource{records: out}
}

// Open returns an iterator over the documents.
func (s *DocumentSource) Open(ctx context.Context) (query.Iterator, error) {
	return &sliceIterator{ctx: ctx, records: s.records, pos: -1}, nil
}

type sliceIterator struct {
	ctx     context.Context
	records []query.Record
	pos     int
	err     error
}

func (it *sliceIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if err := it.ctx.Err(); err != nil {
		it.err = err
		return false
	}
	if it.pos+1 >= len(it.records) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Record() query.Record {
	return it.records[it.pos]
}

func (it *sliceIterator) Err() error {
	return it.err
}

func (it *sliceIterator) Close() error {
	return nil
}
